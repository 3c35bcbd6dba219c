package diagfmt

import (
	"encoding/json"
	"io"

	"tycho/internal/diag"
	"tycho/internal/source"
)

// Minimal SARIF 2.1.0 document, enough for code-scanning ingestion.

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type sarifInvocation struct {
	CommandLine     string `json:"commandLine,omitempty"`
	ExecutionSuccessful bool `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// SarifFile pairs one evaluated file's diagnostics with the file set that
// resolves its spans.
type SarifFile struct {
	Bag *diag.Bag
	FS  *source.FileSet
}

// WriteSarif renders the bag as a single-run SARIF log.
func WriteSarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	return WriteSarifAll(w, []SarifFile{{Bag: bag, FS: fs}}, meta)
}

// WriteSarifAll renders diagnostics from several files as one SARIF run.
func WriteSarifAll(w io.Writer, files []SarifFile, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    meta.ToolName,
			Version: meta.ToolVersion,
		}},
		Results: make([]sarifResult, 0),
	}
	hasErrors := false
	for _, file := range files {
		if file.Bag.HasErrors() {
			hasErrors = true
		}
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			CommandLine:         joinArgs(meta.InvocationArgs),
			ExecutionSuccessful: !hasErrors,
		}}
	}
	for _, file := range files {
		bag, fs := file.Bag, file.FS
		for _, d := range bag.Items() {
			start, end := fs.Resolve(d.Primary)
			run.Results = append(run.Results, sarifResult{
				RuleID:  d.Code.String(),
				Level:   sarifLevel(d.Severity),
				Message: sarifMessage{Text: d.Message},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: fs.Get(d.Primary.File).Path},
						Region: sarifRegion{
							StartLine:   start.Line,
							StartColumn: start.Col,
							EndLine:     end.Line,
							EndColumn:   end.Col,
						},
					},
				}},
			})
		}
	}
	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out
}
