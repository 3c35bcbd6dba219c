package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestReadColorMode(t *testing.T) {
	cases := []struct {
		in   string
		want colorMode
		ok   bool
	}{
		{"", colorModeAuto, true},
		{"auto", colorModeAuto, true},
		{"ON", colorModeOn, true},
		{" off ", colorModeOff, true},
		{"always", "", false},
	}
	for _, tc := range cases {
		got, err := readColorMode(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("readColorMode(%q) err = %v", tc.in, err)
		}
		if err == nil && got != tc.want {
			t.Fatalf("readColorMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderVersionPretty(t *testing.T) {
	info := versionInfo{Version: "1.2.3", GitCommit: "abc123"}

	var out bytes.Buffer
	renderVersionPretty(&out, info, versionOptions{showHash: true})
	text := out.String()
	if !strings.Contains(text, "tycho 1.2.3") {
		t.Fatalf("missing version line: %q", text)
	}
	if !strings.Contains(text, "commit: abc123") {
		t.Fatalf("missing commit line: %q", text)
	}

	out.Reset()
	renderVersionPretty(&out, info, versionOptions{})
	if !strings.Contains(out.String(), "--full") {
		t.Fatalf("bare output should hint at --full: %q", out.String())
	}
}

func TestRenderVersionJSON(t *testing.T) {
	info := versionInfo{Version: "1.2.3", BuildDate: "2026-01-02"}

	var out bytes.Buffer
	if err := renderVersionJSON(&out, info, versionOptions{showDate: true}); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Tool != "tycho" || payload.Version != "1.2.3" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.BuildDate != "2026-01-02" {
		t.Fatalf("build date not included: %+v", payload)
	}
	if payload.GitCommit != "" {
		t.Fatalf("commit must be omitted when not requested: %+v", payload)
	}
}

func TestValueOrUnknown(t *testing.T) {
	if got := valueOrUnknown(""); got != "unknown" {
		t.Fatalf("valueOrUnknown(\"\") = %q", got)
	}
	if got := valueOrUnknown("x"); got != "x" {
		t.Fatalf("valueOrUnknown(\"x\") = %q", got)
	}
}
