package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// CollectQueryFiles expands files and directories into the sorted list of
// .tyq files beneath them.
func CollectQueryFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && strings.HasSuffix(path, ".tyq") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// RunPaths evaluates every query file under paths, jobs files at a time.
// Results come back in collected file order. Query files are independent of
// each other, so the only shared state is the interner.
func (r *Runner) RunPaths(ctx context.Context, paths []string, jobs int) ([]*FileResult, error) {
	collect := -1
	if r.Timer != nil {
		collect = r.Timer.Begin("collect")
	}
	files, err := CollectQueryFiles(paths)
	if r.Timer != nil {
		r.Timer.End(collect, fmt.Sprintf("%d files", len(files)))
	}
	if err != nil {
		return nil, err
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	evaluate := -1
	if r.Timer != nil {
		evaluate = r.Timer.Begin("evaluate")
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	results := make([]*FileResult, len(files))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.RunFile(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	err = g.Wait()
	if r.Timer != nil {
		r.Timer.End(evaluate, "")
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}
