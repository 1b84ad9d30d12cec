package doorsheet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/doorsheet/api"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// BatchResult pairs a request with its outcome. Requests are independent:
// one failure does not stop the others.
type BatchResult struct {
	Index   int
	Request api.Request
	Sheet   *Sheet
	Err     error
}

// Batch renders reqs with at most concurrency requests in flight and
// returns the results in input order. A cancelled ctx stops requests that
// have not started yet.
func (g *Generator) Batch(ctx context.Context, reqs []api.Request, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	results := make([]BatchResult, len(reqs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for i, req := range reqs {
		group.Go(func() error {
			sheet, err := g.Generate(ctx, req)
			results[i] = BatchResult{Index: i, Request: req, Sheet: sheet, Err: err}
			if err != nil {
				logger.Errorf("batch request %d failed: %v", i, err)
			}
			return nil
		})
	}
	_ = group.Wait()
	return results
}

// LoadBatch reads a YAML list of requests
func LoadBatch(path string) ([]api.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch %s: %w", path, err)
	}
	var reqs []api.Request
	if err := yaml.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("failed to parse batch %s: %w", path, err)
	}
	return reqs, nil
}

// WriteBatch writes every successful sheet into dir, named by the base
// name of the request's Output field or the sheet's suggested name.
// Colliding names get the request index appended, then a counter.
func WriteBatch(dir string, results []BatchResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	seen := map[string]bool{}
	var written []string
	for _, r := range results {
		if r.Err != nil || r.Sheet == nil {
			continue
		}
		name := batchFileName(r.Request.Output, r.Sheet.Name, r.Index, seen)
		seen[name] = true

		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, r.Sheet.Data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// batchFileName keeps only the last path element so a request cannot write
// outside the batch directory
func batchFileName(output, suggested string, index int, seen map[string]bool) string {
	name := baseName(output)
	if name == "" {
		name = baseName(suggested)
	}
	if name == "" {
		name = api.DefaultFileName + ".pdf"
	}
	if !seen[name] {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := fmt.Sprintf("%s_%d%s", stem, index, ext)
	for n := 1; seen[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d_%d%s", stem, index, n, ext)
	}
	return candidate
}

func baseName(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	switch name := filepath.Base(path); name {
	case ".", "..", string(filepath.Separator):
		return ""
	default:
		return name
	}
}
