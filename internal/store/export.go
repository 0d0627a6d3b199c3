package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cdimurro/trlgauge/internal/filelock"
	"github.com/cdimurro/trlgauge/internal/workflow"
)

// ExportSnapshot writes an audit snapshot of the context to
// dir/<assessment-id>.json for downstream reporting systems. The write is
// atomic and guarded by a file lock so concurrent exporters cannot
// interleave.
func ExportSnapshot(ctx workflow.Context, dir string) (string, error) {
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	path := filepath.Join(dir, ctx.AssessmentID+".json")
	lock := filelock.NewFileLock(path + ".lock")
	if err := lock.Lock(); err != nil {
		return "", err
	}
	defer lock.Unlock()

	if err := filelock.AtomicWrite(path, data); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
