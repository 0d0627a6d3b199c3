package domaindata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cdimurro/trlgauge/internal/models"
)

// Directory resolves reviewer ids to profiles. Unresolvable ids fall back
// to a synthesized "Unknown" general reviewer so a session can always carry
// a usable profile.
type Directory struct {
	reviewers map[string]models.Reviewer
}

// NewDirectory builds a directory from the given profiles.
func NewDirectory(reviewers []models.Reviewer) *Directory {
	d := &Directory{reviewers: make(map[string]models.Reviewer, len(reviewers))}
	for _, r := range reviewers {
		d.reviewers[r.ID] = r
	}
	return d
}

// directoryFile is the on-disk shape of the reviewer directory.
type directoryFile struct {
	Reviewers []models.Reviewer `yaml:"reviewers"`
}

// LoadDirectory reads reviewer profiles from a YAML file. A missing file
// yields an empty directory without error.
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewDirectory(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read reviewer directory: %w", err)
	}

	var df directoryFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to parse reviewer directory: %w", err)
	}
	for _, r := range df.Reviewers {
		if r.ID == "" {
			return nil, fmt.Errorf("reviewer directory entry %q has no id", r.Name)
		}
	}
	return NewDirectory(df.Reviewers), nil
}

// Resolve returns the profile for a reviewer id, or the Unknown placeholder
// when the id is not in the directory.
func (d *Directory) Resolve(id string) models.Reviewer {
	if r, ok := d.reviewers[id]; ok {
		return r
	}
	return models.UnknownReviewer(id)
}

// Known reports whether the id resolves to a real profile.
func (d *Directory) Known(id string) bool {
	_, ok := d.reviewers[id]
	return ok
}
