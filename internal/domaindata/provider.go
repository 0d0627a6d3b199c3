// Package domaindata supplies the external reference data the scale model
// consumes: per-domain evidence requirements and exit criteria, typical
// duration estimates, and the reviewer directory. Domain files are YAML,
// one file per domain, discovered from a data directory.
package domaindata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cdimurro/trlgauge/internal/models"
)

// domainFile is the on-disk shape of one domain's reference data.
type domainFile struct {
	Domain string       `yaml:"domain"`
	Levels []domainRung `yaml:"levels"`
}

type domainRung struct {
	Level        int                          `yaml:"level"`
	Sublevel     models.Sublevel              `yaml:"sublevel"`
	Requirements []models.EvidenceRequirement `yaml:"requirements"`
	ExitCriteria []string                     `yaml:"exit_criteria"`
}

// Provider resolves domain-specific evidence requirements and exit criteria.
// It implements scale.RequirementProvider. Unknown domains and levels yield
// empty results, never errors; the generic base lists always apply upstream.
type Provider struct {
	domains map[string][]domainRung
}

// NewProvider returns an empty provider.
func NewProvider() *Provider {
	return &Provider{domains: make(map[string][]domainRung)}
}

// LoadProvider reads every *.yaml/*.yml file in dir as a domain data file.
// A missing directory yields an empty provider without error.
func LoadProvider(dir string) (*Provider, error) {
	p := NewProvider()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read domain data dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read domain file %s: %w", name, err)
		}
		var df domainFile
		if err := yaml.Unmarshal(data, &df); err != nil {
			return nil, fmt.Errorf("failed to parse domain file %s: %w", name, err)
		}
		if df.Domain == "" {
			df.Domain = strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		}
		p.domains[df.Domain] = append(p.domains[df.Domain], df.Levels...)
	}
	return p, nil
}

// AddDomain registers reference data for a domain programmatically. Mainly
// used by tests and embedding callers.
func (p *Provider) AddDomain(domain string, level int, sub models.Sublevel, reqs []models.EvidenceRequirement, criteria []string) {
	p.domains[domain] = append(p.domains[domain], domainRung{
		Level:        level,
		Sublevel:     sub,
		Requirements: reqs,
		ExitCriteria: criteria,
	})
}

// Requirements returns the domain's evidence requirements for the sub-level.
func (p *Provider) Requirements(domain string, level int, sub models.Sublevel) []models.EvidenceRequirement {
	var out []models.EvidenceRequirement
	for _, rung := range p.domains[domain] {
		if rung.Level == level && rung.Sublevel == sub {
			out = append(out, rung.Requirements...)
		}
	}
	return out
}

// ExitCriteria returns the domain's exit criteria for the sub-level.
func (p *Provider) ExitCriteria(domain string, level int, sub models.Sublevel) []string {
	var out []string
	for _, rung := range p.domains[domain] {
		if rung.Level == level && rung.Sublevel == sub {
			out = append(out, rung.ExitCriteria...)
		}
	}
	return out
}

// Domains lists the domains the provider has data for.
func (p *Provider) Domains() []string {
	out := make([]string, 0, len(p.domains))
	for d := range p.domains {
		out = append(out, d)
	}
	return out
}
