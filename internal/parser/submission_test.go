package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdimurro/trlgauge/internal/models"
)

func TestParseSubmission(t *testing.T) {
	doc := `---
reviewer: r1
trl: 4b
confidence: 85
---

# Assessment of the propulsion subsystem

Some introductory context that is not the justification.

## Justification

Lab validation reproduced the published efficiency figures.

A second independent run confirmed the thermal margins.

## Caveats

Flight qualification has not started.
`

	p := NewSubmissionParser()
	sub, err := p.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "r1", sub.ReviewerID)
	assert.Equal(t, 4, sub.Level)
	assert.Equal(t, models.SublevelB, sub.Sublevel)
	assert.Equal(t, 85, sub.Confidence)
	assert.Equal(t, "Lab validation reproduced the published efficiency figures.\n\nA second independent run confirmed the thermal margins.", sub.Justification)
}

func TestParseSubmissionWithoutJustificationHeading(t *testing.T) {
	doc := `---
reviewer: r2
trl: 6a
confidence: 70
---
The prototype ran for 40 hours in the relevant environment.`

	p := NewSubmissionParser()
	sub, err := p.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 6, sub.Level)
	assert.Equal(t, models.SublevelA, sub.Sublevel)
	assert.Equal(t, "The prototype ran for 40 hours in the relevant environment.", sub.Justification)
}

func TestParseSubmissionDefaultsConfidence(t *testing.T) {
	doc := `---
reviewer: r3
trl: 2c
---
Analytical study only.`

	p := NewSubmissionParser()
	sub, err := p.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 0, sub.Confidence)
}

func TestParseSubmissionErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"no frontmatter", "just a body", "no frontmatter"},
		{"unterminated frontmatter", "---\nreviewer: r1\nbody", "no frontmatter"},
		{"missing reviewer", "---\ntrl: 4b\n---\nbody", "missing the reviewer"},
		{"missing trl", "---\nreviewer: r1\n---\nbody", "trl field"},
		{"bad trl", "---\nreviewer: r1\ntrl: 10z\n---\nbody", "trl field"},
		{"confidence out of range", "---\nreviewer: r1\ntrl: 4b\nconfidence: 150\n---\nbody", "out of range"},
		{"invalid yaml", "---\nreviewer: [\n---\nbody", "frontmatter"},
	}

	p := NewSubmissionParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSubmissionScore(t *testing.T) {
	sub := &Submission{
		ReviewerID:    "r1",
		Level:         5,
		Sublevel:      models.SublevelC,
		Confidence:    90,
		Justification: "verified in the field",
	}

	score := sub.Score()
	require.NoError(t, score.Validate())
	assert.Equal(t, "r1", score.AssessedBy)
	assert.Equal(t, 5, score.Level)
	assert.Equal(t, models.SublevelC, score.Sublevel)
	assert.Equal(t, 90, score.Confidence)
	assert.Equal(t, "verified in the field", score.Justification)
}
