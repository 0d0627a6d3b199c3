// Package parser reads reviewer submission documents: Markdown files with a
// YAML frontmatter block carrying the structured fields (reviewer, trl,
// confidence) and a body whose "Justification" section becomes the score's
// rationale.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/cdimurro/trlgauge/internal/models"
	"github.com/cdimurro/trlgauge/internal/scale"
)

// Submission is one reviewer's parsed score document.
type Submission struct {
	ReviewerID    string
	Level         int
	Sublevel      models.Sublevel
	Confidence    int
	Justification string
}

// submissionFrontmatter is the YAML header of a submission document.
type submissionFrontmatter struct {
	Reviewer   string `yaml:"reviewer"`
	TRL        string `yaml:"trl"`
	Confidence int    `yaml:"confidence"`
}

// SubmissionParser parses reviewer submission Markdown.
type SubmissionParser struct {
	markdown goldmark.Markdown
}

// NewSubmissionParser creates a parser with the default goldmark pipeline.
func NewSubmissionParser() *SubmissionParser {
	return &SubmissionParser{
		markdown: goldmark.New(),
	}
}

// Parse reads a submission document. The frontmatter must name the reviewer
// and a TRL in compact form (e.g. "4b"); confidence defaults to 0 when
// omitted. The justification is the text under a "Justification" heading,
// or the whole body when no such heading exists.
func (p *SubmissionParser) Parse(r io.Reader) (*Submission, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	body, frontmatter := extractFrontmatter(content)
	if frontmatter == nil {
		return nil, fmt.Errorf("submission has no frontmatter block")
	}

	var fm submissionFrontmatter
	if err := yaml.Unmarshal(frontmatter, &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if fm.Reviewer == "" {
		return nil, fmt.Errorf("frontmatter is missing the reviewer field")
	}
	level, sub, err := scale.Parse(fm.TRL)
	if err != nil {
		return nil, fmt.Errorf("frontmatter trl field: %w", err)
	}
	if fm.Confidence < 0 || fm.Confidence > 100 {
		return nil, fmt.Errorf("confidence %d out of range [0,100]", fm.Confidence)
	}

	justification, err := p.extractJustification(body)
	if err != nil {
		return nil, err
	}

	return &Submission{
		ReviewerID:    fm.Reviewer,
		Level:         level,
		Sublevel:      sub,
		Confidence:    fm.Confidence,
		Justification: justification,
	}, nil
}

// Score converts the submission into a MaturityScore attributed to the
// reviewer.
func (s *Submission) Score() models.MaturityScore {
	return models.MaturityScore{
		Level:         s.Level,
		Sublevel:      s.Sublevel,
		Confidence:    s.Confidence,
		Justification: s.Justification,
		AssessedBy:    s.ReviewerID,
	}
}

// extractJustification walks the Markdown AST collecting the paragraphs
// under a level-2 "Justification" heading. Without such a heading the whole
// body is the justification.
func (p *SubmissionParser) extractJustification(body []byte) (string, error) {
	doc := p.markdown.Parser().Parse(text.NewReader(body))

	var parts []string
	inSection := false
	sawHeading := false
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok && heading.Level == 2 {
			title := strings.TrimSpace(extractText(heading, body))
			inSection = strings.EqualFold(title, "justification")
			if inSection {
				sawHeading = true
			}
			return ast.WalkSkipChildren, nil
		}
		if para, ok := n.(*ast.Paragraph); ok && inSection {
			parts = append(parts, extractText(para, body))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to walk submission body: %w", err)
	}

	if !sawHeading {
		return strings.TrimSpace(string(body)), nil
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n")), nil
}

// extractText extracts plain text from an AST node's direct children.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

// extractFrontmatter splits a document into body and YAML frontmatter. The
// frontmatter is the block between leading "---" delimiter lines; nil when
// absent or unterminated.
func extractFrontmatter(content []byte) ([]byte, []byte) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) < 3 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, nil
	}
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatter := bytes.Join(lines[1:i], []byte("\n"))
			body := bytes.Join(lines[i+1:], []byte("\n"))
			return body, frontmatter
		}
	}
	return content, nil
}
