// Package markdown normalises markdown notes into plain text with a
// content fingerprint and structured frontmatter metadata.
package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser converts raw markdown into a ParsedDocument.
type Normaliser struct {
	md goldmark.Markdown
}

// New creates a markdown normaliser.
func New() *Normaliser {
	return &Normaliser{md: goldmark.New()}
}

// Normalise parses raw note content. The fingerprint always covers the
// raw bytes as given; frontmatter malformation is swallowed, never
// surfaced as an error.
func (n *Normaliser) Normalise(_ context.Context, raw []byte) (*driven.ParsedDocument, error) {
	fingerprint := Fingerprint(raw)

	frontmatter, body := extractFrontmatter(string(raw))
	plain := n.toPlainText([]byte(body))

	return &driven.ParsedDocument{
		Frontmatter: frontmatter,
		PlainText:   plain,
		Fingerprint: fingerprint,
	}, nil
}

// Fingerprint returns the SHA-256 hex digest of the raw content.
// It is a change detector, not a security measure.
func Fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// rawFrontmatter mirrors the YAML shape before normalisation. Tags and
// aliases accept either a single scalar or a list.
type rawFrontmatter struct {
	Title   string    `yaml:"title"`
	Tags    scalarish `yaml:"tags"`
	Aliases scalarish `yaml:"aliases"`
}

// scalarish is a YAML field that may be a scalar or a sequence.
type scalarish struct {
	value  string
	values []string
	isList bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *scalarish) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		s.isList = true
		return node.Decode(&s.values)
	default:
		return node.Decode(&s.value)
	}
}

// asTags normalises to a tag list: scalars are comma-split.
func (s *scalarish) asTags() []string {
	if s.isList {
		return s.values
	}
	if s.value == "" {
		return nil
	}
	parts := strings.Split(s.value, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}

// asAliases normalises to an alias list: a scalar is a single alias.
func (s *scalarish) asAliases() []string {
	if s.isList {
		return s.values
	}
	if s.value == "" {
		return nil
	}
	return []string{s.value}
}

// extractFrontmatter splits a leading "---" fenced metadata block from the
// body. A missing closing fence means the whole content is body. YAML
// errors fall back to empty frontmatter; the body is still returned so a
// broken metadata block never fails the parse.
func extractFrontmatter(content string) (driven.Frontmatter, string) {
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, "---") {
		return driven.Frontmatter{}, content
	}

	rest := content[3:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return driven.Frontmatter{}, content
	}

	yamlBlock := rest[:end]
	body := strings.TrimSpace(rest[end+4:])

	var raw rawFrontmatter
	if err := yaml.Unmarshal([]byte(yamlBlock), &raw); err != nil {
		return driven.Frontmatter{}, body
	}

	return driven.Frontmatter{
		Title:   raw.Title,
		Tags:    raw.Tags.asTags(),
		Aliases: raw.Aliases.asAliases(),
	}, body
}

// toPlainText walks the markdown AST collecting human-readable text.
// Inline and block code content is kept verbatim; headings and paragraphs
// become whitespace boundaries; all other syntax is dropped. Consecutive
// whitespace collapses to a single space.
func (n *Normaliser) toPlainText(source []byte) string {
	reader := text.NewReader(source)
	root := n.md.Parser().Parse(reader)

	var sb strings.Builder

	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		switch v := node.(type) {
		case *ast.Text:
			if entering {
				sb.Write(v.Segment.Value(source))
				sb.WriteByte(' ')
			}

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				writeLines(&sb, source, node)
				sb.WriteByte(' ')
				return ast.WalkSkipChildren, nil
			}

		case *ast.Heading, *ast.Paragraph:
			sb.WriteByte('\n')

		case *ast.AutoLink:
			if entering {
				sb.Write(v.URL(source))
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(sb.String()), " ")
}

// writeLines copies a block node's raw source lines.
func writeLines(sb *strings.Builder, source []byte, node ast.Node) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
}
