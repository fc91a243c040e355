// Package output renders sample results as text tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// Printer writes values in one output format.
type Printer struct {
	w      io.Writer
	format domain.OutputFormat
	header lipgloss.Style
}

// New creates a Printer. An invalid format falls back to text.
func New(w io.Writer, format domain.OutputFormat) *Printer {
	if !format.IsValid() {
		format = domain.OutputText
	}
	return &Printer{
		w:      w,
		format: format,
		header: lipgloss.NewStyle().Bold(true),
	}
}

// Format returns the printer's format.
func (p *Printer) Format() domain.OutputFormat {
	return p.format
}

// Print writes v.
func (p *Printer) Print(v any) error {
	switch p.format {
	case domain.OutputJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case domain.OutputYAML:
		node, err := toNode(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return p.printText(v)
	}
}

func (p *Printer) printText(v any) error {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(p.w, val)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(p.w, val.String())
		return err
	}

	node, err := toNode(v)
	if err != nil {
		return err
	}
	var b strings.Builder
	p.render(&b, node, 0)
	_, err = io.WriteString(p.w, b.String())
	return err
}

// toNode converts v to a YAML node through its JSON encoding, so field
// names follow json tags and struct field order is kept.
func toNode(v any) (*yaml.Node, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	node := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
		node = doc.Content[0]
	}
	clearStyle(node)
	return node, nil
}

// clearStyle drops the flow and quoting styles JSON input carries.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

func (p *Printer) render(b *strings.Builder, n *yaml.Node, indent int) {
	pad := strings.Repeat(" ", indent)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return
		}
		b.WriteString(pad + n.Value + "\n")
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			b.WriteString(pad + "(none)\n")
			return
		}
		if allMappings(n.Content) {
			for _, line := range strings.Split(p.table(n.Content), "\n") {
				b.WriteString(pad + line + "\n")
			}
			return
		}
		for _, item := range n.Content {
			if item.Kind == yaml.ScalarNode {
				b.WriteString(pad + item.Value + "\n")
				continue
			}
			b.WriteString(pad + "-\n")
			p.render(b, item, indent+2)
		}
	case yaml.MappingNode:
		width := 0
		for i := 0; i+1 < len(n.Content); i += 2 {
			width = max(width, len(n.Content[i].Value))
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if val.Kind == yaml.ScalarNode {
				if val.Tag == "!!null" {
					continue
				}
				fmt.Fprintf(b, "%s%-*s  %s\n", pad, width+1, key.Value+":", val.Value)
				continue
			}
			b.WriteString(pad + p.header.Render(key.Value+":") + "\n")
			p.render(b, val, indent+2)
		}
	}
}

func allMappings(nodes []*yaml.Node) bool {
	for _, n := range nodes {
		if n.Kind != yaml.MappingNode {
			return false
		}
	}
	return true
}

// table renders rows of mappings with the union of their keys as columns.
func (p *Printer) table(rows []*yaml.Node) string {
	var headers []string
	index := make(map[string]int)
	for _, row := range rows {
		for i := 0; i+1 < len(row.Content); i += 2 {
			key := row.Content[i].Value
			if _, ok := index[key]; !ok {
				index[key] = len(headers)
				headers = append(headers, key)
			}
		}
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, len(headers))
		for i := 0; i+1 < len(row.Content); i += 2 {
			line[index[row.Content[i].Value]] = cell(row.Content[i+1])
		}
		cells = append(cells, line)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			return style
		}).
		String()
}

// cell renders a value on one line.
func cell(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return ""
		}
		return n.Value
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			parts = append(parts, cell(c))
		}
		return strings.Join(parts, ", ")
	case yaml.MappingNode:
		parts := make([]string, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			parts = append(parts, n.Content[i].Value+"="+cell(n.Content[i+1]))
		}
		sort.Strings(parts)
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
