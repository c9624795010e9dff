// Package report renders a synthesized exports plan for humans and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/fulmenhq/exportsync/internal/assets"
	"github.com/fulmenhq/exportsync/pkg/ascii"
	"github.com/fulmenhq/exportsync/pkg/exports"
	"github.com/fulmenhq/exportsync/pkg/manifest"
)

// OutputFormat selects how a plan is printed.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
)

// ParseFormat accepts text, markdown (md) and json.
func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use text, markdown or json)", s)
	}
}

// Plan is everything a report shows about one run.
type Plan struct {
	Name     string
	Strategy string
	DistDir  string
	Entries  []string
	Exports  *exports.Map
	Changes  []manifest.Change
}

// Row is one flattened export: a subpath with an optional condition.
type Row struct {
	Subpath   string `json:"subpath"`
	Condition string `json:"condition,omitempty"`
	Target    string `json:"target"`
}

// Rows flattens m in key order.
func Rows(m *exports.Map) []Row {
	var rows []Row
	if m == nil {
		return rows
	}
	m.Each(func(key string, t exports.Target) {
		if t.IsPath() {
			rows = append(rows, Row{Subpath: key, Target: t.Path})
			return
		}
		for _, c := range t.Conditions {
			rows = append(rows, Row{Subpath: key, Condition: c.Name, Target: c.Path})
		}
	})
	return rows
}

// Write renders p in the requested format.
func Write(w io.Writer, format OutputFormat, p Plan) error {
	switch format {
	case FormatMarkdown:
		return Markdown(w, p)
	case FormatJSON:
		return JSON(w, p)
	default:
		return Text(w, p)
	}
}

// Text prints a summary box followed by a table of exports.
func Text(w io.Writer, p Plan) error {
	header := []string{
		fmt.Sprintf("Package:  %s", orDash(p.Name)),
		fmt.Sprintf("Strategy: %s", p.Strategy),
		fmt.Sprintf("Dist:     %s", p.DistDir),
		fmt.Sprintf("Entries:  %s", orDash(strings.Join(p.Entries, ", "))),
	}
	var tableRows [][]string
	for _, r := range Rows(p.Exports) {
		tableRows = append(tableRows, []string{r.Subpath, r.Condition, r.Target})
	}

	var sb strings.Builder
	sb.WriteString(ascii.Box(header))
	sb.WriteByte('\n')
	sb.WriteString(ascii.Table([]string{"SUBPATH", "CONDITION", "TARGET"}, tableRows))
	if len(p.Changes) > 0 {
		sb.WriteByte('\n')
		for _, c := range p.Changes {
			fmt.Fprintf(&sb, "%s %s\n", c.Action, c.Field)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Markdown renders the embedded plan template.
func Markdown(w io.Writer, p Plan) error {
	tpl, err := assets.GetTemplate(assets.PlanMarkdownTemplate)
	if err != nil {
		return fmt.Errorf("load template: %w", err)
	}

	rows := make([]map[string]string, 0)
	for _, r := range Rows(p.Exports) {
		rows = append(rows, map[string]string{"subpath": r.Subpath, "condition": r.Condition, "target": r.Target})
	}
	changes := make([]map[string]string, 0, len(p.Changes))
	for _, c := range p.Changes {
		changes = append(changes, map[string]string{"field": c.Field, "action": c.Action})
	}
	ctx := map[string]interface{}{
		"name":     orDash(p.Name),
		"strategy": p.Strategy,
		"distDir":  p.DistDir,
		"entries":  p.Entries,
		"rows":     rows,
		"changes":  changes,
	}

	out, err := raymond.Render(string(tpl), ctx)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

type jsonPlan struct {
	Name     string            `json:"name,omitempty"`
	Strategy string            `json:"strategy"`
	DistDir  string            `json:"dist_dir"`
	Entries  []string          `json:"entries"`
	Exports  *exports.Map      `json:"exports"`
	Changes  []manifest.Change `json:"changes,omitempty"`
}

// JSON writes the plan with the exports map in manifest form.
func JSON(w io.Writer, p Plan) error {
	m := p.Exports
	if m == nil {
		m = exports.NewMap()
	}
	entries := p.Entries
	if entries == nil {
		entries = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonPlan{
		Name:     p.Name,
		Strategy: p.Strategy,
		DistDir:  p.DistDir,
		Entries:  entries,
		Exports:  m,
		Changes:  p.Changes,
	})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
