// Package output renders projected values on the command's standard output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"sigs.k8s.io/yaml"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
	FormatText  Format = "text"
)

// Formats lists the accepted --output values.
var Formats = []Format{FormatJSON, FormatYAML, FormatTable, FormatText}

// Printer writes values as they arrive. Collection values are flattened so
// that each element is rendered on its own. Tables are rendered on Flush.
type Printer struct {
	w      io.Writer
	format Format
	color  bool

	printed int
	rows    []any
}

func NewPrinter(w io.Writer, format string, color bool) (*Printer, error) {
	f := Format(strings.ToLower(format))
	if !slices.Contains(Formats, f) {
		return nil, fmt.Errorf("unknown output format %q, expected one of json, yaml, table or text", format)
	}
	return &Printer{w: w, format: f, color: color}, nil
}

// Print renders v. Nil values print nothing.
func (p *Printer) Print(v any) error {
	value := Normalize(v)
	if value == nil {
		return nil
	}
	if items, ok := value.([]any); ok {
		for _, item := range items {
			if item == nil {
				continue
			}
			if err := p.print(item); err != nil {
				return err
			}
		}
		return nil
	}
	return p.print(value)
}

func (p *Printer) print(value any) error {
	defer func() { p.printed++ }()

	switch p.format {
	case FormatTable:
		p.rows = append(p.rows, value)
		return nil
	case FormatYAML:
		data, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to render YAML: %w", err)
		}
		if p.printed > 0 {
			if _, err := io.WriteString(p.w, "---\n"); err != nil {
				return err
			}
		}
		_, err = p.w.Write(data)
		return err
	case FormatText:
		_, err := fmt.Fprintln(p.w, text(value))
		return err
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render JSON: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

// Flush renders buffered output.
func (p *Printer) Flush() error {
	if p.format != FormatTable || len(p.rows) == 0 {
		return nil
	}
	header, data := tabulate(p.rows)
	p.rows = nil

	table := tablewriter.NewWriter(p.w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	if p.color {
		headersColors := make([]tablewriter.Colors, len(header))
		for i := range headersColors {
			headersColors[i] = tablewriter.Colors{tablewriter.FgHiBlackColor}
		}
		table.SetHeaderColor(headersColors...)
	}
	table.AppendBulk(data)
	table.Render()
	return nil
}

// tabulate turns rows into a header and cells. Objects become one column per
// field, other values a single Value column.
func tabulate(rows []any) ([]string, [][]string) {
	seen := make(map[string]bool)
	var columns []string
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		for key := range m {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	sort.Strings(columns)
	if len(columns) == 0 {
		columns = []string{"Value"}
	}

	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(columns))
		if m, ok := row.(map[string]any); ok {
			for i, column := range columns {
				if v, found := m[column]; found {
					cells[i] = text(v)
				}
			}
		} else {
			cells[0] = text(row)
		}
		data = append(data, cells)
	}
	return columns, data
}

// text renders scalars verbatim and composite values as compact JSON.
func text(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
	return fmt.Sprint(value)
}
