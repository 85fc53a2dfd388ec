package structured

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"lockstats/pkg/table"
)

const (
	JSON = "json"
	YAML = "yaml"
)

// Structured writes rows as a list of records keyed by column name.
type Structured struct {
	name        string
	contentType string
}

// NewJSON returns a JSON exporter.
func NewJSON() *Structured {
	return &Structured{name: JSON, contentType: "application/json"}
}

// NewYAML returns a YAML exporter.
func NewYAML() *Structured {
	return &Structured{name: YAML, contentType: "application/yaml"}
}

func (s *Structured) ContentType() string { return s.contentType }

func (s *Structured) Extension() string { return s.name }

func (s *Structured) Write(w io.Writer, page *table.Page) error {
	switch s.name {
	case JSON:
		records := make([]map[string]any, len(page.Rows))
		for i, row := range page.Rows {
			records[i] = make(map[string]any, len(row))
			for j, c := range row {
				records[i][page.Columns[j]] = c.Value
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case YAML:
		// MapSlice keeps the column order of the table.
		records := make([]yaml.MapSlice, len(page.Rows))
		for i, row := range page.Rows {
			records[i] = make(yaml.MapSlice, len(row))
			for j, c := range row {
				records[i][j] = yaml.MapItem{Key: page.Columns[j], Value: c.Value}
			}
		}
		out, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unsupported structured format: %s", s.name)
	}
}
