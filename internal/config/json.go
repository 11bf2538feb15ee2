package config

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// MarshalJSON writes s as indented JSON in the shape FromMap accepts.
func MarshalJSON(s Settings) ([]byte, error) {
	languages := make([]map[string]string, len(s.Languages))
	for i, r := range s.Languages {
		languages[i] = map[string]string{"pattern": r.Pattern, "policy": r.Policy}
	}

	type field struct {
		path  string
		value any
	}
	fields := []field{
		{"indent.width", s.Indent.Width},
		{"indent.use_tabs", s.Indent.UseTabs},
		{"eol", s.EOL},
		{"completion.enabled", s.Completion.Enabled},
		{"completion.threshold", s.Completion.Threshold},
		{"completion.word_pattern", s.Completion.WordPattern},
		{"languages", languages},
		{"display.mark_color", s.Display.MarkColor},
	}

	doc := []byte(`{}`)
	for _, f := range fields {
		var err error
		if doc, err = sjson.SetBytes(doc, f.path, f.value); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.path, err)
		}
	}
	return pretty.Pretty(doc), nil
}
