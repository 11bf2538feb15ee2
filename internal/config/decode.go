package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/dshills/linecore/internal/engine/buffer"
)

// FromMap decodes a settings map, as produced by package loader, onto
// Default(). Keys absent from m keep their default values. Unknown keys
// and values of the wrong type are reported as *buffer.ConfigError.
func FromMap(m map[string]any) (Settings, error) {
	s := Default()
	if err := s.apply(m); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// apply overwrites the settings present in m.
func (s *Settings) apply(m map[string]any) error {
	for _, key := range sortedKeys(m) {
		v := m[key]
		var err error
		switch key {
		case "indent":
			err = section(key, v, map[string]func(string, any) error{
				"width":    intField(&s.Indent.Width),
				"use_tabs": boolField(&s.Indent.UseTabs),
			})
		case "eol":
			err = stringField(&s.EOL)(key, v)
		case "completion":
			err = section(key, v, map[string]func(string, any) error{
				"enabled":      boolField(&s.Completion.Enabled),
				"threshold":    intField(&s.Completion.Threshold),
				"word_pattern": stringField(&s.Completion.WordPattern),
			})
		case "languages":
			s.Languages, err = decodeRules(v)
		case "display":
			err = section(key, v, map[string]func(string, any) error{
				"mark_color": stringField(&s.Display.MarkColor),
			})
		default:
			err = unknown(key, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ToMap encodes s in the shape FromMap accepts.
func ToMap(s Settings) map[string]any {
	rules := make([]any, len(s.Languages))
	for i, r := range s.Languages {
		rules[i] = map[string]any{"pattern": r.Pattern, "policy": r.Policy}
	}
	return map[string]any{
		"indent": map[string]any{
			"width":    s.Indent.Width,
			"use_tabs": s.Indent.UseTabs,
		},
		"eol": s.EOL,
		"completion": map[string]any{
			"enabled":      s.Completion.Enabled,
			"threshold":    s.Completion.Threshold,
			"word_pattern": s.Completion.WordPattern,
		},
		"languages": rules,
		"display": map[string]any{
			"mark_color": s.Display.MarkColor,
		},
	}
}

func section(name string, v any, fields map[string]func(string, any) error) error {
	m, ok := v.(map[string]any)
	if !ok {
		return typeErr(name, v, "a table")
	}
	for _, key := range sortedKeys(m) {
		set, ok := fields[key]
		if !ok {
			return unknown(name+"."+key, m[key])
		}
		if err := set(name+"."+key, m[key]); err != nil {
			return err
		}
	}
	return nil
}

func decodeRules(v any) ([]LanguageRule, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, typeErr("languages", v, "a list")
	}
	if len(items) == 0 {
		return nil, nil
	}
	rules := make([]LanguageRule, len(items))
	for i, item := range items {
		err := section(languageKey(i), item, map[string]func(string, any) error{
			"pattern": stringField(&rules[i].Pattern),
			"policy":  stringField(&rules[i].Policy),
		})
		if err != nil {
			return nil, err
		}
	}
	return rules, nil
}

func languageKey(i int) string {
	return fmt.Sprintf("languages[%d]", i)
}

func intField(dst *int) func(string, any) error {
	return func(key string, v any) error {
		switch n := v.(type) {
		case int:
			*dst = n
		case int64:
			*dst = int(n)
		case uint64:
			*dst = int(n)
		case float64:
			if n != math.Trunc(n) {
				return typeErr(key, v, "an integer")
			}
			*dst = int(n)
		default:
			return typeErr(key, v, "an integer")
		}
		return nil
	}
}

func boolField(dst *bool) func(string, any) error {
	return func(key string, v any) error {
		b, ok := v.(bool)
		if !ok {
			return typeErr(key, v, "a boolean")
		}
		*dst = b
		return nil
	}
}

func stringField(dst *string) func(string, any) error {
	return func(key string, v any) error {
		s, ok := v.(string)
		if !ok {
			return typeErr(key, v, "a string")
		}
		*dst = s
		return nil
	}
}

func typeErr(key string, v any, want string) error {
	return &buffer.ConfigError{Setting: key, Value: v, Reason: "must be " + want}
}

func unknown(key string, v any) error {
	return &buffer.ConfigError{Setting: key, Value: v, Reason: "unknown setting"}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
