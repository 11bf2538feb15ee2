package config

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/linecore/internal/completion"
	"github.com/dshills/linecore/internal/engine/buffer"
	"github.com/dshills/linecore/internal/indent"
)

// Settings holds every editor setting.
type Settings struct {
	Indent     IndentSettings
	EOL        string
	Completion CompletionSettings
	Languages  []LanguageRule
	Display    DisplaySettings
}

// IndentSettings configures indentation.
type IndentSettings struct {
	Width   int
	UseTabs bool
}

// CompletionSettings configures word completion.
type CompletionSettings struct {
	Enabled     bool
	Threshold   int
	WordPattern string
}

// LanguageRule selects an indent policy for files whose base name
// matches Pattern.
type LanguageRule struct {
	Pattern string
	Policy  string
}

// DisplaySettings configures front-end presentation.
type DisplaySettings struct {
	// MarkColor is the hex color of the bookmark gutter.
	MarkColor string
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Indent: IndentSettings{
			Width:   indent.DefaultWidth,
			UseTabs: indent.DefaultUseTabs,
		},
		EOL: "lf",
		Completion: CompletionSettings{
			Enabled:     true,
			Threshold:   completion.DefaultThreshold,
			WordPattern: completion.DefaultWordPattern,
		},
		Display: DisplaySettings{
			MarkColor: "#5f87d7",
		},
	}
}

// Validate checks every setting and returns the first invalid one as a
// *buffer.ConfigError.
func (s Settings) Validate() error {
	if err := s.IndentConfig().Validate(); err != nil {
		return err
	}
	if _, err := s.LineEnding(); err != nil {
		return err
	}
	if s.Completion.Threshold < 0 {
		return &buffer.ConfigError{
			Setting: "completion.threshold",
			Value:   s.Completion.Threshold,
			Reason:  "must not be negative",
		}
	}
	if _, err := completion.New(completion.WithWordPattern(s.Completion.WordPattern)); err != nil {
		return &buffer.ConfigError{
			Setting: "completion.word_pattern",
			Value:   s.Completion.WordPattern,
			Reason:  err.Error(),
		}
	}
	if _, err := s.Registry(); err != nil {
		return err
	}
	if s.Display.MarkColor != "" {
		if _, err := colorful.Hex(s.Display.MarkColor); err != nil {
			return &buffer.ConfigError{
				Setting: "display.mark_color",
				Value:   s.Display.MarkColor,
				Reason:  "must be a hex color like #5f87d7",
			}
		}
	}
	return nil
}

// IndentConfig returns the indentation settings.
func (s Settings) IndentConfig() indent.Config {
	return indent.Config{Width: s.Indent.Width, UseTabs: s.Indent.UseTabs}
}

// LineEnding returns the configured external line ending.
func (s Settings) LineEnding() (buffer.LineEnding, error) {
	return buffer.ParseLineEndingName(s.EOL)
}

// Registry returns the default indent policy registry with the language
// rules added.
func (s Settings) Registry() (*indent.Registry, error) {
	r := indent.NewDefaultRegistry()
	for i, rule := range s.Languages {
		if err := r.AddRule(rule.Pattern, rule.Policy); err != nil {
			return nil, &buffer.ConfigError{
				Setting: languageKey(i),
				Value:   rule.Pattern,
				Reason:  err.Error(),
			}
		}
	}
	return r, nil
}

// CompletionOptions returns options configuring a completion engine.
func (s Settings) CompletionOptions() []completion.Option {
	return []completion.Option{
		completion.WithWordPattern(s.Completion.WordPattern),
		completion.WithThreshold(s.Completion.Threshold),
		completion.WithEnabled(s.Completion.Enabled),
	}
}

// MarkColor returns the parsed bookmark gutter color.
func (s Settings) MarkColor() (colorful.Color, error) {
	return colorful.Hex(s.Display.MarkColor)
}
