package engine

import (
	"github.com/dshills/linecore/internal/config"
)

// ApplySettings validates s and applies it through the regular setters,
// so each changed value publishes its notification. Nothing is applied
// when s is invalid.
//
// The registry is replaced by one carrying the settings' language rules.
// A policy installed by name keeps its name in the new registry.
func (e *Editor) ApplySettings(s config.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	le, err := s.LineEnding()
	if err != nil {
		return err
	}
	reg, err := s.Registry()
	if err != nil {
		return err
	}
	if err := e.completer.SetWordPattern(s.Completion.WordPattern); err != nil {
		return err
	}
	e.completer.SetThreshold(s.Completion.Threshold)
	e.completer.SetEnabled(s.Completion.Enabled)

	if err := e.SetIndentWidth(s.Indent.Width); err != nil {
		return err
	}
	e.SetUseTabs(s.Indent.UseTabs)
	e.SetLineEnding(le)

	e.registry = reg
	if p, ok := reg.Get(e.policy.Name()); ok {
		e.policy = p
	}
	return nil
}

// WithSettings configures indentation, the external line ending, the
// policy registry and completion from s. New fails with the first
// invalid setting.
func WithSettings(s config.Settings) Option {
	return func(e *Editor) {
		if err := s.Validate(); err != nil {
			e.initErr = err
			return
		}
		le, err := s.LineEnding()
		if err != nil {
			e.initErr = err
			return
		}
		reg, err := s.Registry()
		if err != nil {
			e.initErr = err
			return
		}
		e.indent = s.IndentConfig()
		e.eol = le
		e.registry = reg
		e.completionOpts = append(e.completionOpts, s.CompletionOptions()...)
	}
}
