package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/linecore/internal/config"
	"github.com/dshills/linecore/internal/engine"
	"github.com/dshills/linecore/internal/fileio"
	"github.com/dshills/linecore/internal/plugin/lua"
)

// app holds what every command shares: flags, the logger and the
// resolved settings.
type app struct {
	configPath string
	logLevel   string
	language   string
	policy     string
	script     string

	indentWidth int
	useTabs     bool
	eol         string

	logger   *slog.Logger
	settings config.Settings
	loader   *config.Loader
	paths    []string
	override map[string]any
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "linecore",
		Short:         "Line-addressable editing core",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setupLogger(cmd.ErrOrStderr()); err != nil {
				return err
			}
			return a.loadSettings(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "settings file (TOML, YAML or JSON)")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&a.language, "language", "l", "", "language, instead of detecting it from the file name")
	pf.StringVar(&a.policy, "policy", "", "indent policy name")
	pf.StringVar(&a.script, "policy-script", "", "Lua script defining compute_indent")
	pf.IntVar(&a.indentWidth, "indent-width", 0, "indent width")
	pf.BoolVar(&a.useTabs, "use-tabs", false, "indent with tabs")
	pf.StringVar(&a.eol, "eol", "", "line ending for new files (lf, crlf, cr)")

	root.AddCommand(
		newPrintCmd(a),
		newCompleteCmd(a),
		newIndentCmd(a),
		newRunCmd(a),
		newReplCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setupLogger(w io.Writer) error {
	var level slog.Level
	switch strings.ToLower(a.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", a.logLevel)
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return nil
}

// loadSettings layers defaults, the settings files and the flags that
// were set explicitly.
func (a *app) loadSettings(cmd *cobra.Command) error {
	a.loader = config.NewLoader()
	a.paths = config.DefaultPaths
	if a.configPath != "" {
		if _, err := a.loader.LoadFile(a.configPath); err != nil {
			return err
		}
		a.paths = []string{a.configPath}
	}

	a.override = map[string]any{}
	flags := cmd.Flags()
	ind := map[string]any{}
	if flags.Changed("indent-width") {
		ind["width"] = a.indentWidth
	}
	if flags.Changed("use-tabs") {
		ind["use_tabs"] = a.useTabs
	}
	if len(ind) > 0 {
		a.override["indent"] = ind
	}
	if flags.Changed("eol") {
		a.override["eol"] = a.eol
	}

	s, err := a.loader.Load(a.paths, a.override)
	if err != nil {
		return err
	}
	a.settings = s
	a.logger.Debug("settings loaded", "paths", a.paths, "indent_width", s.Indent.Width, "eol", s.EOL)
	return nil
}

// openEditor opens path with the resolved settings, the language and
// policy flags applied. The returned state is nil unless a policy script
// was given; the caller closes it.
func (a *app) openEditor(path string) (*engine.Editor, *fileio.Document, *lua.State, error) {
	opts := []engine.Option{engine.WithSettings(a.settings), engine.WithLogger(a.logger)}
	if a.language != "" {
		opts = append(opts, engine.WithLanguage(a.language))
	}
	e, doc, err := fileio.Open(path, opts...)
	if err != nil {
		return nil, nil, nil, err
	}

	if a.policy != "" {
		if err := e.SetPolicy(a.policy); err != nil {
			return nil, nil, nil, err
		}
	}

	var state *lua.State
	if a.script != "" {
		state = lua.NewState(lua.WithLogger(a.logger))
		name := strings.TrimSuffix(filepath.Base(a.script), filepath.Ext(a.script))
		p, err := lua.LoadPolicy(state, name, a.script)
		if err != nil {
			state.Close()
			return nil, nil, nil, err
		}
		e.UsePolicy(p)
	}
	return e, doc, state, nil
}

// writeOrSave prints the document to w, or saves it over its file when
// write is set.
func writeOrSave(w io.Writer, e *engine.Editor, doc *fileio.Document, write bool) error {
	if write {
		return fileio.Save(doc.Path, e, doc.Encoding)
	}
	_, err := io.WriteString(w, e.TextForSaving())
	return err
}
