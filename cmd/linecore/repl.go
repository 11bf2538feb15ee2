package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/linecore/internal/config"
	"github.com/dshills/linecore/internal/config/loader"
	"github.com/dshills/linecore/internal/config/watcher"
	"github.com/dshills/linecore/internal/engine"
	"github.com/dshills/linecore/internal/event"
	"github.com/dshills/linecore/internal/event/events"
	"github.com/dshills/linecore/internal/fileio"
)

// errQuit ends the REPL loop.
var errQuit = errors.New("quit")

func newReplCmd(a *app) *cobra.Command {
	var (
		watch bool
		trace bool
	)

	cmd := &cobra.Command{
		Use:   "repl [FILE]",
		Short: "Edit a document with line commands read from stdin",
		Long: "Reads one command per line, with shell-style quoting, and applies it\n" +
			"to the document. Type \"help\" for the command list.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			e, doc, state, err := a.openEditor(path)
			if err != nil {
				return err
			}
			if state != nil {
				defer state.Close()
			}

			r := &repl{a: a, e: e, doc: doc, out: cmd.OutOrStdout()}
			if trace {
				if err := r.trace(); err != nil {
					return err
				}
			}

			var reloads chan reload
			if watch {
				reloads = make(chan reload, 1)
				w, err := a.watchSettings(reloads)
				if err != nil {
					return err
				}
				defer w.Close()
			}
			return r.run(cmd.InOrStdin(), reloads)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&watch, "watch", false, "re-apply settings when a settings file changes")
	f.BoolVar(&trace, "trace", false, "log every editor notification")
	return cmd
}

type reload struct {
	path     string
	settings config.Settings
}

// watchSettings reloads the settings files whose directories exist and
// sends every successful reload to ch.
func (a *app) watchSettings(ch chan reload) (*watcher.Watcher, error) {
	var paths []string
	for _, p := range a.paths {
		expanded, err := loader.ExpandPath(p)
		if err != nil {
			continue
		}
		if _, err := os.Stat(filepath.Dir(expanded)); err == nil {
			paths = append(paths, p)
		}
	}
	return a.loader.Watch(paths, a.override, func(changed string, s config.Settings, err error) {
		if err != nil {
			a.logger.Warn("settings reload failed", "file", changed, "error", err)
			return
		}
		// Only the latest reload matters; replace one still pending.
		select {
		case <-ch:
		default:
		}
		ch <- reload{path: changed, settings: s}
	}, watcher.WithLogger(a.logger))
}

type repl struct {
	a   *app
	e   *engine.Editor
	doc *fileio.Document
	out io.Writer
}

// run executes commands until input ends or "quit". Settings reloads are
// applied between commands, on this goroutine, since the editor is not
// safe for concurrent use.
func (r *repl) run(in io.Reader, reloads <-chan reload) error {
	prompt := ""
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		prompt = "> "
	}

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
	}()

	for {
		fmt.Fprint(r.out, prompt)
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := r.exec(line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(r.out, "error: %v\n", err)
			}
		case rl := <-reloads:
			r.applySettings(rl)
		}
	}
}

func (r *repl) applySettings(rl reload) {
	if err := r.e.ApplySettings(rl.settings); err != nil {
		r.a.logger.Warn("settings rejected", "file", rl.path, "error", err)
		return
	}
	r.a.settings = rl.settings
	ev := event.NewEvent(events.TopicConfigReloaded, events.ConfigReloaded{Path: rl.path}, "cli")
	_ = r.e.Bus().Publish(context.Background(), ev)
	r.a.logger.Info("settings reloaded", "file", rl.path)
}

// trace logs every notification the editor publishes.
func (r *repl) trace() error {
	_, err := r.e.Bus().SubscribeFunc("**", func(_ context.Context, ev any) error {
		tp, ok := ev.(event.TopicProvider)
		if !ok {
			return nil
		}
		r.a.logger.Info("event", "topic", tp.EventTopic().String(), "payload", fmt.Sprintf("%+v", ev))
		return nil
	}, event.WithPriority(event.PriorityLow))
	return err
}

type replCommand struct {
	usage string
	help  string
	min   int
	run   func(r *repl, args []string) error
}

var replCommands map[string]replCommand

func init() {
	replCommands = map[string]replCommand{
		"print":     {"print", "print the document with line numbers", 0, (*repl).print},
		"line":      {"line N", "print line N (negative counts from the end)", 1, (*repl).line},
		"set":       {"set N TEXT", "replace line N", 2, (*repl).set},
		"insert":    {"insert N TEXT", "insert a line before N", 2, (*repl).insert},
		"append":    {"append TEXT", "append a line", 1, (*repl).appendLine},
		"delete":    {"delete N", "delete line N", 1, (*repl).deleteLine},
		"cursor":    {"cursor [L C]", "show or move the cursor", 0, (*repl).cursor},
		"select":    {"select AL AC HL HC", "select from anchor to head", 4, (*repl).selectRange},
		"selection": {"selection", "print the selected text", 0, (*repl).selection},
		"type":      {"type TEXT", "type text at the cursor", 1, (*repl).typeText},
		"newline":   {"newline", "split the line and auto-indent", 0, (*repl).newline},
		"tab":       {"tab", "insert a tab or indent the selection", 0, (*repl).tab},
		"backspace": {"backspace", "delete backward, unindenting in leading whitespace", 0, (*repl).backspace},
		"home":      {"home", "smart home", 0, (*repl).home},
		"indent":    {"indent", "indent the selected lines", 0, (*repl).indent},
		"unindent":  {"unindent", "unindent the selected lines", 0, (*repl).unindent},
		"reindent":  {"reindent", "re-indent the selected lines", 0, (*repl).reindent},
		"up":        {"up", "move the selected lines up", 0, (*repl).up},
		"down":      {"down", "move the selected lines down", 0, (*repl).down},
		"dup":       {"dup", "duplicate the selection or line", 0, (*repl).dup},
		"cut":       {"cut", "delete the selected lines", 0, (*repl).cut},
		"mark":      {"mark [N]", "toggle the bookmark of line N or the cursor line", 0, (*repl).mark},
		"marks":     {"marks", "list bookmarked lines", 0, (*repl).marks},
		"next":      {"next", "go to the next bookmark", 0, (*repl).next},
		"prev":      {"prev", "go to the previous bookmark", 0, (*repl).prev},
		"undo":      {"undo", "undo the last step", 0, (*repl).undo},
		"redo":      {"redo", "redo the last undone step", 0, (*repl).redo},
		"complete":  {"complete", "list completions for the word before the cursor", 0, (*repl).complete},
		"lang":      {"lang [NAME]", "show or set the language", 0, (*repl).lang},
		"save":      {"save [PATH]", "save the document", 0, (*repl).save},
		"help":      {"help", "list commands", 0, (*repl).help},
	}
}

func (r *repl) exec(line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	if args[0] == "quit" || args[0] == "exit" {
		return errQuit
	}
	c, ok := replCommands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q (try help)", args[0])
	}
	if len(args)-1 < c.min {
		return fmt.Errorf("usage: %s", c.usage)
	}
	return c.run(r, args[1:])
}

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, s := range args {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", s)
		}
		out[i] = n
	}
	return out, nil
}

func (r *repl) print(_ []string) error {
	width := len(strconv.Itoa(r.e.Len()))
	for i, text := range r.e.Texts() {
		gutter := " "
		if r.e.IsMarked(i) {
			gutter = "*"
		}
		fmt.Fprintf(r.out, "%s %*d  %s\n", gutter, width, i, text)
	}
	return nil
}

func (r *repl) line(args []string) error {
	n, err := ints(args[:1])
	if err != nil {
		return err
	}
	text, err := r.e.Line(n[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, text)
	return nil
}

func (r *repl) set(args []string) error {
	n, err := ints(args[:1])
	if err != nil {
		return err
	}
	return r.e.SetLine(n[0], strings.Join(args[1:], " "))
}

func (r *repl) insert(args []string) error {
	n, err := ints(args[:1])
	if err != nil {
		return err
	}
	return r.e.InsertLine(n[0], strings.Join(args[1:], " "))
}

func (r *repl) appendLine(args []string) error {
	return r.e.AppendLine(strings.Join(args, " "))
}

func (r *repl) deleteLine(args []string) error {
	n, err := ints(args[:1])
	if err != nil {
		return err
	}
	return r.e.DeleteLine(n[0])
}

func (r *repl) cursor(args []string) error {
	if len(args) >= 2 {
		n, err := ints(args[:2])
		if err != nil {
			return err
		}
		r.e.SetCursorPosition(n[0], n[1])
	}
	p := r.e.CursorPosition()
	fmt.Fprintf(r.out, "%d:%d\n", p.Line, p.Column)
	return nil
}

func (r *repl) selectRange(args []string) error {
	n, err := ints(args[:4])
	if err != nil {
		return err
	}
	r.e.SetSelection(engine.Pos(n[0], n[1]), engine.Pos(n[2], n[3]))
	return nil
}

func (r *repl) selection(_ []string) error {
	fmt.Fprintln(r.out, r.e.SelectedText())
	return nil
}

func (r *repl) typeText(args []string) error {
	return r.e.TypeText(strings.Join(args, " "))
}

func (r *repl) newline(_ []string) error   { return r.e.InsertNewline() }
func (r *repl) tab(_ []string) error       { return r.e.Tab() }
func (r *repl) backspace(_ []string) error { return r.e.Backspace() }
func (r *repl) indent(_ []string) error    { return r.e.IndentSelection(true) }
func (r *repl) unindent(_ []string) error  { return r.e.IndentSelection(false) }
func (r *repl) reindent(_ []string) error  { return r.e.AutoIndentSelection() }
func (r *repl) up(_ []string) error        { return r.e.MoveLinesUp() }
func (r *repl) down(_ []string) error      { return r.e.MoveLinesDown() }
func (r *repl) dup(_ []string) error       { return r.e.Duplicate() }
func (r *repl) cut(_ []string) error       { return r.e.DeleteLines() }
func (r *repl) undo(_ []string) error      { return r.e.Undo() }
func (r *repl) redo(_ []string) error      { return r.e.Redo() }

func (r *repl) home(_ []string) error {
	r.e.Home(false)
	return nil
}

func (r *repl) mark(args []string) error {
	if len(args) == 0 {
		r.e.ToggleMark()
		return nil
	}
	n, err := ints(args[:1])
	if err != nil {
		return err
	}
	_, err = r.e.ToggleMarkAt(n[0])
	return err
}

func (r *repl) marks(_ []string) error {
	for _, l := range r.e.MarkedLines() {
		fmt.Fprintln(r.out, l)
	}
	return nil
}

func (r *repl) next(_ []string) error {
	if !r.e.NextMark() {
		return errors.New("no bookmark below the cursor")
	}
	return nil
}

func (r *repl) prev(_ []string) error {
	if !r.e.PrevMark() {
		return errors.New("no bookmark above the cursor")
	}
	return nil
}

func (r *repl) complete(_ []string) error {
	word, candidates := r.e.Complete()
	fmt.Fprintf(r.out, "%s: %s\n", word, strings.Join(candidates, " "))
	return nil
}

func (r *repl) lang(args []string) error {
	if len(args) > 0 {
		r.e.SetLanguage(args[0])
	}
	fmt.Fprintf(r.out, "%s (%s)\n", r.e.Language(), r.e.Policy().Name())
	return nil
}

func (r *repl) save(args []string) error {
	path := r.doc.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no file name")
	}
	if err := fileio.Save(path, r.e, r.doc.Encoding); err != nil {
		return err
	}
	r.doc.Path = path
	return nil
}

func (r *repl) help(_ []string) error {
	names := make([]string, 0, len(replCommands))
	for name := range replCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := replCommands[name]
		fmt.Fprintf(r.out, "  %-20s %s\n", c.usage, c.help)
	}
	fmt.Fprintf(r.out, "  %-20s %s\n", "quit", "leave")
	return nil
}
