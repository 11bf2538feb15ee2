package main

import (
	"fmt"
	"strconv"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/dshills/linecore/internal/config"
)

func newPrintCmd(a *app) *cobra.Command {
	var marks []int

	cmd := &cobra.Command{
		Use:   "print FILE",
		Short: "Print a file with line numbers and a bookmark gutter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, state, err := a.openEditor(args[0])
			if err != nil {
				return err
			}
			if state != nil {
				defer state.Close()
			}
			for _, line := range marks {
				if _, err := e.ToggleMarkAt(line); err != nil {
					return err
				}
			}

			color, err := a.settings.MarkColor()
			if err != nil {
				return err
			}
			out := termenv.NewOutput(cmd.OutOrStdout())
			bullet := out.String("●").Foreground(out.Color(color.Hex())).String()

			width := len(strconv.Itoa(e.Len()))
			for i, text := range e.Texts() {
				gutter := " "
				if e.IsMarked(i) {
					gutter = bullet
				}
				fmt.Fprintf(out, "%s %*d  %s\n", gutter, width, i, text)
			}
			return nil
		},
	}
	cmd.Flags().IntSliceVarP(&marks, "mark", "m", nil, "bookmark a line (0-based); repeatable")
	return cmd
}

func newCompleteCmd(a *app) *cobra.Command {
	var auto bool

	cmd := &cobra.Command{
		Use:   "complete FILE LINE COL",
		Short: "List completions for the word before a position",
		Long: "Prints the word before LINE:COL (0-based) on the first line, then one\n" +
			"candidate per line. With --auto the completion threshold and the\n" +
			"enabled setting apply, as for completion while typing.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("line: %w", err)
			}
			col, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("column: %w", err)
			}
			e, _, state, err := a.openEditor(args[0])
			if err != nil {
				return err
			}
			if state != nil {
				defer state.Close()
			}
			if _, err := e.ToAbsolute(line, col); err != nil {
				return err
			}
			e.SetCursorPosition(line, col)

			word, candidates := e.Complete()
			if auto {
				word, candidates = e.Suggest()
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, word)
			for _, c := range candidates {
				fmt.Fprintln(w, c)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&auto, "auto", false, "apply the threshold and enabled settings")
	return cmd
}

func newIndentCmd(a *app) *cobra.Command {
	var (
		write bool
		first int
		last  int
	)

	cmd := &cobra.Command{
		Use:   "indent FILE",
		Short: "Re-indent a file with its language's indent policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, doc, state, err := a.openEditor(args[0])
			if err != nil {
				return err
			}
			if state != nil {
				defer state.Close()
			}
			end := last
			if end < 0 {
				end = e.Len() - 1
			}
			if err := e.SelectLines(first, end); err != nil {
				return err
			}
			if err := e.AutoIndentSelection(); err != nil {
				return err
			}
			a.logger.Info("re-indented", "file", doc.Path, "language", e.Language(), "policy", e.Policy().Name())
			return writeOrSave(cmd.OutOrStdout(), e, doc, write)
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&write, "write", "w", false, "write the result back to the file")
	f.IntVar(&first, "from", 0, "first line to re-indent (0-based)")
	f.IntVar(&last, "to", -1, "last line to re-indent (0-based, default last line)")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.MarshalJSON(a.settings)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
