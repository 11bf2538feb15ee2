package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/linecore/internal/plugin/lua"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		write   bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run SCRIPT FILE",
		Short: "Run a Lua script against a file",
		Long: "Runs SCRIPT with the document loaded as the global editor table.\n" +
			"The resulting document is printed, or saved with --write. The\n" +
			"script's print output goes to stderr.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, doc, policyState, err := a.openEditor(args[1])
			if err != nil {
				return err
			}
			if policyState != nil {
				defer policyState.Close()
			}

			state := lua.NewState(
				lua.WithExecutionTimeout(timeout),
				lua.WithOutput(cmd.ErrOrStderr()),
				lua.WithLogger(a.logger),
			)
			defer state.Close()
			lua.OpenEditor(state, e)

			if err := state.DoFile(args[0]); err != nil {
				return err
			}
			a.logger.Info("script finished", "script", args[0], "undo_steps", e.UndoCount())
			return writeOrSave(cmd.OutOrStdout(), e, doc, write)
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&write, "write", "w", false, "write the result back to the file")
	f.DurationVar(&timeout, "timeout", lua.DefaultExecutionTimeout, "script execution limit")
	return cmd
}
