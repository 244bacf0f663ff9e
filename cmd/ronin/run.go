package main

import (
	"strings"

	"github.com/roninagent/ronin/internal/session"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <task>",
	Short: "Run a task in a new session",
	Long:  `Start a fresh session in the configured environment and drive the agent until it stops, asks for input, or hits the step bound.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task := strings.Join(args, " ")

		sess, err := session.New(session.Arguments{
			Path:        cfg.Environment.Path,
			Environment: cfg.Environment.Type,
			UserInput:   stdinInput(),
		}, buildAgent(), session.WithMaxSteps(1))
		if err != nil {
			return err
		}
		sess.State().PageSize = cfg.Session.PageSize

		if err := sess.Enter(); err != nil {
			return err
		}
		defer sess.Exit()

		sess.SubmitTask(task)
		if err := driveSession(cmd.Context(), sess, cfg.Session.MaxSteps); err != nil {
			return err
		}

		noSave, _ := cmd.Flags().GetBool("no-save")
		if noSave {
			return nil
		}
		return saveSession(sess.ID(), sess.Snapshot())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("no-save", false, "discard the session instead of persisting it")
	runCmd.Flags().String("environment.path", "", "directory the agent works in (default is the current directory)")
	runCmd.Flags().Int("session.max_steps", 0, "bound on events processed per run (0 uses the configured default)")
}
