package main

import (
	"strings"

	"github.com/roninagent/ronin/internal/session"
	"github.com/roninagent/ronin/internal/store"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <id> [task]",
	Short: "Resume a persisted session",
	Long:  `Reconstruct a saved session, replay its working directory, and continue driving the agent. A trailing task starts new work on top of the restored history.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		st, err := store.Open(cfg.Workspace.Path)
		if err != nil {
			return err
		}
		snap, err := st.Load(id)
		st.Close()
		if err != nil {
			return err
		}

		sess, err := session.Restore(snap, buildAgent(), stdinInput(), session.WithMaxSteps(1))
		if err != nil {
			return err
		}

		// Restored history is context for the agent, not work to redo.
		sess.Log().SetCursor(sess.Log().Len())

		if err := sess.Enter(); err != nil {
			return err
		}
		defer sess.Exit()

		if len(args) > 1 {
			sess.SubmitTask(strings.Join(args[1:], " "))
		}

		if err := driveSession(cmd.Context(), sess, cfg.Session.MaxSteps); err != nil {
			return err
		}
		return saveSession(id, sess.Snapshot())
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}
