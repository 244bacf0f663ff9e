package main

import (
	"fmt"

	"github.com/roninagent/ronin/internal/store"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persisted sessions",
	Long:  `List and delete sessions saved in the workspace.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Workspace.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		ids, err := st.List()
		if err != nil {
			return err
		}

		if len(ids) == 0 {
			fmt.Println("No saved sessions.")
			fmt.Println("\nRun 'ronin run <task>' to create one.")
			return nil
		}

		fmt.Println("Saved sessions:")
		for _, id := range ids {
			fmt.Printf("- %s\n", id)
		}
		fmt.Printf("\nTotal: %d session(s)\n", len(ids))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Workspace.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Remove(args[0]); err != nil {
			return err
		}
		fmt.Printf("Session '%s' removed.\n", args[0])
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionRmCmd)
	rootCmd.AddCommand(sessionCmd)
}
