package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Read a story pack from disk while editing it",
	Long: `Open the book straight from a content directory, skipping the splash.

With --watch (the default) the open page reloads whenever its file is
saved, so writers can see their edits without restarting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if d, _ := cmd.Flags().GetString("content"); d == "" {
			return fmt.Errorf("preview needs --content DIR")
		}
		watch, _ := cmd.Flags().GetBool("watch")
		return runApp(cmd, true, watch)
	},
}

func init() {
	previewCmd.Flags().Bool("watch", true, "Reload pages when their files change")
}
