package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/storybook/internal/content"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the program and story pack format versions",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout(), buildVersion())
	},
}

// buildVersion prefers the ldflags version, then the module version
// recorded by `go install`.
func buildVersion() string {
	if version != "(devel)" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return version
}

func printVersion(w io.Writer, v string) {
	fmt.Fprintf(w, "storybook %s\n", v)
	fmt.Fprintf(w, "story pack format %s\n", content.SupportedFormat)
}
