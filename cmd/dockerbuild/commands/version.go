package commands

import (
	"fmt"

	"github.com/bunsenlabs/dockerbuild/internal/build"
	"github.com/spf13/cobra"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the application version",
		Annotations: map[string]string{skipConfigure: ""},
		Run: func(cmd *cobra.Command, _ []string) {
			cmdo := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(cmdo, "dockerbuild version %s (commit: %s, date: %s)\n", build.Version, build.Commit, build.Date)
		},
	}
}
