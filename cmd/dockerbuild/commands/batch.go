package commands

import (
	"time"

	"github.com/bunsenlabs/dockerbuild/internal/app"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/spf13/cobra"
)

func (c *CLI) newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [project[:tag[:arch1,arch2,...]]...]",
		Short: "Download and build tagged releases of remote projects",
		Long: "Resolve each project's tag (\"?\" or omitted selects the latest version, globs are allowed),\n" +
			"download its tarball as an unprivileged user and build it for every listed architecture.\n" +
			"Requires " + domain.GitHubTokenEnv + " in the environment.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			opts := app.BatchOptions{Entries: args}
			opts.OutputDir, _ = flags.GetString("output-dir")
			opts.BuildDir, _ = flags.GetString("build-dir")
			opts.KeepGoing, _ = flags.GetBool("keep-going")

			timeout, err := timeoutFlag(flags)
			if err != nil {
				return err
			}
			opts.Timeout = timeout

			return c.app.Batch(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringP("output-dir", "o", "", "Directory receiving the build artifacts (default working directory)")
	cmd.Flags().StringP("build-dir", "b", "", "Directory for downloads and extracted sources (default working directory)")
	cmd.Flags().IntP("timeout", "t", int(domain.DefaultTimeout/time.Second), "Container timeout in seconds")
	cmd.Flags().BoolP("keep-going", "k", false, "Continue with the remaining projects after a failure")
	return cmd
}
