package commands

import (
	"time"

	"github.com/bunsenlabs/dockerbuild/internal/app"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/zerr"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a Debian source package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			opts := app.BuildOptions{}
			opts.Source, _ = flags.GetString("source")
			opts.Output, _ = flags.GetString("output")
			opts.ScriptsDir, _ = flags.GetString("scripts-dir")
			if flags.Changed("architecture") {
				opts.Architecture, _ = flags.GetString("architecture")
			}

			timeout, err := timeoutFlag(flags)
			if err != nil {
				return err
			}
			opts.Timeout = timeout

			return c.app.Build(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringP("architecture", "a", string(domain.DefaultArchitecture), "Build architecture: amd64, i386, armhf, or arm64")
	cmd.Flags().StringP("output", "o", "", "Directory receiving the build artifacts (default working directory)")
	cmd.Flags().StringP("source", "s", "", "Package source directory")
	cmd.Flags().IntP("timeout", "t", int(domain.DefaultTimeout/time.Second), "Container timeout in seconds")
	cmd.Flags().String("scripts-dir", "", "Directory overriding the built-in container scripts")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

// timeoutFlag returns the --timeout value when it was set explicitly.
func timeoutFlag(flags *pflag.FlagSet) (time.Duration, error) {
	if !flags.Changed("timeout") {
		return 0, nil
	}
	seconds, err := flags.GetInt("timeout")
	if err != nil {
		return 0, err
	}
	if seconds < 1 {
		return 0, zerr.With(zerr.Wrap(domain.ErrConfiguration, "timeout must be positive"), "timeout", seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}
