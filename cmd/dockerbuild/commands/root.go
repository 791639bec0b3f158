// Package commands implements the CLI commands for dockerbuild.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/bunsenlabs/dockerbuild/internal/app"
	"github.com/bunsenlabs/dockerbuild/internal/build"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/spf13/cobra"
)

// skipConfigure marks commands that run without loading the option file.
const skipConfigure = "skip-configure"

// CLI represents the command line interface for dockerbuild.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.GlobalOptions) error
	Build(ctx context.Context, opts app.BuildOptions) error
	Batch(ctx context.Context, opts app.BatchOptions) error
	Fetch(ctx context.Context, req domain.WorkerRequest) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "dockerbuild",
		Short:         "Build Debian source packages in disposable containers",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.BoolP("debug", "d", false, "Enable debug output")
	flags.String("unpriv-user", domain.DefaultUnprivUser, "Drop to this user for untrusted operations")
	flags.String("unpriv-group", domain.DefaultUnprivGroup, "Drop to this group for untrusted operations")
	flags.String("config", "", "Option file (default ./"+domain.ConfigFileName+" if present)")
	flags.String("log-format", string(domain.LogFormatAuto), "Log format: auto, pretty, or json")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.configure

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newBatchCmd())
	rootCmd.AddCommand(c.newWorkerCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// configure applies the global flags that were set explicitly.
func (c *CLI) configure(cmd *cobra.Command, _ []string) error {
	if _, ok := cmd.Annotations[skipConfigure]; ok {
		return nil
	}

	flags := cmd.Flags()
	var opts app.GlobalOptions
	opts.Debug, _ = flags.GetBool("debug")
	opts.ConfigPath, _ = flags.GetString("config")
	if flags.Changed("log-format") {
		opts.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("unpriv-user") {
		opts.UnprivUser, _ = flags.GetString("unpriv-user")
	}
	if flags.Changed("unpriv-group") {
		opts.UnprivGroup, _ = flags.GetString("unpriv-group")
	}
	return c.app.Configure(opts)
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
