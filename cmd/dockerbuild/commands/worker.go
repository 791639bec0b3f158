package commands

import (
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/spf13/cobra"
)

// newWorkerCmd is re-executed by the download agent. It is not meant to be run by hand.
func (c *CLI) newWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         domain.DownloadWorkerCommand,
		Short:       "Fetch a URL into a new file after dropping privileges",
		Hidden:      true,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigure: ""},
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			var req domain.WorkerRequest
			req.URL, _ = flags.GetString("url")
			req.Dest, _ = flags.GetString("dest")
			req.UID, _ = flags.GetInt("uid")
			req.GID, _ = flags.GetInt("gid")
			req.SetGID, _ = flags.GetBool("setgid")
			req.SetUID, _ = flags.GetBool("setuid")
			return c.app.Fetch(cmd.Context(), req)
		},
	}
	cmd.Flags().String("url", "", "Source URL")
	cmd.Flags().String("dest", "", "Destination file, which must not exist")
	cmd.Flags().Int("uid", -1, "User to drop to")
	cmd.Flags().Int("gid", -1, "Group to drop to")
	cmd.Flags().Bool("setgid", false, "Change the group to --gid")
	cmd.Flags().Bool("setuid", false, "Change the user to --uid")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("dest")
	return cmd
}
