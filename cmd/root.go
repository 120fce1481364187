package cmd

import (
	"github.com/spf13/cobra"

	"github.com/davtools/wdc/config"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "wdc",
		Short:             "wdc is a command line client for WebDAV servers",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newLoginCmd(a),
		newCheckCmd(a),
		newInfoCmd(a),
		newFreeCmd(a),
		newLsCmd(a),
		newCleanCmd(a),
		newMkdirCmd(a),
		newCopyCmd(a),
		newMoveCmd(a),
		newDownloadCmd(a),
		newUploadCmd(a),
		newPublishCmd(a),
		newUnpublishCmd(a),
		newPushCmd(a),
		newPullCmd(a),
		newVersionCmd(a),
	)
	return root
}
