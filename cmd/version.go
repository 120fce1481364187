package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/davtools/wdc/config"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print the version number of wdc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "wdc version: %s %s/%s\nBuildTime: %s, Commit: %s\n", config.Version, runtime.GOOS, runtime.GOARCH, config.BuildTime, config.GitCommit)
		},
	}
}
