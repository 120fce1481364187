package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// completeRemote completes the remote path argument.
func (a *app) completeRemote(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return a.remoteCandidates(cmd, toComplete)
}

// completeRemoteFlag completes a flag that names a remote path.
func (a *app) completeRemoteFlag(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return a.remoteCandidates(cmd, toComplete)
}

// remoteCandidates offers the entries of the remote directory named by the
// part of toComplete up to its last slash. Errors yield no candidates.
func (a *app) remoteCandidates(cmd *cobra.Command, toComplete string) ([]string, cobra.ShellCompDirective) {
	directive := cobra.ShellCompDirectiveNoFileComp
	// flags of the completed command are only parsed now
	a.settings = nil
	s, err := a.loadSettings(cmd)
	if err != nil || s.Validate() != nil {
		return nil, directive
	}
	client, err := newClient(s)
	if err != nil {
		return nil, directive
	}

	dir := toComplete[:strings.LastIndex(toComplete, "/")+1]
	list := dir
	if list == "" {
		list = "/"
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	names, err := client.List(ctx, list)
	if err != nil {
		return nil, directive
	}

	var candidates []string
	for _, name := range names {
		candidate := dir + name
		if !strings.HasPrefix(candidate, toComplete) {
			continue
		}
		if strings.HasSuffix(name, "/") {
			directive |= cobra.ShellCompDirectiveNoSpace
		}
		candidates = append(candidates, candidate)
	}
	return candidates, directive
}
