// Package commands wires the CLI. Each command constructs its services from
// the shared config at run time; nothing is a package-level singleton except
// the cobra tree itself.
package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "fatloss",
		Short: base.Wrap80("Track meals, water, and exercise from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addGet(topLevel)
	addHistory(topLevel)
	addRemove(topLevel)
	addImport(topLevel)
	addProfile(topLevel)
	addEnergy(topLevel)
	addRecommend(topLevel)
	addBadges(topLevel)
	addWatch(topLevel)
	addVersion(topLevel)
}
