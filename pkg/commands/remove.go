package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/commands/options"
	"tableflip.dev/fatloss/pkg/record"
)

func addRemove(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	var (
		kind  record.Kind
		index int
	)

	cmd := &cobra.Command{
		Use:   "remove [kind] [index]",
		Short: "Delete an entry by its position in the day",
		Long: base.Wrap80("Delete the index-th entry (0-based, chronological) " +
			"of a day's bucket. Use `fatloss get` to see positions."),
		Example: `
fatloss remove diet 0
fatloss remove water 2 --day 2025-08-22
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 2 {
				return errors.New("requires a kind and an index")
			}
			var err error
			if kind, err = record.ParseKind(args[0]); err != nil {
				return err
			}
			if index, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("not an index: %q", args[1])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := loadServices()
			if err != nil {
				return err
			}
			day, err := do.GetDay()
			if err != nil {
				return err
			}
			return oo.HandleError(s.ledger.Remove(context.Background(), kind, day, index))
		},
	}

	options.AddDayArgs(cmd, do)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
