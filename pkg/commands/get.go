package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/commands/options"
	"tableflip.dev/fatloss/pkg/printers"
	"tableflip.dev/fatloss/pkg/record"
)

func addGet(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	io := &options.IDOptions{}

	var kind record.Kind

	cmd := &cobra.Command{
		Use:       "get [kind]",
		Short:     "Show a day's entries and total",
		ValidArgs: []string{"diet", "water", "exercise"},
		Example: `
fatloss get diet
fatloss get water --day 2025-08-22
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a kind: diet, water, or exercise")
			}
			var err error
			kind, err = record.ParseKind(args[0])
			return err
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

			ctx := context.Background()
			bucket, err := s.ledger.QueryDay(ctx, kind, day)
			if err != nil {
				return oo.HandleError(err)
			}

			pp := printers.PrettyPrint{ShowID: io.ShowID}
			pp.Bucket(bucket, kind)

			unfiled, err := s.ledger.Unfiled(ctx, kind)
			if err != nil {
				return oo.HandleError(err)
			}
			pp.Unfiled(unfiled)
			return nil
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
