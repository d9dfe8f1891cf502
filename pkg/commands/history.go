package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/printers"
	"tableflip.dev/fatloss/pkg/record"
)

func addHistory(topLevel *cobra.Command) {
	var kind record.Kind

	cmd := &cobra.Command{
		Use:       "history [kind]",
		Short:     "Show day-by-day totals, most recent first",
		ValidArgs: []string{"diet", "water", "exercise"},
		Example: `
fatloss history diet
fatloss history exercise
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

			buckets, err := s.ledger.History(context.Background(), kind)
			if err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.History(kind, buckets)
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
