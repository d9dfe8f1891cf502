package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/commands/options"
	"tableflip.dev/fatloss/pkg/record"
)

func addWater(topLevel *cobra.Command) {
	ao := &options.AtOptions{}

	var milliliters float64

	cmd := &cobra.Command{
		Use:   "water",
		Short: "Record drinking water",
		Example: `
fatloss add water 300
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a volume in milliliters")
			}
			ml, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("not a volume: %q", args[0])
			}
			milliliters = ml
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := loadServices()
			if err != nil {
				return err
			}

			r := record.NewWater(milliliters)
			ao.Apply(r)

			stored, err := s.ledger.Append(context.Background(), r)
			if err != nil {
				return oo.HandleError(err)
			}
			if !stored.Normalized() {
				fmt.Fprintf(os.Stderr, "could not read %q as a time; entry kept but excluded from totals\n", stored.RawTime)
			}
			return nil
		},
	}

	options.AddAtArgs(cmd, ao)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
