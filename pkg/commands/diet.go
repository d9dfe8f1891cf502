package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/commands/options"
	"tableflip.dev/fatloss/pkg/record"
)

func addDiet(topLevel *cobra.Command) {
	do := &options.DietOptions{}
	ao := &options.AtOptions{}

	var dish string

	cmd := &cobra.Command{
		Use:   "diet",
		Short: "Record a meal",
		Example: `
fatloss add diet "chicken rice" -g 350 -c 560 --protein 32
fatloss add diet oatmeal -c 320 --at "2025/8/23上午8:15:00"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a dish name")
			}
			dish = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := loadServices()
			if err != nil {
				return err
			}

			r := record.NewDiet(dish, do.Grams, do.Calories, record.Nutrition{
				Protein: do.Protein,
				Carbs:   do.Carbs,
				Fat:     do.Fat,
				Fiber:   do.Fiber,
			})
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

	options.AddDietArgs(cmd, do)
	options.AddAtArgs(cmd, ao)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
