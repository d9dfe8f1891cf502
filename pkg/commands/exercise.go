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

func addExercise(topLevel *cobra.Command) {
	eo := &options.ExerciseOptions{}
	ao := &options.AtOptions{}

	var name string

	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Record a workout",
		Example: `
fatloss add exercise jogging -m 30
fatloss add exercise "jump rope" -m 15 -b 180 --category aerobic
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires an exercise name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := loadServices()
			if err != nil {
				return err
			}

			r := record.NewExercise(name, eo.Minutes, eo.Burned, eo.Category)
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

	options.AddExerciseArgs(cmd, eo)
	options.AddAtArgs(cmd, ao)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
