package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/energy"
	"tableflip.dev/fatloss/pkg/printers"
)

func addEnergy(topLevel *cobra.Command) {
	var modeString string

	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Compute BMR, TDEE, and the calorie goal",
		Example: `
fatloss energy
fatloss energy --mode gain
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := loadServices()
			if err != nil {
				return err
			}

			mode := energy.Mode("")
			if modeString != "" {
				if mode, err = energy.ParseMode(modeString); err != nil {
					return err
				}
			}

			result, err := s.profile.Energy(mode)
			if err != nil {
				return oo.HandleError(err)
			}
			if mode == "" {
				if p, err := s.profile.Load(); err == nil {
					mode = p.Mode
				}
			}
			pp := printers.PrettyPrint{}
			pp.Energy(mode, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeString, "mode", "",
		"Weight target: lose, maintain, or gain. Defaults to the profile's mode.")

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
