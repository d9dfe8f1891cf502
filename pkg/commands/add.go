package commands

import (
	"github.com/spf13/cobra"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record something",
		Example: `
fatloss add diet "chicken rice" -g 350 -c 560
fatloss add water 300
fatloss add exercise jogging -m 30
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addDiet(cmd)
	addWater(cmd)
	addExercise(cmd)

	topLevel.AddCommand(cmd)
}
