package options

import (
	"github.com/spf13/cobra"
)

// DietOptions
type DietOptions struct {
	Grams    float64
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
}

func AddDietArgs(cmd *cobra.Command, o *DietOptions) {
	cmd.Flags().Float64VarP(&o.Grams, "grams", "g", 0, "Portion weight in grams.")
	cmd.Flags().Float64VarP(&o.Calories, "calories", "c", 0, "Calorie count.")
	cmd.Flags().Float64Var(&o.Protein, "protein", 0, "Protein in grams.")
	cmd.Flags().Float64Var(&o.Carbs, "carbs", 0, "Carbohydrates in grams.")
	cmd.Flags().Float64Var(&o.Fat, "fat", 0, "Fat in grams.")
	cmd.Flags().Float64Var(&o.Fiber, "fiber", 0, "Fiber in grams.")
}

// ExerciseOptions
type ExerciseOptions struct {
	Minutes  float64
	Burned   float64
	Category string
}

func AddExerciseArgs(cmd *cobra.Command, o *ExerciseOptions) {
	cmd.Flags().Float64VarP(&o.Minutes, "minutes", "m", 0, "Spent time in minutes.")
	cmd.Flags().Float64VarP(&o.Burned, "burned", "b", 0,
		"Calories burned. Defaults to an estimate from the spent time.")
	cmd.Flags().StringVar(&o.Category, "category", "", "Exercise category tag.")
}
