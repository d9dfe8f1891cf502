package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/energy"
	"tableflip.dev/fatloss/pkg/profile"
)

func addProfile(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the stored body profile",
		Example: `
fatloss profile
fatloss profile set --gender male --height 175 --weight 80 --level 3 --mode lose
fatloss profile goal 1800
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := loadServices()
			if err != nil {
				return err
			}
			p, err := s.profile.Load()
			if err != nil {
				if errors.Is(err, profile.ErrNoProfile) {
					fmt.Println("no profile yet; run `fatloss profile set` first")
					return nil
				}
				return oo.HandleError(err)
			}
			printProfile(p)
			return nil
		},
	}

	addProfileSet(cmd)
	addProfileGoal(cmd)

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addProfileSet(topLevel *cobra.Command) {
	var (
		gender string
		birth  string
		height float64
		weight float64
		target float64
		hand   float64
		level  int
		mode   string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or edit the profile",
		Long: base.Wrap80("Saving the profile re-derives TDEE and the calorie " +
			"goal, and clears any manual goal override. Fields not passed keep " +
			"their stored values."),
		Example: `
fatloss profile set --gender female --birth 1995-08-01 --height 165 --weight 60 --level 2
fatloss profile set --weight 78
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := loadServices()
			if err != nil {
				return err
			}

			p, err := s.profile.Load()
			if err != nil {
				if !errors.Is(err, profile.ErrNoProfile) {
					return err
				}
				p = &profile.Profile{}
			}

			if cmd.Flags().Changed("gender") {
				p.Gender = energy.Gender(gender)
			}
			if cmd.Flags().Changed("birth") {
				t, err := time.ParseInLocation("2006-01-02", birth, time.Local)
				if err != nil {
					return fmt.Errorf("not a birth date: %q (want YYYY-MM-DD)", birth)
				}
				p.BirthDate = t
			}
			if cmd.Flags().Changed("height") {
				p.HeightCM = height
			}
			if cmd.Flags().Changed("weight") {
				p.WeightKG = weight
			}
			if cmd.Flags().Changed("target-weight") {
				p.TargetWeightKG = target
			}
			if cmd.Flags().Changed("hand") {
				p.HandLengthCM = hand
			}
			if cmd.Flags().Changed("level") {
				p.ActivityLevel = level
			}
			if cmd.Flags().Changed("mode") {
				m, err := energy.ParseMode(mode)
				if err != nil {
					return err
				}
				p.Mode = m
			}

			if err := s.profile.Save(p); err != nil {
				return oo.HandleError(err)
			}
			printProfile(p)
			return nil
		},
	}

	cmd.Flags().StringVar(&gender, "gender", "", "male or female.")
	cmd.Flags().StringVar(&birth, "birth", "", "Birth date, YYYY-MM-DD.")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in centimeters.")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Current weight in kilograms.")
	cmd.Flags().Float64Var(&target, "target-weight", 0, "Target weight in kilograms.")
	cmd.Flags().Float64Var(&hand, "hand", 0, "Hand length in centimeters.")
	cmd.Flags().IntVar(&level, "level", 0, "Activity level, 1 (sedentary) to 5 (athlete).")
	cmd.Flags().StringVar(&mode, "mode", "", "Weight target: lose, maintain, or gain.")

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addProfileGoal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "goal [kcal]",
		Short: "Pin the calorie goal to an explicit value",
		Long: base.Wrap80("The override takes precedence over the derived goal " +
			"until the next profile edit."),
		Example: `
fatloss profile goal 1800
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a calorie value")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			goal, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("not a calorie value: %q", args[0])
			}
			s, err := loadServices()
			if err != nil {
				return err
			}
			return oo.HandleError(s.profile.SetGoalOverride(goal))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func printProfile(p *profile.Profile) {
	b := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("Gender"), string(p.Gender))
	if !p.BirthDate.IsZero() {
		tbl.AddRow(b.Sprint("Birth date"), p.BirthDate.Format("2006-01-02"))
	}
	tbl.AddRow(b.Sprint("Height"), fmt.Sprintf("%.0f cm", p.HeightCM))
	tbl.AddRow(b.Sprint("Weight"), fmt.Sprintf("%.1f kg", p.WeightKG))
	if p.TargetWeightKG > 0 {
		tbl.AddRow(b.Sprint("Target weight"), fmt.Sprintf("%.1f kg", p.TargetWeightKG))
	}
	if p.HandLengthCM > 0 {
		tbl.AddRow(b.Sprint("Hand length"), fmt.Sprintf("%.1f cm", p.HandLengthCM))
	}
	tbl.AddRow(b.Sprint("Activity level"), p.ActivityLevel)
	tbl.AddRow(b.Sprint("Mode"), string(p.Mode))
	tbl.AddRow(b.Sprint("TDEE"), fmt.Sprintf("%.0f kcal/day", p.TDEE))
	goal := fmt.Sprintf("%.0f kcal/day", p.CalorieGoal)
	if p.GoalOverride {
		goal += "  (manual override)"
	}
	tbl.AddRow(b.Sprint("Calorie goal"), goal)

	_, _ = fmt.Fprintln(color.Output, tbl)
}
