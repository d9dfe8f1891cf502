package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/badges"
	"tableflip.dev/fatloss/pkg/bus"
	"tableflip.dev/fatloss/pkg/printers"
)

func addBadges(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Show achievement progress",
		Example: `
fatloss badges
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := loadServices()
			if err != nil {
				return err
			}

			g := color.New(color.FgHiGreen, color.Bold)
			s.bus.Subscribe(bus.BadgeUnlocked, func(payload any) {
				unlock := payload.(badges.UnlockPayload)
				_, _ = g.Printf("badge unlocked: %s\n", unlock.Title)
			})

			tasks, err := s.badges.Evaluate(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}
			fmt.Println("")
			pp := printers.PrettyPrint{}
			pp.Badges(tasks)
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
