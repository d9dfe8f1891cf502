package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/badges"
	"tableflip.dev/fatloss/pkg/bus"
	"tableflip.dev/fatloss/pkg/printers"
	"tableflip.dev/fatloss/pkg/record"
	"tableflip.dev/fatloss/pkg/store"
	"tableflip.dev/fatloss/pkg/timeutil"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live view of today's entries",
		Long: base.Wrap80("Stays resident and re-prints today's buckets " +
			"whenever the store changes, including writes from another " +
			"process. Ctrl-C to exit."),
		Example: `
fatloss watch
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := loadServices()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g := color.New(color.FgHiGreen, color.Bold)
			s.bus.Subscribe(bus.BadgeUnlocked, func(payload any) {
				unlock := payload.(badges.UnlockPayload)
				_, _ = g.Printf("badge unlocked: %s\n", unlock.Title)
			})

			events, err := s.persistence.Watch(ctx)
			if err != nil {
				return err
			}

			redraw := func() {
				day := timeutil.DayKey(time.Now())
				pp := printers.PrettyPrint{}
				for _, kind := range []record.Kind{record.Diet, record.Water, record.Exercise} {
					bucket, err := s.ledger.QueryDay(ctx, kind, day)
					if err != nil {
						fmt.Fprintf(os.Stderr, "query %s: %v\n", kind, err)
						continue
					}
					pp.Bucket(bucket, kind)
				}
				if _, err := s.badges.Evaluate(ctx); err != nil {
					fmt.Fprintf(os.Stderr, "badges: %v\n", err)
				}
			}

			redraw()
			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-events:
					if !ok {
						return nil
					}
					if ev.Type == store.EventLedgerChanged || ev.Type == store.EventStateChanged {
						redraw()
					}
				}
			}
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
