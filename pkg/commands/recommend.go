package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/printers"
)

func addRecommend(topLevel *cobra.Command) {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show diet recommendations",
		Long: base.Wrap80("Recommendations are cached locally. When the " +
			"service cannot be reached, the last fetched plans are shown with " +
			"a staleness notice."),
		Example: `
fatloss recommend
fatloss recommend --refresh
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := loadServices()
			if err != nil {
				return err
			}

			result, err := s.fetcher().Get(context.Background(), refresh)
			if err != nil {
				return oo.HandleError(err)
			}

			pp := printers.PrettyPrint{}
			if result.Stale {
				pp.StaleNotice(result.StaleAt.Local().Format("2006-01-02 15:04"))
			}
			pp.Recommendations(result.Plans())
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false,
		"Skip the cache and fetch fresh recommendations.")

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
