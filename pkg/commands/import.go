package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/record"
)

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import an exercise history export",
		Long: base.Wrap80("Reads a JSON array of exercise entries as exported " +
			"by the backend and appends each to the ledger. Entries with " +
			"unreadable timestamps are kept but excluded from totals. Pass - " +
			"to read from stdin."),
		Example: `
fatloss import history.json
cat history.json | fatloss import -
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a file, or - for stdin")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			var in io.Reader = os.Stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var items []json.RawMessage
			if err := json.NewDecoder(in).Decode(&items); err != nil {
				return fmt.Errorf("decode export: %w", err)
			}

			s, err := loadServices()
			if err != nil {
				return err
			}

			ctx := context.Background()
			imported, unfiled, skipped := 0, 0, 0
			for _, item := range items {
				r, err := record.DecodeExercisePayload(item)
				if err != nil {
					fmt.Fprintf(os.Stderr, "skipping entry: %v\n", err)
					skipped++
					continue
				}
				stored, err := s.ledger.Append(ctx, r)
				if err != nil {
					fmt.Fprintf(os.Stderr, "skipping entry %q: %v\n", r.Exercise, err)
					skipped++
					continue
				}
				imported++
				if !stored.Normalized() {
					unfiled++
				}
			}

			fmt.Printf("imported %d entries", imported)
			if unfiled > 0 {
				fmt.Printf(", %d with unreadable timestamps (excluded from totals)", unfiled)
			}
			if skipped > 0 {
				fmt.Printf(", %d skipped", skipped)
			}
			fmt.Println("")
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
