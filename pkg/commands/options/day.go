// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/timeutil"
)

// DayOptions
type DayOptions struct {
	DayString string
}

func AddDayArgs(cmd *cobra.Command, o *DayOptions) {
	cmd.Flags().StringVar(&o.DayString, "day", "",
		`Specify a calendar day, example: --day="2025-08-23". Defaults to today.`)
}

// GetDay resolves the flag to a day key, defaulting to the local today.
func (o *DayOptions) GetDay() (string, error) {
	if o.DayString == "" {
		return timeutil.DayKey(time.Now()), nil
	}
	if !timeutil.ValidDayKey(o.DayString) {
		return "", fmt.Errorf("not a day key: %q (want YYYY-MM-DD)", o.DayString)
	}
	return o.DayString, nil
}
