package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/fatloss/pkg/record"
	"tableflip.dev/fatloss/pkg/timeutil"
)

// AtOptions
type AtOptions struct {
	AtString string
}

func AddAtArgs(cmd *cobra.Command, o *AtOptions) {
	cmd.Flags().StringVar(&o.AtString, "at", "",
		`Record instant in any supported encoding (ISO-8601, epoch millis, locale string). Defaults to now.`)
}

// Apply stamps the record. An unreadable value is kept raw so the ledger can
// file it under the unknown bucket instead of dropping it.
func (o *AtOptions) Apply(r *record.Record) {
	if o.AtString == "" {
		return
	}
	r.RawTime = o.AtString
	if at, err := timeutil.Normalize(o.AtString); err == nil {
		r.At = record.Timestamp{Time: at}
	} else {
		r.At = record.Timestamp{Time: time.Time{}}
	}
}
