package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/fatloss/pkg/ledger"
	"tableflip.dev/fatloss/pkg/record"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

// Bucket prints one day's records with the memoized total underneath.
func (pp *PrettyPrint) Bucket(b ledger.DayBucket, kind record.Kind) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Printf("%s %s", b.Day, kind)
	switch len(b.Records) {
	case 1:
		_, _ = c.Println(" - 1 entry")
	default:
		_, _ = c.Printf(" - %d entries\n", len(b.Records))
	}

	pp.Records(b.Records...)

	if pp.ShowID {
		_, _ = c.Print(spacing)
	}
	_, _ = c.Printf("total: %.0f %s\n\n", b.Total, kind.Unit())
}

// Records prints ledger entries, one per line.
func (pp *PrettyPrint) Records(records ...*record.Record) {
	if len(records) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n")
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)

	for _, r := range records {
		if pp.ShowID {
			id := shortID(r.ID)
			_, _ = y.Print(id)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(id)))
		}
		_, _ = t.Printf("%s  %s", clock(r), r.Title())
		_, _ = f.Printf("  %.0f %s\n", r.Amount(), r.Kind.Unit())
	}
}

// Unfiled prints records whose timestamp never parsed, with the raw value
// they arrived with.
func (pp *PrettyPrint) Unfiled(records []*record.Record) {
	if len(records) == 0 {
		return
	}
	w := color.New(color.FgHiYellow)
	f := color.New(color.Faint)

	_, _ = w.Printf("%d entries with unreadable timestamps (excluded from totals):\n", len(records))
	for _, r := range records {
		_, _ = f.Printf("  %s  (recorded %q)\n", r.Title(), r.RawTime)
	}
	fmt.Println("")
}

// StaleNotice discloses that a view is showing expired cached data.
func (pp *PrettyPrint) StaleNotice(fetchedAt string) {
	w := color.New(color.FgHiYellow, color.Italic)
	_, _ = w.Printf("showing saved recommendations from %s; the service could not be reached\n\n", fetchedAt)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func clock(r *record.Record) string {
	if !r.Normalized() {
		return "--:--"
	}
	return r.At.Local().Format("15:04")
}
