package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/fatloss/pkg/badges"
	"tableflip.dev/fatloss/pkg/energy"
	"tableflip.dev/fatloss/pkg/ledger"
	"tableflip.dev/fatloss/pkg/recommend"
	"tableflip.dev/fatloss/pkg/record"
)

var bold = color.New(color.Bold)

// History prints day buckets most recent first as a table.
func (pp *PrettyPrint) History(kind record.Kind, buckets []ledger.DayBucket) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Day"), bold.Sprint("Entries"), bold.Sprintf("Total (%s)", kind.Unit()))
	for _, b := range buckets {
		tbl.AddRow(b.Day, len(b.Records), fmt.Sprintf("%.0f", b.Total))
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Energy prints the derived figures, flagging assumed ages.
func (pp *PrettyPrint) Energy(mode energy.Mode, r energy.Result) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("BMR"), fmt.Sprintf("%.0f kcal/day", r.BMR))
	tbl.AddRow(bold.Sprint("TDEE"), fmt.Sprintf("%.0f kcal/day", r.TDEE))
	tbl.AddRow(bold.Sprintf("Goal (%s)", mode), fmt.Sprintf("%.0f kcal/day", r.CalorieGoal))

	_, _ = fmt.Fprintln(color.Output, tbl)
	if r.Approximate {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Printf("no birth date on file; assuming age %d\n", r.Age)
	}
}

// Recommendations prints the per-day plans.
func (pp *PrettyPrint) Recommendations(plans []recommend.Plan) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Day"), bold.Sprint("Meal"), bold.Sprint("Dish"), bold.Sprint("kcal"))
	for _, plan := range plans {
		for _, item := range plan.Items {
			tbl.AddRow(plan.Day, item.Meal, item.Dish, fmt.Sprintf("%.0f", item.Calories))
		}
	}
	tbl.RightAlign(3)

	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Badges prints the achievement board with progress bars.
func (pp *PrettyPrint) Badges(tasks []badges.Task) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Badge"), bold.Sprint("Progress"), bold.Sprint("Status"))
	owned := color.New(color.FgHiGreen)
	for _, task := range tasks {
		status := fmt.Sprintf("%d%%", task.Percent)
		if task.Owned {
			status = owned.Sprint("owned")
		}
		tbl.AddRow(task.Title, fmt.Sprintf("%.0f / %.0f", task.Current, task.Target), status)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}
