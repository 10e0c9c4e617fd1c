package budget

import (
	"fmt"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Render produces the summary text persisted to the status task's notes.
// It is a pure function: byte-identical output for the same inputs, with the
// timestamp as the only moving part. No other component formats summaries.
func Render(projectName string, s Summary, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# 🏗️ %s Budget Summary\n\n", projectName)

	b.WriteString("## 💰 Overall Budget\n")
	fmt.Fprintf(&b, "- 💵 Total Estimated Budget: $%.2f\n", s.TotalEstimated)
	fmt.Fprintf(&b, "- 💸 Total Actual Cost Incurred: $%.2f\n", s.TotalActual)
	fmt.Fprintf(&b, "- 🎯 Remaining Budget: $%.2f\n", s.Remaining())
	fmt.Fprintf(&b, "- 📊 Budget Utilization: %.1f%%\n\n", s.BudgetUtilization())

	b.WriteString("## 📋 Progress\n")
	fmt.Fprintf(&b, "- 📝 Total Tasks: %d\n", s.TotalTasks)
	fmt.Fprintf(&b, "- ✅ Completed Tasks (with actual costs): %d\n", s.CompletedTasks)
	fmt.Fprintf(&b, "- 🚧 Project Completion: %.1f%%\n\n", s.PercentComplete())

	if len(s.OverBudget) > 0 {
		b.WriteString("## ⚠️ Overbudget Items\n")
		for _, item := range s.OverBudget {
			fmt.Fprintf(&b, "- ❗ %s: Estimated $%.2f, Actual $%.2f ($%.2f over budget)\n",
				item.Name, item.Estimated, item.Actual, item.Delta)
		}
		fmt.Fprintf(&b, "\n⚠️ Total Amount Over Budget: $%.2f\n", s.TotalOverBudget())
	}

	fmt.Fprintf(&b, "\n\n🕒 Last Updated: %s", now.Format(timestampLayout))
	return b.String()
}
