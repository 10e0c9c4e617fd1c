package budget

import (
	"context"
	"fmt"
)

// OverBudgetItem records a task whose recorded actual cost exceeds its
// estimate. Delta is always positive.
type OverBudgetItem struct {
	Name      string
	Estimated float64
	Actual    float64
	Delta     float64
}

// Summary holds one aggregation run's project-level metrics. It exists only
// for the duration of a pass and is discarded after write-back.
type Summary struct {
	TotalEstimated float64
	TotalActual    float64
	TotalTasks     int
	CompletedTasks int
	// OverBudget follows task enumeration order, not magnitude.
	OverBudget []OverBudgetItem
}

// PercentComplete is the share of tasks with a recorded actual cost. A task
// with no actual cost never counts as complete, even if it is done.
func (s Summary) PercentComplete() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
}

// BudgetUtilization is actual spend as a percentage of the estimate, defined
// as 0 when nothing has been estimated.
func (s Summary) BudgetUtilization() float64 {
	if s.TotalEstimated == 0 {
		return 0
	}
	return s.TotalActual / s.TotalEstimated * 100
}

func (s Summary) Remaining() float64 {
	return s.TotalEstimated - s.TotalActual
}

func (s Summary) TotalOverBudget() float64 {
	var total float64
	for _, item := range s.OverBudget {
		total += item.Delta
	}
	return total
}

// Aggregator folds a project's per-task cost fields into a Summary.
type Aggregator struct {
	gw Gateway
}

func NewAggregator(gw Gateway) *Aggregator {
	return &Aggregator{gw: gw}
}

// Aggregate walks every task in the project except the status task itself,
// fetching full detail for each because list views omit custom fields. A
// missing field value counts as 0 for estimation, but a task only counts as
// completed (and contributes actual cost) when its actual value is > 0.
// Any transport failure aborts the whole aggregation; partial totals are
// never surfaced.
func (a *Aggregator) Aggregate(ctx context.Context, projectGID, statusTaskGID string, m FieldMapping) (Summary, error) {
	tasks, err := a.gw.ListProjectTasks(ctx, projectGID)
	if err != nil {
		return Summary{}, fmt.Errorf("listing tasks in project %s: %w", projectGID, err)
	}

	var sum Summary
	for _, t := range tasks {
		if t.GID == statusTaskGID {
			continue
		}

		detail, err := a.gw.GetTask(ctx, t.GID)
		if err != nil {
			return Summary{}, fmt.Errorf("fetching task %s: %w", t.GID, err)
		}
		sum.TotalTasks++

		var estimated, actual float64
		for _, f := range detail.CustomFields {
			if f.NumberValue == nil {
				continue
			}
			switch f.GID {
			case m.EstimatedGID:
				estimated = *f.NumberValue
			case m.ActualGID:
				actual = *f.NumberValue
			}
		}

		sum.TotalEstimated += estimated
		if actual > 0 {
			sum.TotalActual += actual
			sum.CompletedTasks++
			if actual > estimated {
				sum.OverBudget = append(sum.OverBudget, OverBudgetItem{
					Name:      t.Name,
					Estimated: estimated,
					Actual:    actual,
					Delta:     actual - estimated,
				})
			}
		}
	}
	return sum, nil
}
