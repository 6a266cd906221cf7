package services

import (
	"context"
	"fmt"

	"bankapi/internal/core"
)

// MonthlyPerformance computes plan-vs-actual ratios for every plan
// whose period falls between the first of onDate's month and onDate
// inclusive. The range tolerates periods stored at day granularity.
// An empty result is returned as an empty slice; the boundary decides
// how to signal it.
func (s *Service) MonthlyPerformance(ctx context.Context, onDate core.Date) ([]core.CategoryPerformance, error) {
	monthStart := onDate.FirstOfMonth()

	plans, err := s.store.PlansBetween(ctx, monthStart, onDate)
	if err != nil {
		return nil, fmt.Errorf("plans between %s and %s: %w", monthStart, onDate, err)
	}

	out := make([]core.CategoryPerformance, 0, len(plans))
	for _, plan := range plans {
		category, err := s.store.CategoryByID(ctx, plan.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("category of plan %d: %w", plan.ID, err)
		}

		actual, err := s.actualSumByCategory(ctx, category.Name, monthStart, onDate)
		if err != nil {
			return nil, err
		}

		out = append(out, core.CategoryPerformance{
			Period:        plan.Period,
			Category:      category.Name,
			PlannedSum:    plan.Sum,
			ActualSum:     actual,
			CompletionPct: core.SafePercent(actual, plan.Sum),
		})
	}
	return out, nil
}

// actualSumByCategory aggregates the actuals a plan category is
// measured against: issued principal for issuance plans, received
// payments for collection plans. Any other category name is an
// explicit error rather than a silent zero.
func (s *Service) actualSumByCategory(ctx context.Context, name string, from, to core.Date) (float64, error) {
	switch name {
	case core.CategoryIssuance:
		return s.store.CreditsSumBetween(ctx, from, to)
	case core.CategoryCollection:
		return s.store.PaymentsSumBetween(ctx, from, to)
	}
	return 0, fmt.Errorf("%w: %q has no actuals aggregation", core.ErrUnknownCategory, name)
}

// YearlyPerformance rolls up plan fulfillment per calendar month plus
// each month's share of the year's totals. It always returns exactly
// twelve entries, January through December; months without activity
// report zeros.
func (s *Service) YearlyPerformance(ctx context.Context, year int) ([]core.MonthlyRollup, error) {
	yearIssuance, err := s.store.CreditsSumByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("yearly issuance: %w", err)
	}
	yearCollection, err := s.store.PaymentsSumByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("yearly collection: %w", err)
	}

	rollups := make([]core.MonthlyRollup, 0, 12)
	for month := 1; month <= 12; month++ {
		plannedIssuance, err := s.store.PlanSumByMonth(ctx, year, month, core.CategoryIssuanceID)
		if err != nil {
			return nil, fmt.Errorf("month %d planned issuance: %w", month, err)
		}
		plannedCollection, err := s.store.PlanSumByMonth(ctx, year, month, core.CategoryCollectionID)
		if err != nil {
			return nil, fmt.Errorf("month %d planned collection: %w", month, err)
		}
		creditCount, issued, err := s.store.CreditStatsByMonth(ctx, year, month)
		if err != nil {
			return nil, fmt.Errorf("month %d credit stats: %w", month, err)
		}
		paymentCount, collected, err := s.store.PaymentStatsByMonth(ctx, year, month)
		if err != nil {
			return nil, fmt.Errorf("month %d payment stats: %w", month, err)
		}

		rollups = append(rollups, core.MonthlyRollup{
			Month:              fmt.Sprintf("%02d.%04d", month, year),
			CreditCount:        creditCount,
			PlannedIssuance:    plannedIssuance,
			ActualIssuance:     issued,
			IssuancePct:        core.SafePercent(issued, plannedIssuance),
			PaymentCount:       paymentCount,
			PlannedCollection:  plannedCollection,
			ActualCollection:   collected,
			CollectionPct:      core.SafePercent(collected, plannedCollection),
			IssuanceSharePct:   core.SafePercent(issued, yearIssuance),
			CollectionSharePct: core.SafePercent(collected, yearCollection),
		})
	}
	return rollups, nil
}
