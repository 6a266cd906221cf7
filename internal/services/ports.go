package services

import (
	"context"

	"bankapi/internal/core"
)

// Ports consumed by the HTTP layer.
type (
	CreditReader interface {
		CreditStatusForUser(ctx context.Context, userID int64) ([]core.CreditView, error)
	}

	PlanIngestor interface {
		IngestPlans(ctx context.Context, rows []core.PlanRow) (int, error)
	}

	PerformanceReader interface {
		// MonthlyPerformance reports plan fulfillment for the month of
		// onDate, counting actuals from month start through onDate.
		MonthlyPerformance(ctx context.Context, onDate core.Date) ([]core.CategoryPerformance, error)

		// YearlyPerformance always returns twelve rollups, Jan..Dec.
		YearlyPerformance(ctx context.Context, year int) ([]core.MonthlyRollup, error)
	}
)
