package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bankapi/internal/core"
)

// IngestPlans validates a decoded batch of plan rows and, only if the
// whole batch is clean, persists it in one transaction. Violations are
// collected across all rows first; a single bad row rejects the entire
// file with every message found, and nothing is inserted. Returns the
// number of rows inserted.
func (s *Service) IngestPlans(ctx context.Context, rows []core.PlanRow) (int, error) {
	var messages []string
	plans := make([]core.Plan, 0, len(rows))

	for _, row := range rows {
		category, err := s.store.CategoryByName(ctx, row.Category)
		switch {
		case errors.Is(err, core.ErrUnknownCategory):
			messages = append(messages,
				fmt.Sprintf("plan with period %s has unknown category %q", row.Period, row.Category))
		case err != nil:
			return 0, fmt.Errorf("resolve category %q: %w", row.Category, err)
		default:
			exists, err := s.store.PlanExists(ctx, row.Period, category.ID)
			if err != nil {
				return 0, fmt.Errorf("check plan %s/%q: %w", row.Period, row.Category, err)
			}
			if exists {
				messages = append(messages,
					fmt.Sprintf("plan with period %s and category %q already exists", row.Period, row.Category))
			}
			plans = append(plans, core.Plan{
				Period:     row.Period,
				Sum:        row.Sum,
				CategoryID: category.ID,
			})
		}

		if !row.Period.IsFirstOfMonth() {
			messages = append(messages,
				fmt.Sprintf("plan period %s does not start on the first day of the month", row.Period))
		}
		if row.Sum == 0 {
			messages = append(messages,
				fmt.Sprintf("plan with period %s is missing a sum", row.Period))
		}
	}

	if len(messages) > 0 {
		return 0, &core.ValidationError{Messages: messages}
	}

	// The store's uniqueness constraint remains the final authority;
	// a concurrent ingestion racing past the pre-check above comes
	// back as the same ValidationError kind.
	if err := s.store.InsertPlans(ctx, plans); err != nil {
		return 0, err
	}

	s.publishIngested(ctx, plans)

	slog.InfoContext(ctx, "Plan batch ingested", "rows", len(plans))
	return len(plans), nil
}

// publishIngested emits a plans.ingested event. Publishing is
// best-effort: the batch is already committed, so failures are logged
// and not surfaced.
func (s *Service) publishIngested(ctx context.Context, plans []core.Plan) {
	if s.events == nil {
		slog.DebugContext(ctx, "Event publisher not configured, skipping plans.ingested")
		return
	}

	periods := make([]string, 0, len(plans))
	for _, p := range plans {
		periods = append(periods, p.Period.String())
	}

	if err := s.events.PublishPlansIngested(ctx, len(plans), periods); err != nil {
		slog.ErrorContext(ctx, "Failed to publish plans.ingested event",
			"count", len(plans), "error", err)
	}
}
