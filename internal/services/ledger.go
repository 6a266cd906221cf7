package services

import (
	"context"
	"fmt"

	"bankapi/internal/core"
)

// CreditStatusForUser classifies each of the user's credits as open or
// closed and aggregates its payments. Views come back in the order
// credits were fetched (primary-key order). A user with no credits
// yields core.ErrNotFound.
func (s *Service) CreditStatusForUser(ctx context.Context, userID int64) ([]core.CreditView, error) {
	credits, err := s.store.CreditsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("credits for user %d: %w", userID, err)
	}
	if len(credits) == 0 {
		return nil, core.ErrNotFound
	}

	now := s.now().UTC()
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())

	views := make([]core.CreditView, 0, len(credits))
	for _, credit := range credits {
		if credit.Closed() {
			totalPaid, err := s.store.PaymentsSumByCredit(ctx, credit.ID)
			if err != nil {
				return nil, fmt.Errorf("payments for credit %d: %w", credit.ID, err)
			}
			views = append(views, core.CreditView{
				IssuanceDate: credit.IssuanceDate,
				Closed:       true,
				ReturnDate:   *credit.ActualReturnDate,
				Body:         credit.Body,
				Percent:      credit.Percent,
				TotalPaid:    &totalPaid,
			})
			continue
		}

		principalPaid, err := s.store.PaymentsSumByCreditAndType(ctx, credit.ID, core.PaymentTypePrincipal)
		if err != nil {
			return nil, fmt.Errorf("principal payments for credit %d: %w", credit.ID, err)
		}
		interestPaid, err := s.store.PaymentsSumByCreditAndType(ctx, credit.ID, core.PaymentTypeInterest)
		if err != nil {
			return nil, fmt.Errorf("interest payments for credit %d: %w", credit.ID, err)
		}

		// Signed on purpose: a credit that is not yet due reports a
		// negative count of overdue days.
		overdueDays := today.DaysSince(credit.ReturnDate)

		views = append(views, core.CreditView{
			IssuanceDate:  credit.IssuanceDate,
			Closed:        false,
			ReturnDate:    credit.ReturnDate,
			Body:          credit.Body,
			Percent:       credit.Percent,
			OverdueDays:   &overdueDays,
			PrincipalPaid: &principalPaid,
			InterestPaid:  &interestPaid,
		})
	}
	return views, nil
}
