package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankapi/internal/core"
)

func TestCreditStatusForUser_NoCredits(t *testing.T) {
	svc := newTestService(t, core.NewDate(2022, 3, 10))
	seedUser(t, svc, "olena")

	_, err := svc.CreditStatusForUser(context.Background(), 1)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreditStatusForUser_ClosedCredit(t *testing.T) {
	svc := newTestService(t, core.NewDate(2022, 3, 10))
	userID := seedUser(t, svc, "olena")

	actualReturn := core.NewDate(2021, 6, 15)
	creditID := seedCredit(t, svc, core.Credit{
		UserID:           userID,
		IssuanceDate:     core.NewDate(2021, 1, 10),
		ReturnDate:       core.NewDate(2021, 7, 10),
		ActualReturnDate: &actualReturn,
		Body:             10000,
		Percent:          500,
	})
	seedPayment(t, svc, creditID, core.PaymentTypePrincipal, 10000, core.NewDate(2021, 6, 1))
	seedPayment(t, svc, creditID, core.PaymentTypeInterest, 500, core.NewDate(2021, 6, 15))

	views, err := svc.CreditStatusForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.True(t, view.Closed)
	assert.Equal(t, "2021-01-10", view.IssuanceDate.String())
	// Closed credits report the actual return date, not the contractual one.
	assert.Equal(t, "2021-06-15", view.ReturnDate.String())
	assert.Equal(t, 10000.0, view.Body)
	assert.Equal(t, 500.0, view.Percent)
	require.NotNil(t, view.TotalPaid)
	assert.Equal(t, 10500.0, *view.TotalPaid)
	assert.Nil(t, view.OverdueDays)
	assert.Nil(t, view.PrincipalPaid)
	assert.Nil(t, view.InterestPaid)
}

func TestCreditStatusForUser_OpenOverdueCredit(t *testing.T) {
	svc := newTestService(t, core.NewDate(2022, 3, 10))
	userID := seedUser(t, svc, "olena")

	creditID := seedCredit(t, svc, core.Credit{
		UserID:       userID,
		IssuanceDate: core.NewDate(2022, 1, 5),
		ReturnDate:   core.NewDate(2022, 3, 1),
		Body:         50000,
		Percent:      3000,
	})
	seedPayment(t, svc, creditID, core.PaymentTypePrincipal, 8000, core.NewDate(2022, 2, 12))
	seedPayment(t, svc, creditID, core.PaymentTypeInterest, 2500, core.NewDate(2022, 2, 14))

	views, err := svc.CreditStatusForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.False(t, view.Closed)
	assert.Equal(t, "2022-03-01", view.ReturnDate.String())
	require.NotNil(t, view.OverdueDays)
	assert.Equal(t, 9, *view.OverdueDays)
	require.NotNil(t, view.PrincipalPaid)
	assert.Equal(t, 8000.0, *view.PrincipalPaid)
	require.NotNil(t, view.InterestPaid)
	assert.Equal(t, 2500.0, *view.InterestPaid)
	assert.Nil(t, view.TotalPaid)
}

func TestCreditStatusForUser_NotYetDueReportsNegativeOverdue(t *testing.T) {
	svc := newTestService(t, core.NewDate(2022, 3, 10))
	userID := seedUser(t, svc, "olena")

	seedCredit(t, svc, core.Credit{
		UserID:       userID,
		IssuanceDate: core.NewDate(2022, 3, 1),
		ReturnDate:   core.NewDate(2022, 9, 1),
		Body:         20000,
		Percent:      1200,
	})

	views, err := svc.CreditStatusForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	require.NotNil(t, views[0].OverdueDays)
	assert.Equal(t, -175, *views[0].OverdueDays)
}

func TestCreditStatusForUser_OrderFollowsPrimaryKey(t *testing.T) {
	svc := newTestService(t, core.NewDate(2022, 3, 10))
	userID := seedUser(t, svc, "olena")

	actualReturn := core.NewDate(2021, 6, 15)
	seedCredit(t, svc, core.Credit{
		UserID:           userID,
		IssuanceDate:     core.NewDate(2021, 1, 10),
		ReturnDate:       core.NewDate(2021, 7, 10),
		ActualReturnDate: &actualReturn,
		Body:             10000,
		Percent:          500,
	})
	seedCredit(t, svc, core.Credit{
		UserID:       userID,
		IssuanceDate: core.NewDate(2022, 1, 5),
		ReturnDate:   core.NewDate(2022, 6, 5),
		Body:         50000,
		Percent:      3000,
	})

	views, err := svc.CreditStatusForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].Closed)
	assert.False(t, views[1].Closed)
}
