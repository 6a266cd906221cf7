package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bankapi/internal/core"
	"bankapi/internal/storage"
)

// newTestService backs a Service with an in-memory store and a frozen
// clock. No event publisher is attached.
func newTestService(t *testing.T, now core.Date) *Service {
	t.Helper()

	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := NewService(store, nil)
	svc.now = func() time.Time { return now.Time }
	return svc
}

func seedUser(t *testing.T, svc *Service, login string) int64 {
	t.Helper()
	id, err := svc.store.InsertUser(context.Background(), core.User{
		Login:            login,
		RegistrationDate: core.NewDate(2021, 1, 1),
	})
	require.NoError(t, err)
	return id
}

func seedCredit(t *testing.T, svc *Service, c core.Credit) int64 {
	t.Helper()
	id, err := svc.store.InsertCredit(context.Background(), c)
	require.NoError(t, err)
	return id
}

func seedPayment(t *testing.T, svc *Service, creditID, typeID int64, sum float64, paid core.Date) {
	t.Helper()
	_, err := svc.store.InsertPayment(context.Background(), core.Payment{
		CreditID:    creditID,
		TypeID:      typeID,
		Sum:         sum,
		PaymentDate: paid,
	})
	require.NoError(t, err)
}
