// Package services implements the plan-fulfillment reporting
// operations: credit status queries, plan ingestion and plan-vs-actual
// performance calculation.
package services

import (
	"fmt"
	"time"

	"bankapi/internal/amqp"
	"bankapi/internal/storage"
)

// Service orchestrates reporting operations over the relational store
// and the optional ingestion event publisher.
type Service struct {
	store  *storage.Store
	events *amqp.Client

	now func() time.Time
}

// NewService creates a Service. events may be nil; ingestion then
// skips event publishing.
func NewService(store *storage.Store, events *amqp.Client) *Service {
	return &Service{
		store:  store,
		events: events,
		now:    time.Now,
	}
}

// Close closes the store and the event publisher.
func (s *Service) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close service: %v", errs)
	}

	return nil
}
