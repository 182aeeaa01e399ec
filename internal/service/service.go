// Package service implements the registration engine: the business rules
// deciding when a signup or removal is legal. All conditional logic lives
// here; the catalog below it only stores and locks.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mergington/activity-signups/internal/catalog"
	"github.com/mergington/activity-signups/internal/model"
	"github.com/mergington/activity-signups/internal/observability"
)

// ErrAlreadyRegistered is returned when the same email signs up twice for
// one activity.
var ErrAlreadyRegistered = errors.New("already signed up")

// ErrActivityFull is returned when an activity has no remaining capacity.
var ErrActivityFull = errors.New("activity is at full capacity")

// Confirmation summarises an accepted signup or removal.
type Confirmation struct {
	Activity string
	Email    string
}

// Service enforces the registration rules against a shared catalog.
type Service struct {
	catalog *catalog.Catalog
	log     *zap.SugaredLogger
}

// New constructs a Service.
func New(cat *catalog.Catalog, log *zap.SugaredLogger) *Service {
	return &Service{catalog: cat, log: log}
}

// Signup registers email for the named activity.
//
// The duplicate check runs before the capacity check: a student who is
// already on the roster gets ErrAlreadyRegistered even when the activity is
// simultaneously full. The whole check-then-append sequence executes under
// the catalog lock, so two concurrent signups can never both take the last
// slot. Failures leave the roster untouched.
func (s *Service) Signup(ctx context.Context, name, email string) (*Confirmation, error) {
	err := s.catalog.Update(name, func(a *model.Activity) error {
		if a.IsRegistered(email) {
			return fmt.Errorf("%s is %w for %s", email, ErrAlreadyRegistered, name)
		}
		if a.IsFull() {
			return fmt.Errorf("%s: %w", name, ErrActivityFull)
		}
		a.Add(email)
		return nil
	})
	if err != nil {
		observability.RecordSignup(signupResult(err))
		s.log.Infow("signup rejected", "activity", name, "email", email, "reason", err.Error())
		return nil, err
	}

	observability.RecordSignup(observability.ResultAccepted)
	s.log.Infow("signup accepted", "activity", name, "email", email)
	return &Confirmation{Activity: name, Email: email}, nil
}

// Remove unregisters email from the named activity. A missing activity and
// a missing participant both surface as catalog.ErrNotFound, distinguished
// only by message text. Removal preserves the order of the remaining
// roster, and a repeated removal fails identically without changing state.
func (s *Service) Remove(ctx context.Context, name, email string) (*Confirmation, error) {
	err := s.catalog.Update(name, func(a *model.Activity) error {
		if !a.Remove(email) {
			return fmt.Errorf("participant %q in activity %q: %w", email, name, catalog.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		observability.RecordRemoval(observability.ResultNotFound)
		s.log.Infow("removal rejected", "activity", name, "email", email, "reason", err.Error())
		return nil, err
	}

	observability.RecordRemoval(observability.ResultRemoved)
	s.log.Infow("removal accepted", "activity", name, "email", email)
	return &Confirmation{Activity: name, Email: email}, nil
}

// List returns a read-consistent snapshot of the full catalog, keyed by
// activity name. It reflects every mutation committed before the call.
func (s *Service) List(ctx context.Context) map[string]model.Activity {
	return s.catalog.Snapshot()
}

func signupResult(err error) string {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return observability.ResultNotFound
	case errors.Is(err, ErrAlreadyRegistered):
		return observability.ResultDuplicate
	case errors.Is(err, ErrActivityFull):
		return observability.ResultFull
	default:
		return "error"
	}
}
