package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mergington/activity-signups/internal/catalog"
	"github.com/mergington/activity-signups/internal/model"
)

// newService builds an engine over a fresh catalog so tests never share
// state or depend on execution order.
func newService(seed ...model.Activity) *Service {
	if len(seed) == 0 {
		seed = catalog.Seed()
	}
	return New(catalog.New(seed), zap.NewNop().Sugar())
}

func chessClub(capacity int, participants ...string) model.Activity {
	return model.Activity{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: capacity,
		Participants:    participants,
	}
}

func roster(t *testing.T, s *Service, name string) []string {
	t.Helper()
	a, ok := s.List(context.Background())[name]
	require.True(t, ok, "activity %q missing from snapshot", name)
	return a.Participants
}

func TestSignupAppendsInOrder(t *testing.T) {
	s := newService(chessClub(5))
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		conf, err := s.Signup(ctx, "Chess Club", email)
		require.NoError(t, err)
		require.Equal(t, "Chess Club", conf.Activity)
		require.Equal(t, email, conf.Email)
	}

	require.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, roster(t, s, "Chess Club"))
}

func TestSignupUnknownActivity(t *testing.T) {
	s := newService()

	_, err := s.Signup(context.Background(), "Nonexistent Club", "a@x.com")
	require.ErrorIs(t, err, catalog.ErrNotFound)
	require.Contains(t, err.Error(), "Nonexistent Club")
	require.Contains(t, err.Error(), "not found")
}

func TestSignupDuplicateLeavesStateUnchanged(t *testing.T) {
	s := newService(chessClub(5, "a@x.com"))

	_, err := s.Signup(context.Background(), "Chess Club", "a@x.com")
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.Contains(t, err.Error(), "already signed up")
	require.Equal(t, []string{"a@x.com"}, roster(t, s, "Chess Club"))
}

func TestSignupCapacityBoundary(t *testing.T) {
	s := newService(chessClub(3, "a@x.com", "b@x.com"))
	ctx := context.Background()

	// One slot left: the next distinct signup fills the activity.
	_, err := s.Signup(ctx, "Chess Club", "c@x.com")
	require.NoError(t, err)
	require.Len(t, roster(t, s, "Chess Club"), 3)

	// A further distinct signup is rejected without changing the roster.
	_, err = s.Signup(ctx, "Chess Club", "d@x.com")
	require.ErrorIs(t, err, ErrActivityFull)
	require.Contains(t, err.Error(), "capacity")
	require.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, roster(t, s, "Chess Club"))
}

func TestDuplicateTakesPrecedenceOverCapacity(t *testing.T) {
	s := newService(chessClub(2, "a@x.com", "b@x.com"))

	_, err := s.Signup(context.Background(), "Chess Club", "a@x.com")
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.NotErrorIs(t, err, ErrActivityFull)
}

func TestSignupEmailsAreCaseSensitive(t *testing.T) {
	s := newService(chessClub(5))
	ctx := context.Background()

	_, err := s.Signup(ctx, "Chess Club", "test@school.com")
	require.NoError(t, err)
	_, err = s.Signup(ctx, "Chess Club", "TEST@SCHOOL.COM")
	require.NoError(t, err)

	require.Equal(t, []string{"test@school.com", "TEST@SCHOOL.COM"}, roster(t, s, "Chess Club"))
}

func TestRemovePreservesOrder(t *testing.T) {
	s := newService(chessClub(5, "a@x.com", "b@x.com", "c@x.com"))

	conf, err := s.Remove(context.Background(), "Chess Club", "b@x.com")
	require.NoError(t, err)
	require.Equal(t, "b@x.com", conf.Email)
	require.Equal(t, []string{"a@x.com", "c@x.com"}, roster(t, s, "Chess Club"))
}

func TestRemoveUnknownActivity(t *testing.T) {
	s := newService()

	_, err := s.Remove(context.Background(), "Nonexistent Club", "a@x.com")
	require.ErrorIs(t, err, catalog.ErrNotFound)
	require.Contains(t, err.Error(), "Nonexistent Club")
}

func TestRemoveUnknownParticipantIsIdempotentFailure(t *testing.T) {
	s := newService(chessClub(5, "a@x.com"))
	ctx := context.Background()

	_, err := s.Remove(ctx, "Chess Club", "gone@x.com")
	require.ErrorIs(t, err, catalog.ErrNotFound)
	require.Contains(t, err.Error(), "gone@x.com")

	// Same failure again, state untouched both times.
	_, err = s.Remove(ctx, "Chess Club", "gone@x.com")
	require.ErrorIs(t, err, catalog.ErrNotFound)
	require.Equal(t, []string{"a@x.com"}, roster(t, s, "Chess Club"))
}

func TestChessClubScenario(t *testing.T) {
	s := newService(chessClub(2))
	ctx := context.Background()

	_, err := s.Signup(ctx, "Chess Club", "a@x.com")
	require.NoError(t, err)
	require.Equal(t, []string{"a@x.com"}, roster(t, s, "Chess Club"))

	_, err = s.Signup(ctx, "Chess Club", "b@x.com")
	require.NoError(t, err)
	require.Equal(t, []string{"a@x.com", "b@x.com"}, roster(t, s, "Chess Club"))

	_, err = s.Signup(ctx, "Chess Club", "c@x.com")
	require.ErrorIs(t, err, ErrActivityFull)
	require.Equal(t, []string{"a@x.com", "b@x.com"}, roster(t, s, "Chess Club"))

	_, err = s.Remove(ctx, "Chess Club", "a@x.com")
	require.NoError(t, err)
	require.Equal(t, []string{"b@x.com"}, roster(t, s, "Chess Club"))

	_, err = s.Signup(ctx, "Chess Club", "c@x.com")
	require.NoError(t, err)
	require.Equal(t, []string{"b@x.com", "c@x.com"}, roster(t, s, "Chess Club"))
}

func TestListReflectsCommittedMutations(t *testing.T) {
	s := newService(chessClub(5))
	ctx := context.Background()

	before := s.List(ctx)
	require.Empty(t, before["Chess Club"].Participants)

	_, err := s.Signup(ctx, "Chess Club", "a@x.com")
	require.NoError(t, err)

	after := s.List(ctx)
	require.Equal(t, []string{"a@x.com"}, after["Chess Club"].Participants)
	// The earlier snapshot is unaffected.
	require.Empty(t, before["Chess Club"].Participants)
}

func TestConcurrentSignupsNeverOverbook(t *testing.T) {
	const capacity = 5
	const contenders = 50

	s := newService(chessClub(capacity))
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Signup(ctx, "Chess Club", fmt.Sprintf("student%d@x.com", i))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var accepted, full int
	for err := range results {
		switch {
		case err == nil:
			accepted++
		default:
			require.ErrorIs(t, err, ErrActivityFull)
			full++
		}
	}

	require.Equal(t, capacity, accepted)
	require.Equal(t, contenders-capacity, full)

	final := roster(t, s, "Chess Club")
	require.Len(t, final, capacity)
	seen := make(map[string]bool, len(final))
	for _, p := range final {
		require.False(t, seen[p], "duplicate participant %q", p)
		seen[p] = true
	}
}
