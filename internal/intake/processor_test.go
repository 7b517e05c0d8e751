package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dispatch-platform-go/internal/apperr"
	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/service/orders"
)

type stubCreator struct {
	createFn func(ctx context.Context, in orders.CreateInput) (*domain.Order, error)
	calls    int
}

func (s *stubCreator) Create(ctx context.Context, in orders.CreateInput) (*domain.Order, error) {
	s.calls++
	if s.createFn == nil {
		return &domain.Order{ID: "o1", Status: domain.StatusPrep}, nil
	}
	return s.createFn(ctx, in)
}

type stubDeduper struct {
	firstSeenFn func(ctx context.Context, id string) (bool, error)
}

func (s *stubDeduper) FirstSeen(ctx context.Context, id string) (bool, error) {
	if s.firstSeenFn == nil {
		return true, nil
	}
	return s.firstSeenFn(ctx, id)
}

func createdEvent() Event {
	return Event{
		EventID:       "ev-1",
		OrderID:       "upstream-7",
		Status:        "created",
		CustomerName:  "Anna",
		CustomerPhone: "+79990001122",
		Address:       "Lenina 1",
		PrepMinutes:   20,
		Items:         []Item{{Name: "pizza", Quantity: 1, UnitPrice: 10}},
		CreatedAt:     time.Now().UTC(),
	}
}

func TestProcessor_Handle_CreatedCreatesOrder(t *testing.T) {
	t.Parallel()

	var got orders.CreateInput
	creator := &stubCreator{
		createFn: func(_ context.Context, in orders.CreateInput) (*domain.Order, error) {
			got = in
			return &domain.Order{ID: "o1"}, nil
		},
	}
	p := NewProcessor(creator, &stubDeduper{}, nil, nil)

	err := p.Handle(context.Background(), createdEvent())
	require.NoError(t, err)
	require.Equal(t, 1, creator.calls)
	require.Len(t, got.Items, 1)
	require.Equal(t, "pizza", got.Items[0].Name)
	require.Equal(t, "Anna", got.CustomerName)
	require.Equal(t, 20, got.PrepMinutes)
}

func TestProcessor_Handle_UnknownStatusIgnored(t *testing.T) {
	t.Parallel()

	creator := &stubCreator{}
	p := NewProcessor(creator, &stubDeduper{}, nil, nil)

	for _, status := range []string{"canceled", "completed", "COOKING", "  "} {
		ev := createdEvent()
		ev.Status = status
		require.NoError(t, p.Handle(context.Background(), ev))
	}
	require.Zero(t, creator.calls)
}

func TestProcessor_Handle_DuplicateSkipped(t *testing.T) {
	t.Parallel()

	creator := &stubCreator{}
	dedup := &stubDeduper{
		firstSeenFn: func(_ context.Context, id string) (bool, error) {
			require.Equal(t, "ev-1", id)
			return false, nil
		},
	}
	p := NewProcessor(creator, dedup, nil, nil)

	require.NoError(t, p.Handle(context.Background(), createdEvent()))
	require.Zero(t, creator.calls)
}

func TestProcessor_Handle_DedupFallsBackToOrderID(t *testing.T) {
	t.Parallel()

	var seen string
	dedup := &stubDeduper{
		firstSeenFn: func(_ context.Context, id string) (bool, error) {
			seen = id
			return true, nil
		},
	}
	p := NewProcessor(&stubCreator{}, dedup, nil, nil)

	ev := createdEvent()
	ev.EventID = ""
	require.NoError(t, p.Handle(context.Background(), ev))
	require.Equal(t, "upstream-7", seen)
}

func TestProcessor_Handle_MissingIDsInvalid(t *testing.T) {
	t.Parallel()

	creator := &stubCreator{}
	p := NewProcessor(creator, &stubDeduper{}, nil, nil)

	ev := createdEvent()
	ev.EventID = ""
	ev.OrderID = ""
	err := p.Handle(context.Background(), ev)
	require.ErrorIs(t, err, apperr.ErrInvalid)
	require.Zero(t, creator.calls)
}

func TestProcessor_Handle_DedupErrorRetries(t *testing.T) {
	t.Parallel()

	boom := errors.New("redis down")
	dedup := &stubDeduper{
		firstSeenFn: func(_ context.Context, _ string) (bool, error) {
			return false, boom
		},
	}
	p := NewProcessor(&stubCreator{}, dedup, nil, nil)

	err := p.Handle(context.Background(), createdEvent())
	require.ErrorIs(t, err, boom)
}

func TestProcessor_Handle_NilDeduperProcessesEverything(t *testing.T) {
	t.Parallel()

	creator := &stubCreator{}
	p := NewProcessor(creator, nil, nil, nil)

	require.NoError(t, p.Handle(context.Background(), createdEvent()))
	require.NoError(t, p.Handle(context.Background(), createdEvent()))
	require.Equal(t, 2, creator.calls)
}

func TestProcessor_Handle_InvalidOrderRejected(t *testing.T) {
	t.Parallel()

	creator := &stubCreator{
		createFn: func(_ context.Context, _ orders.CreateInput) (*domain.Order, error) {
			return nil, apperr.ErrInvalid
		},
	}
	p := NewProcessor(creator, &stubDeduper{}, nil, nil)

	err := p.Handle(context.Background(), createdEvent())
	require.ErrorIs(t, err, apperr.ErrInvalid)
}
