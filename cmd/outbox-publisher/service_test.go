package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/nairmotors/dealerbook-backend/pkg/config"
	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
)

type fakeRepo struct {
	events    []models.OutboxEvent
	published []uuid.UUID
	failed    []uuid.UUID
}

func (f *fakeRepo) FetchUnpublished(limit int) ([]models.OutboxEvent, error) {
	if limit < len(f.events) {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func (f *fakeRepo) MarkPublished(id uuid.UUID) error {
	f.published = append(f.published, id)
	return nil
}

func (f *fakeRepo) MarkFailed(id uuid.UUID, _ error) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakePublishResult struct {
	err error
}

func (f fakePublishResult) Get(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "msg-1", nil
}

type fakePublisher struct {
	failFor  map[uuid.UUID]error
	attempts int
}

func (f *fakePublisher) Publish(_ context.Context, msg *gcppubsub.Message) publishResult {
	f.attempts++
	id := uuid.MustParse(msg.Attributes["aggregate_id"])
	if err, ok := f.failFor[id]; ok {
		return fakePublishResult{err: err}
	}
	return fakePublishResult{}
}

func testEvent(aggregateID uuid.UUID) models.OutboxEvent {
	return models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.EventPurchaseRecorded,
		AggregateType: enums.AggregatePurchase,
		AggregateID:   aggregateID,
		Payload:       []byte(`{"version":1}`),
	}
}

func newTestService(t *testing.T, repo *fakeRepo, pub publisher) *Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "outbox-test", Output: io.Discard})
	svc, err := NewService(ServiceParams{
		Config:     &config.Config{},
		Logger:     logg,
		Repository: repo,
		Publisher:  pub,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestProcessBatchPublishesAndMarks(t *testing.T) {
	first := testEvent(uuid.New())
	second := testEvent(uuid.New())
	repo := &fakeRepo{events: []models.OutboxEvent{first, second}}
	svc := newTestService(t, repo, &fakePublisher{})

	processed, err := svc.processBatch(context.Background())
	if err != nil {
		t.Fatalf("process batch: %v", err)
	}
	if !processed {
		t.Fatal("expected batch to report progress")
	}
	if len(repo.published) != 2 {
		t.Fatalf("expected 2 published, got %d", len(repo.published))
	}
	if len(repo.failed) != 0 {
		t.Fatalf("expected no failures, got %d", len(repo.failed))
	}
}

func TestProcessBatchContinuesAfterFailure(t *testing.T) {
	failing := testEvent(uuid.New())
	healthy := testEvent(uuid.New())
	repo := &fakeRepo{events: []models.OutboxEvent{failing, healthy}}
	pub := &fakePublisher{failFor: map[uuid.UUID]error{
		failing.AggregateID: errors.New("broker unavailable"),
	}}
	svc := newTestService(t, repo, pub)

	processed, err := svc.processBatch(context.Background())
	if err != nil {
		t.Fatalf("process batch: %v", err)
	}
	if !processed {
		t.Fatal("expected batch to report progress")
	}
	if len(repo.failed) != 1 || repo.failed[0] != failing.ID {
		t.Fatalf("expected the failing event marked failed, got %v", repo.failed)
	}
	if len(repo.published) != 1 || repo.published[0] != healthy.ID {
		t.Fatalf("expected the healthy event published, got %v", repo.published)
	}
}

func TestProcessBatchEmptyQueue(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	svc := newTestService(t, repo, pub)

	processed, err := svc.processBatch(context.Background())
	if err != nil {
		t.Fatalf("process batch: %v", err)
	}
	if processed {
		t.Fatal("expected no progress on an empty queue")
	}
	if pub.attempts != 0 {
		t.Fatalf("expected no publish attempts, got %d", pub.attempts)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo, &fakePublisher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNextBackoffDoublesUpToCeiling(t *testing.T) {
	base := 500 * time.Millisecond
	ceiling := 2 * time.Second

	if got := nextBackoff(base, base, ceiling); got != time.Second {
		t.Fatalf("expected backoff to double, got %v", got)
	}
	if got := nextBackoff(1500*time.Millisecond, base, ceiling); got != ceiling {
		t.Fatalf("expected backoff capped at ceiling, got %v", got)
	}
}
