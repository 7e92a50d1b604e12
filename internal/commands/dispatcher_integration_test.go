package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// These tests push messages through the real dispatcher and retry runner
// instead of calling Execute directly, so subscription wiring and retry
// behaviour get covered end to end. Each scenario owns a message type because
// subscriptions land on the package-level dispatcher.

type reindexPing struct{ Slug string }

func (reindexPing) Type() string    { return "glossary.test.reindex_ping" }
func (reindexPing) Validate() error { return nil }

type purgeSweep struct{ Directory string }

func (purgeSweep) Type() string    { return "glossary.test.purge_sweep" }
func (purgeSweep) Validate() error { return nil }

type malformedSweep struct{}

func (malformedSweep) Type() string    { return "glossary.test.malformed_sweep" }
func (malformedSweep) Validate() error { return errors.New("directory missing") }

func TestDispatchRecoversFromTransientFailure(t *testing.T) {
	t.Parallel()

	attempts := 0
	handler := NewHandler(func(context.Context, reindexPing) error {
		attempts++
		if attempts < 2 {
			return errors.New("index shard busy")
		}
		return nil
	}, WithTimeout[reindexPing](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), reindexPing{Slug: "packet-filter"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
}

func TestDispatchFailsAfterRetriesExhausted(t *testing.T) {
	t.Parallel()

	attempts := 0
	handler := NewHandler(func(context.Context, purgeSweep) error {
		attempts++
		return errors.New("repository offline")
	}, WithTimeout[purgeSweep](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), purgeSweep{Directory: "stale"}); err == nil {
		t.Fatal("Dispatch: want error after final retry, got nil")
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3 (first try plus two retries)", attempts)
	}
}

func TestDispatchStopsInvalidMessagesBeforeExecution(t *testing.T) {
	t.Parallel()

	executed := 0
	handler := NewHandler(func(context.Context, malformedSweep) error {
		executed++
		return nil
	})

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), malformedSweep{}); err == nil {
		t.Fatal("Dispatch: want validation error, got nil")
	}
	if executed != 0 {
		t.Fatalf("executed = %d, want 0: invalid messages must never reach the function", executed)
	}
}
