package storageconfig

import (
	"context"
	"sync"

	"github.com/goliatone/go-glossary/pkg/storage"
)

// ChangeType names the kind of profile mutation an event reports.
type ChangeType string

const (
	// ChangeCreated marks the first write of a profile name.
	ChangeCreated ChangeType = "created"
	// ChangeUpdated marks a write over an existing profile.
	ChangeUpdated ChangeType = "updated"
	// ChangeDeleted marks a profile removal.
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent carries a profile mutation to subscribers. Profile is a private
// copy; receivers may mutate it freely.
type ChangeEvent struct {
	Type    ChangeType
	Profile storage.Profile
}

// changeBroadcaster fans profile change events out to subscribers. Sends never
// block: a subscriber that stops draining its channel misses events instead of
// stalling profile writes.
type changeBroadcaster struct {
	mu          sync.Mutex
	subscribers map[int]chan ChangeEvent
	next        int
}

func newChangeBroadcaster() *changeBroadcaster {
	return &changeBroadcaster{
		subscribers: make(map[int]chan ChangeEvent),
	}
}

// Subscribe registers a listener that receives events until ctx is cancelled.
func (b *changeBroadcaster) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	ch := make(chan ChangeEvent, 8)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subscribers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subscribers, id)
		b.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

// Broadcast delivers the event to every active subscriber.
func (b *changeBroadcaster) Broadcast(event ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
