package app

import (
	"sync"

	"github.com/rakaadi/storefront/internal/cart/domain"
)

// Snapshot is one immutable read of a user's bucket, published after every
// mutation.
type Snapshot struct {
	UserID string
	Items  domain.Bucket
	Totals domain.Totals
}

// publisher fans snapshots out to per-user subscribers. Sends never block
// the engine: a subscriber with a full channel misses intermediate
// snapshots and catches up on the next one.
type publisher struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan Snapshot
}

const subscriberBuffer = 8

func newPublisher() *publisher {
	return &publisher{
		subs: make(map[string]map[int]chan Snapshot),
	}
}

func (p *publisher) subscribe(userID string) (<-chan Snapshot, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan Snapshot, subscriberBuffer)
	id := p.nextID
	p.nextID++

	if p.subs[userID] == nil {
		p.subs[userID] = make(map[int]chan Snapshot)
	}
	p.subs[userID][id] = ch

	cancel := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if set, ok := p.subs[userID]; ok {
			if _, ok := set[id]; ok {
				delete(set, id)
				close(ch)
			}
			if len(set) == 0 {
				delete(p.subs, userID)
			}
		}
	}
	return ch, cancel
}

func (p *publisher) publish(userID string, bucket domain.Bucket) {
	snap := Snapshot{
		UserID: userID,
		Items:  bucket.Clone(),
		Totals: bucket.Totals(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ch := range p.subs[userID] {
		select {
		case ch <- snap:
		default:
		}
	}
}
