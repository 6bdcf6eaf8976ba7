package coordinator

import "github.com/preston-bernstein/team-matches-service/internal/domain/matches"

// Subscribe registers fn to be called with every published snapshot.
// Callbacks run on the refresh goroutine and must not block.
func (c *Coordinator) Subscribe(fn func(*matches.Snapshot)) (unsubscribe func()) {
	c.subsMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subsMu.Unlock()

	return func() {
		c.subsMu.Lock()
		delete(c.subs, id)
		c.subsMu.Unlock()
	}
}

func (c *Coordinator) notify(snap *matches.Snapshot) {
	c.subsMu.RLock()
	fns := make([]func(*matches.Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.RUnlock()

	for _, fn := range fns {
		fn(snap)
	}
}
