package resilience

import "sync"

// SingleFlight collapses concurrent calls that share a key into one
// execution; waiters receive the leader's result. The zero value is ready
// to use. The third return value reports whether the result was shared.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightCall
}

type flightCall struct {
	done    chan struct{}
	waiters int
	val     any
	err     error
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flightCall)
	}
	if existing, ok := g.inflight[key]; ok {
		existing.waiters++
		g.mu.Unlock()
		<-existing.done
		return existing.val, existing.err, true
	}

	leader := &flightCall{done: make(chan struct{})}
	g.inflight[key] = leader
	g.mu.Unlock()

	leader.val, leader.err = fn()
	close(leader.done)

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return leader.val, leader.err, false
}
