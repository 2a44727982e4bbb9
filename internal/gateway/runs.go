package gateway

import (
	"sync"
	"time"

	"apismith/internal/batch"
)

const (
	eventApp     = "app"
	eventRunDone = "done"

	statusRunning = "running"
	statusDone    = "done"
)

// Event is one progress frame for a run. App events carry the result of
// a single application; the terminal done event carries the report.
type Event struct {
	Event  string           `json:"event"`
	RunID  string           `json:"run_id"`
	Result *batch.AppResult `json:"result,omitempty"`
	Report *batch.Report    `json:"report,omitempty"`
}

// runState tracks one batch run and fans events out to subscribers.
// History is replayed to late subscribers so SSE clients that connect
// after the first application still see every frame.
type runState struct {
	ID        string
	Apps      []string
	StartedAt time.Time

	mu      sync.Mutex
	status  string
	report  *batch.Report
	history []Event
	subs    map[chan Event]struct{}
}

func newRunState(id string, apps []string) *runState {
	return &runState{
		ID:        id,
		Apps:      apps,
		StartedAt: time.Now(),
		status:    statusRunning,
		subs:      make(map[chan Event]struct{}),
	}
}

func (st *runState) publish(evt Event) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.history = append(st.history, evt)
	if evt.Event == eventRunDone {
		st.status = statusDone
		st.report = evt.Report
	}
	for ch := range st.subs {
		pushEvent(ch, evt)
	}
}

// subscribe returns a channel pre-filled with the run's history and a
// cancel func that detaches and closes it. Publishing and cancel share
// the state mutex, so a send on a closed channel cannot happen.
func (st *runState) subscribe() (chan Event, func()) {
	st.mu.Lock()
	defer st.mu.Unlock()
	ch := make(chan Event, len(st.history)+32)
	for _, evt := range st.history {
		ch <- evt
	}
	st.subs[ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			st.mu.Lock()
			delete(st.subs, ch)
			close(ch)
			st.mu.Unlock()
		})
	}
	return ch, cancel
}

type runSnapshot struct {
	RunID     string        `json:"run_id"`
	Apps      []string      `json:"apps"`
	Status    string        `json:"status"`
	StartedAt time.Time     `json:"started_at"`
	Report    *batch.Report `json:"report,omitempty"`
}

func (st *runState) snapshot() runSnapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return runSnapshot{
		RunID:     st.ID,
		Apps:      append([]string(nil), st.Apps...),
		Status:    st.status,
		StartedAt: st.StartedAt,
		Report:    st.report,
	}
}

// pushEvent delivers without blocking the publisher: when a subscriber
// lags, its oldest frame is dropped to make room.
func pushEvent(ch chan Event, evt Event) {
	select {
	case ch <- evt:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- evt:
	default:
	}
}

type registry struct {
	mu   sync.RWMutex
	runs map[string]*runState
}

func newRegistry() *registry {
	return &registry{runs: make(map[string]*runState)}
}

func (r *registry) create(id string, apps []string) *runState {
	st := newRunState(id, apps)
	r.mu.Lock()
	r.runs[id] = st
	r.mu.Unlock()
	return st
}

func (r *registry) get(id string) (*runState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.runs[id]
	return st, ok
}

func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runs)
}
