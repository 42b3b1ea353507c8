package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits liveness events while a long script or suite runs.
// Heartbeats without span ends point at a script stuck in a loop.
type Heartbeat struct {
	tracer Tracer
	every  time.Duration
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// StartHeartbeat returns nil when tracing is off or every is not positive.
// Stop on nil is a no-op.
func StartHeartbeat(t Tracer, every time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || every <= 0 {
		return nil
	}
	h := &Heartbeat{tracer: t, every: every, done: make(chan struct{})}
	h.wg.Add(1)
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer h.wg.Done()
	tick := time.NewTicker(h.every)
	defer tick.Stop()
	gid := goroutineID()
	for n := 1; ; n++ {
		select {
		case now := <-tick.C:
			h.tracer.Emit(&Event{
				Time:   now,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    gid,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(n),
			})
		case <-h.done:
			return
		}
	}
}

// Stop ends the loop and waits for it.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.done) })
	h.wg.Wait()
}
