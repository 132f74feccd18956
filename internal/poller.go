package internal

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// PollerState is the lifecycle state of a Poller.
type PollerState int

const (
	StateIdle PollerState = iota
	StateDiscovering
	StatePolling
	StateCompleted
	StateCancelled
)

func (s PollerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDiscovering:
		return "discovering"
	case StatePolling:
		return "polling"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// DefaultPollInterval is the period between session fetches and
// discovery probes.
const DefaultPollInterval = time.Second

// Poller drives periodic re-fetch of a remote session and incrementally
// reveals new interaction records as transcript entries. All state
// mutation happens on the single loop goroutine; the mutex only guards
// reads from other goroutines. Transient fetch failures are logged and
// retried on the next tick, never surfaced to the transcript.
type Poller struct {
	client *Client

	// Tunable periods; tests shrink these. Zero values fall back to
	// the package defaults at Start.
	PollInterval time.Duration
	InputDelay   time.Duration
	OutputDelay  time.Duration

	mu         sync.Mutex
	state      PollerState
	cursor     *Cursor
	transcript []TranscriptEntry
	discovered bool
	cancel     context.CancelFunc
	done       chan struct{}
	onChange   func()
}

// NewPoller creates an idle poller bound to a transport client.
func NewPoller(client *Client) *Poller {
	return &Poller{
		client:       client,
		PollInterval: DefaultPollInterval,
		InputDelay:   InputEntryDelay,
		OutputDelay:  OutputEntryDelay,
		cursor:       NewCursor(),
		done:         closedChan(),
	}
}

// OnChange registers a callback fired after every transcript append.
// It runs on the poll loop goroutine and must be set before Start.
func (p *Poller) OnChange(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = fn
}

// Start begins a polling round. An empty sessionID enters discovery;
// otherwise the cursor is reset to the given id and polling begins
// directly. The transcript is rebuilt from scratch on every Start.
// Returns an error if a round is already running.
func (p *Poller) Start(ctx context.Context, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateDiscovering || p.state == StatePolling {
		return fmt.Errorf("poller already running (state %s)", p.state)
	}

	p.transcript = nil
	p.cursor = NewCursor()
	p.discovered = sessionID == ""
	if sessionID == "" {
		p.state = StateDiscovering
	} else {
		p.cursor.Reset(sessionID)
		p.state = StatePolling
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	done := p.done
	go func() {
		defer cancel()
		p.run(runCtx, done)
	}()
	return nil
}

// Cancel stops the current round. In-flight requests and pending pacing
// delays resolve against the cancelled context and apply nothing.
func (p *Poller) Cancel() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Done returns a channel closed when the current round's loop exits.
func (p *Poller) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// State returns the current lifecycle state.
func (p *Poller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// InProgress reports whether a round is actively discovering or polling.
func (p *Poller) InProgress() bool {
	s := p.State()
	return s == StateDiscovering || s == StatePolling
}

// SessionID returns the id of the actively polled session, or "" while
// discovering.
func (p *Poller) SessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor.SessionID
}

// Transcript returns a copy of the transcript entries so far.
func (p *Poller) Transcript() []TranscriptEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]TranscriptEntry, len(p.transcript))
	copy(out, p.transcript)
	return out
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.setState(StateCancelled)
			return
		case <-ticker.C:
			switch p.State() {
			case StateDiscovering:
				p.discoverTick(ctx)
			case StatePolling:
				if finished := p.pollTick(ctx); finished {
					return
				}
			}
		}
	}
}

func (p *Poller) discoverTick(ctx context.Context) {
	id, err := p.client.LatestSession(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		LogDebug("session discovery failed, will retry: %v", err)
		return
	}
	if id == "" {
		return
	}

	LogDebug("discovered session %s", id)
	p.mu.Lock()
	p.cursor.Reset(id)
	p.state = StatePolling
	p.mu.Unlock()
}

// pollTick runs one fetch-diff-synthesize cycle. It returns true when
// the session concluded and the loop should exit. The fetch and all
// synthesis happen inline, so a slow cycle can never overlap the next
// one; the ticker's buffered tick keeps the timer from being starved.
func (p *Poller) pollTick(ctx context.Context) bool {
	if p.wasDiscovered() {
		p.checkHandoff(ctx)
		if ctx.Err() != nil {
			return false
		}
	}

	snap, err := p.client.FetchSession(ctx, p.SessionID())
	if ctx.Err() != nil {
		// Cancelled mid-fetch; discard whatever resolved.
		return false
	}
	if err != nil {
		LogDebug("session fetch failed, will retry: %v", err)
		return false
	}

	p.mu.Lock()
	from, to := p.cursor.Advance(len(snap.AgentInteractions))
	p.mu.Unlock()

	for i := from; i < to; i++ {
		for _, entry := range SynthesizeEntries(snap.AgentInteractions[i], time.Now()) {
			p.append(entry)
			if !p.pause(ctx, p.entryDelay(entry.Kind)) {
				return false
			}
		}
	}

	if snap.FinalResult != nil {
		p.append(TerminalEntry(*snap.FinalResult, time.Now()))
		p.setState(StateCompleted)
		return true
	}
	return false
}

// checkHandoff re-probes discovery and, when a different session id has
// become current, resets the cursor to it. Only discovery-driven rounds
// can hand off; an explicitly provided session id is never replaced.
func (p *Poller) checkHandoff(ctx context.Context) {
	id, err := p.client.LatestSession(ctx)
	if err != nil || id == "" || ctx.Err() != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if id != p.cursor.SessionID {
		LogDebug("session hand-off: %s -> %s", p.cursor.SessionID, id)
		p.cursor.Reset(id)
	}
}

func (p *Poller) append(entry TranscriptEntry) {
	p.mu.Lock()
	p.transcript = append(p.transcript, entry)
	fn := p.onChange
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// pause sleeps for the pacing delay, returning false if cancelled.
func (p *Poller) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (p *Poller) entryDelay(kind EntryKind) time.Duration {
	switch kind {
	case EntryUser:
		return p.InputDelay
	case EntryAgent:
		return p.OutputDelay
	default:
		return 0
	}
}

func (p *Poller) setState(s PollerState) {
	p.mu.Lock()
	// Completion wins over a late cancel; the terminal entry was
	// already appended and no further work will run either way.
	if p.state == StateCompleted && s == StateCancelled {
		p.mu.Unlock()
		return
	}
	p.state = s
	p.mu.Unlock()
}

func (p *Poller) wasDiscovered() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.discovered
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
