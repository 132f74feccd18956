package internal

// Cursor tracks how many interaction records of the active session have
// already been turned into transcript entries. It is the only state
// that decides whether an interaction was seen: deduplication is by
// position, never by content, because the remote pipeline may
// legitimately repeat identical text across steps.
type Cursor struct {
	SessionID    string
	EmittedCount int
}

// NewCursor creates a cursor with no active session.
func NewCursor() *Cursor {
	return &Cursor{}
}

// Advance returns the half-open range [from, to) of interaction indices
// that have not been emitted yet, then records them as emitted. When
// observed is not greater than the emitted count the range is empty and
// the cursor is untouched, so calling Advance twice with the same or a
// smaller count never re-emits.
func (c *Cursor) Advance(observed int) (from, to int) {
	if observed <= c.EmittedCount {
		return c.EmittedCount, c.EmittedCount
	}
	from = c.EmittedCount
	to = observed
	c.EmittedCount = observed
	return from, to
}

// Reset points the cursor at a new session and zeroes the emitted
// count. Used on first discovery and on session hand-off.
func (c *Cursor) Reset(sessionID string) {
	c.SessionID = sessionID
	c.EmittedCount = 0
}
