// Package listquery owns the search/pagination state of one admin list
// screen and coalesces rapid search input into single change events.
package listquery

import (
	"sync"
	"time"

	"github.com/eventra-live/eventra-admin-api/pkg/console/page"
)

// DefaultDebounceWindow matches the quiet period the console uses for
// search-as-you-type input.
const DefaultDebounceWindow = 500 * time.Millisecond

// Change is emitted whenever the query changes in a way that requires a
// re-fetch. Generation increases monotonically; responses carrying a stale
// generation must be discarded by the consumer.
type Change struct {
	Query      page.Query
	Generation uint64
}

// Controller tracks the current list query. Search text changes are
// debounced; page and filter changes fire immediately. Filter and search
// changes reset the page to 1, pure page navigation never does.
type Controller struct {
	mu         sync.Mutex
	query      page.Query
	pending    string
	window     time.Duration
	timer      *time.Timer
	generation uint64
	changes    chan Change
	closed     bool
}

// New builds a controller around the initial query. A non-positive window
// falls back to DefaultDebounceWindow.
func New(initial page.Query, window time.Duration) *Controller {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	q := initial.Normalized()
	// Own a copy so SetFilter never mutates the caller's map.
	filters := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		filters[k] = v
	}
	q.Filters = filters
	return &Controller{
		query:   q,
		pending: q.Search,
		window:  window,
		changes: make(chan Change, 16),
	}
}

// Changes returns the notification channel. Events may be coalesced when the
// consumer lags; the newest event always survives.
func (c *Controller) Changes() <-chan Change {
	return c.changes
}

// Query returns a snapshot of the committed query.
func (c *Controller) Query() page.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// PendingSearch returns the search text as typed, including text still
// waiting out the quiet period.
func (c *Controller) PendingSearch() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Generation returns the generation of the most recent change.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Latest reports whether gen still identifies the newest issued change.
func (c *Controller) Latest(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.generation
}

// SetSearch records the typed text immediately but only commits it, resets
// the page to 1 and emits a change after the quiet period elapses with no
// further calls.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pending = text
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, func() {
		c.commitSearch(text)
	})
}

// SetPage switches to page n and emits a change synchronously. Asking for
// the current page is a no-op.
func (c *Controller) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || n == c.query.Page {
		return
	}
	c.query.Page = n
	c.emit()
}

// SetFilter updates one extra filter, resets the page to 1 and emits a
// change synchronously. An empty value removes the filter.
func (c *Controller) SetFilter(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if value == "" {
		delete(c.query.Filters, key)
	} else {
		c.query.Filters[key] = value
	}
	c.query.Page = 1
	c.emit()
}

// SyncPage adopts the server-reported page without emitting a change. Used
// after a fetch, since the server is authoritative for clamping.
func (c *Controller) SyncPage(n int) {
	if n < 1 {
		n = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.Page = n
}

// Close stops the debounce timer and closes the change channel.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	close(c.changes)
}

func (c *Controller) commitSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || text != c.pending {
		return
	}
	c.query.Search = text
	c.query.Page = 1
	c.emit()
}

// emit must be called with the lock held.
func (c *Controller) emit() {
	c.generation++
	ch := Change{Query: c.snapshot(), Generation: c.generation}
	select {
	case c.changes <- ch:
	default:
		// Full buffer: drop the oldest pending change, the newest wins.
		select {
		case <-c.changes:
		default:
		}
		select {
		case c.changes <- ch:
		default:
		}
	}
}

// snapshot must be called with the lock held.
func (c *Controller) snapshot() page.Query {
	q := c.query
	q.Filters = make(map[string]string, len(c.query.Filters))
	for k, v := range c.query.Filters {
		q.Filters[k] = v
	}
	return q
}
