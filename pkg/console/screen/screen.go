// Package screen composes a list query controller with the API client into
// the paginated table state every admin screen shares.
package screen

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/pkg/console/listquery"
	"github.com/eventra-live/eventra-admin-api/pkg/console/page"
)

// Phase tracks the list fetch state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseErrored
)

// Lister is the slice of the API client a screen needs.
type Lister interface {
	ListQuery(ctx context.Context, resource string, q page.Query) (page.Raw, error)
}

// Options tune a screen. Search seeds the initial query and skips the
// debounce, for callers that open a screen with a query already typed.
type Options struct {
	PageSize       int
	DebounceWindow time.Duration
	Search         string
	Filters        map[string]string
	Logger         *zap.Logger
}

// Screen owns the list state of one resource: its query controller, the
// current page result and the fetch phase. A fetch error resets the table to
// an empty first page; the previous query state is kept so the user can
// simply re-trigger. Responses that lost the race against a newer query are
// discarded.
type Screen[T any] struct {
	resource string
	api      Lister
	ctrl     *listquery.Controller
	logger   *zap.Logger

	mu     sync.Mutex
	phase  Phase
	result page.Result[T]
	err    error
}

// New builds an idle screen for the named resource.
func New[T any](resource string, api Lister, opts Options) *Screen[T] {
	if opts.PageSize < 1 {
		opts.PageSize = 10
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	initial := page.Query{Page: 1, PageSize: opts.PageSize, Search: opts.Search, Filters: opts.Filters}
	return &Screen[T]{
		resource: resource,
		api:      api,
		ctrl:     listquery.New(initial, opts.DebounceWindow),
		logger:   opts.Logger,
		result:   page.Empty[T](),
	}
}

// Controller exposes the query controller for search/page/filter input.
func (s *Screen[T]) Controller() *listquery.Controller {
	return s.ctrl
}

// Phase returns the current fetch phase.
func (s *Screen[T]) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Result returns the currently displayed page.
func (s *Screen[T]) Result() page.Result[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Err returns the error of the last failed fetch, nil after a success.
func (s *Screen[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Refresh fetches the current query immediately, outside any change event.
// Used for the initial load and after a successful modal submit.
func (s *Screen[T]) Refresh(ctx context.Context) error {
	return s.fetch(ctx, s.ctrl.Query(), s.ctrl.Generation())
}

// Run consumes controller changes until the context ends or the controller
// closes. Each change triggers one fetch carrying that change's generation.
func (s *Screen[T]) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-s.ctrl.Changes():
			if !ok {
				return
			}
			_ = s.fetch(ctx, change.Query, change.Generation)
		}
	}
}

func (s *Screen[T]) fetch(ctx context.Context, q page.Query, gen uint64) error {
	s.mu.Lock()
	s.phase = PhaseLoading
	s.mu.Unlock()

	raw, err := s.api.ListQuery(ctx, s.resource, q)

	if !s.ctrl.Latest(gen) {
		// A newer query was issued while this fetch was in flight.
		s.logger.Debug("discarding stale list response",
			zap.String("resource", s.resource), zap.Uint64("generation", gen))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.result = page.Empty[T]()
		s.phase = PhaseErrored
		s.err = err
		s.ctrl.SyncPage(1)
		s.logger.Warn("list fetch failed",
			zap.String("resource", s.resource), zap.Error(err))
		return err
	}

	result := page.Normalize[T](raw, q)
	s.result = result
	s.phase = PhaseLoaded
	s.err = nil
	s.ctrl.SyncPage(result.Page)
	return nil
}
