package memoryengine

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	logMsgTxRolledBack = "memory store: transaction rolled back"
	logMsgTxCommitted  = "memory store: transaction committed"
	logAttrError       = "error"
	logAttrOperation   = "operation"
	operationReadTx    = "read_tx"
	operationWriteTx   = "write_tx"
)

// Store is the in-memory circulation store.
type Store struct {
	mu               sync.Mutex
	committed        *state
	clock            func() time.Time
	logger           circulation.Logger
	contextualLogger circulation.ContextualLogger
}

type state struct {
	authors   map[uuid.UUID]circulation.Author
	books     map[uuid.UUID]circulation.Book
	users     map[uuid.UUID]circulation.LibraryUser
	loans     map[uuid.UUID]circulation.Loan
	payments  map[uuid.UUID]circulation.Payment
	events    []circulation.StorableEvent
	memberSeq int
}

func newState() *state {
	return &state{
		authors:  make(map[uuid.UUID]circulation.Author),
		books:    make(map[uuid.UUID]circulation.Book),
		users:    make(map[uuid.UUID]circulation.LibraryUser),
		loans:    make(map[uuid.UUID]circulation.Loan),
		payments: make(map[uuid.UUID]circulation.Payment),
		events:   make([]circulation.StorableEvent, 0),
	}
}

func (st *state) clone() *state {
	return &state{
		authors:   maps.Clone(st.authors),
		books:     maps.Clone(st.books),
		users:     maps.Clone(st.users),
		loans:     maps.Clone(st.loans),
		payments:  maps.Clone(st.payments),
		events:    slices.Clone(st.events),
		memberSeq: st.memberSeq,
	}
}

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithClock replaces time.Now for the timestamps the store sets.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) error {
		s.clock = clock
		return nil
	}
}

// WithLogger sets the logger for the Store.
func WithLogger(logger circulation.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store. It is preferred over the plain logger.
func WithContextualLogger(logger circulation.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// NewStore creates an empty in-memory store.
func NewStore(options ...Option) (*Store, error) {
	s := &Store{
		committed: newState(),
		clock:     time.Now,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// WithinTx runs fn against a copy of the state and commits the copy if fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn circulation.TxFunc) error {
	return s.runTx(ctx, operationWriteTx, fn, true)
}

// WithinReadTx runs fn against a copy of the state that is always discarded.
func (s *Store) WithinReadTx(ctx context.Context, fn circulation.TxFunc) error {
	return s.runTx(ctx, operationReadTx, fn, false)
}

// Ping reports whether the context is still alive; there is no connection to check.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Migrate is a no-op, the in-memory store has no schema.
func (s *Store) Migrate(_ context.Context) error {
	return nil
}

func (s *Store) runTx(ctx context.Context, operation string, fn circulation.TxFunc, commit bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, st: s.committed.clone(), now: s.clock().UTC()}

	if err := fn(ctx, tx); err != nil {
		s.logDebug(ctx, logMsgTxRolledBack, logAttrOperation, operation, logAttrError, err.Error())
		return err
	}

	if commit {
		s.committed = tx.st
	}

	s.logDebug(ctx, logMsgTxCommitted, logAttrOperation, operation)

	return nil
}

func (s *Store) logDebug(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Store) logError(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

var _ circulation.Store = (*Store)(nil)
