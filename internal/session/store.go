package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/NigelSimon20/adnab-qr-code-app/internal/logging"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/qrtoken"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage"
)

// Snapshot is the state consumers observe: either the pre-mutation state or a
// fully-applied post-mutation state, never a partial update. User is a deep
// copy owned by the receiver.
type Snapshot struct {
	User      *User
	IsLoading bool
}

// Store is the session and inbox state manager. It owns the single User
// record in memory, hydrates it from the adapter at startup, and serializes
// every mutation.
//
// Two consistency policies coexist:
//
//   - write-then-publish for Login and Logout: the durable write is awaited
//     before the new state becomes visible, so an identity change never
//     claims success while unpersisted;
//   - publish-then-write for RegenerateQRToken and MarkNotificationAsRead:
//     the new state is visible immediately and the durable write is queued
//     fire-and-forget. A crash before the flush loses the latest token or
//     read-state; that window is accepted.
//
// All durable writes, awaited or not, flow through one background writer in
// enqueue order, which is the sole serialization point for the durable key.
// Construct one Store per process and inject it into consumers.
type Store struct {
	adapter storage.Adapter
	tokens  *qrtoken.Generator
	log     logging.Logger
	now     func() time.Time
	newID   func() string

	mu     sync.Mutex // serializes mutations and state publication
	state  Snapshot
	closed bool

	subMu   sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int

	writes  chan writeJob
	pending atomic.Int64 // dirty counter: queued writes not yet settled
	wg      sync.WaitGroup
}

type writeOp int

const (
	opSet writeOp = iota
	opRemove
	opBarrier
)

type writeJob struct {
	op    writeOp
	value []byte
	reply chan error // nil for fire-and-forget
}

// Option customizes a Store.
type Option func(*Store)

// WithClock injects the time source used for ids-adjacent timestamps and QR
// tokens. Tests use it to step the clock deterministically.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
		s.tokens = &qrtoken.Generator{Now: now}
	}
}

// WithIDGenerator injects the user-id generator. The default is a random
// UUID per login.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore builds a Store over the given adapter and starts its background
// writer. Call Close when done.
func NewStore(adapter storage.Adapter, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		tokens:  qrtoken.New(),
		log:     log.With("component", "session"),
		now:     time.Now,
		newID:   uuid.NewString,
		state:   Snapshot{IsLoading: true},
		subs:    make(map[int]chan Snapshot),
		writes:  make(chan writeJob, 64),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.wg.Add(1)
	go s.runWriter()
	return s
}

// runWriter applies queued durable writes in order. Failures of awaited jobs
// go back to the caller; fire-and-forget failures are logged and the
// in-memory state is left standing.
func (s *Store) runWriter() {
	defer s.wg.Done()
	ctx := context.Background()
	for job := range s.writes {
		var err error
		switch job.op {
		case opSet:
			err = s.adapter.Set(ctx, StorageKey, job.value)
		case opRemove:
			err = s.adapter.Remove(ctx, StorageKey)
		case opBarrier:
			// Nothing to do: reaching the barrier proves every earlier
			// write has been applied.
		}
		s.pending.Add(-1)
		if job.reply != nil {
			job.reply <- err
		} else if err != nil {
			s.log.Error(ctx, "background persistence write failed", "err", err)
		}
	}
}

// enqueueLocked queues a write job. Callers hold s.mu.
func (s *Store) enqueueLocked(job writeJob) error {
	if s.closed {
		return ErrClosed
	}
	s.pending.Add(1)
	s.writes <- job
	return nil
}

// writeAwaitLocked queues a job and waits for the writer to apply it. The
// wait is unconditional: the writer applies every queued job exactly once, so
// abandoning the await early would let the durable record change while the
// caller reports failure and leaves the published state untouched. Callers
// hold s.mu; the writer never takes s.mu while applying, so this cannot
// deadlock, and the queue is drained before shutdown, so the reply always
// arrives.
func (s *Store) writeAwaitLocked(op writeOp, value []byte) error {
	reply := make(chan error, 1)
	if err := s.enqueueLocked(writeJob{op: op, value: value, reply: reply}); err != nil {
		return err
	}
	return <-reply
}

// publishLocked installs next as the current snapshot and fans it out to
// subscribers. Callers hold s.mu.
func (s *Store) publishLocked(next Snapshot) {
	s.state = next

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- Snapshot{User: next.User.Clone(), IsLoading: next.IsLoading}:
		default:
			// Slow consumer: drop the tick. Snapshot() always returns the
			// latest state, so nothing is lost permanently, and a stalled
			// subscriber can never block the mutation path.
		}
	}
}

// Initialize hydrates the session from durable storage. It is invoked once
// per process lifetime. Storage and decode failures are logged and resolved
// as "no session"; IsLoading is cleared unconditionally on completion.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publishLocked(Snapshot{User: nil, IsLoading: true})
	user := s.loadUserLocked(ctx)
	s.publishLocked(Snapshot{User: user, IsLoading: false})
}

func (s *Store) loadUserLocked(ctx context.Context) *User {
	raw, err := s.adapter.Get(ctx, StorageKey)
	if err != nil {
		s.log.Error(ctx, "failed to read session record", "err", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	user, migrated, err := decodeUser(raw, s.now())
	if err != nil {
		// Corrupt or unrecoverable legacy payload: discard the session and
		// stay usable unauthenticated.
		s.log.Error(ctx, "discarding undecodable session record", "err", err)
		return nil
	}
	if migrated {
		data, err := user.encode()
		if err != nil {
			s.log.Error(ctx, "failed to encode migrated session record", "err", err)
			return user
		}
		if err := s.writeAwaitLocked(opSet, data); err != nil {
			s.log.Error(ctx, "failed to persist migrated session record", "err", err)
		}
	}
	return user
}

// Login creates a fresh session for name. The record is persisted before the
// new state is published: on write failure no in-memory change happens and
// the error is returned to the caller. The durable write runs to completion
// regardless of ctx, so a canceled caller never leaves a persisted record
// that was never published.
func (s *Store) Login(ctx context.Context, name, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	user := &User{
		ID:               s.newID(),
		Name:             name,
		CredentialSecret: credential,
		QRToken:          qrtoken.Token(name, now),
		Notifications:    starterInbox(name, now),
	}
	data, err := user.encode()
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := s.writeAwaitLocked(opSet, data); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	s.publishLocked(Snapshot{User: user, IsLoading: false})
	return nil
}

// Logout removes the durable record, then clears the in-memory session. On
// removal failure the session stays in memory and the error is returned, so
// memory and durable state cannot diverge. As with Login, the removal runs to
// completion regardless of ctx.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return ErrNotSignedIn
	}
	if err := s.writeAwaitLocked(opRemove, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.publishLocked(Snapshot{User: nil, IsLoading: false})
	return nil
}

// RegenerateQRToken computes a new token, publishes it immediately, and
// queues the durable write without waiting on it. Returns the new token, or
// "" when signed out.
func (s *Store) RegenerateQRToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.state.User
	if user == nil {
		return ""
	}
	next := user.Clone()
	next.QRToken = s.tokens.Token(user.Name)
	s.publishLocked(Snapshot{User: next, IsLoading: false})
	s.persistAsyncLocked(next)
	return next.QRToken
}

// MarkNotificationAsRead flips the read flag on one inbox entry and queues
// the durable write. Unknown or already-read ids are an idempotent no-op:
// nothing is republished and nothing is written.
func (s *Store) MarkNotificationAsRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.state.User
	if user == nil {
		return
	}
	target := user.Notification(id)
	if target == nil || target.Read {
		return
	}
	next := user.Clone()
	next.Notification(id).Read = true
	s.publishLocked(Snapshot{User: next, IsLoading: false})
	s.persistAsyncLocked(next)
}

// persistAsyncLocked queues a fire-and-forget write of user. Callers hold
// s.mu and have already published the optimistic state; failures surface only
// in the writer's log.
func (s *Store) persistAsyncLocked(user *User) {
	data, err := user.encode()
	if err != nil {
		s.log.Error(context.Background(), "failed to encode session record", "err", err)
		return
	}
	if err := s.enqueueLocked(writeJob{op: opSet, value: data}); err != nil {
		s.log.Error(context.Background(), "dropping write for closed store", "err", err)
	}
}

// Snapshot returns the current state. The contained User is a deep copy.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{User: s.state.User.Clone(), IsLoading: s.state.IsLoading}
}

// UnreadCount derives the unread-notification count from the current
// snapshot. Zero when signed out.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User.UnreadCount()
}

// Subscribe registers a consumer. Every published snapshot is offered to the
// returned channel; ticks to a full channel are dropped. The cancel func
// unregisters and closes the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 8)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Dirty reports whether queued durable writes have not yet settled.
func (s *Store) Dirty() bool {
	return s.pending.Load() > 0
}

// Flush blocks until every write queued before the call has been applied.
// It is the hook a retry or reconciliation pass would build on. The barrier
// is enqueued under the mutex but awaited outside it, so readers never block
// behind a flush; a barrier carries no state, so honoring ctx here cannot
// cause divergence.
func (s *Store) Flush(ctx context.Context) error {
	reply := make(chan error, 1)
	s.mu.Lock()
	err := s.enqueueLocked(writeJob{op: opBarrier, reply: reply})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes the write queue and stops the background writer. The store
// rejects mutations afterwards.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.writes)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
