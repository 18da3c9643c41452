package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seatbook/seatbook-backend/internal/models"
	"github.com/seatbook/seatbook-backend/internal/services"
	"github.com/seatbook/seatbook-backend/internal/store"
)

// fakeIdentityStore is a test-only in-memory store.IdentityStore with error
// fields for behavior injection.
type fakeIdentityStore struct {
	mu        sync.Mutex
	users     map[string]*models.User // keyed by email hash
	nextID    int64
	createErr error
	getErr    error
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{users: make(map[string]*models.User), nextID: 1}
}

func (f *fakeIdentityStore) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.EmailHash]; ok {
		return store.ErrEmailTaken
	}
	user.ID = f.nextID
	f.nextID++
	user.IsProvisional = true
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.EmailHash] = &cp
	return nil
}

func (f *fakeIdentityStore) GetByEmailHash(ctx context.Context, emailHash string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[emailHash]
	if !ok {
		return nil, store.ErrIdentityNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeIdentityStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrIdentityNotFound
}

func (f *fakeIdentityStore) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeIdentityStore) MarkVerified(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			u.IsProvisional = false
			return nil
		}
	}
	return store.ErrIdentityNotFound
}

// fakeEventStore is a test-only in-memory store.EventStore.
type fakeEventStore struct {
	mu     sync.Mutex
	events map[int64]*models.Event
	nextID int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*models.Event), nextID: 1}
}

func (f *fakeEventStore) List(ctx context.Context) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Event
	for id := int64(1); id < f.nextID; id++ {
		if e, ok := f.events[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) Get(ctx context.Context, id int64) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, store.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventStore) Create(ctx context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.Name == event.Name {
			return store.ErrEventExists
		}
	}
	event.ID = f.nextID
	f.nextID++
	cp := *event
	f.events[event.ID] = &cp
	return nil
}

func (f *fakeEventStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return store.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

// fakeReservationStore is a test-only in-memory store.ReservationStore.
type fakeReservationStore struct {
	mu           sync.Mutex
	reservations []models.Reservation
	nextID       int64
	events       *fakeEventStore
	identities   *fakeIdentityStore
}

func newFakeReservationStore(events *fakeEventStore, identities *fakeIdentityStore) *fakeReservationStore {
	return &fakeReservationStore{nextID: 1, events: events, identities: identities}
}

func (f *fakeReservationStore) Create(ctx context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.EventID == res.EventID && r.UserID == res.UserID {
			return store.ErrDuplicateReservation
		}
	}
	res.ID = f.nextID
	f.nextID++
	res.CreatedAt = time.Now()
	f.reservations = append(f.reservations, *res)
	if e, ok := f.events.events[res.EventID]; ok {
		e.Reserved++
	}
	return nil
}

func (f *fakeReservationStore) ListByUser(ctx context.Context, userID int64) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationStore) ListAll(ctx context.Context) ([]models.AdminReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AdminReservation
	for _, r := range f.reservations {
		ar := models.AdminReservation{CreatedAt: r.CreatedAt}
		if u, err := f.identities.GetByID(ctx, r.UserID); err == nil {
			ar.UserName = u.Name
			ar.EmailEncrypted = u.EmailEncrypted
		}
		if e, ok := f.events.events[r.EventID]; ok {
			ar.EventName = e.Name
		}
		out = append(out, ar)
	}
	return out, nil
}

func (f *fakeReservationStore) CountsByUser(ctx context.Context) ([]models.UserReservationCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[int64]int)
	for _, r := range f.reservations {
		counts[r.UserID]++
	}
	var out []models.UserReservationCount
	for id, n := range counts {
		c := models.UserReservationCount{UserID: id, Count: n}
		if u, err := f.identities.GetByID(context.Background(), id); err == nil {
			c.UserName = u.Name
		}
		out = append(out, c)
	}
	return out, nil
}

// fakeSessions is a test-only in-memory Sessions implementation that also
// models the invalidate-prior-session-on-login behavior.
type fakeSessions struct {
	mu        sync.Mutex
	sessions  map[string]services.Session
	byUser    map[int64]string
	nextToken int
	createErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		sessions: make(map[string]services.Session),
		byUser:   make(map[int64]string),
	}
}

func (f *fakeSessions) Create(ctx context.Context, sess services.Session) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	if old, ok := f.byUser[sess.UserID]; ok {
		delete(f.sessions, old)
	}
	f.nextToken++
	token := fmt.Sprintf("token-%d", f.nextToken)
	f.sessions[token] = sess
	f.byUser[sess.UserID] = token
	return token, nil
}

func (f *fakeSessions) Get(ctx context.Context, token string) (*services.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sess, ok := f.sessions[token]
	if !ok {
		return nil, services.ErrSessionNotFound
	}
	return &sess, nil
}

func (f *fakeSessions) Destroy(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sess, ok := f.sessions[token]; ok {
		delete(f.byUser, sess.UserID)
	}
	delete(f.sessions, token)
	return nil
}

// fakeAuditLog records events in memory.
type fakeAuditLog struct {
	mu     sync.Mutex
	events []services.AuditEvent
}

func (f *fakeAuditLog) Record(ctx context.Context, ev services.AuditEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev.CreatedAt = time.Now()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeAuditLog) Recent(ctx context.Context, limit int64) ([]services.AuditEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]services.AuditEvent, 0, len(f.events))
	for i := len(f.events) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, f.events[i])
	}
	return out, nil
}
