package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/gatherly/events-api/internal/core/domain"
	"github.com/gatherly/events-api/internal/core/ports"
)

// --- in-memory stub repositories shared by the service tests ---

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User // by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	c := cloneUser(user)
	r.seq++
	c.ID = fmt.Sprintf("u%d", r.seq)
	r.users[c.ID] = cloneUser(c)
	return c, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

// put inserts a user directly, bypassing uniqueness checks.
func (r *stubUserRepo) put(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := cloneUser(u)
	if c.ID == "" {
		c.ID = fmt.Sprintf("u%d", r.seq)
	}
	r.users[c.ID] = cloneUser(c)
	return c
}

type stubEventRepo struct {
	mu     sync.Mutex
	seq    int
	events map[string]*domain.Event
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: make(map[string]*domain.Event)}
}

func cloneEvent(ev *domain.Event) *domain.Event {
	if ev == nil {
		return nil
	}
	c := *ev
	c.Participants = append([]domain.Participant(nil), ev.Participants...)
	return &c
}

func (r *stubEventRepo) Create(_ context.Context, ev *domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := cloneEvent(ev)
	c.ID = fmt.Sprintf("ev%d", r.seq)
	r.events[c.ID] = cloneEvent(c)
	return c, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev, ok := r.events[id]; ok {
		return cloneEvent(ev), nil
	}
	return nil, domain.ErrEventNotFound
}

func (r *stubEventRepo) List(_ context.Context, page, limit int) ([]*domain.Event, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Event, 0, len(r.events))
	for _, ev := range r.events {
		all = append(all, cloneEvent(ev))
	}
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *stubEventRepo) Update(_ context.Context, ev *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[ev.ID]; !ok {
		return domain.ErrEventNotFound
	}
	r.events[ev.ID] = cloneEvent(ev)
	return nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

type stubAuditRepo struct {
	mu      sync.Mutex
	records []*domain.AuditRecord
}

func (r *stubAuditRepo) Insert(_ context.Context, rec *domain.AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []ports.Mail
}

func (n *stubNotifier) Enqueue(mail ports.Mail) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, mail)
}

func (n *stubNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
