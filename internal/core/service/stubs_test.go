package service

import (
	"context"
	"sort"
	"sync"

	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	cp := *u
	cp.ID = r.nextID
	r.users[cp.ID] = &cp
	return &cp, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

type stubCustomerRepo struct {
	mu        sync.Mutex
	nextID    int64
	customers map[int64]*domain.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[int64]*domain.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *c
	cp.ID = r.nextID
	r.customers[cp.ID] = &cp
	return &cp, nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id int64) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) FindByEmailOrPhone(_ context.Context, email, phone string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email == email || c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *stubCustomerRepo) List(_ context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		cp := *c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	if filter.Skip >= len(all) {
		return nil, total, nil
	}
	all = all[filter.Skip:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

type stubTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*domain.Task
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[int64]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *t
	cp.ID = r.nextID
	r.tasks[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTaskRepo) List(_ context.Context, filter ports.ListTasksFilter) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.AssignedToID != 0 && t.AssignedToID != filter.AssignedToID {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) UpdateStatus(_ context.Context, id int64, status domain.TaskStatus, assignedToID int64) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if assignedToID != 0 && t.AssignedToID != assignedToID {
		return nil, domain.ErrTaskNotFound
	}
	t.Status = status
	cp := *t
	return &cp, nil
}

type stubActivityRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries []*domain.TaskActivity
}

func newStubActivityRepo() *stubActivityRepo { return &stubActivityRepo{} }

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.TaskActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *a
	cp.ID = r.nextID
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *stubActivityRepo) ListByTask(_ context.Context, taskID int64) ([]*domain.TaskActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.TaskActivity
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].TaskID == taskID {
			cp := *r.entries[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// syncRecorder runs the activity pipeline inline so tests can assert on the
// persisted trail without timing games.
type syncRecorder struct {
	svc ports.ActivityService
}

func (r *syncRecorder) Record(in ports.TaskActivityInput) {
	_ = r.svc.Process(context.Background(), in)
}
