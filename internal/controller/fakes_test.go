package controller

import (
	"context"
	"sync"
	"time"

	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/internal/validation"
	"github.com/topexschool/portal-backend/pkg/i18n"
	"github.com/topexschool/portal-backend/pkg/utils"
)

// journal records collaborator calls in order across fakes.
type journal struct {
	mu     sync.Mutex
	events []string
}

func (j *journal) add(e string) {
	j.mu.Lock()
	j.events = append(j.events, e)
	j.mu.Unlock()
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.events...)
}

type fakeIdentity struct {
	j       *journal
	user    *models.AuthUser
	err     error
	entered chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls [][2]string
}

func (f *fakeIdentity) call(kind, email, password string) (*models.AuthUser, error) {
	f.mu.Lock()
	f.calls = append(f.calls, [2]string{email, password})
	f.mu.Unlock()
	f.j.add(kind)
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	u := *f.user
	return &u, nil
}

func (f *fakeIdentity) VerifyCredential(_ context.Context, email, password string) (*models.AuthUser, error) {
	return f.call("verify", email, password)
}

func (f *fakeIdentity) CreateCredential(_ context.Context, email, password string) (*models.AuthUser, error) {
	return f.call("create", email, password)
}

func (f *fakeIdentity) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeProfiles struct {
	j         *journal
	role      models.Role
	found     bool
	roleErr   error
	insertErr error
	inserted  []*models.Profile
}

func (f *fakeProfiles) InsertProfile(_ context.Context, p *models.Profile) error {
	f.j.add("insert")
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, p)
	return nil
}

func (f *fakeProfiles) GetRole(_ context.Context, userID string) (models.Role, bool, error) {
	f.j.add("role:" + userID)
	return f.role, f.found, f.roleErr
}

type fakeHost struct {
	j     *journal
	users []models.AuthUser
	dests []models.Destination
}

func (h *fakeHost) OnLogin(u models.AuthUser) {
	h.j.add("login:" + u.ID)
	h.users = append(h.users, u)
}

func (h *fakeHost) Navigate(d models.Destination) {
	h.j.add("navigate:" + string(d))
	h.dests = append(h.dests, d)
}

// manualScheduler holds scheduled calls until the test fires them.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	delay     time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (t *manualTask) Cancel() bool {
	if t.cancelled || t.fired {
		return false
	}
	t.cancelled = true
	return true
}

func (m *manualScheduler) Schedule(delay time.Duration, fn func()) Task {
	t := &manualTask{delay: delay, fn: fn}
	m.mu.Lock()
	m.tasks = append(m.tasks, t)
	m.mu.Unlock()
	return t
}

func (m *manualScheduler) fire() {
	m.mu.Lock()
	tasks := append([]*manualTask(nil), m.tasks...)
	m.mu.Unlock()
	for _, t := range tasks {
		if !t.cancelled && !t.fired {
			t.fired = true
			t.fn()
		}
	}
}

func (m *manualScheduler) last() *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tasks) == 0 {
		return nil
	}
	return m.tasks[len(m.tasks)-1]
}

type harness struct {
	j        *journal
	identity *fakeIdentity
	profiles *fakeProfiles
	host     *fakeHost
	sched    *manualScheduler
	deps     Deps
}

func newHarness() *harness {
	j := &journal{}
	h := &harness{
		j:        j,
		identity: &fakeIdentity{j: j, user: &models.AuthUser{ID: "U1", Email: "u@x.com"}},
		profiles: &fakeProfiles{j: j},
		host:     &fakeHost{j: j},
		sched:    &manualScheduler{},
	}
	h.deps = Deps{
		Identity:  h.identity,
		Profiles:  h.profiles,
		Roles:     models.DefaultRoleTable(),
		Validator: validation.New(utils.NewValidator()),
		Messages:  i18n.NewCatalog().Printer("en"),
		Session:   h.host,
		Navigator: h.host,
		Scheduler: h.sched,
	}
	return h
}
