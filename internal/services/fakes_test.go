package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
)

// In-memory фейки репозиториев для тестов сервисов. Потокобезопасны,
// чтобы гонки accept/send можно было проверять конкурентно.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User

	// findErrs - ошибки, подставляемые в следующие FindByID (для
	// проверки retry при transient-сбоях)
	findErrs []error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) put(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	clone := *user
	r.users[user.ID] = &clone
	return user
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.findErrs) > 0 {
		err := r.findErrs[0]
		r.findErrs = r.findErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Phone == phone && phone != "" {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, userID string, status models.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Status = status
	return nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *fakeJobRepo) put(job *models.Job) *models.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%d", len(r.jobs)+1)
	}
	if job.Status == "" {
		job.Status = models.JobStatusOpen
	}
	clone := *job
	r.jobs[job.ID] = &clone
	return job
}

func (r *fakeJobRepo) Create(ctx context.Context, job *models.Job) error {
	r.put(job)
	return nil
}

func (r *fakeJobRepo) FindByID(ctx context.Context, id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok || job.DeletedAt.Valid {
		return nil, repositories.ErrJobNotFound
	}
	clone := *job
	return &clone, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return repositories.ErrJobNotFound
	}
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *fakeJobRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok || job.DeletedAt.Valid {
		return repositories.ErrJobNotFound
	}
	job.Status = models.JobStatusCancelled
	job.DeletedAt.Time = time.Now()
	job.DeletedAt.Valid = true
	return nil
}

func (r *fakeJobRepo) List(ctx context.Context, filter repositories.JobFilter) ([]models.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	status := filter.Status
	if status == "" {
		status = models.JobStatusOpen
	}
	var out []models.Job
	for _, job := range r.jobs {
		if !job.DeletedAt.Valid && job.Status == status {
			out = append(out, *job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeJobRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, job := range r.jobs {
		if !job.DeletedAt.Valid && job.CreatedBy == ownerID {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListNearby(ctx context.Context, lat, lng, radiusKm float64) ([]repositories.NearbyJob, error) {
	return nil, nil
}

func (r *fakeJobRepo) CancelExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var affected int64
	for _, job := range r.jobs {
		if !job.DeletedAt.Valid && job.Status == models.JobStatusOpen &&
			job.DueDate != nil && job.DueDate.Before(now) {
			job.Status = models.JobStatusCancelled
			affected++
		}
	}
	return affected, nil
}

// setStatus меняет статус job напрямую (для подготовки сценариев)
func (r *fakeJobRepo) setStatus(jobID string, status models.JobStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job, ok := r.jobs[jobID]; ok {
		job.Status = status
	}
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]*models.JobApplication
	jobs *fakeJobRepo
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps: make(map[string]*models.JobApplication),
		jobs: jobs,
	}
}

func (r *fakeApplicationRepo) put(app *models.JobApplication) *models.JobApplication {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == "" {
		app.ID = fmt.Sprintf("app-%d", len(r.apps)+1)
	}
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	clone := *app
	r.apps[app.ID] = &clone
	return app
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app *models.JobApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return repositories.ErrApplicationAlreadyExists
		}
	}
	if app.ID == "" {
		app.ID = fmt.Sprintf("app-%d", len(r.apps)+1)
	}
	app.CreatedAt = time.Now()
	clone := *app
	r.apps[app.ID] = &clone
	return nil
}

func (r *fakeApplicationRepo) FindByID(ctx context.Context, id string) (*models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	clone := *app
	return &clone, nil
}

func (r *fakeApplicationRepo) FindAcceptedByJob(ctx context.Context, jobID, applicantID string) (*models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.JobID == jobID && app.ApplicantID == applicantID &&
			app.Status == models.ApplicationStatusAccepted {
			clone := *app
			return &clone, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JobApplication
	for _, app := range r.apps {
		if app.JobID == jobID {
			out = append(out, *app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JobApplication
	for _, app := range r.apps {
		if app.ApplicantID == applicantID {
			out = append(out, *app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AcceptPending повторяет семантику транзакции с блокировкой: оба
// статуса перепроверяются атомарно под общим мьютексом.
func (r *fakeApplicationRepo) AcceptPending(ctx context.Context, applicationID, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[applicationID]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	if app.Status != models.ApplicationStatusPending {
		return repositories.ErrApplicationNotPending
	}

	r.jobs.mu.Lock()
	defer r.jobs.mu.Unlock()
	job, ok := r.jobs.jobs[jobID]
	if !ok || job.DeletedAt.Valid {
		return repositories.ErrJobNotOpen
	}
	if job.Status != models.JobStatusOpen {
		return repositories.ErrJobNotOpen
	}

	app.Status = models.ApplicationStatusAccepted
	job.Status = models.JobStatusInProgress
	return nil
}

func (r *fakeApplicationRepo) RejectPending(ctx context.Context, applicationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[applicationID]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	if app.Status != models.ApplicationStatusPending {
		return repositories.ErrApplicationNotPending
	}
	app.Status = models.ApplicationStatusRejected
	return nil
}

type fakeChatMessageRepo struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	seq      int

	createErr error
}

func newFakeChatMessageRepo() *fakeChatMessageRepo {
	return &fakeChatMessageRepo{}
}

func (r *fakeChatMessageRepo) Create(ctx context.Context, msg *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	msg.ID = fmt.Sprintf("msg-%d", r.seq)
	msg.CreatedAt = time.Unix(int64(r.seq), 0)
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeChatMessageRepo) ListByJob(ctx context.Context, jobID string) ([]models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ChatMessage
	for _, msg := range r.messages {
		if msg.JobID == jobID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *fakeChatMessageRepo) ListByJobBetween(ctx context.Context, jobID, userA, userB string) ([]models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ChatMessage
	for _, msg := range r.messages {
		if msg.JobID != jobID {
			continue
		}
		if (msg.SenderID == userA && msg.ReceiverID == userB) ||
			(msg.SenderID == userB && msg.ReceiverID == userA) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *fakeChatMessageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*models.Category)}
}

func (r *fakeCategoryRepo) put(category *models.Category) *models.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	if category.ID == "" {
		category.ID = fmt.Sprintf("cat-%d", len(r.categories)+1)
	}
	clone := *category
	r.categories[category.ID] = &clone
	return category
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Name == category.Name {
			return repositories.ErrCategoryAlreadyExists
		}
	}
	if category.ID == "" {
		category.ID = fmt.Sprintf("cat-%d", len(r.categories)+1)
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, repositories.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *fakeCategoryRepo) FindApprovedByID(ctx context.Context, id string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok || category.Status != models.CategoryStatusApproved {
		return nil, repositories.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *fakeCategoryRepo) ListApproved(ctx context.Context, search string) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Category
	for _, category := range r.categories {
		if category.Status == models.CategoryStatusApproved {
			out = append(out, *category)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) UpdateStatus(ctx context.Context, id string, status models.CategoryStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return repositories.ErrCategoryNotFound
	}
	category.Status = status
	return nil
}

// fakeBroadcaster копит рассылки для проверок
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

type broadcastEvent struct {
	JobID   string
	Payload any
}

func (b *fakeBroadcaster) BroadcastToJob(jobID string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastEvent{JobID: jobID, Payload: payload})
}

func (b *fakeBroadcaster) all() []broadcastEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]broadcastEvent, len(b.events))
	copy(out, b.events)
	return out
}

var errStoreDown = errors.New("store unavailable")
