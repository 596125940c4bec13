package directory

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"smoweb/app/internal/domain/publishing"
)

func TestCategoryCreateDerivesSlugAndDefaultsType(t *testing.T) {
	t.Parallel()

	repo := &stubCategoryRepository{}
	service := mustCategoryService(t, repo)

	category, err := service.Create(context.Background(), CategoryInput{Name: "  Club Events  "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if category.Slug != "club-events" {
		t.Fatalf("expected derived slug club-events, got %q", category.Slug)
	}
	if category.Type != CategoryGeneral {
		t.Fatalf("expected GENERAL type, got %s", category.Type)
	}
	if category.ID == "" {
		t.Fatalf("expected repository to assign an id")
	}
}

func TestCategoryCreateRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	service := mustCategoryService(t, &stubCategoryRepository{})

	_, err := service.Create(context.Background(), CategoryInput{Name: "!!!", Type: "poster", Color: "blue"})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var verr *publishing.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	messages := verr.Messages()
	for _, field := range []string{"slug", "type", "color"} {
		if _, ok := messages[field]; !ok {
			t.Fatalf("expected %s to be rejected, got %v", field, messages)
		}
	}
}

func TestCategorySeedDefaultsSkipsExisting(t *testing.T) {
	t.Parallel()

	repo := &stubCategoryRepository{}
	repo.categories = append(repo.categories, Category{ID: "c-1", Name: "ทั่วไป", Slug: "general"})
	service := mustCategoryService(t, repo)

	created, err := service.SeedDefaults(context.Background())
	if err != nil {
		t.Fatalf("SeedDefaults returned error: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected 3 categories to be created, got %d", created)
	}

	again, err := service.SeedDefaults(context.Background())
	if err != nil {
		t.Fatalf("second SeedDefaults returned error: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected seeding to be idempotent, created %d", again)
	}

	slugs := make([]string, 0, len(repo.categories))
	for _, category := range repo.categories {
		slugs = append(slugs, category.Slug)
	}
	sort.Strings(slugs)
	if strings.Join(slugs, ",") != "activity,document,general,news" {
		t.Fatalf("unexpected categories %v", slugs)
	}
}

func TestContactCreateAppliesDefaults(t *testing.T) {
	t.Parallel()

	repo := newStubContactRepository()
	service := mustContactService(t, repo)

	contact, err := service.Create(context.Background(), ContactInput{
		Name:    "Somchai",
		Email:   "somchai@example.com",
		Subject: "Membership",
		Message: "How do I join?",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if contact.Category != "general" || contact.Priority != "MEDIUM" || contact.Status != ContactNew {
		t.Fatalf("unexpected defaults: %+v", contact)
	}
}

func TestContactCreateValidatesEmail(t *testing.T) {
	t.Parallel()

	service := mustContactService(t, newStubContactRepository())

	_, err := service.Create(context.Background(), ContactInput{
		Name:    "Somchai",
		Email:   "not-an-email",
		Subject: "Hi",
		Message: "Hello",
	})

	var verr *publishing.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Messages()["email"]; !ok {
		t.Fatalf("expected email field error, got %v", verr.Messages())
	}
}

func TestContactUpdateChangesStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newStubContactRepository()
	service := mustContactService(t, repo)

	contact, err := service.Create(ctx, ContactInput{Name: "A", Email: "a@example.com", Subject: "S", Message: "M"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	status := "in_progress"
	blank := " "
	updated, err := service.Update(ctx, contact.ID, ContactPatch{Status: &status, Subject: &blank})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != ContactInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", updated.Status)
	}
	if updated.Subject != "S" {
		t.Fatalf("blank subject should be ignored, got %q", updated.Subject)
	}

	bad := "DONE"
	if _, err := service.Update(ctx, contact.ID, ContactPatch{Status: &bad}); !publishing.IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestContactGetMissingIsNotFound(t *testing.T) {
	t.Parallel()

	service := mustContactService(t, newStubContactRepository())

	if _, err := service.Get(context.Background(), "missing"); !publishing.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := service.Delete(context.Background(), ""); !publishing.IsValidation(err) {
		t.Fatalf("expected validation error for blank id, got %v", err)
	}
}

func TestUserCreateHashesPasswordAndAuthenticates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &stubUserRepository{}
	service, err := NewUserService(repo, bcrypt.MinCost, silentLogger(), nil)
	if err != nil {
		t.Fatalf("NewUserService returned error: %v", err)
	}

	user, err := service.Create(ctx, UserInput{
		Email:    "Admin@Example.com",
		Username: "admin",
		Password: "correct horse",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if user.Email != "admin@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != RoleAdmin || !user.IsActive {
		t.Fatalf("unexpected role or activity: %+v", user)
	}
	if user.PasswordHash == "correct horse" || !CheckPassword(user.PasswordHash, "correct horse") {
		t.Fatalf("expected a bcrypt hash of the password")
	}

	if _, err := service.Authenticate(ctx, "admin@example.com", "correct horse"); err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if _, err := service.Authenticate(ctx, "admin@example.com", "wrong"); !eris.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := service.Authenticate(ctx, "nobody@example.com", "correct horse"); !eris.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}

func TestUserCreateRejectsShortPasswordAndUnknownRole(t *testing.T) {
	t.Parallel()

	service, err := NewUserService(&stubUserRepository{}, bcrypt.MinCost, silentLogger(), nil)
	if err != nil {
		t.Fatalf("NewUserService returned error: %v", err)
	}

	_, err = service.Create(context.Background(), UserInput{
		Email:    "member@example.com",
		Username: "member",
		Password: "short",
		Role:     "OWNER",
	})

	var verr *publishing.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	messages := verr.Messages()
	if _, ok := messages["password"]; !ok {
		t.Fatalf("expected password error, got %v", messages)
	}
	if _, ok := messages["role"]; !ok {
		t.Fatalf("expected role error, got %v", messages)
	}
}

func TestUserCreatePassesDuplicateThrough(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepository{createErr: eris.Wrap(ErrDuplicate, "email taken")}
	service, err := NewUserService(repo, bcrypt.MinCost, silentLogger(), nil)
	if err != nil {
		t.Fatalf("NewUserService returned error: %v", err)
	}

	_, err = service.Create(context.Background(), UserInput{Email: "a@example.com", Username: "abc", Password: "longenough"})
	if !eris.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserUpdateRehashesPasswordAndFiltersByRole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, err := NewUserService(&stubUserRepository{}, bcrypt.MinCost, silentLogger(), nil)
	if err != nil {
		t.Fatalf("NewUserService returned error: %v", err)
	}

	member, err := service.Create(ctx, UserInput{Email: "m@example.com", Username: "member", Password: "first-pass"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := service.Create(ctx, UserInput{Email: "e@example.com", Username: "editor", Password: "first-pass", Role: "EDITOR"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	editors, err := service.List(ctx, "editor")
	if err != nil || len(editors) != 1 || editors[0].Username != "editor" {
		t.Fatalf("expected one editor, got %+v, %v", editors, err)
	}
	everyone, err := service.List(ctx, "all")
	if err != nil || len(everyone) != 2 {
		t.Fatalf("expected both users for all, got %+v, %v", everyone, err)
	}
	if _, err := service.List(ctx, "OWNER"); !publishing.IsValidation(err) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}

	password, role := "second-pass", "staff"
	updated, err := service.Update(ctx, member.ID, UserPatch{Password: &password, Role: &role})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Role != RoleStaff || !CheckPassword(updated.PasswordHash, "second-pass") {
		t.Fatalf("expected staff role and new password, got %+v", updated)
	}

	short := "short"
	if _, err := service.Update(ctx, member.ID, UserPatch{Password: &short}); !publishing.IsValidation(err) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	if err := service.Delete(ctx, member.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := service.Get(ctx, member.ID); !publishing.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestNewServicesRequireRepositories(t *testing.T) {
	t.Parallel()

	if _, err := NewCategoryService(nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil category repository")
	}
	if _, err := NewContactService(nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil contact repository")
	}
	if _, err := NewUserService(nil, 0, nil, nil); err == nil {
		t.Fatalf("expected error for nil user repository")
	}
}

func mustCategoryService(t *testing.T, repo CategoryRepository) CategoryService {
	t.Helper()
	service, err := NewCategoryService(repo, silentLogger(), nil)
	if err != nil {
		t.Fatalf("NewCategoryService returned error: %v", err)
	}
	return service
}

func mustContactService(t *testing.T, repo ContactRepository) ContactService {
	t.Helper()
	service, err := NewContactService(repo, silentLogger(), nil)
	if err != nil {
		t.Fatalf("NewContactService returned error: %v", err)
	}
	return service
}

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type stubCategoryRepository struct {
	mu         sync.Mutex
	categories []Category
}

func (r *stubCategoryRepository) List(context.Context) ([]Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Category(nil), r.categories...), nil
}

func (r *stubCategoryRepository) Create(_ context.Context, category *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Slug == category.Slug || existing.Name == category.Name {
			return eris.Wrap(ErrDuplicate, category.Slug)
		}
	}
	category.ID = uuid.NewString()
	r.categories = append(r.categories, *category)
	return nil
}

func (r *stubCategoryRepository) Exists(_ context.Context, slug, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Slug == slug || existing.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type stubContactRepository struct {
	mu       sync.Mutex
	contacts map[string]Contact
}

func newStubContactRepository() *stubContactRepository {
	return &stubContactRepository{contacts: make(map[string]Contact)}
}

func (r *stubContactRepository) Create(_ context.Context, contact *Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	contact.ID = uuid.NewString()
	r.contacts[contact.ID] = *contact
	return nil
}

func (r *stubContactRepository) Get(_ context.Context, id string) (*Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contact, ok := r.contacts[id]
	if !ok {
		return nil, eris.Wrapf(publishing.ErrNotFound, "contact id %s", id)
	}
	return &contact, nil
}

func (r *stubContactRepository) List(_ context.Context, filter ContactFilter) ([]Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Contact
	for _, contact := range r.contacts {
		if filter.Category != "" && contact.Category != filter.Category {
			continue
		}
		if filter.Status != "" && contact.Status != filter.Status {
			continue
		}
		out = append(out, contact)
	}
	return out, nil
}

func (r *stubContactRepository) Update(_ context.Context, id string, changes ContactChanges) (*Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contact, ok := r.contacts[id]
	if !ok {
		return nil, eris.Wrapf(publishing.ErrNotFound, "contact id %s", id)
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&contact.Name, changes.Name)
	apply(&contact.Email, changes.Email)
	apply(&contact.Phone, changes.Phone)
	apply(&contact.Subject, changes.Subject)
	apply(&contact.Message, changes.Message)
	apply(&contact.Category, changes.Category)
	apply(&contact.Priority, changes.Priority)
	if changes.Status != nil {
		contact.Status = *changes.Status
	}
	r.contacts[id] = contact
	return &contact, nil
}

func (r *stubContactRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return eris.Wrapf(publishing.ErrNotFound, "contact id %s", id)
	}
	delete(r.contacts, id)
	return nil
}

type stubUserRepository struct {
	mu        sync.Mutex
	users     []User
	createErr error
}

func (r *stubUserRepository) List(_ context.Context, role Role) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []User
	for _, user := range r.users {
		if role == "" || user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *stubUserRepository) Get(_ context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			found := user
			return &found, nil
		}
	}
	return nil, eris.Wrapf(publishing.ErrNotFound, "user id %s", id)
}

func (r *stubUserRepository) Update(_ context.Context, id string, changes UserChanges) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		user := &r.users[i]
		if user.ID != id {
			continue
		}
		if changes.Email != nil {
			user.Email = *changes.Email
		}
		if changes.Username != nil {
			user.Username = *changes.Username
		}
		if changes.Role != nil {
			user.Role = *changes.Role
		}
		if changes.IsActive != nil {
			user.IsActive = *changes.IsActive
		}
		if changes.PasswordHash != nil {
			user.PasswordHash = *changes.PasswordHash
		}
		updated := *user
		return &updated, nil
	}
	return nil, eris.Wrapf(publishing.ErrNotFound, "user id %s", id)
}

func (r *stubUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, user := range r.users {
		if user.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return eris.Wrapf(publishing.ErrNotFound, "user id %s", id)
}

func (r *stubUserRepository) Create(_ context.Context, user *User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	r.users = append(r.users, *user)
	return nil
}

func (r *stubUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, eris.Wrapf(publishing.ErrNotFound, "user %s", email)
}

func (r *stubUserRepository) DefaultAuthorID(context.Context) (*string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.users) == 0 {
		return nil, nil
	}
	id := r.users[0].ID
	return &id, nil
}
