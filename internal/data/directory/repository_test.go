package directory

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"smoweb/app/internal/data/database"
	domaindir "smoweb/app/internal/domain/directory"
	"smoweb/app/internal/domain/publishing"
)

func TestCategoryRepositoryCreateAndExists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, err := NewCategoryRepository(openTestDB(t), silentLogger())
	if err != nil {
		t.Fatalf("NewCategoryRepository returned error: %v", err)
	}

	category := &domaindir.Category{Name: "ทั่วไป", Slug: "general", Type: domaindir.CategoryGeneral, Color: "#6B7280"}
	if err := repo.Create(ctx, category); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if category.ID == "" || category.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamps to be filled, got %+v", category)
	}

	for _, pair := range []struct{ slug, name string }{
		{"general", "other"},
		{"other", "ทั่วไป"},
	} {
		exists, err := repo.Exists(ctx, pair.slug, pair.name)
		if err != nil || !exists {
			t.Fatalf("expected %v to exist, got %v, %v", pair, exists, err)
		}
	}

	exists, err := repo.Exists(ctx, "news", "ข่าว")
	if err != nil || exists {
		t.Fatalf("expected unknown category to be absent, got %v, %v", exists, err)
	}

	duplicate := &domaindir.Category{Name: "Another", Slug: "general", Type: domaindir.CategoryGeneral}
	if err := repo.Create(ctx, duplicate); !eris.Is(err, domaindir.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	categories, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}
}

func TestContactRepositoryLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, err := NewContactRepository(openTestDB(t), silentLogger())
	if err != nil {
		t.Fatalf("NewContactRepository returned error: %v", err)
	}

	contact := &domaindir.Contact{
		Name:     "Somchai",
		Email:    "somchai@example.com",
		Subject:  "Room booking",
		Message:  "Is the hall free?",
		Category: "general",
		Priority: "MEDIUM",
		Status:   domaindir.ContactNew,
	}
	if err := repo.Create(ctx, contact); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	resolved := domaindir.ContactResolved
	phone := "0812345678"
	updated, err := repo.Update(ctx, contact.ID, domaindir.ContactChanges{Status: &resolved, Phone: &phone})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != domaindir.ContactResolved || updated.Phone != phone || updated.Subject != "Room booking" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	listed, err := repo.List(ctx, domaindir.ContactFilter{Status: domaindir.ContactNew})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected status filter to exclude the resolved contact, got %d", len(listed))
	}

	if err := repo.Delete(ctx, contact.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.Get(ctx, contact.ID); !publishing.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, err := repo.Update(ctx, contact.ID, domaindir.ContactChanges{Phone: &phone}); !publishing.IsNotFound(err) {
		t.Fatalf("expected not found when updating a deleted contact, got %v", err)
	}
}

func TestUserRepositoryDefaultAuthorPrefersAdmin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)
	repo, err := NewUserRepository(db, silentLogger())
	if err != nil {
		t.Fatalf("NewUserRepository returned error: %v", err)
	}

	id, err := repo.DefaultAuthorID(ctx)
	if err != nil {
		t.Fatalf("DefaultAuthorID returned error: %v", err)
	}
	if id != nil {
		t.Fatalf("expected no author without users, got %s", *id)
	}

	member := createUser(t, repo, "member@example.com", "member", domaindir.RoleMember)

	id, err = repo.DefaultAuthorID(ctx)
	if err != nil || id == nil || *id != member.ID {
		t.Fatalf("expected first user as fallback author, got %v, %v", id, err)
	}

	admin := createUser(t, repo, "admin@example.com", "admin", domaindir.RoleAdmin)

	id, err = repo.DefaultAuthorID(ctx)
	if err != nil || id == nil || *id != admin.ID {
		t.Fatalf("expected admin as default author, got %v, %v", id, err)
	}
}

func TestUserRepositoryFindByEmailAndDuplicates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, err := NewUserRepository(openTestDB(t), silentLogger())
	if err != nil {
		t.Fatalf("NewUserRepository returned error: %v", err)
	}

	created := createUser(t, repo, "staff@example.com", "staff", domaindir.RoleStaff)

	found, err := repo.FindByEmail(ctx, "staff@example.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if found.ID != created.ID || found.PasswordHash != "hash" {
		t.Fatalf("unexpected user %+v", found)
	}

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !publishing.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	duplicate := &domaindir.User{Email: "staff@example.com", Username: "other", Role: domaindir.RoleStaff, PasswordHash: "hash"}
	if err := repo.Create(ctx, duplicate); !eris.Is(err, domaindir.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	inactive := &domaindir.User{Email: "gone@example.com", Username: "gone", Role: domaindir.RoleMember, PasswordHash: "hash"}
	if err := repo.Create(ctx, inactive); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	stored, err := repo.FindByEmail(ctx, "gone@example.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected inactive flag to be persisted")
	}
}

func TestUserRepositoryResolveAuthorOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, err := NewUserRepository(openTestDB(t), silentLogger())
	if err != nil {
		t.Fatalf("NewUserRepository returned error: %v", err)
	}

	if id, err := repo.ResolveAuthor(ctx, "", ""); err != nil || id != nil {
		t.Fatalf("expected no author on an empty table, got %v, %v", id, err)
	}

	member := createUser(t, repo, "writer@example.com", "writer", domaindir.RoleMember)
	if id, err := repo.ResolveAuthor(ctx, "", ""); err != nil || id != nil {
		t.Fatalf("expected no fallback without an admin, got %v, %v", id, err)
	}

	admin := createUser(t, repo, "root@example.com", "root", domaindir.RoleAdmin)
	editor := createUser(t, repo, "editor@example.com", "editor", domaindir.RoleEditor)

	cases := map[string]struct {
		id, email string
		want      string
	}{
		"email wins over id":    {id: editor.ID, email: "writer@example.com", want: member.ID},
		"id when email unknown": {id: editor.ID, email: "ghost@example.com", want: editor.ID},
		"admin when both miss":  {id: "missing", email: "ghost@example.com", want: admin.ID},
		"admin when both blank": {want: admin.ID},
	}
	for name, tc := range cases {
		got, err := repo.ResolveAuthor(ctx, tc.id, tc.email)
		if err != nil || got == nil || *got != tc.want {
			t.Fatalf("%s: expected %s, got %v, %v", name, tc.want, got, err)
		}
	}
}

func TestUserRepositoryUpdateListAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, err := NewUserRepository(openTestDB(t), silentLogger())
	if err != nil {
		t.Fatalf("NewUserRepository returned error: %v", err)
	}

	first := createUser(t, repo, "one@example.com", "one", domaindir.RoleMember)
	second := createUser(t, repo, "two@example.com", "two", domaindir.RoleMember)

	staff := domaindir.RoleStaff
	inactive := false
	updated, err := repo.Update(ctx, first.ID, domaindir.UserChanges{Role: &staff, IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Role != domaindir.RoleStaff || updated.IsActive {
		t.Fatalf("unexpected update result %+v", updated)
	}

	listed, err := repo.List(ctx, domaindir.RoleStaff)
	if err != nil || len(listed) != 1 || listed[0].ID != first.ID {
		t.Fatalf("expected only the staff user, got %+v, %v", listed, err)
	}

	taken := "two"
	if _, err := repo.Update(ctx, first.ID, domaindir.UserChanges{Username: &taken}); !eris.Is(err, domaindir.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for a taken username, got %v", err)
	}

	if err := repo.Delete(ctx, second.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.Get(ctx, second.ID); !publishing.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, second.ID); !publishing.IsNotFound(err) {
		t.Fatalf("expected not found deleting twice, got %v", err)
	}
}

func createUser(t *testing.T, repo *UserRepository, email, username string, role domaindir.Role) *domaindir.User {
	t.Helper()

	user := &domaindir.User{Email: email, Username: username, Role: role, IsActive: true, PasswordHash: "hash"}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("creating user %s: %v", email, err)
	}
	return user
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Options{Path: filepath.Join(t.TempDir(), "directory.db")})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	if err := db.AutoMigrate(Records()...); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}
	return db
}

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
