package directory

import "context"

type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, category *Category) error
	// Exists reports whether a category with the given slug or name is stored.
	Exists(ctx context.Context, slug, name string) (bool, error)
}

type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	Get(ctx context.Context, id string) (*Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]Contact, error)
	Update(ctx context.Context, id string, columns ContactChanges) (*Contact, error)
	Delete(ctx context.Context, id string) error
}

// ContactChanges are the validated contact column updates.
type ContactChanges struct {
	Name     *string
	Email    *string
	Phone    *string
	Subject  *string
	Message  *string
	Category *string
	Priority *string
	Status   *ContactStatus
}

// UserChanges are the validated account column updates.
type UserChanges struct {
	Email        *string
	Username     *string
	FirstName    *string
	LastName     *string
	Role         *Role
	IsActive     *bool
	PasswordHash *string
}

type UserRepository interface {
	// List returns every account, or only those with role when it is set.
	List(ctx context.Context, role Role) ([]User, error)
	Create(ctx context.Context, user *User) error
	Get(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, changes UserChanges) (*User, error)
	Delete(ctx context.Context, id string) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	// DefaultAuthorID returns the first admin, else the first user, else nil.
	DefaultAuthorID(ctx context.Context) (*string, error)
}
