package directory

import (
	"context"
	"regexp"
	"strings"

	"github.com/getsentry/sentry-go"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"smoweb/app/internal/domain/publishing"
	"smoweb/app/internal/domain/slug"
	applog "smoweb/app/internal/log"
)

var (
	// ErrDuplicate indicates a unique name, slug, email or username is already taken.
	ErrDuplicate = eris.New("record already exists")
	// ErrInvalidCredentials is returned for unknown users, inactive users and wrong passwords.
	ErrInvalidCredentials = eris.New("invalid credentials")
)

const (
	defaultContactCategory = "general"
	defaultContactPriority = "MEDIUM"
	minPasswordLength      = 8
	roleMessage            = "must be one of ADMIN, EDITOR, MEMBER, STAFF"
)

var (
	contactPriorities = []any{"LOW", "MEDIUM", "HIGH", "URGENT"}
	hexColor          = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

type CategoryService interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, input CategoryInput) (*Category, error)
	// SeedDefaults stores the default categories that are missing and returns how many were created.
	SeedDefaults(ctx context.Context) (int, error)
}

type ContactService interface {
	Create(ctx context.Context, input ContactInput) (*Contact, error)
	Get(ctx context.Context, id string) (*Contact, error)
	List(ctx context.Context, category, status string) ([]Contact, error)
	Update(ctx context.Context, id string, patch ContactPatch) (*Contact, error)
	Delete(ctx context.Context, id string) error
}

type UserService interface {
	// List returns every account, or only those with role. Blank and "all" list everyone.
	List(ctx context.Context, role string) ([]User, error)
	Create(ctx context.Context, input UserInput) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*User, error)
	Delete(ctx context.Context, id string) error
	Authenticate(ctx context.Context, email, password string) (*User, error)
}

type reporter struct {
	component string
	logger    *logrus.Logger
	sentryHub *sentry.Hub
}

func (r reporter) fail(ctx context.Context, fields logrus.Fields, err error, message string) error {
	if err == nil {
		return nil
	}
	if publishing.IsValidation(err) || publishing.IsNotFound(err) || eris.Is(err, ErrDuplicate) {
		return err
	}

	if r.logger != nil {
		entry := r.logger.WithField("error", err.Error()).WithField("component", r.component)
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}
	applog.Capture(ctx, r.sentryHub, err)

	return eris.Wrap(err, message)
}

type categoryService struct {
	reporter
	repo CategoryRepository
}

var _ CategoryService = (*categoryService)(nil)

func NewCategoryService(repo CategoryRepository, logger *logrus.Logger, hub *sentry.Hub) (CategoryService, error) {
	if repo == nil {
		return nil, eris.New("category repository is required")
	}
	return &categoryService{
		reporter: reporter{component: "directory.categories", logger: logger, sentryHub: hub},
		repo:     repo,
	}, nil
}

func (s *categoryService) List(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing categories")
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Type = strings.ToUpper(strings.TrimSpace(input.Type))
	if input.Type == "" {
		input.Type = string(CategoryGeneral)
	}

	input.Slug = strings.TrimSpace(input.Slug)
	if input.Slug == "" {
		input.Slug = slug.Derive(input.Name)
	}

	err := publishing.Validated(validation.ValidateStruct(&input,
		validation.Field(&input.Name, validation.Required.Error("name is required"), validation.RuneLength(0, 255)),
		validation.Field(&input.Slug, validation.Required.Error("slug could not be derived from name")),
		validation.Field(&input.Type, validation.In(
			string(CategoryNews), string(CategoryActivity), string(CategoryDocument), string(CategoryGeneral),
		).Error("must be one of NEWS, ACTIVITY, DOCUMENT, GENERAL")),
		validation.Field(&input.Color, validation.Match(hexColor).Error("must be a hex color such as #3B82F6")),
	))
	if err != nil {
		return nil, err
	}

	category := &Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Type:        CategoryType(input.Type),
		Color:       strings.TrimSpace(input.Color),
		Description: strings.TrimSpace(input.Description),
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"slug": category.Slug}, err, "creating category")
	}
	return category, nil
}

func (s *categoryService) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, input := range DefaultCategories() {
		exists, err := s.repo.Exists(ctx, input.Slug, input.Name)
		if err != nil {
			return created, s.fail(ctx, logrus.Fields{"slug": input.Slug}, err, "checking default category")
		}
		if exists {
			continue
		}

		if _, err := s.Create(ctx, input); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

type contactService struct {
	reporter
	repo ContactRepository
}

var _ ContactService = (*contactService)(nil)

func NewContactService(repo ContactRepository, logger *logrus.Logger, hub *sentry.Hub) (ContactService, error) {
	if repo == nil {
		return nil, eris.New("contact repository is required")
	}
	return &contactService{
		reporter: reporter{component: "directory.contacts", logger: logger, sentryHub: hub},
		repo:     repo,
	}, nil
}

func (s *contactService) Create(ctx context.Context, input ContactInput) (*Contact, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)
	input.Category = strings.TrimSpace(input.Category)
	if input.Category == "" {
		input.Category = defaultContactCategory
	}
	input.Priority = strings.ToUpper(strings.TrimSpace(input.Priority))
	if input.Priority == "" {
		input.Priority = defaultContactPriority
	}

	err := publishing.Validated(validation.ValidateStruct(&input,
		validation.Field(&input.Name, validation.Required.Error("name is required")),
		validation.Field(&input.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("must be a valid email address")),
		validation.Field(&input.Subject, validation.Required.Error("subject is required")),
		validation.Field(&input.Message, validation.Required.Error("message is required")),
		validation.Field(&input.Priority, validation.In(contactPriorities...).Error("must be one of LOW, MEDIUM, HIGH, URGENT")),
	))
	if err != nil {
		return nil, err
	}

	contact := &Contact{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    strings.TrimSpace(input.Phone),
		Subject:  input.Subject,
		Message:  input.Message,
		Category: input.Category,
		Priority: input.Priority,
		Status:   ContactNew,
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"email": contact.Email}, err, "creating contact")
	}
	return contact, nil
}

func (s *contactService) Get(ctx context.Context, id string) (*Contact, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, publishing.NewValidationError("id", "id is required")
	}

	contact, err := s.repo.Get(ctx, trimmed)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmed}, err, "fetching contact")
	}
	return contact, nil
}

func (s *contactService) List(ctx context.Context, category, status string) ([]Contact, error) {
	filter := ContactFilter{Category: strings.TrimSpace(category)}
	if raw := strings.TrimSpace(status); raw != "" {
		parsed, err := parseContactStatus(raw)
		if err != nil {
			return nil, err
		}
		filter.Status = parsed
	}

	contacts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing contacts")
	}
	return contacts, nil
}

func (s *contactService) Update(ctx context.Context, id string, patch ContactPatch) (*Contact, error) {
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return nil, publishing.NewValidationError("id", "id is required")
	}

	changes := ContactChanges{
		Name:     present(patch.Name),
		Phone:    present(patch.Phone),
		Subject:  present(patch.Subject),
		Message:  present(patch.Message),
		Category: present(patch.Category),
	}

	if email := present(patch.Email); email != nil {
		if err := is.EmailFormat.Validate(*email); err != nil {
			return nil, publishing.NewValidationError("email", "must be a valid email address")
		}
		changes.Email = email
	}

	if priority := present(patch.Priority); priority != nil {
		upper := strings.ToUpper(*priority)
		if err := validation.In(contactPriorities...).Validate(upper); err != nil {
			return nil, publishing.NewValidationError("priority", "must be one of LOW, MEDIUM, HIGH, URGENT")
		}
		changes.Priority = &upper
	}

	if raw := present(patch.Status); raw != nil {
		status, err := parseContactStatus(*raw)
		if err != nil {
			return nil, err
		}
		changes.Status = &status
	}

	contact, err := s.repo.Update(ctx, trimmedID, changes)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "updating contact")
	}
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return publishing.NewValidationError("id", "id is required")
	}

	if err := s.repo.Delete(ctx, trimmed); err != nil {
		return s.fail(ctx, logrus.Fields{"id": trimmed}, err, "deleting contact")
	}
	return nil
}

type userService struct {
	reporter
	repo UserRepository
	cost int
}

var _ UserService = (*userService)(nil)

// NewUserService wires the user service. A zero cost selects bcrypt.DefaultCost.
func NewUserService(repo UserRepository, cost int, logger *logrus.Logger, hub *sentry.Hub) (UserService, error) {
	if repo == nil {
		return nil, eris.New("user repository is required")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &userService{
		reporter: reporter{component: "directory.users", logger: logger, sentryHub: hub},
		repo:     repo,
		cost:     cost,
	}, nil
}

func (s *userService) List(ctx context.Context, role string) ([]User, error) {
	var filter Role
	if raw := strings.ToUpper(strings.TrimSpace(role)); raw != "" && raw != "ALL" {
		parsed, err := parseRole(raw)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}

	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing users")
	}
	return users, nil
}

func (s *userService) Create(ctx context.Context, input UserInput) (*User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	input.Role = strings.ToUpper(strings.TrimSpace(input.Role))
	if input.Role == "" {
		input.Role = string(RoleMember)
	}

	err := publishing.Validated(validation.ValidateStruct(&input,
		validation.Field(&input.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("must be a valid email address")),
		validation.Field(&input.Username, validation.Required.Error("username is required"), validation.RuneLength(3, 100)),
		validation.Field(&input.Password, validation.Required.Error("password is required"), validation.RuneLength(minPasswordLength, 72)),
		validation.Field(&input.Role, validation.In(
			string(RoleAdmin), string(RoleEditor), string(RoleMember), string(RoleStaff),
		).Error(roleMessage)),
	))
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password, s.cost)
	if err != nil {
		return nil, s.fail(ctx, nil, err, "hashing password")
	}

	user := &User{
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         Role(input.Role),
		IsActive:     true,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"email": user.Email}, err, "creating user")
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id string) (*User, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, publishing.NewValidationError("id", "id is required")
	}

	user, err := s.repo.Get(ctx, trimmed)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmed}, err, "fetching user")
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, patch UserPatch) (*User, error) {
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return nil, publishing.NewValidationError("id", "id is required")
	}

	changes := UserChanges{
		FirstName: present(patch.FirstName),
		LastName:  present(patch.LastName),
		IsActive:  patch.IsActive,
	}

	if email := present(patch.Email); email != nil {
		lower := strings.ToLower(*email)
		if err := is.EmailFormat.Validate(lower); err != nil {
			return nil, publishing.NewValidationError("email", "must be a valid email address")
		}
		changes.Email = &lower
	}
	if username := present(patch.Username); username != nil {
		if err := validation.Validate(*username, validation.RuneLength(3, 100)); err != nil {
			return nil, publishing.NewValidationError("username", err.Error())
		}
		changes.Username = username
	}
	if raw := present(patch.Role); raw != nil {
		role, err := parseRole(*raw)
		if err != nil {
			return nil, err
		}
		changes.Role = &role
	}
	if patch.Password != nil && *patch.Password != "" {
		if err := validation.Validate(*patch.Password, validation.RuneLength(minPasswordLength, 72)); err != nil {
			return nil, publishing.NewValidationError("password", err.Error())
		}
		hash, err := HashPassword(*patch.Password, s.cost)
		if err != nil {
			return nil, s.fail(ctx, nil, err, "hashing password")
		}
		changes.PasswordHash = &hash
	}

	user, err := s.repo.Update(ctx, trimmedID, changes)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "updating user")
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return publishing.NewValidationError("id", "id is required")
	}

	if err := s.repo.Delete(ctx, trimmed); err != nil {
		return s.fail(ctx, logrus.Fields{"id": trimmed}, err, "deleting user")
	}
	return nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if publishing.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, s.fail(ctx, nil, err, "looking up user")
	}

	if !user.IsActive || !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword returns the bcrypt digest of password. A cost of zero selects bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", eris.Wrap(err, "generating bcrypt hash")
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func parseRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	switch role {
	case RoleAdmin, RoleEditor, RoleMember, RoleStaff:
		return role, nil
	default:
		return "", publishing.NewValidationError("role", roleMessage)
	}
}

func parseContactStatus(raw string) (ContactStatus, error) {
	status := ContactStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch status {
	case ContactNew, ContactInProgress, ContactResolved, ContactClosed:
		return status, nil
	default:
		return "", publishing.NewValidationError("status", "must be one of NEW, IN_PROGRESS, RESOLVED, CLOSED")
	}
}

func present(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
