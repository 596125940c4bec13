package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domaindir "smoweb/app/internal/domain/directory"
	"smoweb/app/internal/domain/publishing"
)

type CategoryRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

var _ domaindir.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB, logger *logrus.Logger) (*CategoryRepository, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}
	return &CategoryRepository{db: db, logger: logger}, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domaindir.Category, error) {
	var records []CategoryRecord
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&records).Error; err != nil {
		logError(r.logger, nil, err, "listing categories")
		return nil, eris.Wrap(err, "listing categories")
	}

	categories := make([]domaindir.Category, 0, len(records))
	for i := range records {
		categories = append(categories, toDomainCategory(&records[i]))
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domaindir.Category) error {
	if category == nil {
		return eris.New("category is nil")
	}

	record := &CategoryRecord{
		ID:          uuid.NewString(),
		Name:        category.Name,
		Slug:        category.Slug,
		Type:        string(category.Type),
		Color:       category.Color,
		Description: category.Description,
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return translateWriteError(r.logger, logrus.Fields{"slug": category.Slug}, err, "creating category")
	}

	*category = toDomainCategory(record)
	return nil
}

func (r *CategoryRepository) Exists(ctx context.Context, slug, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CategoryRecord{}).
		Where("slug = ? OR name = ?", slug, name).
		Count(&count).Error
	if err != nil {
		logError(r.logger, logrus.Fields{"slug": slug}, err, "checking category")
		return false, eris.Wrapf(err, "checking category: %s", slug)
	}
	return count > 0, nil
}

type ContactRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

var _ domaindir.ContactRepository = (*ContactRepository)(nil)

func NewContactRepository(db *gorm.DB, logger *logrus.Logger) (*ContactRepository, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}
	return &ContactRepository{db: db, logger: logger}, nil
}

func (r *ContactRepository) Create(ctx context.Context, contact *domaindir.Contact) error {
	if contact == nil {
		return eris.New("contact is nil")
	}

	record := &ContactRecord{
		ID:       uuid.NewString(),
		Name:     contact.Name,
		Email:    contact.Email,
		Phone:    contact.Phone,
		Subject:  contact.Subject,
		Message:  contact.Message,
		Category: contact.Category,
		Priority: contact.Priority,
		Status:   string(contact.Status),
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		logError(r.logger, logrus.Fields{"email": contact.Email}, err, "creating contact")
		return eris.Wrap(err, "creating contact")
	}

	*contact = toDomainContact(record)
	return nil
}

func (r *ContactRepository) Get(ctx context.Context, id string) (*domaindir.Contact, error) {
	var record ContactRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "contact id %s", id)
		}
		logError(r.logger, logrus.Fields{"id": id}, err, "fetching contact")
		return nil, eris.Wrapf(err, "fetching contact: %s", id)
	}

	contact := toDomainContact(&record)
	return &contact, nil
}

// List returns contacts newest first.
func (r *ContactRepository) List(ctx context.Context, filter domaindir.ContactFilter) ([]domaindir.Contact, error) {
	query := r.db.WithContext(ctx)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var records []ContactRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		logError(r.logger, nil, err, "listing contacts")
		return nil, eris.Wrap(err, "listing contacts")
	}

	contacts := make([]domaindir.Contact, 0, len(records))
	for i := range records {
		contacts = append(contacts, toDomainContact(&records[i]))
	}
	return contacts, nil
}

func (r *ContactRepository) Update(ctx context.Context, id string, changes domaindir.ContactChanges) (*domaindir.Contact, error) {
	columns := map[string]any{"updated_at": time.Now().UTC()}
	setString(columns, "name", changes.Name)
	setString(columns, "email", changes.Email)
	setString(columns, "phone", changes.Phone)
	setString(columns, "subject", changes.Subject)
	setString(columns, "message", changes.Message)
	setString(columns, "category", changes.Category)
	setString(columns, "priority", changes.Priority)
	if changes.Status != nil {
		columns["status"] = string(*changes.Status)
	}

	var record ContactRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ContactRecord{}).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return publishing.ErrNotFound
		}
		return tx.Where("id = ?", id).First(&record).Error
	})
	if err != nil {
		if eris.Is(err, publishing.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "contact id %s", id)
		}
		logError(r.logger, logrus.Fields{"id": id}, err, "updating contact")
		return nil, eris.Wrapf(err, "updating contact: %s", id)
	}

	contact := toDomainContact(&record)
	return &contact, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ContactRecord{})
	if result.Error != nil {
		logError(r.logger, logrus.Fields{"id": id}, result.Error, "deleting contact")
		return eris.Wrapf(result.Error, "deleting contact: %s", id)
	}
	if result.RowsAffected == 0 {
		return eris.Wrapf(publishing.ErrNotFound, "contact id %s", id)
	}
	return nil
}

type UserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

var _ domaindir.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB, logger *logrus.Logger) (*UserRepository, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}
	return &UserRepository{db: db, logger: logger}, nil
}

func (r *UserRepository) List(ctx context.Context, role domaindir.Role) ([]domaindir.User, error) {
	query := r.db.WithContext(ctx)
	if role != "" {
		query = query.Where("role = ?", string(role))
	}

	var records []UserRecord
	if err := query.Order("created_at ASC").Find(&records).Error; err != nil {
		logError(r.logger, nil, err, "listing users")
		return nil, eris.Wrap(err, "listing users")
	}

	users := make([]domaindir.User, 0, len(records))
	for i := range records {
		users = append(users, toDomainUser(&records[i]))
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domaindir.User) error {
	if user == nil {
		return eris.New("user is nil")
	}

	record := &UserRecord{
		ID:           uuid.NewString(),
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.Role),
		IsActive:     user.IsActive,
		PasswordHash: user.PasswordHash,
	}

	// gorm skips zero-value fields that carry a default, so is_active=false is written explicitly.
	if err := r.db.WithContext(ctx).Select("*").Create(record).Error; err != nil {
		return translateWriteError(r.logger, logrus.Fields{"email": user.Email}, err, "creating user")
	}

	*user = toDomainUser(record)
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domaindir.User, error) {
	var record UserRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "user id %s", id)
		}
		logError(r.logger, logrus.Fields{"id": id}, err, "fetching user")
		return nil, eris.Wrapf(err, "fetching user: %s", id)
	}

	user := toDomainUser(&record)
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, changes domaindir.UserChanges) (*domaindir.User, error) {
	columns := map[string]any{"updated_at": time.Now().UTC()}
	setString(columns, "email", changes.Email)
	setString(columns, "username", changes.Username)
	setString(columns, "first_name", changes.FirstName)
	setString(columns, "last_name", changes.LastName)
	setString(columns, "password_hash", changes.PasswordHash)
	if changes.Role != nil {
		columns["role"] = string(*changes.Role)
	}
	if changes.IsActive != nil {
		columns["is_active"] = *changes.IsActive
	}

	var record UserRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&UserRecord{}).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return publishing.ErrNotFound
		}
		return tx.Where("id = ?", id).First(&record).Error
	})
	if err != nil {
		if eris.Is(err, publishing.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "user id %s", id)
		}
		return nil, translateWriteError(r.logger, logrus.Fields{"id": id}, err, "updating user")
	}

	user := toDomainUser(&record)
	return &user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserRecord{})
	if result.Error != nil {
		logError(r.logger, logrus.Fields{"id": id}, result.Error, "deleting user")
		return eris.Wrapf(result.Error, "deleting user: %s", id)
	}
	if result.RowsAffected == 0 {
		return eris.Wrapf(publishing.ErrNotFound, "user id %s", id)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domaindir.User, error) {
	var record UserRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "user %s", email)
		}
		logError(r.logger, logrus.Fields{"email": email}, err, "fetching user")
		return nil, eris.Wrapf(err, "fetching user: %s", email)
	}

	user := toDomainUser(&record)
	return &user, nil
}

func (r *UserRepository) DefaultAuthorID(ctx context.Context) (*string, error) {
	var record UserRecord
	err := r.db.WithContext(ctx).
		Where("role = ?", string(domaindir.RoleAdmin)).
		Order("created_at ASC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = r.db.WithContext(ctx).Order("created_at ASC").First(&record).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logError(r.logger, nil, err, "resolving default author")
		return nil, eris.Wrap(err, "resolving default author")
	}

	return &record.ID, nil
}

// ResolveAuthor returns the user with email, else the user with id, else the
// first admin. It returns nil when none of them exists.
func (r *UserRepository) ResolveAuthor(ctx context.Context, id, email string) (*string, error) {
	lookups := [][2]string{{"email", email}, {"id", id}}
	for _, lookup := range lookups {
		if lookup[1] == "" {
			continue
		}

		var record UserRecord
		err := r.db.WithContext(ctx).Where(lookup[0]+" = ?", lookup[1]).First(&record).Error
		if err == nil {
			return &record.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logError(r.logger, logrus.Fields{lookup[0]: lookup[1]}, err, "resolving author")
			return nil, eris.Wrap(err, "resolving author")
		}
	}

	var admin UserRecord
	err := r.db.WithContext(ctx).
		Where("role = ?", string(domaindir.RoleAdmin)).
		Order("created_at ASC").
		First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logError(r.logger, nil, err, "resolving admin author")
		return nil, eris.Wrap(err, "resolving admin author")
	}
	return &admin.ID, nil
}

func translateWriteError(logger *logrus.Logger, fields logrus.Fields, err error, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
		return eris.Wrap(domaindir.ErrDuplicate, message)
	}
	logError(logger, fields, err, message)
	return eris.Wrap(err, message)
}

func logError(logger *logrus.Logger, fields logrus.Fields, err error, message string) {
	if logger == nil || err == nil {
		return
	}

	entry := logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}

func setString(columns map[string]any, column string, value *string) {
	if value != nil {
		columns[column] = *value
	}
}

func toDomainCategory(record *CategoryRecord) domaindir.Category {
	return domaindir.Category{
		ID:          record.ID,
		Name:        record.Name,
		Slug:        record.Slug,
		Type:        domaindir.CategoryType(record.Type),
		Color:       record.Color,
		Description: record.Description,
		CreatedAt:   record.CreatedAt.UTC(),
		UpdatedAt:   record.UpdatedAt.UTC(),
	}
}

func toDomainContact(record *ContactRecord) domaindir.Contact {
	return domaindir.Contact{
		ID:        record.ID,
		Name:      record.Name,
		Email:     record.Email,
		Phone:     record.Phone,
		Subject:   record.Subject,
		Message:   record.Message,
		Category:  record.Category,
		Priority:  record.Priority,
		Status:    domaindir.ContactStatus(record.Status),
		CreatedAt: record.CreatedAt.UTC(),
		UpdatedAt: record.UpdatedAt.UTC(),
	}
}

func toDomainUser(record *UserRecord) domaindir.User {
	return domaindir.User{
		ID:           record.ID,
		Email:        record.Email,
		Username:     record.Username,
		FirstName:    record.FirstName,
		LastName:     record.LastName,
		Role:         domaindir.Role(record.Role),
		IsActive:     record.IsActive,
		PasswordHash: record.PasswordHash,
		CreatedAt:    record.CreatedAt.UTC(),
		UpdatedAt:    record.UpdatedAt.UTC(),
	}
}
