package directory

import "time"

// CategoryRecord groups news items and galleries.
type CategoryRecord struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"size:255;uniqueIndex;not null"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null"`
	Type        string    `gorm:"size:20;not null;default:GENERAL"`
	Color       string    `gorm:"size:20"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (CategoryRecord) TableName() string {
	return "categories"
}

// ContactRecord is a message left through the public contact form.
type ContactRecord struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255;not null;index"`
	Phone     string    `gorm:"size:50"`
	Subject   string    `gorm:"size:255;not null"`
	Message   string    `gorm:"type:text;not null"`
	Category  string    `gorm:"size:50;not null;default:general;index"`
	Priority  string    `gorm:"size:20;not null;default:MEDIUM"`
	Status    string    `gorm:"size:20;not null;default:NEW;index"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ContactRecord) TableName() string {
	return "contacts"
}

// UserRecord is a site account. PasswordHash holds a bcrypt digest.
type UserRecord struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	Username     string    `gorm:"size:100;uniqueIndex;not null"`
	FirstName    string    `gorm:"size:100"`
	LastName     string    `gorm:"size:100"`
	Role         string    `gorm:"size:20;not null;default:MEMBER;index"`
	IsActive     bool      `gorm:"not null;default:true"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (UserRecord) TableName() string {
	return "users"
}

// Records lists every model owned by this package in migration order.
func Records() []any {
	return []any{
		&CategoryRecord{},
		&ContactRecord{},
		&UserRecord{},
	}
}
