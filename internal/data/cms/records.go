package cms

import (
	"time"

	"gorm.io/datatypes"

	"smoweb/app/internal/data/directory"
)

// ItemColumns are shared by every publishable table. The slug index is unique per table.
type ItemColumns struct {
	ID          string                      `gorm:"primaryKey;size:36"`
	Title       string                      `gorm:"size:255;not null"`
	Slug        string                      `gorm:"size:255;uniqueIndex;not null"`
	Status      string                      `gorm:"size:20;not null;default:DRAFT;index"`
	PublishedAt *time.Time                  `gorm:"index"`
	ViewCount   int64                       `gorm:"not null;default:0"`
	Tags        datatypes.JSONSlice[string] `gorm:"not null"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
}

// NewsRecord is a news item persisted in the database.
type NewsRecord struct {
	ItemColumns
	Content    string                    `gorm:"type:text;not null"`
	Excerpt    string                    `gorm:"type:text"`
	CategoryID string                    `gorm:"size:36;not null;index"`
	Category   *directory.CategoryRecord `gorm:"constraint:OnDelete:RESTRICT"`
	Priority   string                    `gorm:"size:20;not null;default:MEDIUM;index"`
	Image      string                    `gorm:"size:500"`
	AuthorID   *string                   `gorm:"size:36;index"`
	Author     *directory.UserRecord     `gorm:"constraint:OnDelete:SET NULL"`
}

func (NewsRecord) TableName() string {
	return "news"
}

// ContentRecord is a static page or announcement body.
type ContentRecord struct {
	ItemColumns
	Content string `gorm:"type:text;not null"`
	Excerpt string `gorm:"type:text"`
	Type    string `gorm:"size:20;not null;index"`
}

func (ContentRecord) TableName() string {
	return "contents"
}

// GalleryRecord is a photo set for one event.
type GalleryRecord struct {
	ItemColumns
	Description string                      `gorm:"type:text"`
	CategoryID  string                      `gorm:"size:36;not null;index"`
	Category    *directory.CategoryRecord   `gorm:"constraint:OnDelete:RESTRICT"`
	Images      datatypes.JSONSlice[string] `gorm:"not null"`
	EventDate   time.Time                   `gorm:"not null;index"`
	UploadedBy  string                      `gorm:"size:100;not null;default:system"`
}

func (GalleryRecord) TableName() string {
	return "galleries"
}

// FormRecord is a form definition with its JSON field list and settings.
type FormRecord struct {
	ItemColumns
	Description string                              `gorm:"type:text"`
	Type        string                              `gorm:"size:50;not null;index"`
	Fields      datatypes.JSONSlice[map[string]any] `gorm:"not null"`
	Settings    datatypes.JSONMap                   `gorm:"not null"`
	Submissions []FormSubmissionRecord              `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE"`
}

func (FormRecord) TableName() string {
	return "forms"
}

// FormSubmissionRecord is one response to a form; it is removed with its form.
type FormSubmissionRecord struct {
	ID        string            `gorm:"primaryKey;size:36"`
	FormID    string            `gorm:"size:36;not null;index"`
	Data      datatypes.JSONMap `gorm:"not null"`
	Status    string            `gorm:"size:20;not null;default:PENDING;index"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

func (FormSubmissionRecord) TableName() string {
	return "form_submissions"
}

// Records lists every model owned by this package in migration order.
func Records() []any {
	return []any{
		&NewsRecord{},
		&ContentRecord{},
		&GalleryRecord{},
		&FormRecord{},
		&FormSubmissionRecord{},
	}
}
