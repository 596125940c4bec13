package club

import (
	"context"
	"time"
)

// Store is the persistence shared by every club record. Save writes the whole record back.
type Store[T any] interface {
	Create(ctx context.Context, item *T) error
	Get(ctx context.Context, id string) (*T, error)
	Save(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
}

type ActivityFilter struct {
	Type      ActivityType
	Status    ActivityStatus
	IsPublic  *bool
	ProjectID string
	// StartsAfter keeps activities starting at or after the instant.
	StartsAfter *time.Time
	Limit       int
}

type ActivityRepository interface {
	Store[Activity]
	List(ctx context.Context, filter ActivityFilter) ([]Activity, error)
}

type ProjectFilter struct {
	Year     int
	Status   ProjectStatus
	Priority string
	IsActive *bool
}

type ProjectRepository interface {
	Store[Project]
	List(ctx context.Context, filter ProjectFilter) ([]Project, error)
}

type DocumentFilter struct {
	Type     string
	IsPublic *bool
}

type DocumentRepository interface {
	Store[Document]
	List(ctx context.Context, filter DocumentFilter) ([]Document, error)
	// RecordDownload increments the download counter and returns the stored document.
	RecordDownload(ctx context.Context, id string) (*Document, error)
}

type CampaignRepository interface {
	Store[Campaign]
	List(ctx context.Context, status CampaignStatus) ([]Campaign, error)
	// Donate stores the donation and adds it to the campaign totals in one transaction.
	Donate(ctx context.Context, donation *Donation) (*Campaign, error)
}

type MemberRepository interface {
	Store[Member]
	List(ctx context.Context, filter MemberQuery) ([]Member, error)
}

type StaffRepository interface {
	Store[Staff]
	List(ctx context.Context, filter StaffQuery) ([]Staff, error)
}

type PositionFilter struct {
	Type     string
	IsActive *bool
}

type PositionRepository interface {
	Store[Position]
	List(ctx context.Context, filter PositionFilter) ([]Position, error)
}

// AuthorResolver picks the account credited for a new activity or project:
// the user with email, else the user with id, else the first admin.
// It returns nil when no account matches.
type AuthorResolver interface {
	ResolveAuthor(ctx context.Context, id, email string) (*string, error)
}
