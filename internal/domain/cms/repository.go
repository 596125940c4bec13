package cms

import (
	"context"

	"smoweb/app/internal/domain/publishing"
)

// NewsRepository defines persistence operations for news items.
type NewsRepository interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, news *News) error
	Get(ctx context.Context, id string) (*News, error)
	RecordView(ctx context.Context, lookup publishing.Lookup) (*News, error)
	List(ctx context.Context, filter NewsFilter) ([]News, error)
	Update(ctx context.Context, id string, changes NewsChanges) (*News, error)
	Delete(ctx context.Context, id string) error
}

type ContentRepository interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, content *Content) error
	Get(ctx context.Context, id string) (*Content, error)
	RecordView(ctx context.Context, lookup publishing.Lookup) (*Content, error)
	List(ctx context.Context, filter ContentFilter) ([]Content, error)
	Update(ctx context.Context, id string, changes ContentChanges) (*Content, error)
	Delete(ctx context.Context, id string) error
}

type GalleryRepository interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, gallery *Gallery) error
	Get(ctx context.Context, id string) (*Gallery, error)
	RecordView(ctx context.Context, lookup publishing.Lookup) (*Gallery, error)
	List(ctx context.Context, filter GalleryFilter) ([]Gallery, error)
	Update(ctx context.Context, id string, changes GalleryChanges) (*Gallery, error)
	Delete(ctx context.Context, id string) error
}

// FormRepository persists forms and their submissions. RecordView on a form
// also loads its submissions, newest first.
type FormRepository interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, form *Form) error
	Get(ctx context.Context, id string) (*Form, error)
	RecordView(ctx context.Context, lookup publishing.Lookup) (*Form, error)
	List(ctx context.Context, filter FormFilter) ([]Form, error)
	Update(ctx context.Context, id string, changes FormChanges) (*Form, error)
	Delete(ctx context.Context, id string) error
	CreateSubmission(ctx context.Context, submission *FormSubmission) error
}

// AuthorResolver picks the default author credited with new news items.
// It returns nil when no user exists.
type AuthorResolver interface {
	DefaultAuthorID(ctx context.Context) (*string, error)
}
