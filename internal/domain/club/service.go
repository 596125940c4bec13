package club

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/directory"
	"smoweb/app/internal/domain/publishing"
	applog "smoweb/app/internal/log"
)

type ActivityService interface {
	Create(ctx context.Context, input ActivityInput) (*Activity, error)
	Get(ctx context.Context, id string) (*Activity, error)
	List(ctx context.Context, query ActivityQuery) ([]Activity, error)
	Update(ctx context.Context, id string, patch ActivityPatch) (*Activity, error)
	Delete(ctx context.Context, id string) error
}

type ProjectService interface {
	Create(ctx context.Context, input ProjectInput) (*Project, error)
	// Get returns the project together with its activities.
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, query ProjectQuery) ([]Project, error)
	Update(ctx context.Context, id string, patch ProjectPatch) (*Project, error)
	Delete(ctx context.Context, id string) error
}

type DocumentService interface {
	Create(ctx context.Context, input DocumentInput) (*Document, error)
	Get(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context, query DocumentQuery) ([]Document, error)
	Update(ctx context.Context, id string, patch DocumentPatch) (*Document, error)
	Delete(ctx context.Context, id string) error
	RecordDownload(ctx context.Context, id string) (*Document, error)
}

type CampaignService interface {
	Create(ctx context.Context, input CampaignInput) (*Campaign, error)
	// Get returns the campaign with its donations, newest first.
	Get(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context, status string) ([]Campaign, error)
	Update(ctx context.Context, id string, patch CampaignPatch) (*Campaign, error)
	Delete(ctx context.Context, id string) error
	Donate(ctx context.Context, campaignID string, input DonationInput) (*Campaign, error)
}

type MemberService interface {
	Create(ctx context.Context, input MemberInput) (*Member, error)
	Get(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, query MemberQuery) ([]Member, error)
	Update(ctx context.Context, id string, patch MemberPatch) (*Member, error)
	Delete(ctx context.Context, id string) error
}

type StaffService interface {
	Create(ctx context.Context, input StaffInput) (*Staff, error)
	Get(ctx context.Context, id string) (*Staff, error)
	List(ctx context.Context, query StaffQuery) ([]Staff, error)
	Update(ctx context.Context, id string, patch StaffPatch) (*Staff, error)
	Delete(ctx context.Context, id string) error
}

type PositionService interface {
	Create(ctx context.Context, input PositionInput) (*Position, error)
	Get(ctx context.Context, id string) (*Position, error)
	List(ctx context.Context, query PositionQuery) ([]Position, error)
	Update(ctx context.Context, id string, patch PositionPatch) (*Position, error)
	Delete(ctx context.Context, id string) error
}

type reporter struct {
	component string
	logger    *logrus.Logger
	sentryHub *sentry.Hub
}

func newReporter(component string, logger *logrus.Logger, hub *sentry.Hub) reporter {
	return reporter{component: "club." + component, logger: logger, sentryHub: hub}
}

func (r reporter) fail(ctx context.Context, fields logrus.Fields, err error, message string) error {
	if err == nil {
		return nil
	}
	if publishing.IsValidation(err) || publishing.IsNotFound(err) || eris.Is(err, directory.ErrDuplicate) {
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

// load fetches id from store after checking it is not blank.
func load[T any](ctx context.Context, r reporter, store Store[T], id, noun string) (*T, error) {
	trimmed, err := requireID(id)
	if err != nil {
		return nil, err
	}

	item, err := store.Get(ctx, trimmed)
	if err != nil {
		return nil, r.fail(ctx, logrus.Fields{"id": trimmed}, err, "fetching "+noun)
	}
	return item, nil
}

func remove[T any](ctx context.Context, r reporter, store Store[T], id, noun string) error {
	trimmed, err := requireID(id)
	if err != nil {
		return err
	}

	if err := store.Delete(ctx, trimmed); err != nil {
		return r.fail(ctx, logrus.Fields{"id": trimmed}, err, "deleting "+noun)
	}
	return nil
}

func requireID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", publishing.NewValidationError("id", "id is required")
	}
	return trimmed, nil
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

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// optional returns nil for a blank string.
func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// parseFlag reads an optional true/false query value. Blank yields fallback.
func parseFlag(field, raw string, fallback *bool) (*bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback, nil
	}
	if strings.EqualFold(trimmed, "all") {
		return nil, nil
	}

	value, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, publishing.NewValidationError(field, "must be true, false or all")
	}
	return &value, nil
}

func parseOptionalDate(field string, raw *string) (*time.Time, error) {
	value := present(raw)
	if value == nil {
		return nil, nil
	}
	parsed, err := publishing.ParseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func checkRange(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return publishing.NewValidationError("endDate", "must not be before startDate")
	}
	return nil
}

func oneOf[T ~string](value T, allowed []T) bool {
	for _, candidate := range allowed {
		if candidate == value {
			return true
		}
	}
	return false
}

func joined[T ~string](allowed []T) string {
	names := make([]string, 0, len(allowed))
	for _, value := range allowed {
		names = append(names, string(value))
	}
	return strings.Join(names, ", ")
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// resolveAuthor credits the matching account or fails with a validation error when there is none.
func resolveAuthor(ctx context.Context, r reporter, authors AuthorResolver, id, email string) (*string, error) {
	authorID, err := authors.ResolveAuthor(ctx, strings.TrimSpace(id), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, r.fail(ctx, nil, err, "resolving author")
	}
	if authorID == nil {
		return nil, publishing.NewValidationError("author", "no author found; create an admin user first")
	}
	return authorID, nil
}
