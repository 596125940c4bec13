// Package cms implements the publishable item types of the club site: news,
// content pages, galleries and forms.
package cms

import (
	"context"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/publishing"
	"smoweb/app/internal/domain/slug"
	applog "smoweb/app/internal/log"
	"smoweb/app/internal/metrics"
)

const defaultSlugAttempts = 5

// Options carries the dependencies shared by every item service.
type Options struct {
	Logger          *logrus.Logger
	SentryHub       *sentry.Hub
	SlugMaxAttempts int
	Resolver        *slug.Resolver
	Now             func() time.Time
}

// ListQuery holds the raw list filters accepted by the item services.
// Fields that do not apply to an item type are ignored.
type ListQuery struct {
	Category string
	Status   string
	Priority string
	Type     string
}

type base struct {
	kind        Kind
	policy      slug.Policy
	resolver    *slug.Resolver
	parseStatus func(string) (publishing.Status, error)
	logger      *logrus.Logger
	sentryHub   *sentry.Hub
	now         func() time.Time
}

func newBase(kind Kind, opts Options, appendTimestamp, disambiguate bool) base {
	attempts := opts.SlugMaxAttempts
	if attempts <= 0 {
		attempts = defaultSlugAttempts
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = slug.NewResolver()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return base{
		kind: kind,
		policy: slug.Policy{
			Kind:            string(kind),
			AppendTimestamp: appendTimestamp,
			Disambiguate:    disambiguate,
			MaxAttempts:     attempts,
		},
		resolver:    resolver,
		parseStatus: publishing.ParseStatus,
		logger:      opts.Logger,
		sentryHub:   opts.SentryHub,
		now:         now,
	}
}

func (b *base) resolveSlug(ctx context.Context, title, override string, exists slug.ExistsFunc) (string, error) {
	resolved, err := b.resolver.Resolve(ctx, title, override, b.policy, exists)
	if err != nil {
		if eris.Is(err, slug.ErrConflict) {
			metrics.ObserveSlugConflict(string(b.kind))
		}
		return "", err
	}
	return resolved, nil
}

// initial resolves the status and stamp for a new item.
func (b *base) initial(raw string) (publishing.Status, *time.Time, error) {
	var requested publishing.Status
	if strings.TrimSpace(raw) != "" {
		parsed, err := b.parseStatus(raw)
		if err != nil {
			return "", nil, err
		}
		requested = parsed
	}

	status, stamp := publishing.Initial(requested, b.now())
	return status, stamp, nil
}

// common turns a patch into column changes against the current state of the item.
func (b *base) common(ctx context.Context, patch CommonPatch, current publishing.Meta, exists slug.ExistsFunc) (Changes, error) {
	var changes Changes

	changes.Title = present(patch.Title)

	if next := present(patch.Slug); next != nil && *next != current.Slug {
		taken, err := exists(ctx, *next)
		if err != nil {
			return Changes{}, eris.Wrapf(err, "checking slug: %s", *next)
		}
		if taken {
			metrics.ObserveSlugConflict(string(b.kind))
			return Changes{}, eris.Wrapf(publishing.ErrSlugConflict, "slug %s", *next)
		}
		changes.Slug = next
	}

	if raw := present(patch.Status); raw != nil {
		next, err := b.parseStatus(*raw)
		if err != nil {
			return Changes{}, err
		}
		if !publishing.CanTransition(current.Status, next) {
			return Changes{}, publishing.NewValidationError("status", "cannot move from "+current.Status.String()+" to "+next.String())
		}
		changes.Status = &next
		changes.PublishedAt = publishing.Stamp(next, current.PublishedAt, b.now())
	}

	if patch.Tags != nil {
		tags := publishing.CleanTags(*patch.Tags)
		changes.Tags = &tags
	}

	return changes, nil
}

func (b *base) viewed() {
	metrics.ObserveView(string(b.kind))
}

// fail records unexpected errors and passes every error through unchanged.
func (b *base) fail(ctx context.Context, fields logrus.Fields, err error, message string) error {
	if err == nil {
		return nil
	}
	if publishing.IsValidation(err) || publishing.IsNotFound(err) || publishing.IsSlugConflict(err) {
		return err
	}

	b.recordError(ctx, fields, err, message)
	return eris.Wrap(err, message)
}

func (b *base) recordError(ctx context.Context, fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if b.logger != nil {
		entry := b.logger.WithField("error", err.Error()).WithField("kind", string(b.kind))
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	applog.Capture(ctx, b.sentryHub, err)
}

func normalizeUpper(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func requireID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", publishing.NewValidationError("id", "id is required")
	}
	return trimmed, nil
}
