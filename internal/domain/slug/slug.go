// Package slug derives URL-safe identifiers from free-text titles and resolves
// collisions within a single item type.
package slug

import (
	"context"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// MaxLength bounds a derived slug before any disambiguator is appended.
const MaxLength = 100

const randomSuffixCeiling = 1000

// ErrConflict is returned when no free slug could be found for the item type.
var ErrConflict = eris.New("slug already exists")

var (
	// \s is ASCII only in RE2.
	disallowed = regexp.MustCompile(`[^a-z0-9\x{0E01}-\x{0E59}\s\p{Z}\x{FEFF}]`)
	whitespace = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)
)

// Derive lower-cases title, keeps Latin letters, digits, Thai script and
// whitespace, joins words with single hyphens and truncates to MaxLength runes.
func Derive(title string) string {
	lowered := strings.ToLower(title)
	cleaned := strings.TrimSpace(disallowed.ReplaceAllString(lowered, ""))
	hyphenated := whitespace.ReplaceAllString(cleaned, "-")

	if utf8.RuneCountInString(hyphenated) > MaxLength {
		hyphenated = string([]rune(hyphenated)[:MaxLength])
	}

	return strings.Trim(hyphenated, "-")
}

// Policy describes how an item type makes its slugs unique.
type Policy struct {
	// Kind prefixes the fallback slug used when a title has no slug-safe characters.
	Kind string
	// AppendTimestamp suffixes derived slugs with the creation time in epoch milliseconds.
	AppendTimestamp bool
	// Disambiguate retries a colliding candidate with random numeric suffixes.
	Disambiguate bool
	// MaxAttempts bounds the number of disambiguation retries.
	MaxAttempts int
}

// ExistsFunc reports whether candidate is already taken within the item type.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Resolver turns titles and caller overrides into unique slugs.
type Resolver struct {
	now    func() time.Time
	random func(n int) int
}

// NewResolver builds a resolver backed by the wall clock and math/rand.
func NewResolver() *Resolver {
	return &Resolver{
		now:    time.Now,
		random: rand.IntN,
	}
}

// Resolve picks a slug for a new item. A non-empty override is used verbatim as
// the base candidate; otherwise the title is derived. The candidate is checked
// with exists and, when the policy allows, retried with random suffixes. It
// returns ErrConflict once the policy has no attempts left.
func (r *Resolver) Resolve(ctx context.Context, title, override string, policy Policy, exists ExistsFunc) (string, error) {
	if exists == nil {
		return "", eris.New("slug existence check is required")
	}

	base := r.candidate(title, override, policy)

	taken, err := exists(ctx, base)
	if err != nil {
		return "", eris.Wrapf(err, "checking slug: %s", base)
	}
	if !taken {
		return base, nil
	}

	if !policy.Disambiguate {
		return "", eris.Wrapf(ErrConflict, "slug %s", base)
	}

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		next := base + "-" + strconv.Itoa(r.random(randomSuffixCeiling))

		taken, err := exists(ctx, next)
		if err != nil {
			return "", eris.Wrapf(err, "checking slug: %s", next)
		}
		if !taken {
			return next, nil
		}
	}

	return "", eris.Wrapf(ErrConflict, "slug %s after %d attempts", base, policy.MaxAttempts)
}

func (r *Resolver) candidate(title, override string, policy Policy) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}

	derived := Derive(title)
	if derived == "" {
		derived = fallback(policy.Kind)
	}

	if policy.AppendTimestamp {
		derived += "-" + strconv.FormatInt(r.now().UnixMilli(), 10)
	}

	return derived
}

func fallback(kind string) string {
	prefix := Derive(kind)
	if prefix == "" {
		prefix = "item"
	}
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
