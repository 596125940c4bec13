package publishing

import (
	"testing"
	"time"

	"github.com/rotisserie/eris"

	"smoweb/app/internal/domain/slug"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]Status{
		"draft":       StatusDraft,
		" PUBLISHED ": StatusPublished,
		"Archived":    StatusArchived,
	}
	for input, expected := range cases {
		got, err := ParseStatus(input)
		if err != nil {
			t.Fatalf("ParseStatus(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseStatus(%q) = %q, expected %q", input, got, expected)
		}
	}

	if _, err := ParseStatus("ACTIVE"); !IsValidation(err) {
		t.Fatalf("expected validation error for ACTIVE, got %v", err)
	}
}

func TestParseFormStatusAliases(t *testing.T) {
	t.Parallel()

	cases := map[string]Status{
		"active":    StatusPublished,
		"INACTIVE":  StatusArchived,
		"closed":    StatusArchived,
		"draft":     StatusDraft,
		"published": StatusPublished,
	}
	for input, expected := range cases {
		got, err := ParseFormStatus(input)
		if err != nil {
			t.Fatalf("ParseFormStatus(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseFormStatus(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	status, err := ParseFilter("", StatusPublished, nil)
	if err != nil || status == nil || *status != StatusPublished {
		t.Fatalf("expected default PUBLISHED filter, got %v (err %v)", status, err)
	}

	status, err = ParseFilter("all", StatusPublished, nil)
	if err != nil || status != nil {
		t.Fatalf("expected ALL to disable the filter, got %v (err %v)", status, err)
	}

	status, err = ParseFilter("active", StatusPublished, ParseFormStatus)
	if err != nil || status == nil || *status != StatusPublished {
		t.Fatalf("expected ACTIVE to map to PUBLISHED, got %v (err %v)", status, err)
	}

	if _, err := ParseFilter("bogus", StatusPublished, nil); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCanTransitionAllowsEveryPair(t *testing.T) {
	t.Parallel()

	states := []Status{StatusDraft, StatusPublished, StatusArchived}
	for _, from := range states {
		for _, to := range states {
			if !CanTransition(from, to) {
				t.Fatalf("expected transition %s -> %s to be allowed", from, to)
			}
		}
	}

	if CanTransition(StatusDraft, Status("DELETED")) {
		t.Fatalf("expected unknown target state to be rejected")
	}
}

func TestInitial(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("ICT", 7*3600))

	status, stamp := Initial("", now)
	if status != StatusDraft || stamp != nil {
		t.Fatalf("expected DRAFT without stamp, got %s %v", status, stamp)
	}

	status, stamp = Initial(StatusArchived, now)
	if status != StatusArchived || stamp != nil {
		t.Fatalf("expected ARCHIVED without stamp, got %s %v", status, stamp)
	}

	status, stamp = Initial(StatusPublished, now)
	if status != StatusPublished || stamp == nil {
		t.Fatalf("expected PUBLISHED with stamp, got %s %v", status, stamp)
	}
	if !stamp.Equal(now) || stamp.Location() != time.UTC {
		t.Fatalf("expected stamp %s in UTC, got %s", now, stamp)
	}
}

func TestStampOnlyOnFirstPublication(t *testing.T) {
	t.Parallel()

	now := time.Now()
	earlier := now.Add(-time.Hour)

	if stamp := Stamp(StatusPublished, nil, now); stamp == nil {
		t.Fatalf("expected first publication to be stamped")
	}
	if stamp := Stamp(StatusPublished, &earlier, now); stamp != nil {
		t.Fatalf("expected republication to keep the existing stamp, got %v", stamp)
	}
	if stamp := Stamp(StatusArchived, nil, now); stamp != nil {
		t.Fatalf("expected archive not to stamp, got %v", stamp)
	}
	if stamp := Stamp(StatusDraft, &earlier, now); stamp != nil {
		t.Fatalf("expected unpublish not to touch the stamp, got %v", stamp)
	}
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	if !IsNotFound(eris.Wrap(ErrNotFound, "fetching news")) {
		t.Fatalf("expected wrapped ErrNotFound to be detected")
	}
	if !IsSlugConflict(eris.Wrapf(slug.ErrConflict, "slug %s", "taken")) {
		t.Fatalf("expected slug conflict from resolver to be detected")
	}
	if IsValidation(ErrNotFound) {
		t.Fatalf("expected ErrNotFound not to be a validation error")
	}

	lookupErr := func() error {
		_, err := Lookup{}.Normalize()
		return err
	}()
	if !IsValidation(lookupErr) {
		t.Fatalf("expected empty lookup to be a validation error, got %v", lookupErr)
	}
}
