// Package publishing holds the lifecycle rules shared by every publishable item type:
// status parsing, transition checks, publication stamping and common error values.
package publishing

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a publishable item.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

// StatusAll is accepted by list filters to disable status filtering.
const StatusAll = "ALL"

var transitions = map[Status]map[Status]bool{
	StatusDraft:     {StatusDraft: true, StatusPublished: true, StatusArchived: true},
	StatusPublished: {StatusDraft: true, StatusPublished: true, StatusArchived: true},
	StatusArchived:  {StatusDraft: true, StatusPublished: true, StatusArchived: true},
}

var formAliases = map[string]Status{
	"ACTIVE":   StatusPublished,
	"INACTIVE": StatusArchived,
	"CLOSED":   StatusArchived,
}

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus normalises raw into a Status. Matching is case-insensitive.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", NewValidationError("status", "must be one of DRAFT, PUBLISHED, ARCHIVED")
	}
	return status, nil
}

// ParseFormStatus accepts the form vocabulary (ACTIVE, INACTIVE, CLOSED) in
// addition to the canonical states.
func ParseFormStatus(raw string) (Status, error) {
	if alias, ok := formAliases[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return alias, nil
	}
	return ParseStatus(raw)
}

// ParseFilter resolves a list filter value. Empty input selects fallback and
// ALL disables filtering, reported as a nil status.
func ParseFilter(raw string, fallback Status, parse func(string) (Status, error)) (*Status, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &fallback, nil
	}
	if strings.EqualFold(trimmed, StatusAll) {
		return nil, nil
	}
	if parse == nil {
		parse = ParseStatus
	}

	status, err := parse(trimmed)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// CanTransition reports whether an item may move from one state to another.
// Every pair of known states is currently allowed.
func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

// Initial returns the state and publication stamp for a newly created item.
// An empty request yields DRAFT.
func Initial(requested Status, now time.Time) (Status, *time.Time) {
	if requested == "" {
		requested = StatusDraft
	}
	if requested != StatusPublished {
		return requested, nil
	}

	stamp := now.UTC()
	return requested, &stamp
}

// Stamp returns the publication time to persist when an item moves to next.
// It is non-nil only for the first publication; an existing stamp never moves.
func Stamp(next Status, current *time.Time, now time.Time) *time.Time {
	if next != StatusPublished || current != nil {
		return nil
	}

	stamp := now.UTC()
	return &stamp
}
