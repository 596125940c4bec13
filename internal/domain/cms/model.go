package cms

import (
	"strings"
	"time"

	"smoweb/app/internal/domain/publishing"
)

// Kind names a publishable item type. It scopes slug uniqueness and labels metrics.
type Kind string

const (
	KindNews    Kind = "news"
	KindContent Kind = "content"
	KindGallery Kind = "gallery"
	KindForm    Kind = "form"
)

// Priority orders news items; URGENT sorts first.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities lists every priority from lowest to highest rank.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Rank returns the sort weight of p, or zero when p is unknown.
func (p Priority) Rank() int {
	for i, candidate := range Priorities {
		if candidate == p {
			return i + 1
		}
	}
	return 0
}

// ContentType classifies generic content pages.
type ContentType string

const (
	ContentTypeNews         ContentType = "NEWS"
	ContentTypeActivity     ContentType = "ACTIVITY"
	ContentTypeAnnouncement ContentType = "ANNOUNCEMENT"
)

// SubmissionStatus tracks the review state of a form submission.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "PENDING"
	SubmissionReviewed SubmissionStatus = "REVIEWED"
	SubmissionApproved SubmissionStatus = "APPROVED"
	SubmissionRejected SubmissionStatus = "REJECTED"
)

// Author is the public summary of the user credited with a news item.
type Author struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// News is an announcement with priority ordering.
type News struct {
	publishing.Meta
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt"`
	CategoryID string   `json:"categoryId"`
	Priority   Priority `json:"priority"`
	Image      string   `json:"image"`
	AuthorID   *string  `json:"authorId"`
	Author     *Author  `json:"author,omitempty"`
}

// Content is a general page typed as news, activity or announcement.
type Content struct {
	publishing.Meta
	Content string      `json:"content"`
	Excerpt string      `json:"excerpt"`
	Type    ContentType `json:"type"`
}

// Gallery is a dated collection of image references.
type Gallery struct {
	publishing.Meta
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	Images      []string  `json:"images"`
	EventDate   time.Time `json:"eventDate"`
	UploadedBy  string    `json:"uploadedBy"`
}

// Form is a fillable form definition. Fields and Settings are opaque JSON documents.
type Form struct {
	publishing.Meta
	Description     string           `json:"description"`
	Type            string           `json:"type"`
	Fields          []map[string]any `json:"fields"`
	Settings        map[string]any   `json:"settings"`
	SubmissionCount int64            `json:"submissionCount"`
	Submissions     []FormSubmission `json:"submissions,omitempty"`
}

// FormSubmission is a single response to a form.
type FormSubmission struct {
	ID        string           `json:"id"`
	FormID    string           `json:"formId"`
	Data      map[string]any   `json:"data"`
	Status    SubmissionStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewsFilter narrows news listings. A nil Status lists every state.
type NewsFilter struct {
	CategoryID string
	Status     *publishing.Status
	Priority   Priority
}

type ContentFilter struct {
	Type   ContentType
	Status *publishing.Status
}

type GalleryFilter struct {
	CategoryID string
	Status     *publishing.Status
}

type FormFilter struct {
	Type   string
	Status *publishing.Status
}

// Common carries the request fields shared by every item type.
type Common struct {
	Title  string   `json:"title"`
	Slug   string   `json:"slug"`
	Status string   `json:"status"`
	Tags   []string `json:"tags"`
}

type NewsInput struct {
	Common
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	CategoryID string `json:"categoryId"`
	Priority   string `json:"priority"`
	Image      string `json:"image"`
}

type ContentInput struct {
	Common
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
	Type    string `json:"type"`
}

type GalleryInput struct {
	Common
	Description string   `json:"description"`
	CategoryID  string   `json:"categoryId"`
	Images      []string `json:"images"`
	EventDate   string   `json:"eventDate"`
	UploadedBy  string   `json:"uploadedBy"`
}

type FormInput struct {
	Common
	Description string           `json:"description"`
	Type        string           `json:"type"`
	Fields      []map[string]any `json:"fields"`
	Settings    map[string]any   `json:"settings"`
}

// CommonPatch carries optional changes shared by every item type. Nil or blank
// values leave the stored column untouched.
type CommonPatch struct {
	Title  *string
	Slug   *string
	Status *string
	Tags   *[]string
}

type NewsPatch struct {
	CommonPatch
	Content    *string
	Excerpt    *string
	CategoryID *string
	Priority   *string
	Image      *string
}

type ContentPatch struct {
	CommonPatch
	Content *string
	Excerpt *string
	Type    *string
}

type GalleryPatch struct {
	CommonPatch
	Description *string
	CategoryID  *string
	Images      *[]string
	EventDate   *string
	UploadedBy  *string
}

type FormPatch struct {
	CommonPatch
	Description *string
	Type        *string
	Fields      *[]map[string]any
	Settings    *map[string]any
}

type SubmissionInput struct {
	Data map[string]any `json:"data"`
}

// Changes is the resolved set of column updates handed to a repository.
// PublishedAt is written only when the stored value is still empty.
type Changes struct {
	Title       *string
	Slug        *string
	Status      *publishing.Status
	PublishedAt *time.Time
	Tags        *[]string
}

type NewsChanges struct {
	Changes
	Content    *string
	Excerpt    *string
	CategoryID *string
	Priority   *Priority
	Image      *string
}

type ContentChanges struct {
	Changes
	Content *string
	Excerpt *string
	Type    *ContentType
}

type GalleryChanges struct {
	Changes
	Description *string
	CategoryID  *string
	Images      *[]string
	EventDate   *time.Time
	UploadedBy  *string
}

type FormChanges struct {
	Changes
	Description *string
	Type        *string
	Fields      *[]map[string]any
	Settings    *map[string]any
}

// present returns the trimmed value of s, or nil when s is nil or blank.
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
