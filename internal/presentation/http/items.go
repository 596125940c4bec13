package http

import (
	"context"
	stdhttp "net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/cms"
	"smoweb/app/internal/domain/publishing"
)

// CommonBody holds the request fields shared by every publishable item.
// Absent or blank fields are ignored on update.
type CommonBody struct {
	Title  *string   `json:"title,omitempty"`
	Slug   *string   `json:"slug,omitempty" doc:"Used verbatim when set; derived from the title otherwise"`
	Status *string   `json:"status,omitempty" doc:"DRAFT, PUBLISHED or ARCHIVED"`
	Tags   *[]string `json:"tags,omitempty"`
}

func (b CommonBody) input() cms.Common {
	return cms.Common{
		Title:  deref(b.Title),
		Slug:   deref(b.Slug),
		Status: deref(b.Status),
		Tags:   deref(b.Tags),
	}
}

func (b CommonBody) patch() cms.CommonPatch {
	return cms.CommonPatch{Title: b.Title, Slug: b.Slug, Status: b.Status, Tags: b.Tags}
}

type NewsBody struct {
	_ struct{} `json:"-" additionalProperties:"true"`
	CommonBody
	Content    *string `json:"content,omitempty"`
	Excerpt    *string `json:"excerpt,omitempty"`
	CategoryID *string `json:"categoryId,omitempty"`
	Priority   *string `json:"priority,omitempty" doc:"LOW, MEDIUM, HIGH or URGENT"`
	Image      *string `json:"image,omitempty"`
}

type ContentBody struct {
	_ struct{} `json:"-" additionalProperties:"true"`
	CommonBody
	Content *string `json:"content,omitempty"`
	Excerpt *string `json:"excerpt,omitempty"`
	Type    *string `json:"type,omitempty" doc:"NEWS, ACTIVITY or ANNOUNCEMENT"`
}

type GalleryBody struct {
	_ struct{} `json:"-" additionalProperties:"true"`
	CommonBody
	Description *string   `json:"description,omitempty"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	EventDate   *string   `json:"eventDate,omitempty" doc:"RFC 3339 timestamp or YYYY-MM-DD"`
	UploadedBy  *string   `json:"uploadedBy,omitempty"`
}

type FormBody struct {
	_ struct{} `json:"-" additionalProperties:"true"`
	CommonBody
	Description *string           `json:"description,omitempty"`
	Type        *string           `json:"type,omitempty"`
	Fields      *[]map[string]any `json:"fields,omitempty"`
	Settings    *map[string]any   `json:"settings,omitempty"`
}

type SubmissionBody struct {
	_    struct{}       `json:"-" additionalProperties:"true"`
	Data map[string]any `json:"data,omitempty"`
}

type submissionInput struct {
	FormID string `query:"formId" doc:"Id of a published form"`
	Body   SubmissionBody
}

// itemEndpoints describes the CRUD routes of one publishable item type.
type itemEndpoints[T any, B any] struct {
	path     string
	resource string
	create   func(context.Context, B) (*T, error)
	get      func(context.Context, publishing.Lookup) (*T, error)
	list     func(context.Context, cms.ListQuery) ([]T, error)
	update   func(context.Context, string, B) (*T, error)
	remove   func(context.Context, string) error
}

func registerItemEndpoints[T any, B any](s *Server, e itemEndpoints[T, B]) {
	tags := []string{e.resource}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-" + e.resource,
		Method:      stdhttp.MethodGet,
		Path:        e.path,
		Summary:     "Fetch one " + e.resource + " by id or slug, or list them",
		Description: "A detail fetch counts a view. Lists never do.",
		Tags:        tags,
	}, func(ctx context.Context, input *lookupQuery) (*envelopeResponse[any], error) {
		if input.ID != "" || input.Slug != "" {
			lookup := publishing.Lookup{ID: input.ID, Slug: input.Slug}
			item, err := e.get(ctx, lookup)
			if err != nil {
				return nil, s.problem(ctx, err, e.resource, "fetching "+e.resource, logrus.Fields{"lookup": lookup.String()})
			}
			return respond[any](stdhttp.StatusOK, item, ""), nil
		}

		items, err := e.list(ctx, cms.ListQuery{
			Category: input.Category,
			Status:   input.Status,
			Priority: input.Priority,
			Type:     input.Type,
		})
		if err != nil {
			return nil, s.problem(ctx, err, e.resource, "listing "+e.resource, nil)
		}
		return respondList(items), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-" + e.resource,
		Method:        stdhttp.MethodPost,
		Path:          e.path,
		Summary:       "Create " + e.resource,
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *bodyInput[B]) (*envelopeResponse[*T], error) {
		item, err := e.create(ctx, input.Body)
		if err != nil {
			return nil, s.problem(ctx, err, e.resource, "creating "+e.resource, nil)
		}
		return respond(stdhttp.StatusCreated, item, e.resource+" created"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-" + e.resource,
		Method:      stdhttp.MethodPut,
		Path:        e.path,
		Summary:     "Update " + e.resource,
		Description: "Only the fields present in the body are changed.",
		Tags:        tags,
	}, func(ctx context.Context, input *updateInput[B]) (*envelopeResponse[*T], error) {
		item, err := e.update(ctx, input.ID, input.Body)
		if err != nil {
			return nil, s.problem(ctx, err, e.resource, "updating "+e.resource, logrus.Fields{"id": input.ID})
		}
		return respond(stdhttp.StatusOK, item, e.resource+" updated"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-" + e.resource,
		Method:      stdhttp.MethodDelete,
		Path:        e.path,
		Summary:     "Delete " + e.resource,
		Tags:        tags,
	}, func(ctx context.Context, input *idQuery) (*envelopeResponse[any], error) {
		if err := e.remove(ctx, input.ID); err != nil {
			return nil, s.problem(ctx, err, e.resource, "deleting "+e.resource, logrus.Fields{"id": input.ID})
		}
		return respond[any](stdhttp.StatusOK, nil, e.resource+" deleted"), nil
	})
}

func (s *Server) registerNewsRoutes() {
	registerItemEndpoints(s, itemEndpoints[cms.News, NewsBody]{
		path:     "/api/news",
		resource: "news",
		create: func(ctx context.Context, b NewsBody) (*cms.News, error) {
			return s.news.Create(ctx, cms.NewsInput{
				Common:     b.input(),
				Content:    deref(b.Content),
				Excerpt:    deref(b.Excerpt),
				CategoryID: deref(b.CategoryID),
				Priority:   deref(b.Priority),
				Image:      deref(b.Image),
			})
		},
		get:  s.news.Get,
		list: s.news.List,
		update: func(ctx context.Context, id string, b NewsBody) (*cms.News, error) {
			return s.news.Update(ctx, id, cms.NewsPatch{
				CommonPatch: b.patch(),
				Content:     b.Content,
				Excerpt:     b.Excerpt,
				CategoryID:  b.CategoryID,
				Priority:    b.Priority,
				Image:       b.Image,
			})
		},
		remove: s.news.Delete,
	})
}

func (s *Server) registerContentRoutes() {
	registerItemEndpoints(s, itemEndpoints[cms.Content, ContentBody]{
		path:     "/api/content",
		resource: "content",
		create: func(ctx context.Context, b ContentBody) (*cms.Content, error) {
			return s.content.Create(ctx, cms.ContentInput{
				Common:  b.input(),
				Content: deref(b.Content),
				Excerpt: deref(b.Excerpt),
				Type:    deref(b.Type),
			})
		},
		get:  s.content.Get,
		list: s.content.List,
		update: func(ctx context.Context, id string, b ContentBody) (*cms.Content, error) {
			return s.content.Update(ctx, id, cms.ContentPatch{
				CommonPatch: b.patch(),
				Content:     b.Content,
				Excerpt:     b.Excerpt,
				Type:        b.Type,
			})
		},
		remove: s.content.Delete,
	})
}

func (s *Server) registerGalleryRoutes() {
	registerItemEndpoints(s, itemEndpoints[cms.Gallery, GalleryBody]{
		path:     "/api/gallery",
		resource: "gallery",
		create: func(ctx context.Context, b GalleryBody) (*cms.Gallery, error) {
			return s.gallery.Create(ctx, cms.GalleryInput{
				Common:      b.input(),
				Description: deref(b.Description),
				CategoryID:  deref(b.CategoryID),
				Images:      deref(b.Images),
				EventDate:   deref(b.EventDate),
				UploadedBy:  deref(b.UploadedBy),
			})
		},
		get:  s.gallery.Get,
		list: s.gallery.List,
		update: func(ctx context.Context, id string, b GalleryBody) (*cms.Gallery, error) {
			return s.gallery.Update(ctx, id, cms.GalleryPatch{
				CommonPatch: b.patch(),
				Description: b.Description,
				CategoryID:  b.CategoryID,
				Images:      b.Images,
				EventDate:   b.EventDate,
				UploadedBy:  b.UploadedBy,
			})
		},
		remove: s.gallery.Delete,
	})
}

func (s *Server) registerFormRoutes() {
	registerItemEndpoints(s, itemEndpoints[cms.Form, FormBody]{
		path:     "/api/forms",
		resource: "form",
		create: func(ctx context.Context, b FormBody) (*cms.Form, error) {
			return s.forms.Create(ctx, cms.FormInput{
				Common:      b.input(),
				Description: deref(b.Description),
				Type:        deref(b.Type),
				Fields:      deref(b.Fields),
				Settings:    deref(b.Settings),
			})
		},
		get:  s.forms.Get,
		list: s.forms.List,
		update: func(ctx context.Context, id string, b FormBody) (*cms.Form, error) {
			return s.forms.Update(ctx, id, cms.FormPatch{
				CommonPatch: b.patch(),
				Description: b.Description,
				Type:        b.Type,
				Fields:      b.Fields,
				Settings:    b.Settings,
			})
		},
		remove: s.forms.Delete,
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "submit-form",
		Method:        stdhttp.MethodPost,
		Path:          "/api/forms/submissions",
		Summary:       "Submit a response to a published form",
		Tags:          []string{"form"},
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *submissionInput) (*envelopeResponse[*cms.FormSubmission], error) {
		submission, err := s.forms.Submit(ctx, input.FormID, cms.SubmissionInput{Data: input.Body.Data})
		if err != nil {
			return nil, s.problem(ctx, err, "form", "submitting form", logrus.Fields{"form_id": input.FormID})
		}
		return respond(stdhttp.StatusCreated, submission, "submission received"), nil
	})
}
