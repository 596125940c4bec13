package cms

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/publishing"
)

type FormService interface {
	Create(ctx context.Context, input FormInput) (*Form, error)
	Get(ctx context.Context, lookup publishing.Lookup) (*Form, error)
	List(ctx context.Context, query ListQuery) ([]Form, error)
	Update(ctx context.Context, id string, patch FormPatch) (*Form, error)
	Delete(ctx context.Context, id string) error
	Submit(ctx context.Context, formID string, input SubmissionInput) (*FormSubmission, error)
}

type formService struct {
	base
	repo FormRepository
}

var _ FormService = (*formService)(nil)

// NewFormService wires the form service. Form statuses also accept the
// ACTIVE, INACTIVE and CLOSED aliases.
func NewFormService(repo FormRepository, opts Options) (FormService, error) {
	if repo == nil {
		return nil, eris.New("form repository is required")
	}

	b := newBase(KindForm, opts, false, false)
	b.parseStatus = publishing.ParseFormStatus

	return &formService{base: b, repo: repo}, nil
}

func (s *formService) Create(ctx context.Context, input FormInput) (*Form, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Type = normalizeUpper(input.Type)

	if err := validateFormInput(&input); err != nil {
		return nil, err
	}

	status, publishedAt, err := s.initial(input.Status)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveSlug(ctx, input.Title, input.Slug, s.repo.SlugExists)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"title": input.Title}, err, "resolving form slug")
	}

	fields := input.Fields
	if fields == nil {
		fields = []map[string]any{}
	}
	settings := input.Settings
	if settings == nil {
		settings = map[string]any{}
	}

	form := &Form{
		Meta: publishing.Meta{
			Title:       input.Title,
			Slug:        resolved,
			Status:      status,
			PublishedAt: publishedAt,
			Tags:        publishing.CleanTags(input.Tags),
		},
		Description: strings.TrimSpace(input.Description),
		Type:        input.Type,
		Fields:      fields,
		Settings:    settings,
	}

	if err := s.repo.Create(ctx, form); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"slug": resolved}, err, "creating form")
	}

	return form, nil
}

func (s *formService) Get(ctx context.Context, lookup publishing.Lookup) (*Form, error) {
	normalized, err := lookup.Normalize()
	if err != nil {
		return nil, err
	}

	form, err := s.repo.RecordView(ctx, normalized)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"lookup": normalized.String()}, err, "fetching form")
	}

	s.viewed()
	return form, nil
}

func (s *formService) List(ctx context.Context, query ListQuery) ([]Form, error) {
	status, err := publishing.ParseFilter(query.Status, publishing.StatusPublished, s.parseStatus)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, FormFilter{
		Type:   normalizeUpper(query.Type),
		Status: status,
	})
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing forms")
	}

	return items, nil
}

func (s *formService) Update(ctx context.Context, id string, patch FormPatch) (*Form, error) {
	trimmedID, err := requireID(id)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, trimmedID)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "loading form for update")
	}

	common, err := s.common(ctx, patch.CommonPatch, current.Meta, s.repo.SlugExists)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "preparing form update")
	}

	changes := FormChanges{
		Changes:     common,
		Description: present(patch.Description),
		Fields:      patch.Fields,
		Settings:    patch.Settings,
	}

	if raw := present(patch.Type); raw != nil {
		formType := strings.ToUpper(*raw)
		changes.Type = &formType
	}

	updated, err := s.repo.Update(ctx, trimmedID, changes)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "updating form")
	}

	return updated, nil
}

func (s *formService) Delete(ctx context.Context, id string) error {
	trimmedID, err := requireID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, trimmedID); err != nil {
		return s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "deleting form")
	}
	return nil
}

// Submit stores a response for a published form.
func (s *formService) Submit(ctx context.Context, formID string, input SubmissionInput) (*FormSubmission, error) {
	trimmedID, err := requireID(formID)
	if err != nil {
		return nil, publishing.NewValidationError("formId", "formId is required")
	}

	if len(input.Data) == 0 {
		return nil, publishing.NewValidationError("data", "submission data is required")
	}

	form, err := s.repo.Get(ctx, trimmedID)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"form_id": trimmedID}, err, "loading form for submission")
	}

	if form.Status != publishing.StatusPublished {
		return nil, publishing.NewValidationError("formId", "form is not accepting submissions")
	}

	submission := &FormSubmission{
		FormID: trimmedID,
		Data:   input.Data,
		Status: SubmissionPending,
	}

	if err := s.repo.CreateSubmission(ctx, submission); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"form_id": trimmedID}, err, "creating form submission")
	}

	return submission, nil
}

func validateFormInput(input *FormInput) error {
	return publishing.Validated(validation.ValidateStruct(input,
		validation.Field(&input.Title, validation.Required.Error("title is required"), validation.RuneLength(0, 255)),
		validation.Field(&input.Type, validation.Required.Error("type is required")),
	))
}
