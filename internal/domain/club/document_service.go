package club

import (
	"context"
	"strings"

	"github.com/getsentry/sentry-go"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/publishing"
)

const defaultDocumentType = "document"

type documentService struct {
	reporter
	repo DocumentRepository
}

var _ DocumentService = (*documentService)(nil)

func NewDocumentService(repo DocumentRepository, logger *logrus.Logger, hub *sentry.Hub) (DocumentService, error) {
	if repo == nil {
		return nil, eris.New("document repository is required")
	}
	return &documentService{reporter: newReporter("documents", logger, hub), repo: repo}, nil
}

func (s *documentService) Create(ctx context.Context, input DocumentInput) (*Document, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.FileName = strings.TrimSpace(input.FileName)
	input.FileURL = strings.TrimSpace(input.FileURL)
	input.UploadedBy = strings.TrimSpace(input.UploadedBy)
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	if input.Type == "" {
		input.Type = defaultDocumentType
	}

	err := publishing.Validated(validation.ValidateStruct(&input,
		validation.Field(&input.Title, validation.Required.Error("title is required"), validation.RuneLength(0, 255)),
		validation.Field(&input.FileName, validation.Required.Error("fileName is required")),
		validation.Field(&input.FileURL, validation.Required.Error("fileUrl is required"), is.RequestURI.Error("must be a URL or absolute path")),
		validation.Field(&input.UploadedBy, validation.Required.Error("uploadedBy is required")),
		validation.Field(&input.FileSize, validation.Min(int64(0)).Error("must not be negative")),
	))
	if err != nil {
		return nil, err
	}

	document := &Document{
		Title:       input.Title,
		Description: strings.TrimSpace(input.Description),
		FileName:    input.FileName,
		FileURL:     input.FileURL,
		FileSize:    input.FileSize,
		Type:        input.Type,
		IsPublic:    input.IsPublic,
		UploadedBy:  input.UploadedBy,
	}

	if err := s.repo.Create(ctx, document); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"file_name": document.FileName}, err, "creating document")
	}
	return document, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*Document, error) {
	return load[Document](ctx, s.reporter, s.repo, id, "document")
}

func (s *documentService) List(ctx context.Context, query DocumentQuery) ([]Document, error) {
	isPublic, err := parseFlag("public", query.IsPublic, nil)
	if err != nil {
		return nil, err
	}

	documents, err := s.repo.List(ctx, DocumentFilter{
		Type:     strings.ToLower(strings.TrimSpace(query.Type)),
		IsPublic: isPublic,
	})
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing documents")
	}
	return documents, nil
}

func (s *documentService) Update(ctx context.Context, id string, patch DocumentPatch) (*Document, error) {
	document, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if value := present(patch.Title); value != nil {
		document.Title = *value
	}
	assignText(&document.Description, patch.Description)
	if value := present(patch.FileName); value != nil {
		document.FileName = *value
	}
	if value := present(patch.FileURL); value != nil {
		if err := is.RequestURI.Validate(*value); err != nil {
			return nil, publishing.NewValidationError("fileUrl", "must be a URL or absolute path")
		}
		document.FileURL = *value
	}
	if patch.FileSize != nil {
		if *patch.FileSize < 0 {
			return nil, publishing.NewValidationError("fileSize", "must not be negative")
		}
		document.FileSize = *patch.FileSize
	}
	if value := present(patch.Type); value != nil {
		document.Type = strings.ToLower(*value)
	}
	if patch.IsPublic != nil {
		document.IsPublic = *patch.IsPublic
	}
	if value := present(patch.UploadedBy); value != nil {
		document.UploadedBy = *value
	}

	if err := s.repo.Save(ctx, document); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": document.ID}, err, "updating document")
	}
	return document, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	return remove[Document](ctx, s.reporter, s.repo, id, "document")
}

func (s *documentService) RecordDownload(ctx context.Context, id string) (*Document, error) {
	trimmed, err := requireID(id)
	if err != nil {
		return nil, err
	}

	document, err := s.repo.RecordDownload(ctx, trimmed)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmed}, err, "recording download")
	}
	return document, nil
}
