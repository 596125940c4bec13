package http

import (
	"context"
	"errors"
	"sort"

	"github.com/danielgtaylor/huma/v2"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/directory"
	"smoweb/app/internal/domain/publishing"
)

const internalErrorMessage = "internal server error"

// problem maps a service error onto an HTTP problem response. Only unexpected
// failures are recorded; the client sees a generic message for those.
func (s *Server) problem(ctx context.Context, err error, resource, message string, fields logrus.Fields) error {
	var validationErr *publishing.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return huma.Error400BadRequest("validation failed", validationDetails(validationErr)...)
	case publishing.IsNotFound(err):
		return huma.Error404NotFound(resource + " not found")
	case publishing.IsSlugConflict(err):
		return huma.Error409Conflict("slug already exists")
	case eris.Is(err, directory.ErrDuplicate):
		return huma.Error409Conflict(resource + " already exists")
	default:
		s.recordError(ctx, err, message, fields)
		return huma.Error500InternalServerError(internalErrorMessage)
	}
}

func validationDetails(err *publishing.ValidationError) []error {
	messages := err.Messages()
	fields := make([]string, 0, len(messages))
	for field := range messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]error, 0, len(fields))
	for _, field := range fields {
		details = append(details, &huma.ErrorDetail{
			Location: field,
			Message:  messages[field],
		})
	}
	return details
}

func (s *Server) recordError(ctx context.Context, err error, message string, fields logrus.Fields) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if fields != nil {
			entry = entry.WithFields(fields)
		}
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}
		entry.Error(message)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	if s.sentry != nil {
		s.sentry.CaptureException(err)
	}
}
