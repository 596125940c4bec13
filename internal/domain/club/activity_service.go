package club

import (
	"context"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/publishing"
)

type activityService struct {
	reporter
	repo     ActivityRepository
	projects ProjectRepository
	authors  AuthorResolver
	now      func() time.Time
}

var _ ActivityService = (*activityService)(nil)

func NewActivityService(repo ActivityRepository, projects ProjectRepository, authors AuthorResolver, logger *logrus.Logger, hub *sentry.Hub) (ActivityService, error) {
	if repo == nil {
		return nil, eris.New("activity repository is required")
	}
	if projects == nil {
		return nil, eris.New("project repository is required")
	}
	if authors == nil {
		return nil, eris.New("author resolver is required")
	}
	return &activityService{
		reporter: newReporter("activities", logger, hub),
		repo:     repo,
		projects: projects,
		authors:  authors,
		now:      time.Now,
	}, nil
}

func (s *activityService) Create(ctx context.Context, input ActivityInput) (*Activity, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Type = upper(input.Type)
	input.CategoryID = strings.TrimSpace(input.CategoryID)

	err := publishing.Validated(validation.ValidateStruct(&input,
		validation.Field(&input.Title, validation.Required.Error("title is required"), validation.RuneLength(0, 255)),
		validation.Field(&input.Description, validation.Required.Error("description is required")),
		validation.Field(&input.Type, validation.Required.Error("type is required")),
		validation.Field(&input.StartDate, validation.Required.Error("startDate is required")),
		validation.Field(&input.CategoryID, validation.Required.Error("categoryId is required")),
	))
	if err != nil {
		return nil, err
	}
	if !oneOf(ActivityType(input.Type), ActivityTypes) {
		return nil, publishing.NewValidationError("type", "must be one of "+joined(ActivityTypes))
	}

	start, err := publishing.ParseDate("startDate", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("endDate", &input.EndDate)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	projectID, err := s.checkProject(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	authorID, err := resolveAuthor(ctx, s.reporter, s.authors, input.AuthorID, input.AuthorEmail)
	if err != nil {
		return nil, err
	}

	activity := &Activity{
		Title:       input.Title,
		Description: input.Description,
		Type:        ActivityType(input.Type),
		Status:      ActivityPlanning,
		StartDate:   start,
		EndDate:     end,
		Location:    strings.TrimSpace(input.Location),
		IsPublic:    boolOr(input.IsPublic, true),
		Image:       strings.TrimSpace(input.Image),
		Gallery:     nonNil(input.Gallery),
		CategoryID:  input.CategoryID,
		ProjectID:   projectID,
		AuthorID:    authorID,
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"title": activity.Title}, err, "creating activity")
	}
	return activity, nil
}

func (s *activityService) Get(ctx context.Context, id string) (*Activity, error) {
	return load[Activity](ctx, s.reporter, s.repo, id, "activity")
}

func (s *activityService) List(ctx context.Context, query ActivityQuery) ([]Activity, error) {
	visible := true
	isPublic, err := parseFlag("isPublic", query.IsPublic, &visible)
	if err != nil {
		return nil, err
	}

	filter := ActivityFilter{
		IsPublic:  isPublic,
		ProjectID: strings.TrimSpace(query.ProjectID),
		Limit:     query.Limit,
	}
	if raw := upper(query.Type); raw != "" {
		if !oneOf(ActivityType(raw), ActivityTypes) {
			return nil, publishing.NewValidationError("type", "must be one of "+joined(ActivityTypes))
		}
		filter.Type = ActivityType(raw)
	}
	if raw := upper(query.Status); raw != "" {
		if !oneOf(ActivityStatus(raw), ActivityStatuses) {
			return nil, publishing.NewValidationError("status", "must be one of "+joined(ActivityStatuses))
		}
		filter.Status = ActivityStatus(raw)
	}
	if query.Upcoming {
		now := s.now().UTC()
		filter.StartsAfter = &now
		filter.Status = ActivityPublished
	}
	if filter.Limit < 0 {
		return nil, publishing.NewValidationError("limit", "must not be negative")
	}

	activities, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing activities")
	}
	return activities, nil
}

func (s *activityService) Update(ctx context.Context, id string, patch ActivityPatch) (*Activity, error) {
	activity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if value := present(patch.Title); value != nil {
		activity.Title = *value
	}
	if value := present(patch.Description); value != nil {
		activity.Description = *value
	}
	if value := present(patch.Type); value != nil {
		kind := ActivityType(upper(*value))
		if !oneOf(kind, ActivityTypes) {
			return nil, publishing.NewValidationError("type", "must be one of "+joined(ActivityTypes))
		}
		activity.Type = kind
	}
	if value := present(patch.Status); value != nil {
		status := ActivityStatus(upper(*value))
		if !oneOf(status, ActivityStatuses) {
			return nil, publishing.NewValidationError("status", "must be one of "+joined(ActivityStatuses))
		}
		activity.Status = status
	}
	if value := present(patch.StartDate); value != nil {
		start, err := publishing.ParseDate("startDate", *value)
		if err != nil {
			return nil, err
		}
		activity.StartDate = start
	}
	if patch.EndDate != nil {
		end, err := parseOptionalDate("endDate", patch.EndDate)
		if err != nil {
			return nil, err
		}
		activity.EndDate = end
	}
	if err := checkRange(activity.StartDate, activity.EndDate); err != nil {
		return nil, err
	}
	if patch.Location != nil {
		activity.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.IsPublic != nil {
		activity.IsPublic = *patch.IsPublic
	}
	if patch.Image != nil {
		activity.Image = strings.TrimSpace(*patch.Image)
	}
	if patch.Gallery != nil {
		activity.Gallery = nonNil(*patch.Gallery)
	}
	if value := present(patch.CategoryID); value != nil {
		activity.CategoryID = *value
	}
	if patch.ProjectID != nil {
		projectID, err := s.checkProject(ctx, *patch.ProjectID)
		if err != nil {
			return nil, err
		}
		activity.ProjectID = projectID
	}

	if err := s.repo.Save(ctx, activity); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": activity.ID}, err, "updating activity")
	}
	return activity, nil
}

func (s *activityService) Delete(ctx context.Context, id string) error {
	return remove[Activity](ctx, s.reporter, s.repo, id, "activity")
}

// checkProject returns nil for a blank id and rejects ids of unknown projects.
func (s *activityService) checkProject(ctx context.Context, raw string) (*string, error) {
	projectID := optional(raw)
	if projectID == nil {
		return nil, nil
	}

	if _, err := s.projects.Get(ctx, *projectID); err != nil {
		if publishing.IsNotFound(err) {
			return nil, publishing.NewValidationError("projectId", "project does not exist")
		}
		return nil, s.fail(ctx, logrus.Fields{"project_id": *projectID}, err, "checking project")
	}
	return projectID, nil
}
