package club

import (
	"context"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/cms"
	"smoweb/app/internal/domain/publishing"
)

type projectService struct {
	reporter
	repo    ProjectRepository
	authors AuthorResolver
	now     func() time.Time
}

var _ ProjectService = (*projectService)(nil)

func NewProjectService(repo ProjectRepository, authors AuthorResolver, logger *logrus.Logger, hub *sentry.Hub) (ProjectService, error) {
	if repo == nil {
		return nil, eris.New("project repository is required")
	}
	if authors == nil {
		return nil, eris.New("author resolver is required")
	}
	return &projectService{
		reporter: newReporter("projects", logger, hub),
		repo:     repo,
		authors:  authors,
		now:      time.Now,
	}, nil
}

func (s *projectService) Create(ctx context.Context, input ProjectInput) (*Project, error) {
	input.Code = strings.TrimSpace(input.Code)
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Status = upper(input.Status)
	if input.Status == "" {
		input.Status = string(ProjectPlanning)
	}
	input.Priority = upper(input.Priority)
	if input.Priority == "" {
		input.Priority = string(cms.PriorityMedium)
	}
	if input.Year == 0 {
		input.Year = s.now().Year()
	}

	err := publishing.Validated(validation.ValidateStruct(&input,
		validation.Field(&input.Code, validation.Required.Error("code is required"), validation.RuneLength(0, 50)),
		validation.Field(&input.Title, validation.Required.Error("title is required"), validation.RuneLength(0, 255)),
		validation.Field(&input.Description, validation.Required.Error("description is required")),
		validation.Field(&input.StartDate, validation.Required.Error("startDate is required")),
		validation.Field(&input.Year, validation.Min(1900), validation.Max(9999)),
		validation.Field(&input.TotalBudget, validation.Min(0.0)),
	))
	if err != nil {
		return nil, err
	}

	status, priority, err := parseProjectState(input.Status, input.Priority)
	if err != nil {
		return nil, err
	}

	start, err := publishing.ParseDate("startDate", input.StartDate)
	if err != nil {
		return nil, err
	}
	end := start
	if parsed, err := parseOptionalDate("endDate", &input.EndDate); err != nil {
		return nil, err
	} else if parsed != nil {
		end = *parsed
	}
	if err := checkRange(start, &end); err != nil {
		return nil, err
	}

	authorID, err := resolveAuthor(ctx, s.reporter, s.authors, input.AuthorID, input.AuthorEmail)
	if err != nil {
		return nil, err
	}

	project := &Project{
		Code:             input.Code,
		Title:            input.Title,
		Description:      input.Description,
		ShortDescription: strings.TrimSpace(input.ShortDescription),
		Year:             input.Year,
		Status:           status,
		Priority:         priority,
		StartDate:        start,
		EndDate:          end,
		TotalBudget:      input.TotalBudget,
		Objectives:       strings.TrimSpace(input.Objectives),
		TargetGroup:      strings.TrimSpace(input.TargetGroup),
		ExpectedResults:  strings.TrimSpace(input.ExpectedResults),
		Sponsor:          strings.TrimSpace(input.Sponsor),
		Coordinator:      strings.TrimSpace(input.Coordinator),
		IsActive:         boolOr(input.IsActive, true),
		Image:            strings.TrimSpace(input.Image),
		AuthorID:         authorID,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"code": project.Code}, err, "creating project")
	}
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*Project, error) {
	return load[Project](ctx, s.reporter, s.repo, id, "project")
}

func (s *projectService) List(ctx context.Context, query ProjectQuery) ([]Project, error) {
	isActive, err := parseFlag("isActive", query.IsActive, nil)
	if err != nil {
		return nil, err
	}

	filter := ProjectFilter{Year: query.Year, IsActive: isActive}
	if raw := upper(query.Status); raw != "" {
		if !oneOf(ProjectStatus(raw), ProjectStatuses) {
			return nil, publishing.NewValidationError("status", "must be one of "+joined(ProjectStatuses))
		}
		filter.Status = ProjectStatus(raw)
	}
	if raw := upper(query.Priority); raw != "" {
		if !oneOf(cms.Priority(raw), cms.Priorities) {
			return nil, publishing.NewValidationError("priority", "must be one of "+joined(cms.Priorities))
		}
		filter.Priority = raw
	}

	projects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing projects")
	}
	return projects, nil
}

func (s *projectService) Update(ctx context.Context, id string, patch ProjectPatch) (*Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Activities = nil

	if value := present(patch.Title); value != nil {
		project.Title = *value
	}
	if value := present(patch.Description); value != nil {
		project.Description = *value
	}
	if patch.ShortDescription != nil {
		project.ShortDescription = strings.TrimSpace(*patch.ShortDescription)
	}
	if patch.Year != nil {
		if err := validation.Validate(*patch.Year, validation.Min(1900), validation.Max(9999)); err != nil {
			return nil, publishing.NewValidationError("year", err.Error())
		}
		project.Year = *patch.Year
	}

	status, priority := string(project.Status), string(project.Priority)
	if value := present(patch.Status); value != nil {
		status = upper(*value)
	}
	if value := present(patch.Priority); value != nil {
		priority = upper(*value)
	}
	if project.Status, project.Priority, err = parseProjectState(status, priority); err != nil {
		return nil, err
	}

	if value := present(patch.StartDate); value != nil {
		start, err := publishing.ParseDate("startDate", *value)
		if err != nil {
			return nil, err
		}
		project.StartDate = start
	}
	if value := present(patch.EndDate); value != nil {
		end, err := publishing.ParseDate("endDate", *value)
		if err != nil {
			return nil, err
		}
		project.EndDate = end
	}
	if err := checkRange(project.StartDate, &project.EndDate); err != nil {
		return nil, err
	}

	if patch.TotalBudget != nil {
		if *patch.TotalBudget < 0 {
			return nil, publishing.NewValidationError("totalBudget", "must not be negative")
		}
		project.TotalBudget = patch.TotalBudget
	}
	if patch.UsedBudget != nil {
		if *patch.UsedBudget < 0 {
			return nil, publishing.NewValidationError("usedBudget", "must not be negative")
		}
		project.UsedBudget = *patch.UsedBudget
	}
	assignText(&project.Objectives, patch.Objectives)
	assignText(&project.TargetGroup, patch.TargetGroup)
	assignText(&project.ExpectedResults, patch.ExpectedResults)
	assignText(&project.Sponsor, patch.Sponsor)
	assignText(&project.Coordinator, patch.Coordinator)
	assignText(&project.Image, patch.Image)
	if patch.IsActive != nil {
		project.IsActive = *patch.IsActive
	}

	if err := s.repo.Save(ctx, project); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": project.ID}, err, "updating project")
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return remove[Project](ctx, s.reporter, s.repo, id, "project")
}

func parseProjectState(status, priority string) (ProjectStatus, cms.Priority, error) {
	if !oneOf(ProjectStatus(status), ProjectStatuses) {
		return "", "", publishing.NewValidationError("status", "must be one of "+joined(ProjectStatuses))
	}
	if !oneOf(cms.Priority(priority), cms.Priorities) {
		return "", "", publishing.NewValidationError("priority", "must be one of "+joined(cms.Priorities))
	}
	return ProjectStatus(status), cms.Priority(priority), nil
}

// assignText overwrites target with the trimmed value when one was sent. Blank clears it.
func assignText(target *string, value *string) {
	if value != nil {
		*target = strings.TrimSpace(*value)
	}
}
