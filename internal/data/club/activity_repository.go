package club

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	datacms "smoweb/app/internal/data/cms"
	"smoweb/app/internal/data/directory"
	domaincms "smoweb/app/internal/domain/cms"
	domainclub "smoweb/app/internal/domain/club"
	"smoweb/app/internal/domain/publishing"
)

type ActivityRepository struct {
	table[ActivityRecord]
}

var _ domainclub.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository(db *gorm.DB, logger *logrus.Logger) (*ActivityRepository, error) {
	t, err := newTable[ActivityRecord](db, logger, "activity", "categoryId", "projectId")
	if err != nil {
		return nil, err
	}
	t.preload = func(q *gorm.DB) *gorm.DB {
		return q.Preload("Author")
	}
	return &ActivityRepository{table: t}, nil
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domainclub.Activity) error {
	if activity == nil {
		return eris.New("activity is nil")
	}

	record := toActivityRecord(activity)
	record.ID = uuid.NewString()
	if err := r.create(ctx, record); err != nil {
		return err
	}

	stored, err := r.get(ctx, record.ID)
	if err != nil {
		return err
	}
	*activity = toDomainActivity(stored)
	return nil
}

func (r *ActivityRepository) Get(ctx context.Context, id string) (*domainclub.Activity, error) {
	record, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	activity := toDomainActivity(record)
	return &activity, nil
}

// List orders activities by start date, soonest first, then newest created.
func (r *ActivityRepository) List(ctx context.Context, filter domainclub.ActivityFilter) ([]domainclub.Activity, error) {
	query := r.query(ctx)
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.IsPublic != nil {
		query = query.Where("is_public = ?", *filter.IsPublic)
	}
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.StartsAfter != nil {
		query = query.Where("start_date >= ?", filter.StartsAfter.UTC())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	records, err := r.list(query.Order("start_date ASC").Order("created_at DESC"))
	if err != nil {
		return nil, err
	}
	return toDomainActivities(records), nil
}

func (r *ActivityRepository) Save(ctx context.Context, activity *domainclub.Activity) error {
	if activity == nil {
		return eris.New("activity is nil")
	}

	stored, err := r.save(ctx, activity.ID, toActivityRecord(activity))
	if err != nil {
		return err
	}
	*activity = toDomainActivity(stored)
	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

type ProjectRepository struct {
	table[ProjectRecord]
}

var _ domainclub.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(db *gorm.DB, logger *logrus.Logger) (*ProjectRepository, error) {
	t, err := newTable[ProjectRecord](db, logger, "project")
	if err != nil {
		return nil, err
	}
	t.preload = func(q *gorm.DB) *gorm.DB {
		return q.Preload("Author")
	}
	return &ProjectRepository{table: t}, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *domainclub.Project) error {
	if project == nil {
		return eris.New("project is nil")
	}

	record := toProjectRecord(project)
	record.ID = uuid.NewString()
	if err := r.create(ctx, record); err != nil {
		return err
	}

	stored, err := r.get(ctx, record.ID)
	if err != nil {
		return err
	}
	*project = toDomainProject(stored)
	return nil
}

// Get includes the project's activities, soonest first.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domainclub.Project, error) {
	var record ProjectRecord
	err := r.query(ctx).
		Preload("Activities", func(q *gorm.DB) *gorm.DB {
			return q.Preload("Author").Order("start_date ASC")
		}).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "project id %s", id)
		}
		r.logError(logrus.Fields{"id": id}, err, "fetching project")
		return nil, eris.Wrapf(err, "fetching project: %s", id)
	}

	project := toDomainProject(&record)
	project.Activities = toDomainActivities(record.Activities)
	return &project, nil
}

// List orders projects by priority, then latest start, then newest created.
func (r *ProjectRepository) List(ctx context.Context, filter domainclub.ProjectFilter) ([]domainclub.Project, error) {
	query := r.query(ctx)
	if filter.Year > 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	records, err := r.list(query.Order(datacms.PriorityOrder()).Order("start_date DESC").Order("created_at DESC"))
	if err != nil {
		return nil, err
	}

	projects := make([]domainclub.Project, 0, len(records))
	for i := range records {
		projects = append(projects, toDomainProject(&records[i]))
	}
	return projects, nil
}

func (r *ProjectRepository) Save(ctx context.Context, project *domainclub.Project) error {
	if project == nil {
		return eris.New("project is nil")
	}

	stored, err := r.save(ctx, project.ID, toProjectRecord(project))
	if err != nil {
		return err
	}
	*project = toDomainProject(stored)
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func toActivityRecord(activity *domainclub.Activity) *ActivityRecord {
	var end *time.Time
	if activity.EndDate != nil {
		stamp := activity.EndDate.UTC()
		end = &stamp
	}

	gallery := activity.Gallery
	if gallery == nil {
		gallery = []string{}
	}

	return &ActivityRecord{
		ID:          activity.ID,
		Title:       activity.Title,
		Description: activity.Description,
		Type:        string(activity.Type),
		Status:      string(activity.Status),
		StartDate:   activity.StartDate.UTC(),
		EndDate:     end,
		Location:    activity.Location,
		IsPublic:    activity.IsPublic,
		Image:       activity.Image,
		Gallery:     datatypes.JSONSlice[string](gallery),
		CategoryID:  activity.CategoryID,
		ProjectID:   activity.ProjectID,
		AuthorID:    activity.AuthorID,
	}
}

func toDomainActivity(record *ActivityRecord) domainclub.Activity {
	var end *time.Time
	if record.EndDate != nil {
		stamp := record.EndDate.UTC()
		end = &stamp
	}

	gallery := []string(record.Gallery)
	if gallery == nil {
		gallery = []string{}
	}

	return domainclub.Activity{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		Type:        domainclub.ActivityType(record.Type),
		Status:      domainclub.ActivityStatus(record.Status),
		StartDate:   record.StartDate.UTC(),
		EndDate:     end,
		Location:    record.Location,
		IsPublic:    record.IsPublic,
		Image:       record.Image,
		Gallery:     gallery,
		CategoryID:  record.CategoryID,
		ProjectID:   record.ProjectID,
		AuthorID:    record.AuthorID,
		Author:      toPerson(record.Author),
		CreatedAt:   record.CreatedAt.UTC(),
		UpdatedAt:   record.UpdatedAt.UTC(),
	}
}

func toDomainActivities(records []ActivityRecord) []domainclub.Activity {
	activities := make([]domainclub.Activity, 0, len(records))
	for i := range records {
		activities = append(activities, toDomainActivity(&records[i]))
	}
	return activities
}

func toProjectRecord(project *domainclub.Project) *ProjectRecord {
	return &ProjectRecord{
		ID:               project.ID,
		Code:             project.Code,
		Title:            project.Title,
		Description:      project.Description,
		ShortDescription: project.ShortDescription,
		Year:             project.Year,
		Status:           string(project.Status),
		Priority:         string(project.Priority),
		StartDate:        project.StartDate.UTC(),
		EndDate:          project.EndDate.UTC(),
		TotalBudget:      project.TotalBudget,
		UsedBudget:       project.UsedBudget,
		Objectives:       project.Objectives,
		TargetGroup:      project.TargetGroup,
		ExpectedResults:  project.ExpectedResults,
		Sponsor:          project.Sponsor,
		Coordinator:      project.Coordinator,
		IsActive:         project.IsActive,
		Image:            project.Image,
		AuthorID:         project.AuthorID,
	}
}

func toDomainProject(record *ProjectRecord) domainclub.Project {
	return domainclub.Project{
		ID:               record.ID,
		Code:             record.Code,
		Title:            record.Title,
		Description:      record.Description,
		ShortDescription: record.ShortDescription,
		Year:             record.Year,
		Status:           domainclub.ProjectStatus(record.Status),
		Priority:         domaincms.Priority(record.Priority),
		StartDate:        record.StartDate.UTC(),
		EndDate:          record.EndDate.UTC(),
		TotalBudget:      record.TotalBudget,
		UsedBudget:       record.UsedBudget,
		Objectives:       record.Objectives,
		TargetGroup:      record.TargetGroup,
		ExpectedResults:  record.ExpectedResults,
		Sponsor:          record.Sponsor,
		Coordinator:      record.Coordinator,
		IsActive:         record.IsActive,
		Image:            record.Image,
		AuthorID:         record.AuthorID,
		Author:           toPerson(record.Author),
		CreatedAt:        record.CreatedAt.UTC(),
		UpdatedAt:        record.UpdatedAt.UTC(),
	}
}

func toPerson(user *directory.UserRecord) *domainclub.Person {
	if user == nil {
		return nil
	}
	return &domainclub.Person{FirstName: user.FirstName, LastName: user.LastName, Email: user.Email}
}
