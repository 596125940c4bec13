package cms

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domaincms "smoweb/app/internal/domain/cms"
	"smoweb/app/internal/domain/publishing"
)

// FormRepository persists forms and their submissions.
type FormRepository struct {
	table table[FormRecord]
}

var _ domaincms.FormRepository = (*FormRepository)(nil)

func NewFormRepository(db *gorm.DB, logger *logrus.Logger) (*FormRepository, error) {
	t, err := newTable[FormRecord](db, logger, domaincms.KindForm)
	if err != nil {
		return nil, err
	}
	return &FormRepository{table: t}, nil
}

func (r *FormRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.table.slugExists(ctx, slug)
}

func (r *FormRepository) Create(ctx context.Context, form *domaincms.Form) error {
	if form == nil {
		return eris.New("form is nil")
	}

	record := &FormRecord{
		ItemColumns: newItemColumns(form.Meta),
		Description: form.Description,
		Type:        form.Type,
		Fields:      fieldsColumn(form.Fields),
		Settings:    settingsColumn(form.Settings),
	}

	if err := r.table.create(ctx, record, record.Slug, ""); err != nil {
		return err
	}

	form.Meta = toMeta(record.ItemColumns)
	return nil
}

func (r *FormRepository) Get(ctx context.Context, id string) (*domaincms.Form, error) {
	record, err := r.table.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainForm(record, 0), nil
}

// RecordView counts a view and returns the form with its submissions, newest first.
func (r *FormRepository) RecordView(ctx context.Context, lookup publishing.Lookup) (*domaincms.Form, error) {
	record, err := r.table.recordView(ctx, lookup)
	if err != nil {
		return nil, err
	}

	var submissions []FormSubmissionRecord
	err = r.table.db.WithContext(ctx).
		Where("form_id = ?", record.ID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		r.table.logError(logrus.Fields{"form_id": record.ID}, err, "listing form submissions")
		return nil, eris.Wrapf(err, "listing submissions for form: %s", record.ID)
	}

	form := toDomainForm(record, int64(len(submissions)))
	form.Submissions = make([]domaincms.FormSubmission, 0, len(submissions))
	for i := range submissions {
		form.Submissions = append(form.Submissions, toDomainSubmission(&submissions[i]))
	}
	return form, nil
}

// List returns forms newest first together with their submission counts.
func (r *FormRepository) List(ctx context.Context, filter domaincms.FormFilter) ([]domaincms.Form, error) {
	query := r.table.query(ctx)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var records []FormRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		r.table.logError(nil, err, "listing forms")
		return nil, eris.Wrap(err, "listing forms")
	}

	counts, err := r.submissionCounts(ctx, records)
	if err != nil {
		return nil, err
	}

	items := make([]domaincms.Form, 0, len(records))
	for i := range records {
		items = append(items, *toDomainForm(&records[i], counts[records[i].ID]))
	}
	return items, nil
}

func (r *FormRepository) Update(ctx context.Context, id string, changes domaincms.FormChanges) (*domaincms.Form, error) {
	columns, publishedAt := commonColumns(changes.Changes)
	setString(columns, "description", changes.Description)
	setString(columns, "type", changes.Type)
	if changes.Fields != nil {
		columns["fields"] = fieldsColumn(*changes.Fields)
	}
	if changes.Settings != nil {
		columns["settings"] = settingsColumn(*changes.Settings)
	}

	record, err := r.table.update(ctx, id, columns, publishedAt, "")
	if err != nil {
		return nil, err
	}
	return toDomainForm(record, 0), nil
}

// Delete removes a form; its submissions are removed by the cascading foreign key.
func (r *FormRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(ctx, id)
}

func (r *FormRepository) CreateSubmission(ctx context.Context, submission *domaincms.FormSubmission) error {
	if submission == nil {
		return eris.New("submission is nil")
	}

	status := submission.Status
	if status == "" {
		status = domaincms.SubmissionPending
	}

	record := &FormSubmissionRecord{
		ID:     uuid.NewString(),
		FormID: submission.FormID,
		Data:   datatypes.JSONMap(submission.Data),
		Status: string(status),
	}

	if err := r.table.db.WithContext(ctx).Create(record).Error; err != nil {
		if isForeignKeyViolation(err) {
			return eris.Wrapf(publishing.ErrNotFound, "form id %s", submission.FormID)
		}
		r.table.logError(logrus.Fields{"form_id": submission.FormID}, err, "creating form submission")
		return eris.Wrapf(err, "creating submission for form: %s", submission.FormID)
	}

	*submission = toDomainSubmission(record)
	return nil
}

type submissionCount struct {
	FormID string
	Total  int64
}

func (r *FormRepository) submissionCounts(ctx context.Context, records []FormRecord) (map[string]int64, error) {
	counts := make(map[string]int64, len(records))
	if len(records) == 0 {
		return counts, nil
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}

	var rows []submissionCount
	err := r.table.db.WithContext(ctx).
		Model(&FormSubmissionRecord{}).
		Select("form_id, COUNT(*) AS total").
		Where("form_id IN ?", ids).
		Group("form_id").
		Scan(&rows).Error
	if err != nil {
		r.table.logError(nil, err, "counting form submissions")
		return nil, eris.Wrap(err, "counting form submissions")
	}

	for _, row := range rows {
		counts[row.FormID] = row.Total
	}
	return counts, nil
}

func fieldsColumn(fields []map[string]any) datatypes.JSONSlice[map[string]any] {
	if fields == nil {
		fields = []map[string]any{}
	}
	return datatypes.JSONSlice[map[string]any](fields)
}

func settingsColumn(settings map[string]any) datatypes.JSONMap {
	if settings == nil {
		settings = map[string]any{}
	}
	return datatypes.JSONMap(settings)
}

func toDomainForm(record *FormRecord, submissionCount int64) *domaincms.Form {
	fields := []map[string]any(record.Fields)
	if fields == nil {
		fields = []map[string]any{}
	}
	settings := map[string]any(record.Settings)
	if settings == nil {
		settings = map[string]any{}
	}

	return &domaincms.Form{
		Meta:            toMeta(record.ItemColumns),
		Description:     record.Description,
		Type:            record.Type,
		Fields:          fields,
		Settings:        settings,
		SubmissionCount: submissionCount,
	}
}

func toDomainSubmission(record *FormSubmissionRecord) domaincms.FormSubmission {
	data := map[string]any(record.Data)
	if data == nil {
		data = map[string]any{}
	}

	return domaincms.FormSubmission{
		ID:        record.ID,
		FormID:    record.FormID,
		Data:      data,
		Status:    domaincms.SubmissionStatus(record.Status),
		CreatedAt: record.CreatedAt.UTC(),
		UpdatedAt: record.UpdatedAt.UTC(),
	}
}
