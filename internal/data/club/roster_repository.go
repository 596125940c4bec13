package club

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domainclub "smoweb/app/internal/domain/club"
)

type MemberRepository struct {
	table[MemberRecord]
}

var _ domainclub.MemberRepository = (*MemberRepository)(nil)

func NewMemberRepository(db *gorm.DB, logger *logrus.Logger) (*MemberRepository, error) {
	t, err := newTable[MemberRecord](db, logger, "member", "userId")
	if err != nil {
		return nil, err
	}
	return &MemberRepository{table: t}, nil
}

func (r *MemberRepository) Create(ctx context.Context, member *domainclub.Member) error {
	if member == nil {
		return eris.New("member is nil")
	}

	record := toMemberRecord(member)
	record.ID = uuid.NewString()
	if err := r.create(ctx, record); err != nil {
		return err
	}
	*member = toDomainMember(record)
	return nil
}

func (r *MemberRepository) Get(ctx context.Context, id string) (*domainclub.Member, error) {
	record, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	member := toDomainMember(record)
	return &member, nil
}

// List orders members by study year, seniors first, then by name.
// Department and faculty match case-insensitive substrings.
func (r *MemberRepository) List(ctx context.Context, filter domainclub.MemberQuery) ([]domainclub.Member, error) {
	query := r.query(ctx)
	if filter.Year > 0 {
		query = query.Where("year = ?", filter.Year)
	}
	query = containsFold(query, "department", filter.Department)
	query = containsFold(query, "faculty", filter.Faculty)

	records, err := r.list(query.Order("year DESC").Order("name ASC"))
	if err != nil {
		return nil, err
	}

	members := make([]domainclub.Member, 0, len(records))
	for i := range records {
		members = append(members, toDomainMember(&records[i]))
	}
	return members, nil
}

func (r *MemberRepository) Save(ctx context.Context, member *domainclub.Member) error {
	if member == nil {
		return eris.New("member is nil")
	}

	stored, err := r.save(ctx, member.ID, toMemberRecord(member))
	if err != nil {
		return err
	}
	*member = toDomainMember(stored)
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

type StaffRepository struct {
	table[StaffRecord]
}

var _ domainclub.StaffRepository = (*StaffRepository)(nil)

func NewStaffRepository(db *gorm.DB, logger *logrus.Logger) (*StaffRepository, error) {
	t, err := newTable[StaffRecord](db, logger, "staff profile", "userId")
	if err != nil {
		return nil, err
	}
	t.preload = func(q *gorm.DB) *gorm.DB {
		return q.Preload("User")
	}
	return &StaffRepository{table: t}, nil
}

func (r *StaffRepository) Create(ctx context.Context, staff *domainclub.Staff) error {
	if staff == nil {
		return eris.New("staff profile is nil")
	}

	record := toStaffRecord(staff)
	record.ID = uuid.NewString()
	if err := r.create(ctx, record); err != nil {
		return err
	}

	stored, err := r.get(ctx, record.ID)
	if err != nil {
		return err
	}
	*staff = toDomainStaff(stored)
	return nil
}

func (r *StaffRepository) Get(ctx context.Context, id string) (*domainclub.Staff, error) {
	record, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	staff := toDomainStaff(record)
	return &staff, nil
}

// List orders staff by department, then position. Both filters match
// case-insensitive substrings.
func (r *StaffRepository) List(ctx context.Context, filter domainclub.StaffQuery) ([]domainclub.Staff, error) {
	query := r.query(ctx)
	query = containsFold(query, "department", filter.Department)
	query = containsFold(query, "position", filter.Position)

	records, err := r.list(query.Order("department ASC").Order("position ASC"))
	if err != nil {
		return nil, err
	}

	staff := make([]domainclub.Staff, 0, len(records))
	for i := range records {
		staff = append(staff, toDomainStaff(&records[i]))
	}
	return staff, nil
}

func (r *StaffRepository) Save(ctx context.Context, staff *domainclub.Staff) error {
	if staff == nil {
		return eris.New("staff profile is nil")
	}

	stored, err := r.save(ctx, staff.ID, toStaffRecord(staff), "user_id")
	if err != nil {
		return err
	}
	*staff = toDomainStaff(stored)
	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

type PositionRepository struct {
	table[PositionRecord]
}

var _ domainclub.PositionRepository = (*PositionRepository)(nil)

func NewPositionRepository(db *gorm.DB, logger *logrus.Logger) (*PositionRepository, error) {
	t, err := newTable[PositionRecord](db, logger, "position")
	if err != nil {
		return nil, err
	}
	return &PositionRepository{table: t}, nil
}

func (r *PositionRepository) Create(ctx context.Context, position *domainclub.Position) error {
	if position == nil {
		return eris.New("position is nil")
	}

	record := toPositionRecord(position)
	record.ID = uuid.NewString()
	if err := r.create(ctx, record); err != nil {
		return err
	}
	*position = toDomainPosition(record)
	return nil
}

func (r *PositionRepository) Get(ctx context.Context, id string) (*domainclub.Position, error) {
	record, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	position := toDomainPosition(record)
	return &position, nil
}

// List orders positions by level, highest first, then by title.
func (r *PositionRepository) List(ctx context.Context, filter domainclub.PositionFilter) ([]domainclub.Position, error) {
	query := r.query(ctx)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	records, err := r.list(query.Order("level DESC").Order("title ASC"))
	if err != nil {
		return nil, err
	}

	positions := make([]domainclub.Position, 0, len(records))
	for i := range records {
		positions = append(positions, toDomainPosition(&records[i]))
	}
	return positions, nil
}

func (r *PositionRepository) Save(ctx context.Context, position *domainclub.Position) error {
	if position == nil {
		return eris.New("position is nil")
	}

	stored, err := r.save(ctx, position.ID, toPositionRecord(position))
	if err != nil {
		return err
	}
	*position = toDomainPosition(stored)
	return nil
}

func (r *PositionRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func toMemberRecord(member *domainclub.Member) *MemberRecord {
	return &MemberRecord{
		ID:           member.ID,
		UserID:       member.UserID,
		Name:         member.Name,
		StudentID:    member.StudentID,
		Email:        member.Email,
		Department:   member.Department,
		Faculty:      member.Faculty,
		Year:         member.Year,
		AcademicYear: member.AcademicYear,
		Phone:        member.Phone,
		Position:     member.Position,
		Division:     member.Division,
		Avatar:       member.Avatar,
		IsActive:     member.IsActive,
		JoinDate:     member.JoinDate.UTC(),
	}
}

func toDomainMember(record *MemberRecord) domainclub.Member {
	return domainclub.Member{
		ID:           record.ID,
		UserID:       record.UserID,
		Name:         record.Name,
		StudentID:    record.StudentID,
		Email:        record.Email,
		Department:   record.Department,
		Faculty:      record.Faculty,
		Year:         record.Year,
		AcademicYear: record.AcademicYear,
		Phone:        record.Phone,
		Position:     record.Position,
		Division:     record.Division,
		Avatar:       record.Avatar,
		IsActive:     record.IsActive,
		JoinDate:     record.JoinDate.UTC(),
	}
}

func toStaffRecord(staff *domainclub.Staff) *StaffRecord {
	expertise := staff.Expertise
	if expertise == nil {
		expertise = []string{}
	}

	return &StaffRecord{
		ID:         staff.ID,
		UserID:     staff.UserID,
		EmployeeID: staff.EmployeeID,
		Department: staff.Department,
		Position:   staff.Position,
		Phone:      staff.Phone,
		Office:     staff.Office,
		Bio:        staff.Bio,
		Expertise:  datatypes.JSONSlice[string](expertise),
		Avatar:     staff.Avatar,
		IsActive:   staff.IsActive,
	}
}

func toDomainStaff(record *StaffRecord) domainclub.Staff {
	expertise := []string(record.Expertise)
	if expertise == nil {
		expertise = []string{}
	}

	staff := domainclub.Staff{
		ID:         record.ID,
		UserID:     record.UserID,
		EmployeeID: record.EmployeeID,
		Department: record.Department,
		Position:   record.Position,
		Phone:      record.Phone,
		Office:     record.Office,
		Bio:        record.Bio,
		Expertise:  expertise,
		Avatar:     record.Avatar,
		IsActive:   record.IsActive,
		CreatedAt:  record.CreatedAt.UTC(),
		UpdatedAt:  record.UpdatedAt.UTC(),
	}
	if person := toPerson(record.User); person != nil {
		staff.FirstName = person.FirstName
		staff.LastName = person.LastName
		staff.Email = person.Email
	}
	return staff
}

func toPositionRecord(position *domainclub.Position) *PositionRecord {
	return &PositionRecord{
		ID:          position.ID,
		Title:       position.Title,
		Description: position.Description,
		Type:        position.Type,
		Level:       position.Level,
		IsActive:    position.IsActive,
	}
}

func toDomainPosition(record *PositionRecord) domainclub.Position {
	return domainclub.Position{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		Type:        record.Type,
		Level:       record.Level,
		IsActive:    record.IsActive,
		CreatedAt:   record.CreatedAt.UTC(),
		UpdatedAt:   record.UpdatedAt.UTC(),
	}
}
