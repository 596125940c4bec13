package club

import (
	"context"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/publishing"
)

type memberService struct {
	reporter
	repo MemberRepository
	now  func() time.Time
}

var _ MemberService = (*memberService)(nil)

func NewMemberService(repo MemberRepository, logger *logrus.Logger, hub *sentry.Hub) (MemberService, error) {
	if repo == nil {
		return nil, eris.New("member repository is required")
	}
	return &memberService{reporter: newReporter("members", logger, hub), repo: repo, now: time.Now}, nil
}

func (s *memberService) Create(ctx context.Context, input MemberInput) (*Member, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Department = strings.TrimSpace(input.Department)
	input.Faculty = strings.TrimSpace(input.Faculty)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	err := publishing.Validated(validation.ValidateStruct(&input,
		validation.Field(&input.Name, validation.Required.Error("name is required"), validation.RuneLength(0, 255)),
		validation.Field(&input.Department, validation.Required.Error("department is required")),
		validation.Field(&input.Faculty, validation.Required.Error("faculty is required")),
		validation.Field(&input.Year, validation.Required.Error("year is required"), validation.Min(1), validation.Max(8)),
		validation.Field(&input.Email, is.EmailFormat.Error("must be a valid email address")),
	))
	if err != nil {
		return nil, err
	}

	member := &Member{
		UserID:       optional(input.UserID),
		Name:         input.Name,
		StudentID:    optional(input.StudentID),
		Email:        input.Email,
		Department:   input.Department,
		Faculty:      input.Faculty,
		Year:         input.Year,
		AcademicYear: strings.TrimSpace(input.AcademicYear),
		Phone:        strings.TrimSpace(input.Phone),
		Position:     strings.TrimSpace(input.Position),
		Division:     strings.TrimSpace(input.Division),
		Avatar:       strings.TrimSpace(input.Avatar),
		IsActive:     true,
		JoinDate:     s.now().UTC(),
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"name": member.Name}, err, "creating member")
	}
	return member, nil
}

func (s *memberService) Get(ctx context.Context, id string) (*Member, error) {
	return load[Member](ctx, s.reporter, s.repo, id, "member")
}

func (s *memberService) List(ctx context.Context, query MemberQuery) ([]Member, error) {
	filter := MemberQuery{
		Year:       query.Year,
		Department: strings.TrimSpace(query.Department),
		Faculty:    strings.TrimSpace(query.Faculty),
	}
	if filter.Year < 0 {
		return nil, publishing.NewValidationError("year", "must not be negative")
	}

	members, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing members")
	}
	return members, nil
}

func (s *memberService) Update(ctx context.Context, id string, patch MemberPatch) (*Member, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if value := present(patch.Name); value != nil {
		member.Name = *value
	}
	if patch.StudentID != nil {
		member.StudentID = optional(*patch.StudentID)
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if err := is.EmailFormat.Validate(email); err != nil {
			return nil, publishing.NewValidationError("email", "must be a valid email address")
		}
		member.Email = email
	}
	if value := present(patch.Department); value != nil {
		member.Department = *value
	}
	if value := present(patch.Faculty); value != nil {
		member.Faculty = *value
	}
	if patch.Year != nil {
		if *patch.Year < 1 || *patch.Year > 8 {
			return nil, publishing.NewValidationError("year", "must be between 1 and 8")
		}
		member.Year = *patch.Year
	}
	assignText(&member.AcademicYear, patch.AcademicYear)
	assignText(&member.Phone, patch.Phone)
	assignText(&member.Position, patch.Position)
	assignText(&member.Division, patch.Division)
	assignText(&member.Avatar, patch.Avatar)
	if patch.IsActive != nil {
		member.IsActive = *patch.IsActive
	}

	if err := s.repo.Save(ctx, member); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": member.ID}, err, "updating member")
	}
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, id string) error {
	return remove[Member](ctx, s.reporter, s.repo, id, "member")
}

type staffService struct {
	reporter
	repo StaffRepository
}

var _ StaffService = (*staffService)(nil)

func NewStaffService(repo StaffRepository, logger *logrus.Logger, hub *sentry.Hub) (StaffService, error) {
	if repo == nil {
		return nil, eris.New("staff repository is required")
	}
	return &staffService{reporter: newReporter("staff", logger, hub), repo: repo}, nil
}

func (s *staffService) Create(ctx context.Context, input StaffInput) (*Staff, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.Department = strings.TrimSpace(input.Department)
	input.Position = strings.TrimSpace(input.Position)

	err := publishing.Validated(validation.ValidateStruct(&input,
		validation.Field(&input.UserID, validation.Required.Error("userId is required")),
		validation.Field(&input.Department, validation.Required.Error("department is required")),
		validation.Field(&input.Position, validation.Required.Error("position is required")),
	))
	if err != nil {
		return nil, err
	}

	staff := &Staff{
		UserID:     input.UserID,
		EmployeeID: optional(input.EmployeeID),
		Department: input.Department,
		Position:   input.Position,
		Phone:      strings.TrimSpace(input.Phone),
		Office:     strings.TrimSpace(input.Office),
		Bio:        strings.TrimSpace(input.Bio),
		Expertise:  nonNil(input.Expertise),
		Avatar:     strings.TrimSpace(input.Avatar),
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"user_id": staff.UserID}, err, "creating staff profile")
	}
	return staff, nil
}

func (s *staffService) Get(ctx context.Context, id string) (*Staff, error) {
	return load[Staff](ctx, s.reporter, s.repo, id, "staff profile")
}

func (s *staffService) List(ctx context.Context, query StaffQuery) ([]Staff, error) {
	staff, err := s.repo.List(ctx, StaffQuery{
		Department: strings.TrimSpace(query.Department),
		Position:   strings.TrimSpace(query.Position),
	})
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing staff")
	}
	return staff, nil
}

func (s *staffService) Update(ctx context.Context, id string, patch StaffPatch) (*Staff, error) {
	staff, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.EmployeeID != nil {
		staff.EmployeeID = optional(*patch.EmployeeID)
	}
	if value := present(patch.Department); value != nil {
		staff.Department = *value
	}
	if value := present(patch.Position); value != nil {
		staff.Position = *value
	}
	assignText(&staff.Phone, patch.Phone)
	assignText(&staff.Office, patch.Office)
	assignText(&staff.Bio, patch.Bio)
	assignText(&staff.Avatar, patch.Avatar)
	if patch.Expertise != nil {
		staff.Expertise = nonNil(*patch.Expertise)
	}
	if patch.IsActive != nil {
		staff.IsActive = *patch.IsActive
	}

	if err := s.repo.Save(ctx, staff); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": staff.ID}, err, "updating staff profile")
	}
	return staff, nil
}

func (s *staffService) Delete(ctx context.Context, id string) error {
	return remove[Staff](ctx, s.reporter, s.repo, id, "staff profile")
}

type positionService struct {
	reporter
	repo PositionRepository
}

var _ PositionService = (*positionService)(nil)

func NewPositionService(repo PositionRepository, logger *logrus.Logger, hub *sentry.Hub) (PositionService, error) {
	if repo == nil {
		return nil, eris.New("position repository is required")
	}
	return &positionService{reporter: newReporter("positions", logger, hub), repo: repo}, nil
}

func (s *positionService) Create(ctx context.Context, input PositionInput) (*Position, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Type = upper(input.Type)

	err := publishing.Validated(validation.ValidateStruct(&input,
		validation.Field(&input.Title, validation.Required.Error("title is required"), validation.RuneLength(0, 255)),
		validation.Field(&input.Type, validation.Required.Error("type is required")),
		validation.Field(&input.Level, validation.Min(0).Error("must not be negative")),
	))
	if err != nil {
		return nil, err
	}

	position := &Position{
		Title:       input.Title,
		Description: strings.TrimSpace(input.Description),
		Type:        input.Type,
		Level:       input.Level,
		IsActive:    boolOr(input.IsActive, true),
	}

	if err := s.repo.Create(ctx, position); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"title": position.Title}, err, "creating position")
	}
	return position, nil
}

func (s *positionService) Get(ctx context.Context, id string) (*Position, error) {
	return load[Position](ctx, s.reporter, s.repo, id, "position")
}

func (s *positionService) List(ctx context.Context, query PositionQuery) ([]Position, error) {
	active := true
	isActive, err := parseFlag("isActive", query.IsActive, &active)
	if err != nil {
		return nil, err
	}

	positions, err := s.repo.List(ctx, PositionFilter{Type: upper(query.Type), IsActive: isActive})
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing positions")
	}
	return positions, nil
}

func (s *positionService) Update(ctx context.Context, id string, patch PositionPatch) (*Position, error) {
	position, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if value := present(patch.Title); value != nil {
		position.Title = *value
	}
	assignText(&position.Description, patch.Description)
	if value := present(patch.Type); value != nil {
		position.Type = upper(*value)
	}
	if patch.Level != nil {
		if *patch.Level < 0 {
			return nil, publishing.NewValidationError("level", "must not be negative")
		}
		position.Level = *patch.Level
	}
	if patch.IsActive != nil {
		position.IsActive = *patch.IsActive
	}

	if err := s.repo.Save(ctx, position); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": position.ID}, err, "updating position")
	}
	return position, nil
}

func (s *positionService) Delete(ctx context.Context, id string) error {
	return remove[Position](ctx, s.reporter, s.repo, id, "position")
}
