package http

import (
	"context"
	stdhttp "net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/club"
)

type MemberBody struct {
	_            struct{} `json:"-" additionalProperties:"true"`
	UserID       *string  `json:"userId,omitempty" doc:"Create only"`
	Name         *string  `json:"name,omitempty"`
	StudentID    *string  `json:"studentId,omitempty" doc:"Unique when set"`
	Email        *string  `json:"email,omitempty"`
	Department   *string  `json:"department,omitempty"`
	Faculty      *string  `json:"faculty,omitempty"`
	Year         *int     `json:"year,omitempty" doc:"Study year, 1 to 8"`
	AcademicYear *string  `json:"academicYear,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Position     *string  `json:"position,omitempty"`
	Division     *string  `json:"division,omitempty"`
	Avatar       *string  `json:"avatar,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty" doc:"Update only"`
}

type memberQuery struct {
	ID         string `query:"id" doc:"Member id"`
	Year       int    `query:"year"`
	Department string `query:"department" doc:"Case-insensitive substring"`
	Faculty    string `query:"faculty" doc:"Case-insensitive substring"`
}

type StaffBody struct {
	_          struct{} `json:"-" additionalProperties:"true"`
	UserID     *string  `json:"userId,omitempty" doc:"Create only; one profile per user"`
	EmployeeID *string  `json:"employeeId,omitempty"`
	Department *string  `json:"department,omitempty"`
	Position   *string  `json:"position,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Office     *string  `json:"office,omitempty"`
	Bio        *string  `json:"bio,omitempty"`
	Expertise  []string `json:"expertise,omitempty"`
	Avatar     *string  `json:"avatar,omitempty"`
	IsActive   *bool    `json:"isActive,omitempty" doc:"Update only"`
}

type staffQuery struct {
	ID         string `query:"id" doc:"Staff profile id"`
	Department string `query:"department" doc:"Case-insensitive substring"`
	Position   string `query:"position" doc:"Case-insensitive substring"`
}

type PositionBody struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	Title       *string  `json:"title,omitempty" doc:"Unique"`
	Description *string  `json:"description,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Level       *int     `json:"level,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty" doc:"Defaults to true"`
}

type positionQuery struct {
	ID       string `query:"id" doc:"Position id"`
	Type     string `query:"type"`
	IsActive string `query:"isActive" doc:"true (default), false or all"`
}

func (s *Server) registerMemberRoutes() {
	tags := []string{"member"}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-members",
		Method:      stdhttp.MethodGet,
		Path:        "/api/members",
		Summary:     "Fetch one member by id, or list members by study year",
		Tags:        tags,
	}, func(ctx context.Context, input *memberQuery) (*envelopeResponse[any], error) {
		if input.ID != "" {
			member, err := s.members.Get(ctx, input.ID)
			if err != nil {
				return nil, s.problem(ctx, err, "member", "fetching member", logrus.Fields{"id": input.ID})
			}
			return respond[any](stdhttp.StatusOK, member, ""), nil
		}

		members, err := s.members.List(ctx, club.MemberQuery{
			Year:       input.Year,
			Department: input.Department,
			Faculty:    input.Faculty,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "member", "listing members", nil)
		}
		return respondList(members), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-member",
		Method:        stdhttp.MethodPost,
		Path:          "/api/members",
		Summary:       "Enrol member",
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *bodyInput[MemberBody]) (*envelopeResponse[*club.Member], error) {
		b := input.Body
		member, err := s.members.Create(ctx, club.MemberInput{
			UserID:       deref(b.UserID),
			Name:         deref(b.Name),
			StudentID:    deref(b.StudentID),
			Email:        deref(b.Email),
			Department:   deref(b.Department),
			Faculty:      deref(b.Faculty),
			Year:         deref(b.Year),
			AcademicYear: deref(b.AcademicYear),
			Phone:        deref(b.Phone),
			Position:     deref(b.Position),
			Division:     deref(b.Division),
			Avatar:       deref(b.Avatar),
		})
		if err != nil {
			return nil, s.problem(ctx, err, "member", "creating member", nil)
		}
		return respond(stdhttp.StatusCreated, member, "member created"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-member",
		Method:      stdhttp.MethodPut,
		Path:        "/api/members",
		Summary:     "Update member",
		Tags:        tags,
	}, func(ctx context.Context, input *updateInput[MemberBody]) (*envelopeResponse[*club.Member], error) {
		b := input.Body
		member, err := s.members.Update(ctx, input.ID, club.MemberPatch{
			Name:         b.Name,
			StudentID:    b.StudentID,
			Email:        b.Email,
			Department:   b.Department,
			Faculty:      b.Faculty,
			Year:         b.Year,
			AcademicYear: b.AcademicYear,
			Phone:        b.Phone,
			Position:     b.Position,
			Division:     b.Division,
			Avatar:       b.Avatar,
			IsActive:     b.IsActive,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "member", "updating member", logrus.Fields{"id": input.ID})
		}
		return respond(stdhttp.StatusOK, member, "member updated"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-member",
		Method:      stdhttp.MethodDelete,
		Path:        "/api/members",
		Summary:     "Delete member",
		Tags:        tags,
	}, func(ctx context.Context, input *idQuery) (*envelopeResponse[any], error) {
		if err := s.members.Delete(ctx, input.ID); err != nil {
			return nil, s.problem(ctx, err, "member", "deleting member", logrus.Fields{"id": input.ID})
		}
		return respond[any](stdhttp.StatusOK, nil, "member deleted"), nil
	})
}

func (s *Server) registerStaffRoutes() {
	tags := []string{"staff"}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-staff",
		Method:      stdhttp.MethodGet,
		Path:        "/api/staff",
		Summary:     "Fetch one staff profile by id, or list them by department",
		Tags:        tags,
	}, func(ctx context.Context, input *staffQuery) (*envelopeResponse[any], error) {
		if input.ID != "" {
			staff, err := s.staff.Get(ctx, input.ID)
			if err != nil {
				return nil, s.problem(ctx, err, "staff profile", "fetching staff profile", logrus.Fields{"id": input.ID})
			}
			return respond[any](stdhttp.StatusOK, staff, ""), nil
		}

		staff, err := s.staff.List(ctx, club.StaffQuery{Department: input.Department, Position: input.Position})
		if err != nil {
			return nil, s.problem(ctx, err, "staff profile", "listing staff", nil)
		}
		return respondList(staff), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-staff",
		Method:        stdhttp.MethodPost,
		Path:          "/api/staff",
		Summary:       "Create a staff profile for a user",
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *bodyInput[StaffBody]) (*envelopeResponse[*club.Staff], error) {
		b := input.Body
		staff, err := s.staff.Create(ctx, club.StaffInput{
			UserID:     deref(b.UserID),
			EmployeeID: deref(b.EmployeeID),
			Department: deref(b.Department),
			Position:   deref(b.Position),
			Phone:      deref(b.Phone),
			Office:     deref(b.Office),
			Bio:        deref(b.Bio),
			Expertise:  b.Expertise,
			Avatar:     deref(b.Avatar),
		})
		if err != nil {
			return nil, s.problem(ctx, err, "staff profile", "creating staff profile", nil)
		}
		return respond(stdhttp.StatusCreated, staff, "staff profile created"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-staff",
		Method:      stdhttp.MethodPut,
		Path:        "/api/staff",
		Summary:     "Update staff profile",
		Tags:        tags,
	}, func(ctx context.Context, input *updateInput[StaffBody]) (*envelopeResponse[*club.Staff], error) {
		b := input.Body
		staff, err := s.staff.Update(ctx, input.ID, club.StaffPatch{
			EmployeeID: b.EmployeeID,
			Department: b.Department,
			Position:   b.Position,
			Phone:      b.Phone,
			Office:     b.Office,
			Bio:        b.Bio,
			Expertise:  sliceOrNil(b.Expertise),
			Avatar:     b.Avatar,
			IsActive:   b.IsActive,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "staff profile", "updating staff profile", logrus.Fields{"id": input.ID})
		}
		return respond(stdhttp.StatusOK, staff, "staff profile updated"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-staff",
		Method:      stdhttp.MethodDelete,
		Path:        "/api/staff",
		Summary:     "Delete staff profile",
		Tags:        tags,
	}, func(ctx context.Context, input *idQuery) (*envelopeResponse[any], error) {
		if err := s.staff.Delete(ctx, input.ID); err != nil {
			return nil, s.problem(ctx, err, "staff profile", "deleting staff profile", logrus.Fields{"id": input.ID})
		}
		return respond[any](stdhttp.StatusOK, nil, "staff profile deleted"), nil
	})
}

func (s *Server) registerPositionRoutes() {
	tags := []string{"position"}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-positions",
		Method:      stdhttp.MethodGet,
		Path:        "/api/positions",
		Summary:     "Fetch one position by id, or list them by level",
		Tags:        tags,
	}, func(ctx context.Context, input *positionQuery) (*envelopeResponse[any], error) {
		if input.ID != "" {
			position, err := s.positions.Get(ctx, input.ID)
			if err != nil {
				return nil, s.problem(ctx, err, "position", "fetching position", logrus.Fields{"id": input.ID})
			}
			return respond[any](stdhttp.StatusOK, position, ""), nil
		}

		positions, err := s.positions.List(ctx, club.PositionQuery{Type: input.Type, IsActive: input.IsActive})
		if err != nil {
			return nil, s.problem(ctx, err, "position", "listing positions", nil)
		}
		return respondList(positions), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-position",
		Method:        stdhttp.MethodPost,
		Path:          "/api/positions",
		Summary:       "Create position",
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *bodyInput[PositionBody]) (*envelopeResponse[*club.Position], error) {
		b := input.Body
		position, err := s.positions.Create(ctx, club.PositionInput{
			Title:       deref(b.Title),
			Description: deref(b.Description),
			Type:        deref(b.Type),
			Level:       deref(b.Level),
			IsActive:    b.IsActive,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "position", "creating position", nil)
		}
		return respond(stdhttp.StatusCreated, position, "position created"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-position",
		Method:      stdhttp.MethodPut,
		Path:        "/api/positions",
		Summary:     "Update position",
		Tags:        tags,
	}, func(ctx context.Context, input *updateInput[PositionBody]) (*envelopeResponse[*club.Position], error) {
		b := input.Body
		position, err := s.positions.Update(ctx, input.ID, club.PositionPatch{
			Title:       b.Title,
			Description: b.Description,
			Type:        b.Type,
			Level:       b.Level,
			IsActive:    b.IsActive,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "position", "updating position", logrus.Fields{"id": input.ID})
		}
		return respond(stdhttp.StatusOK, position, "position updated"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-position",
		Method:      stdhttp.MethodDelete,
		Path:        "/api/positions",
		Summary:     "Delete position",
		Tags:        tags,
	}, func(ctx context.Context, input *idQuery) (*envelopeResponse[any], error) {
		if err := s.positions.Delete(ctx, input.ID); err != nil {
			return nil, s.problem(ctx, err, "position", "deleting position", logrus.Fields{"id": input.ID})
		}
		return respond[any](stdhttp.StatusOK, nil, "position deleted"), nil
	})
}
