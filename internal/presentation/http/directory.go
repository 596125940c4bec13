package http

import (
	"context"
	stdhttp "net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/directory"
)

type CategoryBody struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	Name        string   `json:"name,omitempty"`
	Slug        string   `json:"slug,omitempty" doc:"Derived from the name when empty"`
	Type        string   `json:"type,omitempty" doc:"NEWS, ACTIVITY, DOCUMENT or GENERAL"`
	Color       string   `json:"color,omitempty"`
	Description string   `json:"description,omitempty"`
}

type ContactBody struct {
	_        struct{} `json:"-" additionalProperties:"true"`
	Name     *string  `json:"name,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Subject  *string  `json:"subject,omitempty"`
	Message  *string  `json:"message,omitempty"`
	Category *string  `json:"category,omitempty"`
	Priority *string  `json:"priority,omitempty"`
	Status   *string  `json:"status,omitempty" doc:"NEW, IN_PROGRESS, RESOLVED or CLOSED; update only"`
}

type UserBody struct {
	_         struct{} `json:"-" additionalProperties:"true"`
	Email     *string  `json:"email,omitempty"`
	Username  *string  `json:"username,omitempty"`
	Password  *string  `json:"password,omitempty" doc:"Required on create; replaces the password on update"`
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Role      *string  `json:"role,omitempty" doc:"ADMIN, EDITOR, MEMBER or STAFF"`
	IsActive  *bool    `json:"isActive,omitempty" doc:"Update only"`
}

type userQuery struct {
	ID   string `query:"id" doc:"User id"`
	Role string `query:"role" doc:"Role filter; ALL disables it"`
}

type contactQuery struct {
	ID       string `query:"id" doc:"Contact id"`
	Category string `query:"category"`
	Status   string `query:"status"`
}

func (s *Server) registerCategoryRoutes() {
	tags := []string{"category"}

	huma.Register(s.api, huma.Operation{
		OperationID: "list-categories",
		Method:      stdhttp.MethodGet,
		Path:        "/api/categories",
		Summary:     "List categories",
		Tags:        tags,
	}, func(ctx context.Context, _ *struct{}) (*envelopeResponse[any], error) {
		categories, err := s.categories.List(ctx)
		if err != nil {
			return nil, s.problem(ctx, err, "category", "listing categories", nil)
		}
		return respondList(categories), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-category",
		Method:        stdhttp.MethodPost,
		Path:          "/api/categories",
		Summary:       "Create category",
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *bodyInput[CategoryBody]) (*envelopeResponse[*directory.Category], error) {
		category, err := s.categories.Create(ctx, directory.CategoryInput{
			Name:        input.Body.Name,
			Slug:        input.Body.Slug,
			Type:        input.Body.Type,
			Color:       input.Body.Color,
			Description: input.Body.Description,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "category", "creating category", nil)
		}
		return respond(stdhttp.StatusCreated, category, "category created"), nil
	})
}

func (s *Server) registerContactRoutes() {
	tags := []string{"contact"}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-contacts",
		Method:      stdhttp.MethodGet,
		Path:        "/api/contacts",
		Summary:     "Fetch one contact message by id, or list them newest first",
		Tags:        tags,
	}, func(ctx context.Context, input *contactQuery) (*envelopeResponse[any], error) {
		if input.ID != "" {
			contact, err := s.contacts.Get(ctx, input.ID)
			if err != nil {
				return nil, s.problem(ctx, err, "contact", "fetching contact", logrus.Fields{"id": input.ID})
			}
			return respond[any](stdhttp.StatusOK, contact, ""), nil
		}

		contacts, err := s.contacts.List(ctx, input.Category, input.Status)
		if err != nil {
			return nil, s.problem(ctx, err, "contact", "listing contacts", nil)
		}
		return respondList(contacts), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-contact",
		Method:        stdhttp.MethodPost,
		Path:          "/api/contacts",
		Summary:       "Leave a contact message",
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *bodyInput[ContactBody]) (*envelopeResponse[*directory.Contact], error) {
		b := input.Body
		contact, err := s.contacts.Create(ctx, directory.ContactInput{
			Name:     deref(b.Name),
			Email:    deref(b.Email),
			Phone:    deref(b.Phone),
			Subject:  deref(b.Subject),
			Message:  deref(b.Message),
			Category: deref(b.Category),
			Priority: deref(b.Priority),
		})
		if err != nil {
			return nil, s.problem(ctx, err, "contact", "creating contact", nil)
		}
		return respond(stdhttp.StatusCreated, contact, "message received"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-contact",
		Method:      stdhttp.MethodPut,
		Path:        "/api/contacts",
		Summary:     "Update contact message",
		Tags:        tags,
	}, func(ctx context.Context, input *updateInput[ContactBody]) (*envelopeResponse[*directory.Contact], error) {
		b := input.Body
		contact, err := s.contacts.Update(ctx, input.ID, directory.ContactPatch{
			Name:     b.Name,
			Email:    b.Email,
			Phone:    b.Phone,
			Subject:  b.Subject,
			Message:  b.Message,
			Category: b.Category,
			Priority: b.Priority,
			Status:   b.Status,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "contact", "updating contact", logrus.Fields{"id": input.ID})
		}
		return respond(stdhttp.StatusOK, contact, "contact updated"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-contact",
		Method:      stdhttp.MethodDelete,
		Path:        "/api/contacts",
		Summary:     "Delete contact message",
		Tags:        tags,
	}, func(ctx context.Context, input *idQuery) (*envelopeResponse[any], error) {
		if err := s.contacts.Delete(ctx, input.ID); err != nil {
			return nil, s.problem(ctx, err, "contact", "deleting contact", logrus.Fields{"id": input.ID})
		}
		return respond[any](stdhttp.StatusOK, nil, "contact deleted"), nil
	})
}

func (s *Server) registerUserRoutes() {
	tags := []string{"user"}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-users",
		Method:      stdhttp.MethodGet,
		Path:        "/api/users",
		Summary:     "Fetch one user account by id, or list them oldest first",
		Tags:        tags,
	}, func(ctx context.Context, input *userQuery) (*envelopeResponse[any], error) {
		if input.ID != "" {
			user, err := s.users.Get(ctx, input.ID)
			if err != nil {
				return nil, s.problem(ctx, err, "user", "fetching user", logrus.Fields{"id": input.ID})
			}
			return respond[any](stdhttp.StatusOK, user, ""), nil
		}

		users, err := s.users.List(ctx, input.Role)
		if err != nil {
			return nil, s.problem(ctx, err, "user", "listing users", nil)
		}
		return respondList(users), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-user",
		Method:        stdhttp.MethodPost,
		Path:          "/api/users",
		Summary:       "Register a user account",
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *bodyInput[UserBody]) (*envelopeResponse[*directory.User], error) {
		b := input.Body
		user, err := s.users.Create(ctx, directory.UserInput{
			Email:     deref(b.Email),
			Username:  deref(b.Username),
			Password:  deref(b.Password),
			FirstName: deref(b.FirstName),
			LastName:  deref(b.LastName),
			Role:      deref(b.Role),
		})
		if err != nil {
			return nil, s.problem(ctx, err, "user", "creating user", nil)
		}
		return respond(stdhttp.StatusCreated, user, "user created"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-user",
		Method:      stdhttp.MethodPut,
		Path:        "/api/users",
		Summary:     "Update user account",
		Tags:        tags,
	}, func(ctx context.Context, input *updateInput[UserBody]) (*envelopeResponse[*directory.User], error) {
		b := input.Body
		user, err := s.users.Update(ctx, input.ID, directory.UserPatch{
			Email:     b.Email,
			Username:  b.Username,
			Password:  b.Password,
			FirstName: b.FirstName,
			LastName:  b.LastName,
			Role:      b.Role,
			IsActive:  b.IsActive,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "user", "updating user", logrus.Fields{"id": input.ID})
		}
		return respond(stdhttp.StatusOK, user, "user updated"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-user",
		Method:      stdhttp.MethodDelete,
		Path:        "/api/users",
		Summary:     "Delete user account",
		Tags:        tags,
	}, func(ctx context.Context, input *idQuery) (*envelopeResponse[any], error) {
		if err := s.users.Delete(ctx, input.ID); err != nil {
			return nil, s.problem(ctx, err, "user", "deleting user", logrus.Fields{"id": input.ID})
		}
		return respond[any](stdhttp.StatusOK, nil, "user deleted"), nil
	})
}
