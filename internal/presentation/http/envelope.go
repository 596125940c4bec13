package http

import stdhttp "net/http"

// envelope is the JSON body every successful API response uses.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Total   *int   `json:"total,omitempty"`
	Message string `json:"message,omitempty"`
}

type envelopeResponse[T any] struct {
	Status int
	Body   envelope[T]
}

func respond[T any](status int, data T, message string) *envelopeResponse[T] {
	return &envelopeResponse[T]{
		Status: status,
		Body: envelope[T]{
			Success: true,
			Data:    data,
			Message: message,
		},
	}
}

func respondList[T any](items []T) *envelopeResponse[any] {
	if items == nil {
		items = []T{}
	}
	total := len(items)
	resp := respond[any](stdhttp.StatusOK, items, "")
	resp.Body.Total = &total
	return resp
}

// Query and body inputs shared by several routes.

type idQuery struct {
	ID string `query:"id" doc:"Record id"`
}

type lookupQuery struct {
	ID       string `query:"id" doc:"Item id; takes precedence over slug"`
	Slug     string `query:"slug" doc:"Item slug"`
	Category string `query:"category" doc:"Category id filter"`
	Status   string `query:"status" doc:"Status filter; defaults to PUBLISHED, ALL disables it"`
	Priority string `query:"priority" doc:"Priority filter (news only)"`
	Type     string `query:"type" doc:"Type filter (content and forms)"`
}

type bodyInput[B any] struct {
	Body B
}

type updateInput[B any] struct {
	ID   string `query:"id" doc:"Record id"`
	Body B
}

func deref[T any](value *T) T {
	var zero T
	if value == nil {
		return zero
	}
	return *value
}
