package strapi

import (
	"errors"
	"fmt"
	"net/http"
)

// PaginationMeta is the pagination envelope Strapi returns on list endpoints.
type PaginationMeta struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type Meta struct {
	Pagination PaginationMeta `json:"pagination"`
}

// ListResponse is one page of a collection.
type ListResponse[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// EmptyList returns a list with no entries and a zeroed pagination envelope
// for the requested page size.
func EmptyList[T any](pageSize int) *ListResponse[T] {
	return &ListResponse[T]{
		Data: []T{},
		Meta: Meta{Pagination: PaginationMeta{Page: 1, PageSize: pageSize}},
	}
}

type singleResponse[T any] struct {
	Data *T `json:"data"`
}

// APIError is the error body Strapi sends with non-2xx responses.
type APIError struct {
	Status  int    `json:"status"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("strapi: %d %s: %s", e.Status, e.Name, e.Message)
}

// IsNotFound reports whether err is a Strapi 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
