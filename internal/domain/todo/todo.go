package todo

import (
	"errors"
	"time"
)

const (
	DefaultLimit = 10
	MinLimit     = 10
)

var ErrNotFound = errors.New("todo not found")

type Todo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Patch is a partial update: nil fields keep their stored value.
type Patch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Apply returns t with the patch applied and UpdatedAt set to now.
func (p Patch) Apply(t Todo, now time.Time) Todo {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	t.UpdatedAt = now
	return t
}

type PageParams struct {
	Limit  int
	Offset int
}

// NormalizePage falls back to defaults instead of rejecting bad values.
func NormalizePage(p PageParams) PageParams {
	if p.Limit < MinLimit {
		p.Limit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

type Page struct {
	Items      []Todo `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PerPage    int    `json:"perPage"`
	TotalPages int    `json:"totalPages"`
}

// NewPage computes the page metadata. TotalPages is total/limit + 1, which
// reports one extra page when total is an exact multiple of limit.
func NewPage(items []Todo, total int, p PageParams) Page {
	return Page{
		Items:      items,
		Total:      total,
		Page:       p.Offset/p.Limit + 1,
		PerPage:    p.Limit,
		TotalPages: total/p.Limit + 1,
	}
}
