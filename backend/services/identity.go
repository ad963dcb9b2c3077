package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID int64
	Locale string
	Roles  []models.UserRole
}

func (i Identity) HasRole(role models.UserRole) bool {
	return slices.Contains(i.Roles, role)
}

// Clock returns the current time. Tests replace it with a fixed instant.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

// notFoundOr maps a missing record to a NotFound error for resource and wraps
// anything else.
func notFoundOr(err error, resource string, id any) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound(resource).With("id", id)
	}
	return fmt.Errorf("find %s %v: %w", resource, id, err)
}

// utc normalises an optional timestamp before it is stored.
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func appendIfSet(ids []int, id *int) []int {
	if id != nil {
		return append(ids, *id)
	}
	return ids
}

func textOf(texts map[int]string, id *int) *string {
	if id == nil {
		return nil
	}
	if text, ok := texts[*id]; ok {
		return &text
	}
	return nil
}
