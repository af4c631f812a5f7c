package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/lib/pq"

	"github.com/bitmark-inc/huddle-api/schema"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500

	uniqueViolationCode = "23505"
)

var (
	ErrRequestNotFound  = fmt.Errorf("request not found")
	ErrDuplicateRequest = fmt.Errorf("request id already exists")
)

// CreateRequest inserts a new request. A missing id is generated and written
// back into r, and the status defaults to open.
func (s *HuddleStore) CreateRequest(r *schema.Request) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = schema.StatusOpen
	}

	if err := s.ormDB.Create(r).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
			return ErrDuplicateRequest
		}
		return err
	}
	return nil
}

// GetRequest returns ErrRequestNotFound for unknown or malformed ids
func (s *HuddleStore) GetRequest(id string) (*schema.Request, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrRequestNotFound
	}

	var r schema.Request
	if err := s.ormDB.Where("id = ?", id).First(&r).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &r, nil
}

// UpdateRequest applies fields to a request. When expected statuses are
// given the update only happens if the current status is one of them. The
// returned bool reports whether a row was updated.
func (s *HuddleStore) UpdateRequest(id string, fields map[string]interface{}, expected ...schema.Status) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	q := s.ormDB.Model(schema.Request{}).Where("id = ?", id)
	if len(expected) > 0 {
		q = q.Where("status IN (?)", statusStrings(expected))
	}

	result := q.Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// ListRequests returns the newest requests first
func (s *HuddleStore) ListRequests(filter RequestFilter) ([]schema.Request, error) {
	requests := []schema.Request{}

	q := s.ormDB.Model(schema.Request{})
	if filter.Kind != "" {
		q = q.Where("kind = ?", string(filter.Kind))
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status = ANY(?)", pq.Array(statusStrings(filter.Statuses)))
	}
	if filter.RequesterID != "" {
		q = q.Where("requester_id = ?", filter.RequesterID)
	}
	if !filter.CreatedBefore.IsZero() {
		q = q.Where("created_at < ?", filter.CreatedBefore)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	order := "created_at DESC"
	if filter.OldestFirst {
		order = "created_at ASC"
	}

	if err := q.Order(order).Limit(limit).Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func statusStrings(statuses []schema.Status) []string {
	s := make([]string, 0, len(statuses))
	for _, st := range statuses {
		s = append(s, string(st))
	}
	return s
}
