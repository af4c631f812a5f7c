package huddle_test

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/huddle-api/schema"
	"github.com/bitmark-inc/huddle-api/store"
)

// memoryStore applies the same conditional update rule as the gorm store so
// that races between actions can be exercised without a database.
type memoryStore struct {
	sync.Mutex
	requests map[string]schema.Request
}

func newMemoryStore() *memoryStore {
	return &memoryStore{requests: map[string]schema.Request{}}
}

// put seeds a request as is
func (m *memoryStore) put(r schema.Request) schema.Request {
	m.Lock()
	defer m.Unlock()
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	m.requests[r.ID] = r
	return r
}

func (m *memoryStore) get(id string) schema.Request {
	m.Lock()
	defer m.Unlock()
	return m.requests[id]
}

func (m *memoryStore) Ping() error {
	return nil
}

func (m *memoryStore) CreateRequest(r *schema.Request) error {
	m.Lock()
	defer m.Unlock()
	r.ID = uuid.New().String()
	if r.Status == "" {
		r.Status = schema.StatusOpen
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.requests[r.ID] = *r
	return nil
}

func (m *memoryStore) GetRequest(id string) (*schema.Request, error) {
	m.Lock()
	defer m.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, store.ErrRequestNotFound
	}
	return &r, nil
}

func (m *memoryStore) UpdateRequest(id string, fields map[string]interface{}, expected ...schema.Status) (bool, error) {
	m.Lock()
	defer m.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return false, nil
	}

	if len(expected) > 0 {
		matched := false
		for _, s := range expected {
			if r.Status == s {
				matched = true
			}
		}
		if !matched {
			return false, nil
		}
	}

	for k, v := range fields {
		switch k {
		case "status":
			r.Status = schema.Status(v.(string))
		case "helper_id":
			s := v.(string)
			r.HelperID = &s
		case "session_channel_id":
			s := v.(string)
			r.SessionChannelID = &s
		case "advertisement_ref":
			s := v.(string)
			r.AdvertisementRef = &s
		case "closed_at":
			t := v.(time.Time)
			r.ClosedAt = &t
		}
	}
	r.UpdatedAt = time.Now()
	m.requests[id] = r
	return true, nil
}

func (m *memoryStore) ListRequests(filter store.RequestFilter) ([]schema.Request, error) {
	m.Lock()
	defer m.Unlock()

	result := make([]schema.Request, 0)
	for _, r := range m.requests {
		if filter.Kind != "" && r.Kind != filter.Kind {
			continue
		}
		if filter.RequesterID != "" && r.RequesterID != filter.RequesterID {
			continue
		}
		if !filter.CreatedBefore.IsZero() && !r.CreatedAt.Before(filter.CreatedBefore) {
			continue
		}
		if len(filter.Statuses) > 0 {
			matched := false
			for _, s := range filter.Statuses {
				if r.Status == s {
					matched = true
				}
			}
			if !matched {
				continue
			}
		}
		result = append(result, r)
	}

	sort.Slice(result, func(i, j int) bool {
		if filter.OldestFirst {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func strPtr(s string) *string {
	return &s
}
