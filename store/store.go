package store

import (
	"time"

	"github.com/jinzhu/gorm"

	"github.com/bitmark-inc/huddle-api/schema"
)

// RequestStore is the durable keyed storage of requests.
//
// Every status-changing update must pass the statuses the row is expected to
// be in. The update is applied as a single conditional statement and reports
// whether a row matched, which is what serialises concurrent actions on the
// same request.
type RequestStore interface {
	Ping() error

	CreateRequest(r *schema.Request) error
	GetRequest(id string) (*schema.Request, error)
	UpdateRequest(id string, fields map[string]interface{}, expected ...schema.Status) (bool, error)
	ListRequests(filter RequestFilter) ([]schema.Request, error)
}

// RequestFilter narrows ListRequests. Zero values are ignored.
type RequestFilter struct {
	Kind          schema.Kind
	Statuses      []schema.Status
	RequesterID   string
	CreatedBefore time.Time
	Limit         int

	// OldestFirst lists by ascending creation time instead of newest first
	OldestFirst bool
}

// HuddleStore is the gorm implementation of RequestStore
type HuddleStore struct {
	ormDB *gorm.DB
}

func NewHuddleStore(ormDB *gorm.DB) *HuddleStore {
	return &HuddleStore{
		ormDB: ormDB,
	}
}

// Ping is to check the storage health status
func (s *HuddleStore) Ping() error {
	return s.ormDB.DB().Ping()
}
