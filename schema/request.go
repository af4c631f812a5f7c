package schema

import (
	"time"
)

// Kind is the capability of a request. It decides which actions the
// advertisement offers and which status transitions are legal.
type Kind string

const (
	KindCommunication Kind = "communication"
	KindHelp          Kind = "help"
)

// Status of a request. Transitions only move forward:
// open -> in_progress -> closed, or open -> closed.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"

	// StatusResolved is never written by this service but rows migrated
	// from older deployments may still carry it.
	StatusResolved Status = "resolved"
)

// Valid reports whether k is a known request kind
func (k Kind) Valid() bool {
	return k == KindCommunication || k == KindHelp
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed, StatusResolved:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s
func (s Status) Terminal() bool {
	return s == StatusClosed || s == StatusResolved
}

// Request is one communication or help ask together with its ephemeral
// session channel. Rows are never deleted; closing is a status change.
type Request struct {
	ID               string     `json:"id" gorm:"type:uuid;primary_key"`
	Kind             Kind       `json:"kind" gorm:"type:varchar(20);not null;index"`
	RequesterID      string     `json:"requester_id" gorm:"type:varchar(50);not null;index"`
	Topic            string     `json:"topic" gorm:"type:text;not null"`
	Description      string     `json:"description" gorm:"type:text;not null"`
	OriginChannelID  string     `json:"origin_channel_id" gorm:"type:varchar(50);not null"`
	SessionChannelID *string    `json:"session_channel_id" gorm:"type:varchar(50)"`
	AdvertisementRef *string    `json:"advertisement_ref" gorm:"type:varchar(100)"`
	Status           Status     `json:"status" gorm:"type:varchar(20);not null;index" sql:"default:'open'"`
	HelperID         *string    `json:"helper_id" gorm:"type:varchar(50)"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ClosedAt         *time.Time `json:"closed_at"`
}

// TableName keeps both kinds in one table
func (Request) TableName() string {
	return "huddle_requests"
}

func (r *Request) IsOpen() bool {
	return r.Status == StatusOpen
}

func (r *Request) IsClosed() bool {
	return r.Status.Terminal()
}

// SessionChannel returns the provisioned channel id, or "" when provisioning
// never succeeded.
func (r *Request) SessionChannel() string {
	if r.SessionChannelID == nil {
		return ""
	}
	return *r.SessionChannelID
}

func (r *Request) Helper() string {
	if r.HelperID == nil {
		return ""
	}
	return *r.HelperID
}

func (r *Request) Advertisement() string {
	if r.AdvertisementRef == nil {
		return ""
	}
	return *r.AdvertisementRef
}

// ShortID is the id fragment used in channel names and footers
func (r *Request) ShortID() string {
	if len(r.ID) < 8 {
		return r.ID
	}
	return r.ID[:8]
}
