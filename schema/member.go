package schema

import "time"

const (
	MemberCollection = "member"
)

// Member is a workspace member as seen by the user directory. The mongo
// member cache stores the same document.
type Member struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	RealName  string    `json:"real_name" bson:"real_name"`
	IsOwner   bool      `json:"is_owner" bson:"is_owner"`
	IsAdmin   bool      `json:"is_admin" bson:"is_admin"`
	IsBot     bool      `json:"is_bot" bson:"is_bot"`
	Deleted   bool      `json:"deleted" bson:"deleted"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
