package schema

import (
	"time"
)

const (
	GroupCollection       = "course_groups"
	GroupMemberCollection = "group_members"
)

type GroupStatus string

const (
	GroupStatusOpen   GroupStatus = "open"
	GroupStatusFull   GroupStatus = "full"
	GroupStatusClosed GroupStatus = "closed"
)

type Group struct {
	ID        string      `bson:"id" json:"id"`
	CourseID  string      `bson:"course_id" json:"course_id"`
	Status    GroupStatus `bson:"status" json:"status"`
	TeeTime   *string     `bson:"tee_time,omitempty" json:"tee_time,omitempty"`
	Note      *string     `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
}

type GroupMember struct {
	ID        string    `bson:"id" json:"id"`
	GroupID   string    `bson:"group_id" json:"group_id"`
	Name      string    `bson:"name" json:"name"`
	Contact   *string   `bson:"contact,omitempty" json:"contact,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// GroupDetail is a client response structure combining a group with its
// live membership. MemberCount is always the length of Members; the
// stored status can lag behind it under concurrent joins.
type GroupDetail struct {
	Group       `bson:",inline"`
	MemberCount int           `json:"member_count"`
	Members     []GroupMember `json:"members"`
}
