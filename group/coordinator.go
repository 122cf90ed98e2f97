// Package group coordinates the lifecycle of ad-hoc playing groups and
// enforces the hard 4-member capacity limit under concurrent joins.
package group

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/rrabbani2/GolfMaps/schema"
)

const groupLogPrefix = "group"

// MaxMembers is the hard capacity limit of a playing group.
const MaxMembers = 4

var (
	ErrCourseRequired = fmt.Errorf("courseId is required")
	ErrNameRequired   = fmt.Errorf("name is required")
	ErrCourseNotFound = fmt.Errorf("course not found")
	ErrGroupNotFound  = fmt.Errorf("group not found")
	ErrGroupNotOpen   = fmt.Errorf("group is not open for new members")
	ErrGroupFull      = fmt.Errorf("group is full (%d members)", MaxMembers)
)

// Store is the persistence the coordinator drives. GetGroup returns
// (nil, nil) when no such group exists; errors are reserved for storage
// failures and are surfaced to callers unretried. ListGroupsByCourse
// returns the course's groups that are not closed, newest first;
// ListMembers returns members in join order.
type Store interface {
	CourseExists(ctx context.Context, courseID string) (bool, error)

	CreateGroup(ctx context.Context, group schema.Group) error
	DeleteGroup(ctx context.Context, groupID string) error
	GetGroup(ctx context.Context, groupID string) (*schema.Group, error)
	UpdateGroupStatus(ctx context.Context, groupID string, status schema.GroupStatus) error
	ListGroupsByCourse(ctx context.Context, courseID string) ([]schema.Group, error)

	AddMember(ctx context.Context, member schema.GroupMember) error
	ListMembers(ctx context.Context, groupID string) ([]schema.GroupMember, error)
}

// Coordinator serializes all mutations per group id so that the capacity
// check and the member insert form one atomic unit. Operations on
// different groups proceed in parallel.
type Coordinator struct {
	store Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex owning all mutations for a group id. The
// map keeps one mutex per group id seen and is never pruned; entries
// are a few words each and group-id cardinality stays low, so the map
// is left unbounded.
func (c *Coordinator) lockFor(groupID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.locks[groupID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[groupID] = lock
	}
	return lock
}

// CreateGroup opens a new group for a course and seeds the creator as its
// first member. Group and creator are one unit: if seeding fails the
// group row is deleted again so no empty group is left behind.
func (c *Coordinator) CreateGroup(ctx context.Context, courseID, name, contact, teeTime, note string) (*schema.GroupDetail, error) {
	if courseID == "" {
		return nil, ErrCourseRequired
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	exists, err := c.store.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	now := time.Now().UTC()
	group := schema.Group{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		Status:    schema.GroupStatusOpen,
		TeeTime:   optionalString(teeTime),
		Note:      optionalString(note),
		CreatedAt: now,
	}

	if err := c.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	creator := schema.GroupMember{
		ID:        uuid.NewString(),
		GroupID:   group.ID,
		Name:      name,
		Contact:   optionalString(contact),
		CreatedAt: now,
	}

	if err := c.store.AddMember(ctx, creator); err != nil {
		// roll the group creation back so no orphan group persists
		if deleteErr := c.store.DeleteGroup(ctx, group.ID); deleteErr != nil {
			log.WithFields(log.Fields{
				"prefix":   groupLogPrefix,
				"group_id": group.ID,
			}).WithError(deleteErr).Error("fail to roll back group after member insert failure")
		}
		return nil, err
	}

	return &schema.GroupDetail{
		Group:       group,
		MemberCount: 1,
		Members:     []schema.GroupMember{creator},
	}, nil
}

// JoinGroup adds a member to an open group. The capacity check and the
// insert run under the group's lock, so concurrent joins can never push
// membership past MaxMembers. The member that fills the last slot flips
// the group to full within the same critical section.
func (c *Coordinator) JoinGroup(ctx context.Context, groupID, name, contact string) (*schema.GroupDetail, error) {
	if groupID == "" {
		return nil, ErrGroupNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	lock := c.lockFor(groupID)
	lock.Lock()
	defer lock.Unlock()

	group, err := c.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	if group.Status != schema.GroupStatusOpen {
		return nil, ErrGroupNotOpen
	}

	members, err := c.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if len(members) >= MaxMembers {
		// the stored status lagged behind the live count; repair it
		if err := c.store.UpdateGroupStatus(ctx, groupID, schema.GroupStatusFull); err != nil {
			log.WithFields(log.Fields{
				"prefix":   groupLogPrefix,
				"group_id": groupID,
			}).WithError(err).Error("fail to mark stale group full")
		}
		return nil, ErrGroupFull
	}

	member := schema.GroupMember{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		Name:      name,
		Contact:   optionalString(contact),
		CreatedAt: time.Now().UTC(),
	}

	if err := c.store.AddMember(ctx, member); err != nil {
		return nil, err
	}

	members = append(members, member)
	if len(members) >= MaxMembers {
		if err := c.store.UpdateGroupStatus(ctx, groupID, schema.GroupStatusFull); err != nil {
			return nil, err
		}
		group.Status = schema.GroupStatusFull
	}

	return &schema.GroupDetail{
		Group:       *group,
		MemberCount: len(members),
		Members:     members,
	}, nil
}

// ListOpenGroups returns the course's groups that still have room,
// annotated with their ordered members. The live member count decides
// fullness; a stale "full" status on a group with room does not hide it.
func (c *Coordinator) ListOpenGroups(ctx context.Context, courseID string) ([]schema.GroupDetail, error) {
	if courseID == "" {
		return nil, ErrCourseRequired
	}

	groups, err := c.store.ListGroupsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	details := make([]schema.GroupDetail, 0, len(groups))
	for _, group := range groups {
		members, err := c.store.ListMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		if len(members) >= MaxMembers {
			continue
		}
		details = append(details, schema.GroupDetail{
			Group:       group,
			MemberCount: len(members),
			Members:     members,
		})
	}

	return details, nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
