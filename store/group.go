package store

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rrabbani2/GolfMaps/schema"
)

// The methods below implement group.Store. The coordinator serializes
// check-then-act sequences per group id; this layer only has to keep each
// individual call bounded and report not-found as (nil, nil).

func (m *mongoDB) CourseExists(ctx context.Context, courseID string) (bool, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.CourseCollection)

	count, err := c.CountDocuments(ctx, bson.M{"id": courseID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (m *mongoDB) CreateGroup(ctx context.Context, group schema.Group) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.GroupCollection)

	if _, err := c.InsertOne(ctx, group); err != nil {
		log.WithFields(log.Fields{
			"prefix":   mongoLogPrefix,
			"group_id": group.ID,
		}).WithError(err).Error("insert group")
		return err
	}

	return nil
}

// DeleteGroup removes a group row and any members seeded for it. It backs
// the compensating delete of a failed create, so a missing row is fine.
func (m *mongoDB) DeleteGroup(ctx context.Context, groupID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	db := m.client.Database(m.database)

	if _, err := db.Collection(schema.GroupMemberCollection).DeleteMany(ctx, bson.M{"group_id": groupID}); err != nil {
		return err
	}

	_, err := db.Collection(schema.GroupCollection).DeleteOne(ctx, bson.M{"id": groupID})
	return err
}

func (m *mongoDB) GetGroup(ctx context.Context, groupID string) (*schema.Group, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.GroupCollection)

	var group schema.Group
	if err := c.FindOne(ctx, bson.M{"id": groupID}).Decode(&group); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &group, nil
}

func (m *mongoDB) UpdateGroupStatus(ctx context.Context, groupID string, status schema.GroupStatus) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.GroupCollection)

	result, err := c.UpdateOne(ctx, bson.M{"id": groupID}, bson.M{
		"$set": bson.M{"status": status},
	})
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":   mongoLogPrefix,
			"group_id": groupID,
			"status":   status,
		}).WithError(err).Error("update group status")
		return err
	}

	if result.MatchedCount == 0 {
		return ErrGroupNotFound
	}

	return nil
}

func (m *mongoDB) ListGroupsByCourse(ctx context.Context, courseID string) ([]schema.Group, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.GroupCollection)

	filter := bson.M{
		"course_id": courseID,
		"status": bson.M{
			"$in": []schema.GroupStatus{schema.GroupStatusOpen, schema.GroupStatusFull},
		},
	}

	cursor, err := c.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}

	groups := []schema.Group{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}

	return groups, nil
}

func (m *mongoDB) AddMember(ctx context.Context, member schema.GroupMember) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.GroupMemberCollection)

	if _, err := c.InsertOne(ctx, member); err != nil {
		log.WithFields(log.Fields{
			"prefix":   mongoLogPrefix,
			"group_id": member.GroupID,
		}).WithError(err).Error("insert group member")
		return err
	}

	return nil
}

func (m *mongoDB) ListMembers(ctx context.Context, groupID string) ([]schema.GroupMember, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.GroupMemberCollection)

	sort := bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}}
	cursor, err := c.Find(ctx, bson.M{"group_id": groupID}, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}

	members := []schema.GroupMember{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}

	return members, nil
}
