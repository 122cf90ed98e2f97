package schema

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBIndexer bootstraps the indexes every collection relies on.
type MongoDBIndexer struct {
	connURI  string
	database string
}

func NewMongoDBIndexer(connURI, database string) *MongoDBIndexer {
	return &MongoDBIndexer{
		connURI:  connURI,
		database: database,
	}
}

// IndexAll creates indexes for all collections.
func (m *MongoDBIndexer) IndexAll() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.connURI))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	db := client.Database(m.database)

	indexes := map[string][]mongo.IndexModel{
		CourseCollection: {
			{
				Keys:    bson.D{{Key: "id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "name", Value: 1}},
			},
		},
		CourseStatsCollection: {
			{
				Keys:    bson.D{{Key: "course_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		GroupCollection: {
			{
				Keys:    bson.D{{Key: "id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "course_id", Value: 1}, {Key: "created_at", Value: -1}},
			},
		},
		GroupMemberCollection: {
			{
				Keys:    bson.D{{Key: "id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: 1}},
			},
		},
		BusynessHistoryCollection: {
			{
				Keys:    bson.D{{Key: "course_id", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			log.WithField("prefix", "mongo").WithField("collection", collection).WithError(err).Error("create indexes")
			return err
		}
	}

	return nil
}
