package store

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rrabbani2/GolfMaps/schema"
)

type Course interface {
	CreateCourse(ctx context.Context, course schema.Course) error
	GetCourse(ctx context.Context, id string) (*schema.Course, error)
	ListCourses(ctx context.Context) ([]schema.Course, error)
}

type CourseStats interface {
	GetCourseStats(ctx context.Context, courseID string) (*schema.CourseStats, error)
	UpsertCourseStats(ctx context.Context, stats schema.CourseStats) error
}

func (m *mongoDB) CreateCourse(ctx context.Context, course schema.Course) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.CourseCollection)

	if _, err := c.InsertOne(ctx, course); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCourseExists
		}
		log.WithFields(log.Fields{
			"prefix":    mongoLogPrefix,
			"course_id": course.ID,
		}).WithError(err).Error("insert course")
		return err
	}

	return nil
}

// GetCourse returns (nil, nil) when no course has the given id.
func (m *mongoDB) GetCourse(ctx context.Context, id string) (*schema.Course, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.CourseCollection)

	var course schema.Course
	if err := c.FindOne(ctx, bson.M{"id": id}).Decode(&course); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &course, nil
}

func (m *mongoDB) ListCourses(ctx context.Context) ([]schema.Course, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.CourseCollection)

	cursor, err := c.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}

	courses := []schema.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}

	return courses, nil
}

// GetCourseStats returns (nil, nil) when the course has no stats record.
func (m *mongoDB) GetCourseStats(ctx context.Context, courseID string) (*schema.CourseStats, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.CourseStatsCollection)

	var stats schema.CourseStats
	if err := c.FindOne(ctx, bson.M{"course_id": courseID}).Decode(&stats); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &stats, nil
}

func (m *mongoDB) UpsertCourseStats(ctx context.Context, stats schema.CourseStats) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.CourseStatsCollection)

	opts := options.Replace().SetUpsert(true)
	_, err := c.ReplaceOne(ctx, bson.M{"course_id": stats.CourseID}, stats, opts)
	return err
}
