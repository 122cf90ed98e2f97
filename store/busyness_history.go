package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rrabbani2/GolfMaps/schema"
)

type BusynessHistory interface {
	AddBusynessRecord(ctx context.Context, courseID string, score float64, at time.Time) error
	GetBusynessAverage(ctx context.Context, courseID string, start, end time.Time) (float64, error)
}

// AddBusynessRecord keeps the latest computed busyness score per course
// per day, so repeated lookups within a day overwrite each other.
func (m *mongoDB) AddBusynessRecord(ctx context.Context, courseID string, score float64, at time.Time) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.BusynessHistoryCollection)

	date := at.UTC().Format("2006-01-02")
	query := bson.M{"course_id": courseID, "date": date}
	update := bson.M{
		"$set": bson.M{
			"score": score,
		},
		"$setOnInsert": bson.M{
			"course_id": courseID,
			"date":      date,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := c.UpdateOne(ctx, query, update, opts)
	return err
}

// GetBusynessAverage averages the daily scores recorded for a course over
// the inclusive date range. Zero with no error means no records.
func (m *mongoDB) GetBusynessAverage(ctx context.Context, courseID string, start, end time.Time) (float64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.BusynessHistoryCollection)

	startDate := start.UTC().Format("2006-01-02")
	endDate := end.UTC().Format("2006-01-02")
	pipeline := []bson.M{
		{
			"$match": bson.M{
				"course_id": courseID,
				"date":      bson.M{"$gte": startDate, "$lte": endDate},
			},
		},
		{
			"$group": bson.M{
				"_id": "$course_id",
				"avg": bson.M{
					"$avg": "$score",
				},
			},
		},
	}

	cursor, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	if !cursor.Next(ctx) {
		return 0, nil
	}

	var result struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.Decode(&result); err != nil {
		return 0, err
	}

	return result.Avg, nil
}
