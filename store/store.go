package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rrabbani2/GolfMaps/group"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second
)

var (
	ErrCourseExists  = fmt.Errorf("course already exists")
	ErrGroupNotFound = fmt.Errorf("group not found")
)

// GolfMapsStore is the full data access surface of the service.
type GolfMapsStore interface {
	Course
	CourseStats
	BusynessHistory
	group.Store

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type mongoDB struct {
	client   *mongo.Client
	database string
}

// NewMongoStore returns a GolfMapsStore backed by the given mongo client.
func NewMongoStore(client *mongo.Client, database string) GolfMapsStore {
	return &mongoDB{
		client:   client,
		database: database,
	}
}

// opCtx bounds a storage call so it surfaces a timeout error instead of
// hanging on a stalled backend.
func opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultTimeout)
}

func (m *mongoDB) Ping(ctx context.Context) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	return m.client.Ping(ctx, nil)
}

func (m *mongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
