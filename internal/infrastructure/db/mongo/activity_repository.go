package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prysm/crm-system/internal/core/domain"
)

const collectionActivity = "task_activity"

type ActivityRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{db: db, col: db.Collection(collectionActivity)}
}

type mongoActivity struct {
	ID         int64     `bson:"_id"`
	TaskID     int64     `bson:"task_id"`
	Status     string    `bson:"status"`
	ActorID    int64     `bson:"actor_id"`
	ActorEmail string    `bson:"actor_email"`
	Note       string    `bson:"note,omitempty"`
	Timestamp  time.Time `bson:"timestamp"`
}

func (r *ActivityRepository) Insert(ctx context.Context, a *domain.TaskActivity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionActivity)
	if err != nil {
		return err
	}

	doc := mongoActivity{
		ID:         id,
		TaskID:     a.TaskID,
		Status:     string(a.Status),
		ActorID:    a.ActorID,
		ActorEmail: a.ActorEmail,
		Note:       a.Note,
		Timestamp:  a.Timestamp,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByTask(ctx context.Context, taskID int64) ([]*domain.TaskActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"task_id": taskID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.TaskActivity
	for cur.Next(ctx) {
		var ma mongoActivity
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		out = append(out, &domain.TaskActivity{
			ID:         ma.ID,
			TaskID:     ma.TaskID,
			Status:     domain.TaskStatus(ma.Status),
			ActorID:    ma.ActorID,
			ActorEmail: ma.ActorEmail,
			Note:       ma.Note,
			Timestamp:  ma.Timestamp,
		})
	}
	return out, cur.Err()
}

// EnsureIndexes creates the task_id index on the activity collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
