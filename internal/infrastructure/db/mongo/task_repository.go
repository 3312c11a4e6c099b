package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

const collectionTasks = "tasks"

type TaskRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{db: db, col: db.Collection(collectionTasks)}
}

type mongoTask struct {
	ID           int64     `bson:"_id"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description,omitempty"`
	Status       string    `bson:"status"`
	AssignedToID int64     `bson:"assigned_to_id"`
	CustomerID   int64     `bson:"customer_id"`
	CreatedAt    time.Time `bson:"created_at"`
}

func toDomainTask(mt mongoTask) *domain.Task {
	return &domain.Task{
		ID:           mt.ID,
		Title:        mt.Title,
		Description:  mt.Description,
		Status:       domain.TaskStatus(mt.Status),
		AssignedToID: mt.AssignedToID,
		CustomerID:   mt.CustomerID,
		CreatedAt:    mt.CreatedAt,
	}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionTasks)
	if err != nil {
		return nil, err
	}

	doc := mongoTask{
		ID:           id,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		AssignedToID: t.AssignedToID,
		CustomerID:   t.CustomerID,
		CreatedAt:    t.CreatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return toDomainTask(doc), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTask
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return toDomainTask(mt), nil
}

func (r *TaskRepository) List(ctx context.Context, filter ports.ListTasksFilter) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.AssignedToID != 0 {
		query["assigned_to_id"] = filter.AssignedToID
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Task
	for cur.Next(ctx) {
		var mt mongoTask
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		out = append(out, toDomainTask(mt))
	}
	return out, cur.Err()
}

// UpdateStatus applies a conditional status write: the document must match
// id and, when assignedToID is non-zero, the assignee. A miss returns
// domain.ErrTaskNotFound without writing anything.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, assignedToID int64) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if assignedToID != 0 {
		filter["assigned_to_id"] = assignedToID
	}

	var mt mongoTask
	err := r.col.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task status: %w", err)
	}
	return toDomainTask(mt), nil
}

// EnsureIndexes creates the assignee and recency indexes on tasks.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assigned_to_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
