package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"projecthub-backend/internal/task/domain"
	"projecthub-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTaskRepository implements TaskRepository on a MongoDB collection
type mongoTaskRepository struct {
	coll *mongo.Collection
}

// NewMongoTaskRepository creates a TaskRepository backed by db's tasks collection
func NewMongoTaskRepository(db *mongo.Database) TaskRepository {
	return &mongoTaskRepository{coll: db.Collection(TasksCollection)}
}

func (r *mongoTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	task.UpdatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return apperror.StorageUnavailable("create task", err)
	}
	return nil
}

func (r *mongoTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.StorageUnavailable("find task", err)
	}
	return &task, nil
}

func (r *mongoTaskRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, taskFilterDocument(filter), opts)
	if err != nil {
		return nil, apperror.StorageUnavailable("list tasks", err)
	}

	tasks := []*domain.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, apperror.StorageUnavailable("decode tasks", err)
	}
	return tasks, nil
}

func (r *mongoTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	task.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return apperror.StorageUnavailable("update task", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("task", task.ID)
	}
	return nil
}

func (r *mongoTaskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apperror.StorageUnavailable("delete task", err)
	}
	return nil
}

func (r *mongoTaskRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"project": projectID})
	if err != nil {
		return 0, apperror.StorageUnavailable("delete project tasks", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoTaskRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, apperror.StorageUnavailable("delete all tasks", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoTaskRepository) CountByProject(ctx context.Context, projectID string) (int64, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{"project": projectID})
	if err != nil {
		return 0, 0, apperror.StorageUnavailable("count project tasks", err)
	}
	completed, err := r.coll.CountDocuments(ctx, bson.M{"project": projectID, "completed": true})
	if err != nil {
		return 0, 0, apperror.StorageUnavailable("count completed project tasks", err)
	}
	return total, completed, nil
}

// taskFilterDocument translates a Filter into a mongo query document.
func taskFilterDocument(filter domain.Filter) bson.M {
	doc := bson.M{}
	if filter.Completed != nil {
		doc["completed"] = *filter.Completed
	}
	if filter.Priority != nil {
		doc["priority"] = string(*filter.Priority)
	}
	if filter.Category != nil {
		doc["category"] = string(*filter.Category)
	}
	if filter.Assignee != nil {
		doc["assignee"] = bson.M{"$regex": regexp.QuoteMeta(*filter.Assignee), "$options": "i"}
	}
	if filter.ProjectID != nil {
		doc["project"] = *filter.ProjectID
	}
	return doc
}
