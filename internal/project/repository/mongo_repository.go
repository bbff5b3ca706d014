package repository

import (
	"context"
	"errors"
	"time"

	"projecthub-backend/internal/project/domain"
	"projecthub-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoProjectRepository implements ProjectRepository on a MongoDB collection.
// It does not implement CascadeDeleter: standalone servers have no
// multi-document transactions.
type mongoProjectRepository struct {
	coll *mongo.Collection
}

// NewMongoProjectRepository creates a ProjectRepository backed by db's projects collection.
// The unique name index is created by database.EnsureMongoIndexes.
func NewMongoProjectRepository(db *mongo.Database) ProjectRepository {
	return &mongoProjectRepository{coll: db.Collection(ProjectsCollection)}
}

func (r *mongoProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}
	project.UpdatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, project); err != nil {
		return translateMongoError("create project", err)
	}
	return nil
}

func (r *mongoProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var project domain.Project
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.StorageUnavailable("find project", err)
	}
	return &project, nil
}

func (r *mongoProjectRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, projectFilterDocument(filter), opts)
	if err != nil {
		return nil, apperror.StorageUnavailable("list projects", err)
	}

	projects := []*domain.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, apperror.StorageUnavailable("decode projects", err)
	}
	return projects, nil
}

func (r *mongoProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	project.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": project.ID}, project)
	if err != nil {
		return translateMongoError("update project", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("project", project.ID)
	}
	return nil
}

func (r *mongoProjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apperror.StorageUnavailable("delete project", err)
	}
	return nil
}

func projectFilterDocument(filter domain.Filter) bson.M {
	doc := bson.M{}
	if filter.Status != nil {
		doc["status"] = string(*filter.Status)
	}
	if filter.Priority != nil {
		doc["priority"] = string(*filter.Priority)
	}
	return doc
}

func translateMongoError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return apperror.DuplicateKey("name", "a project with this name already exists")
	}
	return apperror.StorageUnavailable(op, err)
}
