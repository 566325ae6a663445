package repo

import (
	"context"

	dom "github.com/thienhiep1711/node-todo-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TodoRepo provides todo persistence. Every query carries the owner
// id in the filter, so a foreign todo is indistinguishable from an
// absent one.
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (dom.Todo, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]dom.Todo, error)
	Update(ctx context.Context, ownerID, id primitive.ObjectID, patch dom.TodoPatch) (dom.Todo, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) (dom.Todo, error)
}

type MongoTodoRepo struct {
	coll *mongo.Collection
}

func NewMongoTodoRepo(db *mongo.Database) *MongoTodoRepo {
	return &MongoTodoRepo{coll: db.Collection("todos")}
}

func (r *MongoTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	res, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		return dom.Todo{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = id
	}
	return t, nil
}

func (r *MongoTodoRepo) GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (dom.Todo, error) {
	var t dom.Todo
	err := r.coll.FindOne(ctx, ownerFilter(ownerID, id)).Decode(&t)
	return t, err
}

func (r *MongoTodoRepo) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]dom.Todo, error) {
	cur, err := r.coll.Find(ctx, bson.M{"_creator": ownerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var list []dom.Todo
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Update applies the patch and returns the post-update document.
// A nil CompletedAt is stored as null, mirroring the wire shape.
func (r *MongoTodoRepo) Update(ctx context.Context, ownerID, id primitive.ObjectID, patch dom.TodoPatch) (dom.Todo, error) {
	set := bson.M{
		"completed":   patch.Completed,
		"completedAt": patch.CompletedAt,
	}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Note != nil {
		set["note"] = *patch.Note
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t dom.Todo
	err := r.coll.FindOneAndUpdate(ctx, ownerFilter(ownerID, id), bson.M{"$set": set}, opts).Decode(&t)
	return t, err
}

// Delete removes the todo and returns the removed document.
func (r *MongoTodoRepo) Delete(ctx context.Context, ownerID, id primitive.ObjectID) (dom.Todo, error) {
	var t dom.Todo
	err := r.coll.FindOneAndDelete(ctx, ownerFilter(ownerID, id)).Decode(&t)
	return t, err
}

func ownerFilter(ownerID, id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "_creator": ownerID}
}
