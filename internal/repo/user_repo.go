package repo

import (
	"context"

	dom "github.com/thienhiep1711/node-todo-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, u dom.User) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	// GetByIDAndToken matches both the id and the exact token string
	// in the user's token set. A cryptographically valid token that
	// was revoked finds nothing here.
	GetByIDAndToken(ctx context.Context, id primitive.ObjectID, token string) (dom.User, error)
	PushToken(ctx context.Context, id primitive.ObjectID, t dom.UserToken) error
	PullToken(ctx context.Context, id primitive.ObjectID, token string) error
}

// MongoUserRepo implements UserRepo over the users collection.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo returns a new MongoUserRepo.
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection("users")}
}

// Create inserts a new user and returns it with the assigned id.
// The unique index on email surfaces duplicates as a write error.
func (r *MongoUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		return dom.User{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return u, nil
}

// GetByEmail returns the user by (already normalized) email.
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	var u dom.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, err
}

func (r *MongoUserRepo) GetByIDAndToken(ctx context.Context, id primitive.ObjectID, token string) (dom.User, error) {
	filter := bson.M{
		"_id":           id,
		"tokens.token":  token,
		"tokens.access": "auth",
	}
	var u dom.User
	err := r.coll.FindOne(ctx, filter).Decode(&u)
	return u, err
}

// PushToken appends a token record to the user's token set.
func (r *MongoUserRepo) PushToken(ctx context.Context, id primitive.ObjectID, t dom.UserToken) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$push": bson.M{"tokens": t}})
	return err
}

// PullToken removes the exact token string from the user's token
// set. Pulling an absent token is a no-op, not an error.
func (r *MongoUserRepo) PullToken(ctx context.Context, id primitive.ObjectID, token string) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$pull": bson.M{"tokens": bson.M{"token": token}}})
	return err
}
