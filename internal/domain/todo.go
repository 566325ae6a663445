package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Domain entity: бизнес-объект (истина).
// Не зависит от Gin, Redis и формата ответов.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Note        string             `bson:"note"`
	Completed   bool               `bson:"completed"`
	CompletedAt *int64             `bson:"completedAt"` // unix ms, set only while Completed
	OwnerID     primitive.ObjectID `bson:"_creator"`
}

// TodoPatch is the allow-listed partial update for a todo.
// Completed and CompletedAt are always written (a nil CompletedAt
// stores null); Title and Note are written only when non-nil.
type TodoPatch struct {
	Title       *string
	Note        *string
	Completed   bool
	CompletedAt *int64
}
