package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserToken is one issued auth token. A user holds one entry per
// active session; removing an entry revokes only that session.
type UserToken struct {
	Access string `bson:"access"`
	Token  string `bson:"token"`
}

// User is the domain entity for a user account.
// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	Tokens   []UserToken        `bson:"tokens"`
}
