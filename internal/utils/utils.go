package utils

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// NormalizeEmail trims and lowercases an email so uniqueness is
// case-insensitive at the store level.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsMongoDuplicateKey reports whether err is a MongoDB duplicate-key
// write error (unique index violation, e.g. on users.email).
func IsMongoDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return false
}
