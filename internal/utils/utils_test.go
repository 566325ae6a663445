package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestIsMongoDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	assert.True(t, IsMongoDuplicateKey(dup))

	other := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 121}}}
	assert.False(t, IsMongoDuplicateKey(other))

	assert.False(t, IsMongoDuplicateKey(errors.New("boom")))
	assert.False(t, IsMongoDuplicateKey(nil))
}
