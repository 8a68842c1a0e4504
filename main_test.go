package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
)

func TestOpenDatabase(t *testing.T) {
	db, err := openDatabase(sqlite.Open("file::memory:"), 3, time.Millisecond)
	assert.NoError(t, err)
	assert.NotNil(t, db)
}

func TestOpenDatabaseRetriesBeforeGivingUp(t *testing.T) {
	// A path inside a directory that does not exist fails every attempt.
	start := time.Now()
	_, err := openDatabase(sqlite.Open("/no-such-dir/cookbook.db"), 3, 10*time.Millisecond)

	assert.Error(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond,
		"every attempt is followed by the retry delay")
}
