package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestampDate(t *testing.T) {
	ts := NewTimestamp(time.Date(2018, 1, 3, 23, 15, 42, 0, time.UTC))

	assert.True(t, ts.Valid)
	assert.Equal(t, time.Date(2018, 1, 3, 0, 0, 0, 0, time.UTC), ts.Date())
}

func TestTimestampZeroValueIsMissing(t *testing.T) {
	var ts Timestamp
	assert.False(t, ts.Valid)
}

func TestHasReview(t *testing.T) {
	assert.True(t, OrderRecord{ReviewScore: 1}.HasReview())
	assert.True(t, OrderRecord{ReviewScore: 5}.HasReview())
	assert.False(t, OrderRecord{ReviewScore: 0}.HasReview(), "zero marks a missing review")
}
