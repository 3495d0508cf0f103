package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextAverage(t *testing.T) {
	avg, count := NextAverage(0, 0, 5)
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 1, count)

	avg, count = NextAverage(avg, count, 3)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 2, count)

	avg, count = NextAverage(math.NaN(), 0, 2)
	assert.Equal(t, 2.0, avg)
	assert.Equal(t, 1, count)

	avg, count = NextAverage(math.Inf(1), -3, 4)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 1, count)
}

func TestRatingID(t *testing.T) {
	assert.Equal(t, RatingID("a", "c1"), RatingID("a", "c1"))
	assert.NotEqual(t, RatingID("a", "c1"), RatingID("b", "c1"))
	assert.NotEqual(t, RatingID("ab", "c"), RatingID("a", "bc"))
}

func TestCollabRequestID_IsDirectional(t *testing.T) {
	assert.NotEqual(t, CollabRequestID("a", "b"), CollabRequestID("b", "a"))
	assert.Equal(t, DirectChatID("a", "b"), DirectChatID("b", "a"))
}
