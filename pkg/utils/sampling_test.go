package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEnabledForTrackingIDForToday_Bounds(t *testing.T) {
	assert.False(t, IsEnabledForTrackingIDForToday("any-id", 0))
	assert.False(t, IsEnabledForTrackingIDForToday("any-id", -5))
	assert.True(t, IsEnabledForTrackingIDForToday("any-id", 100))
	assert.True(t, IsEnabledForTrackingIDForToday("any-id", 150))
}

func TestIsEnabledForTrackingIDForToday_Deterministic(t *testing.T) {
	// same ID and percentage must always give the same answer within a day
	first := IsEnabledForTrackingIDForToday("tracking-42", 50)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsEnabledForTrackingIDForToday("tracking-42", 50))
	}
}

func TestIsEnabledForTrackingIDForToday_ApproximatesPercentage(t *testing.T) {
	enabled := 0
	total := 10000
	for i := 0; i < total; i++ {
		if IsEnabledForTrackingIDForToday(fmt.Sprintf("id-%d", i), 20) {
			enabled++
		}
	}
	// 20% +- 5% over 10k IDs
	assert.InDelta(t, 0.20, float64(enabled)/float64(total), 0.05)
}

func TestGetMurMurHash_Stable(t *testing.T) {
	assert.Equal(t, GetMurMurHash("cement"), GetMurMurHash("cement"))
	assert.NotEqual(t, GetMurMurHash("cement"), GetMurMurHash("water"))
}
