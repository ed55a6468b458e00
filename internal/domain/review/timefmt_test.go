package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatStoreTime(t *testing.T) {
	// UTC+7, no zone marker.
	utc := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "2024-01-02 10:04:05", FormatStoreTime(utc))

	// Crossing midnight in the store's zone.
	late := time.Date(2024, 6, 30, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-07-01 01:30:00", FormatStoreTime(late))
}
