package utils

import (
	"math"
	"strings"
	"time"

	"github.com/spaolacci/murmur3"
)

// IsEnabledForTrackingIDForToday decides whether a tracking ID falls in the
// sampled percentage for the current day. The day salt rotates the sampled
// population daily so the same IDs are not logged forever.
func IsEnabledForTrackingIDForToday(trackingID string, percentage int) bool {
	if percentage <= 0 {
		return false
	}
	if percentage >= 100 {
		return true
	}
	currentDate := time.Now().Format("02-01-2006")
	hashValue := GetMurMurHash(trackingID + strings.ReplaceAll(currentDate, "-", ""))
	return (int(math.Abs(float64(hashValue))))%100 < percentage
}

func GetMurMurHash(key string) int32 {
	h := murmur3.New32()
	h.Write([]byte(key))
	return int32(h.Sum32() - math.MaxUint32 - 1)
}
