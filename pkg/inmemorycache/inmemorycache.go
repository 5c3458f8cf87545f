package inmemorycache

const (
	inMemoryCacheSizeInBytes = "in-memory-cache_size-in-bytes"
	appGCPercentage          = "app_gc_percentage"
)

type InMemoryCache interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	SetEx(key, value []byte, expiryInSec int) error
	Delete(key []byte) bool
}
