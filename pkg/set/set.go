package set

import (
	"sync"

	"github.com/emirpasic/gods/sets/hashset"
)

// implement more methods exposed by hashset.Set if required
type ThreadSafeSet struct {
	set     *hashset.Set
	rwMutex sync.RWMutex
}

func NewThreadSafeSet(items ...interface{}) *ThreadSafeSet {
	hashSet := hashset.New(items...)
	return &ThreadSafeSet{set: hashSet, rwMutex: sync.RWMutex{}}
}

func (t *ThreadSafeSet) Contains(items ...interface{}) bool {
	// multiple goroutine reads allowed
	t.rwMutex.RLock()
	defer t.rwMutex.RUnlock()
	return t.set.Contains(items...)
}

func (t *ThreadSafeSet) Add(items ...interface{}) {
	t.rwMutex.Lock()
	defer t.rwMutex.Unlock()
	t.set.Add(items...)
}

func (t *ThreadSafeSet) Remove(items ...interface{}) {
	t.rwMutex.Lock()
	defer t.rwMutex.Unlock()
	t.set.Remove(items...)
}

func (t *ThreadSafeSet) Clear() {
	t.rwMutex.Lock()
	defer t.rwMutex.Unlock()
	t.set.Clear()
}

func (t *ThreadSafeSet) Size() int {
	t.rwMutex.RLock()
	defer t.rwMutex.RUnlock()
	return t.set.Size()
}

// Values returns a snapshot of the set contents as strings. Non-string
// members are skipped.
func (t *ThreadSafeSet) Values() []string {
	t.rwMutex.RLock()
	defer t.rwMutex.RUnlock()
	values := make([]string, 0, t.set.Size())
	for _, v := range t.set.Values() {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
