package set

import (
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"
)

func reading(s *ThreadSafeSet, wg *sync.WaitGroup) {
	defer wg.Done()

	for toCheck := 0; toCheck < 10; {
		if s.Contains(fmt.Sprintf("feature-%d", toCheck)) {
			toCheck++
		}
		time.Sleep(time.Millisecond * 5)
	}
}

func writing(s *ThreadSafeSet, wg *sync.WaitGroup) {
	defer wg.Done()

	for toAdd := 0; toAdd < 3; toAdd++ {
		s.Add(fmt.Sprintf("feature-%d", toAdd))
		time.Sleep(time.Millisecond * 2)
	}

	s.Clear()

	for toAdd := 0; toAdd < 7; toAdd++ {
		s.Add(fmt.Sprintf("feature-%d", toAdd))
		time.Sleep(time.Millisecond * 3)
	}

	s.Remove("feature-0", "feature-3")

	for toAdd := 0; toAdd < 10; toAdd++ {
		s.Add(fmt.Sprintf("feature-%d", toAdd))
		time.Sleep(time.Millisecond * 4)
	}
}

// should not face any deadlocks
func TestSet(t *testing.T) {
	s := NewThreadSafeSet()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go reading(s, &wg)
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go writing(s, &wg)
	}
	wg.Wait()
}

func TestSetValues(t *testing.T) {
	s := NewThreadSafeSet("water", "cement")
	s.Add("age")

	values := s.Values()
	sort.Strings(values)
	if len(values) != 3 || values[0] != "age" || values[1] != "cement" || values[2] != "water" {
		t.Errorf("unexpected values %v", values)
	}
	if s.Size() != 3 {
		t.Errorf("expected size 3, got %d", s.Size())
	}
}
