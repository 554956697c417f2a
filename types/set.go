package types

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"
)

// Set is a concurrency safe unordered collection of unique comparable items
type Set[T comparable] struct {
	hash map[T]nothing
	mu   sync.RWMutex
}

type nothing struct{}

func NewSet[T comparable](initial ...T) *Set[T] {
	s := &Set[T]{
		hash: make(map[T]nothing, len(initial)),
	}

	s.Insert(initial...)
	return s
}

func (s *Set[T]) Insert(items ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		s.hash[item] = nothing{}
	}
}

func (s *Set[T]) Exists(item T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.hash[item]
	return exists
}

func (s *Set[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.hash)
}

// Array returns the items of the set sorted by their formatted value so
// output stays deterministic
func (s *Set[T]) Array() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]T, 0, len(s.hash))
	for item := range s.hash {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return fmt.Sprint(items[i]) < fmt.Sprint(items[j])
	})

	return items
}

func (s *Set[T]) String() string {
	return fmt.Sprint(s.Array())
}

func (s *Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Array())
}

func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	if s.hash == nil {
		s.hash = make(map[T]nothing, len(items))
	}
	s.Insert(items...)
	return nil
}
