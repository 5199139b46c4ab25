package graphs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
)

// ResultStore accumulates per-page results and persists them as a single
// JSON object mapping page-number strings to PageResult. The whole file is
// rewritten after every page so a partial run can be resumed or inspected.
type ResultStore struct {
	path    string
	mu      sync.RWMutex
	results map[int]*PageResult
}

// NewResultStore creates an empty store backed by path.
func NewResultStore(path string) *ResultStore {
	return &ResultStore{
		path:    path,
		results: make(map[int]*PageResult),
	}
}

// LoadResultStore reads an existing results file. A missing file yields an
// empty store; a corrupt one is an error.
func LoadResultStore(path string) (*ResultStore, error) {
	s := NewResultStore(path)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()

	var raw map[string]*PageResult
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode results file: %w", err)
	}

	for key, r := range raw {
		page, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("bad page key %q in results file", key)
		}
		if r == nil {
			return nil, fmt.Errorf("null result for page %q in results file", key)
		}
		if r.Page == 0 {
			r.Page = page
		}
		s.results[page] = r
	}
	return s, nil
}

// Get returns the recorded result for a page.
func (s *ResultStore) Get(page int) (*PageResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[page]
	return r, ok
}

// Set records or replaces the result for a page.
func (s *ResultStore) Set(r *PageResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[r.Page] = r
}

// Pages returns all recorded page numbers in ascending order.
func (s *ResultStore) Pages() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nums := make([]int, 0, len(s.results))
	for p := range s.results {
		nums = append(nums, p)
	}
	sort.Ints(nums)
	return nums
}

// Len reports the number of recorded pages.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// All returns a copy of the page -> result mapping.
func (s *ResultStore) All() map[int]*PageResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int]*PageResult, len(s.results))
	for p, r := range s.results {
		out[p] = r
	}
	return out
}

// Save rewrites the whole results file. Safe only under the pipeline's
// single-threaded page loop.
func (s *ResultStore) Save() error {
	s.mu.RLock()
	raw := make(map[string]*PageResult, len(s.results))
	for page, r := range s.results {
		raw[strconv.Itoa(page)] = r
	}
	s.mu.RUnlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create results directory: %w", err)
		}
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(raw); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
