// SPDX-License-Identifier: MPL-2.0

package ipc

import "sync"

const defaultSeenCapacity = 4096

// seenIDs remembers the most recent envelope IDs.
type seenIDs struct {
	mu    sync.Mutex
	ring  []string
	next  int
	index map[string]struct{}
}

func newSeenIDs(capacity int) *seenIDs {
	if capacity <= 0 {
		capacity = defaultSeenCapacity
	}
	return &seenIDs{
		ring:  make([]string, capacity),
		index: make(map[string]struct{}, capacity),
	}
}

// add records id and reports whether it was new.
func (s *seenIDs) add(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; ok {
		return false
	}
	if old := s.ring[s.next]; old != "" {
		delete(s.index, old)
	}
	s.ring[s.next] = id
	s.index[id] = struct{}{}
	s.next = (s.next + 1) % len(s.ring)
	return true
}
