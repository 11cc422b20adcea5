package agent

import (
	"container/list"
	"sync"

	"github.com/thallesrafaell/jurandir-finance/internal/llm"
)

// ConversationStore keeps a bounded per-scope conversation log in
// memory. A scope is one private chat or one group chat. The scope map
// itself is bounded: when a new scope would exceed capacity, the least
// recently used scope is dropped whole.
//
// Turns are whole units. The per-scope cap evicts the oldest complete
// turns, never a fragment of one.
type ConversationStore struct {
	mu       sync.Mutex
	capacity int
	maxTurns int
	scopes   map[string]*scopeEntry
	order    *list.List
}

type scopeEntry struct {
	mu    sync.Mutex
	key   string
	turns []llm.Message
	elem  *list.Element
}

// NewConversationStore creates a store tracking at most capacity scopes
// with at most maxTurns turns each.
func NewConversationStore(capacity, maxTurns int) *ConversationStore {
	return &ConversationStore{
		capacity: capacity,
		maxTurns: maxTurns,
		scopes:   make(map[string]*scopeEntry),
		order:    list.New(),
	}
}

// Append adds one turn to the scope's log, creating the scope if it was
// never seen. Appends for the same scope are serialized.
func (s *ConversationStore) Append(scope string, turn llm.Message) {
	entry := s.touch(scope)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.turns = append(entry.turns, turn)
	if len(entry.turns) > s.maxTurns {
		excess := len(entry.turns) - s.maxTurns
		entry.turns = append([]llm.Message(nil), entry.turns[excess:]...)
	}
}

// History returns a copy of the scope's turns. An unseen scope reads
// empty without being created.
func (s *ConversationStore) History(scope string) []llm.Message {
	s.mu.Lock()
	entry, ok := s.scopes[scope]
	if ok {
		s.order.MoveToFront(entry.elem)
	}
	s.mu.Unlock()

	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	turns := make([]llm.Message, len(entry.turns))
	copy(turns, entry.turns)
	return turns
}

// Len reports the number of turns stored for a scope.
func (s *ConversationStore) Len(scope string) int {
	s.mu.Lock()
	entry, ok := s.scopes[scope]
	s.mu.Unlock()

	if !ok {
		return 0
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return len(entry.turns)
}

// touch returns the scope's entry, creating it and evicting the least
// recently used scope when the map is full.
func (s *ConversationStore) touch(scope string) *scopeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.scopes[scope]; ok {
		s.order.MoveToFront(entry.elem)
		return entry
	}

	if len(s.scopes) >= s.capacity {
		oldest := s.order.Back()
		if oldest != nil {
			evicted := oldest.Value.(*scopeEntry)
			delete(s.scopes, evicted.key)
			s.order.Remove(oldest)
		}
	}

	entry := &scopeEntry{key: scope}
	entry.elem = s.order.PushFront(entry)
	s.scopes[scope] = entry
	return entry
}
