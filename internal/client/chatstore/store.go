// Package chatstore persists chat transcripts locally. History never
// leaves the machine; the server keeps no record of guest or user
// conversations.
package chatstore

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"
)

var ErrNotFound = errors.New("chat not found")

type Message struct {
	Sender string `json:"sender"` // "user" or "bot"
	Text   string `json:"text"`
}

type Chat struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Messages []Message `json:"messages"`
}

// Store keeps all chats in one JSON file, rewritten on each mutation.
type Store struct {
	mu    sync.Mutex
	path  string
	chats []Chat
}

func New(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.chats); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save inserts or replaces the chat with the given id and stamps it
// with the current time.
func (s *Store) Save(chatID string, messages []Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := Chat{ID: chatID, Date: time.Now(), Messages: messages}
	for i := range s.chats {
		if s.chats[i].ID == chatID {
			s.chats[i] = chat
			return s.flush()
		}
	}
	s.chats = append(s.chats, chat)
	return s.flush()
}

func (s *Store) List() []Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Chat, len(s.chats))
	copy(out, s.chats)
	return out
}

func (s *Store) Get(chatID string) (*Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.chats {
		if s.chats[i].ID == chatID {
			chat := s.chats[i]
			return &chat, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) Delete(chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.chats {
		if s.chats[i].ID == chatID {
			s.chats = append(s.chats[:i], s.chats[i+1:]...)
			return s.flush()
		}
	}
	return ErrNotFound
}

// Clear wipes all saved transcripts.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = nil
	return s.flush()
}

func (s *Store) flush() error {
	data, err := json.Marshal(s.chats)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
