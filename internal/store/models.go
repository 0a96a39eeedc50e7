package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Specs holds arbitrary admin-entered product attributes. It is persisted
// as a JSON text column.
type Specs map[string]any

func (s Specs) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal specs: %w", err)
	}
	return string(b), nil
}

func (s *Specs) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported specs column type %T", src)
	}
}

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Specs       Specs  `json:"specs"`
	ImageKey    string `json:"imageKey,omitempty"`
}

// CompanyInfo is a singleton record, replaced wholesale on update.
type CompanyInfo struct {
	Company   string   `json:"company"`
	Locations []string `json:"locations"`
	Hours     string   `json:"hours"`
	About     string   `json:"about"`
}

type ChatUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ChatMessage struct {
	Role    string `json:"role"` // "user" or "bot"
	Content string `json:"content"`
}

// ChatRecord is an append-only saved transcript. It is never read back
// by the chat engine.
type ChatRecord struct {
	ChatID    string        `json:"chatId"`
	User      ChatUser      `json:"user"`
	Messages  []ChatMessage `json:"messages"`
	Timestamp time.Time     `json:"timestamp"`
}
