package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrNotFound is returned when an update or delete targets a row that
// does not exist.
var ErrNotFound = errors.New("record not found")

// companyKey is the fixed sentinel key of the singleton company row.
const companyKey = "company"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS products (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        specs_json TEXT NOT NULL DEFAULT '{}',
        image_key TEXT NOT NULL DEFAULT ''
    );

    CREATE TABLE IF NOT EXISTS company_info (
        id TEXT PRIMARY KEY CHECK (id = 'company'),
        company TEXT NOT NULL,
        locations_json TEXT NOT NULL DEFAULT '[]',
        hours TEXT NOT NULL DEFAULT '',
        about TEXT NOT NULL DEFAULT ''
    );

    CREATE TABLE IF NOT EXISTS chat_history (
        chat_id TEXT PRIMARY KEY,
        user_json TEXT NOT NULL,
        messages_json TEXT NOT NULL,
        saved_at TEXT NOT NULL -- RFC 3339
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// Product methods

// CreateProduct has put semantics: an existing row with the same id is
// replaced, matching the admin console's expectations.
func (s *SQLiteStore) CreateProduct(ctx context.Context, p Product) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, specs_json, image_key) VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET name=excluded.name, description=excluded.description,
         specs_json=excluded.specs_json, image_key=excluded.image_key`,
		p.ID, p.Name, p.Description, p.Specs, p.ImageKey)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateProduct(ctx context.Context, id string, p Product) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE products SET name = ?, description = ?, specs_json = ?, image_key = ? WHERE id = ?",
		p.Name, p.Description, p.Specs, p.ImageKey, id)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) GetProduct(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, specs_json, image_key FROM products WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Specs, &p.ImageKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Product not found
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &p, nil
}

// ScanProducts returns the full corpus in insertion order, so that
// first-match-wins resolution is deterministic across calls.
func (s *SQLiteStore) ScanProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, specs_json, image_key FROM products ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Specs, &p.ImageKey); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Company methods

// UpsertCompany replaces the singleton company record wholesale.
func (s *SQLiteStore) UpsertCompany(ctx context.Context, info CompanyInfo) error {
	locations, err := json.Marshal(info.Locations)
	if err != nil {
		return fmt.Errorf("failed to marshal locations: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO company_info (id, company, locations_json, hours, about) VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET company=excluded.company, locations_json=excluded.locations_json,
         hours=excluded.hours, about=excluded.about`,
		companyKey, info.Company, string(locations), info.Hours, info.About)
	if err != nil {
		return fmt.Errorf("failed to upsert company info: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetCompany(ctx context.Context) (*CompanyInfo, error) {
	var info CompanyInfo
	var locationsJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT company, locations_json, hours, about FROM company_info WHERE id = ?", companyKey).
		Scan(&info.Company, &locationsJSON, &info.Hours, &info.About)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Company info not configured yet
		}
		return nil, fmt.Errorf("failed to query company info: %w", err)
	}
	if err := json.Unmarshal([]byte(locationsJSON), &info.Locations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal locations: %w", err)
	}
	return &info, nil
}

// Chat history methods

// SaveChat appends a finished transcript under a generated chat id.
func (s *SQLiteStore) SaveChat(ctx context.Context, user ChatUser, messages []ChatMessage) (*ChatRecord, error) {
	record := ChatRecord{
		ChatID:    uuid.NewString(),
		User:      user,
		Messages:  messages,
		Timestamp: time.Now().UTC(),
	}

	userJSON, err := json.Marshal(record.User)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat user: %w", err)
	}
	messagesJSON, err := json.Marshal(record.Messages)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat messages: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO chat_history (chat_id, user_json, messages_json, saved_at) VALUES (?, ?, ?, ?)",
		record.ChatID, string(userJSON), string(messagesJSON), record.Timestamp.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to insert chat record: %w", err)
	}
	return &record, nil
}

// GetChat reads a saved transcript back. Used by tests and tooling; the
// chat engine itself never reads history.
func (s *SQLiteStore) GetChat(ctx context.Context, chatID string) (*ChatRecord, error) {
	var record ChatRecord
	var userJSON, messagesJSON, savedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT chat_id, user_json, messages_json, saved_at FROM chat_history WHERE chat_id = ?", chatID).
		Scan(&record.ChatID, &userJSON, &messagesJSON, &savedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query chat record: %w", err)
	}
	if err := json.Unmarshal([]byte(userJSON), &record.User); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat user: %w", err)
	}
	if err := json.Unmarshal([]byte(messagesJSON), &record.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat messages: %w", err)
	}
	record.Timestamp, err = time.Parse(time.RFC3339, savedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chat timestamp: %w", err)
	}
	return &record, nil
}

// seedFile is the JSON shape accepted by SeedFromFile.
type seedFile struct {
	Company  *CompanyInfo `json:"company"`
	Products []Product    `json:"products"`
}

// SeedFromFile loads a catalog seed (company profile plus products) from
// a JSON file and returns the number of products stored.
func (s *SQLiteStore) SeedFromFile(ctx context.Context, filePath string) (int, error) {
	contentBytes, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file %s: %w", filePath, err)
	}

	var seed seedFile
	if err := json.Unmarshal(contentBytes, &seed); err != nil {
		return 0, fmt.Errorf("failed to parse seed file %s: %w", filePath, err)
	}

	if seed.Company != nil {
		if err := s.UpsertCompany(ctx, *seed.Company); err != nil {
			return 0, err
		}
	}

	count := 0
	for _, p := range seed.Products {
		if p.ID == "" || p.Name == "" {
			return count, fmt.Errorf("seed product %d is missing id or name", count+1)
		}
		if err := s.CreateProduct(ctx, p); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
