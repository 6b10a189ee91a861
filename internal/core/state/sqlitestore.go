package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps all save slots in a single SQLite database. Same
// contract as FileStore; useful when the plans should live in one file.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens (and initializes) the slot database
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{conn: conn}
	if err := s.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			name TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (s *SQLiteStore) exists(name string) bool {
	var one int
	err := s.conn.QueryRow(`SELECT 1 FROM slots WHERE name = ?`, name).Scan(&one)
	return err == nil
}

func (s *SQLiteStore) List() ([]SlotInfo, error) {
	rows, err := s.conn.Query(`
		SELECT name, updated_at, LENGTH(state)
		FROM slots ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list save slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []SlotInfo
	hasDefault := false
	for rows.Next() {
		var info SlotInfo
		if err := rows.Scan(&info.Name, &info.UpdatedAt, &info.Size); err != nil {
			return nil, fmt.Errorf("failed to scan slot row: %w", err)
		}
		if info.Name == DefaultSlot {
			hasDefault = true
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !hasDefault {
		infos = append([]SlotInfo{{Name: DefaultSlot}}, infos...)
	}
	return infos, nil
}

func (s *SQLiteStore) Read(name string) (SessionState, error) {
	if err := checkSlotName(name); err != nil {
		return SessionState{}, err
	}
	var data string
	err := s.conn.QueryRow(`SELECT state FROM slots WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return SessionState{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return SessionState{}, fmt.Errorf("failed to read save slot %s: %w", name, err)
	}

	var st SessionState
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return SessionState{}, fmt.Errorf("failed to parse save slot %s: %w", name, err)
	}
	return st, nil
}

func (s *SQLiteStore) Write(name string, st SessionState) error {
	if err := checkSlotName(name); err != nil {
		return err
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to serialize save slot %s: %w", name, err)
	}

	_, err = s.conn.Exec(`
		INSERT INTO slots (name, state, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			state = excluded.state,
			updated_at = CURRENT_TIMESTAMP
	`, name, string(data))
	if err != nil {
		return fmt.Errorf("failed to write save slot %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) Rename(oldName, newName string) error {
	if oldName == DefaultSlot {
		return ErrDefaultSlot
	}
	if err := checkSlotName(newName); err != nil {
		return err
	}
	if s.exists(newName) {
		return fmt.Errorf("%w: %s", ErrSlotExists, newName)
	}

	res, err := s.conn.Exec(`UPDATE slots SET name = ? WHERE name = ?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("failed to rename save slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, oldName)
	}
	return nil
}

func (s *SQLiteStore) Duplicate(name string) (string, error) {
	st, err := s.Read(name)
	if err != nil {
		return "", err
	}
	newName := uniqueCopyName(name, s.exists)
	if err := s.Write(newName, st); err != nil {
		return "", err
	}
	return newName, nil
}

func (s *SQLiteStore) Delete(name string) error {
	if name == DefaultSlot {
		return ErrDefaultSlot
	}
	if err := checkSlotName(name); err != nil {
		return err
	}
	res, err := s.conn.Exec(`DELETE FROM slots WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete save slot %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
