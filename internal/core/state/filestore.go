package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore persists one pretty-printed JSON file per save slot in a
// directory, mirroring the on-disk format users already have.
type FileStore struct {
	dir string
}

// NewFileStore creates the save directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// List enumerates the slot files. Default is always present, even before
// its file has ever been written.
func (s *FileStore) List() ([]SlotInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read save directory: %w", err)
	}

	infos := []SlotInfo{{Name: DefaultSlot}}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		fi, err := e.Info()
		if err != nil {
			continue
		}
		if name == DefaultSlot {
			infos[0].UpdatedAt = fi.ModTime()
			infos[0].Size = fi.Size()
			continue
		}
		infos = append(infos, SlotInfo{Name: name, UpdatedAt: fi.ModTime(), Size: fi.Size()})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (s *FileStore) Read(name string) (SessionState, error) {
	if err := checkSlotName(name); err != nil {
		return SessionState{}, err
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return SessionState{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return SessionState{}, fmt.Errorf("failed to read save slot %s: %w", name, err)
	}

	var st SessionState
	if err := json.Unmarshal(data, &st); err != nil {
		return SessionState{}, fmt.Errorf("failed to parse save slot %s: %w", name, err)
	}
	return st, nil
}

func (s *FileStore) Write(name string, st SessionState) error {
	if err := checkSlotName(name); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize save slot %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write save slot %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) Rename(oldName, newName string) error {
	if oldName == DefaultSlot {
		return ErrDefaultSlot
	}
	if err := checkSlotName(newName); err != nil {
		return err
	}
	if s.exists(newName) {
		return fmt.Errorf("%w: %s", ErrSlotExists, newName)
	}
	if !s.exists(oldName) {
		return fmt.Errorf("%w: %s", ErrNotFound, oldName)
	}
	if err := os.Rename(s.path(oldName), s.path(newName)); err != nil {
		return fmt.Errorf("failed to rename save slot: %w", err)
	}
	return nil
}

func (s *FileStore) Duplicate(name string) (string, error) {
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

func (s *FileStore) Delete(name string) error {
	if name == DefaultSlot {
		return ErrDefaultSlot
	}
	if err := checkSlotName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("failed to delete save slot %s: %w", name, err)
	}
	return nil
}

// Close is a no-op for the file-backed store
func (s *FileStore) Close() error {
	return nil
}
