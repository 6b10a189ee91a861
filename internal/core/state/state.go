package state

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultSlot is the distinguished save slot that always exists and can
// never be renamed or deleted.
const DefaultSlot = "Default"

var (
	// ErrNotFound is returned when a save slot does not exist
	ErrNotFound = errors.New("save slot not found")
	// ErrSlotExists is returned when a target slot name is already taken
	ErrSlotExists = errors.New("save slot already exists")
	// ErrDefaultSlot is returned for rename/delete of the Default slot
	ErrDefaultSlot = errors.New("the Default save slot cannot be renamed or deleted")
	// ErrSlotName is returned for slot names that cannot be persisted
	ErrSlotName = errors.New("invalid save slot name")
)

// checkSlotName rejects names that cannot safely name a slot: empty names
// and names containing path separators or traversal sequences. Slot names
// become file names in the file-backed store.
func checkSlotName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrSlotName)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrSlotName, name)
	}
	return nil
}

// Window is the best-effort UI geometry carried through saves
type Window struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SessionState is the persisted shape of one save slot. Course references
// use the module-code-or-title key; slot indexes are stringified integers
// to match the on-disk format.
type SessionState struct {
	SemesterAssignments map[string][]string `json:"semester_assignments"`
	ExpandedGroups      map[string]bool     `json:"expanded_groups"`
	Favorites           []string            `json:"favorites"`
	Window              Window              `json:"window"`
}

// NewSessionState returns an empty state with allocated maps
func NewSessionState() SessionState {
	return SessionState{
		SemesterAssignments: make(map[string][]string),
		ExpandedGroups:      make(map[string]bool),
		Favorites:           []string{},
	}
}

// SlotInfo describes one save slot in a listing
type SlotInfo struct {
	Name      string
	UpdatedAt time.Time
	Size      int64
}

// Store is the save-slot boundary. Implementations persist whole
// SessionState values under named slots; there is exactly one session
// accessing one slot at a time, so no locking is coordinated here.
type Store interface {
	// List enumerates save slots, always including Default, sorted by name
	List() ([]SlotInfo, error)
	// Read loads a slot's state, ErrNotFound if it does not exist
	Read(name string) (SessionState, error)
	// Write persists a slot's state, creating the slot if needed
	Write(name string, st SessionState) error
	// Rename moves a slot; the Default slot is rejected
	Rename(oldName, newName string) error
	// Duplicate copies a slot under a fresh "_copy"-suffixed name and
	// returns the new name
	Duplicate(name string) (string, error)
	// Delete removes a slot; the Default slot is rejected
	Delete(name string) error
	// Close releases any underlying resources
	Close() error
}

// uniqueCopyName resolves the duplicate naming scheme: base_copy, then
// base_copy_1, base_copy_2, ... until no existing name collides.
func uniqueCopyName(base string, exists func(string) bool) string {
	name := base + "_copy"
	for counter := 1; exists(name); counter++ {
		name = fmt.Sprintf("%s_copy_%d", base, counter)
	}
	return name
}
