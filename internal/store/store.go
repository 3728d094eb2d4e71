// Package store persists the journal in a single JSON file.
//
// Commands never hold the loaded data across their interactive phase. They
// call Open, talk to the user, and hand the resulting deltas to Commit, which
// reads the file again, applies the deltas and atomically replaces it. There
// is no lock: two invocations can still race between Commit's read and its
// rename.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/rezmoss/taskit/internal/journal"
)

// UpgradeBackupSuffix is appended to the pre-upgrade copy of the save file.
const UpgradeBackupSuffix = ".upgrade_bak"

// File is the save file at a fixed path.
type File struct {
	path   string
	logger *log.Logger
	write  func(path string, data journal.SaveData) error
}

func New(path string, logger *log.Logger) *File {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &File{path: path, logger: logger, write: Write}
}

func (f *File) Path() string { return f.path }

// Open loads the store. If the file was written by an older schema, the raw
// file is kept aside with UpgradeBackupSuffix and the upgraded form replaces
// it before Open returns. If the upgraded form cannot be written the raw
// file is moved back.
func (f *File) Open() (journal.SaveData, error) {
	v, err := Read(f.path)
	if err != nil {
		return journal.SaveData{}, err
	}
	from := v.Version()
	data, upgraded := v.Extract()
	if !upgraded {
		f.logger.Printf("loaded %s: %d events, %d categories", f.path, len(data.Events), len(data.Categories.Options))
		return data, nil
	}

	backup := f.path + UpgradeBackupSuffix
	if err := os.Rename(f.path, backup); err != nil {
		return journal.SaveData{}, fmt.Errorf("back up %s before upgrade: %w", f.path, err)
	}
	if err := f.write(f.path, data); err != nil {
		// a missing save file would read as an empty journal
		if rerr := os.Rename(backup, f.path); rerr != nil {
			f.logger.Printf("restore %s from %s failed: %v", f.path, backup, rerr)
			return journal.SaveData{}, fmt.Errorf("write upgraded save: %w (original left at %s)", err, backup)
		}
		f.logger.Printf("upgrade of %s failed, original restored: %v", f.path, err)
		return journal.SaveData{}, fmt.Errorf("write upgraded save: %w", err)
	}
	f.logger.Printf("upgraded %s from %v to %v, previous file kept at %s", f.path, from, journal.CurrentVersion, backup)
	return data, nil
}

// Commit re-reads the file, re-resolves index-addressed deltas against what
// is on disk now, applies them and atomically rewrites the file. It returns
// the data that was written. No deltas means no write.
func (f *File) Commit(deltas []journal.Delta) (journal.SaveData, error) {
	v, err := Read(f.path)
	if err != nil {
		return journal.SaveData{}, err
	}
	data, _ := v.Extract()
	if len(deltas) == 0 {
		return data, nil
	}

	resolved, err := Resolve(data, deltas)
	if err != nil {
		return journal.SaveData{}, err
	}
	if err := journal.Apply(&data, resolved...); err != nil {
		return journal.SaveData{}, fmt.Errorf("apply changes: %w", err)
	}
	if err := f.write(f.path, data); err != nil {
		return journal.SaveData{}, err
	}
	for _, d := range resolved {
		f.logger.Printf("applied: %s", d)
	}
	return data, nil
}

// Read decodes the file at path. A missing file is an empty store.
func Read(path string) (journal.Versioned, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return journal.NewVersioned(journal.NewSaveData()), nil
		}
		return journal.Versioned{}, fmt.Errorf("read save: %w", err)
	}
	v, err := journal.DecodeVersioned(raw)
	if err != nil {
		return journal.Versioned{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Write stores data under the current schema version. The bytes go to a
// uniquely named sibling file that is renamed over path once complete.
func Write(path string, data journal.SaveData) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmp)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(journal.NewVersioned(data)); err != nil {
		f.Close()
		return fmt.Errorf("encode save: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp save: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	committed = true
	return nil
}
