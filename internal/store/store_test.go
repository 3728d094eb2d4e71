package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezmoss/taskit/internal/journal"
)

func event(category string, day int, start, end journal.SimpleTime) journal.Event {
	return journal.Event{
		StartTime: start,
		EndTime:   end,
		Date:      journal.NewDate(2024, time.January, day),
		Category:  category,
	}
}

func newFile(t *testing.T) *File {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "data", "save.json"), nil)
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	f := newFile(t)
	data, err := f.Open()
	require.NoError(t, err)
	assert.Equal(t, journal.NewSaveData(), data)

	_, err = os.Stat(f.Path())
	assert.True(t, os.IsNotExist(err), "open must not create the file")
}

func TestCommitThenReload(t *testing.T) {
	f := newFile(t)
	work := event("Work", 1, journal.MustSimpleTime(9, 0), journal.MustSimpleTime(17, 30))

	_, err := f.Open()
	require.NoError(t, err)
	written, err := f.Commit([]journal.Delta{
		journal.AddCategory{Name: "Work"},
		journal.AddEvent{Event: work},
	})
	require.NoError(t, err)

	reloaded, err := f.Open()
	require.NoError(t, err)
	assert.Equal(t, written, reloaded)
	require.Len(t, reloaded.Events, 1)
	assert.Equal(t, work, reloaded.Events[0])
	assert.Equal(t, 8*time.Hour+30*time.Minute, reloaded.Events[0].Duration())
}

func TestCommitRereadsFile(t *testing.T) {
	f := newFile(t)
	_, err := f.Open()
	require.NoError(t, err)

	// another invocation writes between our load and our commit
	other := New(f.Path(), nil)
	_, err = other.Commit([]journal.Delta{journal.AddCategory{Name: "Gym"}})
	require.NoError(t, err)

	data, err := f.Commit([]journal.Delta{journal.AddCategory{Name: "Work"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gym", "Work"}, data.Categories.Options)
}

func TestCommitWithoutDeltasDoesNotWrite(t *testing.T) {
	f := newFile(t)
	_, err := f.Commit(nil)
	require.NoError(t, err)
	_, err = os.Stat(f.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestCommitFailureLeavesFileUntouched(t *testing.T) {
	f := newFile(t)
	_, err := f.Commit([]journal.Delta{journal.AddEvent{Event: event("Work", 1, journal.MustSimpleTime(9, 0), journal.MustSimpleTime(10, 0))}})
	require.NoError(t, err)
	before, err := os.ReadFile(f.Path())
	require.NoError(t, err)

	_, err = f.Commit([]journal.Delta{
		journal.AddCategory{Name: "Work"},
		journal.ReplaceEvent{Index: 7, Event: journal.Event{Category: "Work"}},
	})
	assert.ErrorIs(t, err, journal.ErrEventIndexOutOfRange)

	after, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestOpenUpgradesOldFile(t *testing.T) {
	f := newFile(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(f.Path()), 0o755))
	raw := `{"V2":{"categories":{"options":["Work"]},"archived_categories":{"options":[]},"events":[]}}`
	require.NoError(t, os.WriteFile(f.Path(), []byte(raw), 0o644))

	data, err := f.Open()
	require.NoError(t, err)
	assert.Equal(t, []string{"Work"}, data.Categories.Options)

	backup, err := os.ReadFile(f.Path() + UpgradeBackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, raw, string(backup))

	v, err := Read(f.Path())
	require.NoError(t, err)
	assert.Equal(t, journal.CurrentVersion, v.Version())

	// a second open finds the current version and leaves the backup alone
	_, err = f.Open()
	require.NoError(t, err)
	backup2, err := os.ReadFile(f.Path() + UpgradeBackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, backup, backup2)
}

func TestOpenRestoresOriginalWhenUpgradeWriteFails(t *testing.T) {
	f := newFile(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(f.Path()), 0o755))
	raw := `{"V2":{"categories":{"options":["Work"]},"archived_categories":{"options":[]},"events":[]}}`
	require.NoError(t, os.WriteFile(f.Path(), []byte(raw), 0o644))

	diskFull := errors.New("no space left on device")
	f.write = func(string, journal.SaveData) error { return diskFull }

	_, err := f.Open()
	require.ErrorIs(t, err, diskFull)

	kept, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, raw, string(kept))
	_, err = os.Stat(f.Path() + UpgradeBackupSuffix)
	assert.ErrorIs(t, err, os.ErrNotExist)

	f.write = Write
	data, err := f.Open()
	require.NoError(t, err)
	assert.Equal(t, []string{"Work"}, data.Categories.Options)
}

func TestCommitRejectsEventWithoutDate(t *testing.T) {
	f := newFile(t)
	_, err := f.Commit([]journal.Delta{journal.AddEvent{Event: event("Work", 1, journal.MustSimpleTime(9, 0), journal.MustSimpleTime(10, 0))}})
	require.NoError(t, err)
	before, err := os.ReadFile(f.Path())
	require.NoError(t, err)

	_, err = f.Commit([]journal.Delta{journal.AddEvent{Event: journal.Event{Category: "Work"}}})
	assert.ErrorIs(t, err, journal.ErrMissingDate)

	after, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)

	data, err := f.Open()
	require.NoError(t, err)
	assert.Len(t, data.Events, 1)
}

func TestWriteRefusesUnreadableDate(t *testing.T) {
	f := newFile(t)
	good := journal.NewSaveData()
	good.Events = append(good.Events, event("Work", 1, journal.MustSimpleTime(9, 0), journal.MustSimpleTime(10, 0)))
	require.NoError(t, Write(f.Path(), good))

	bad := good.Clone()
	bad.Events = append(bad.Events, journal.Event{Category: "Work"})
	assert.ErrorIs(t, Write(f.Path(), bad), journal.ErrInvalidDate)

	entries, err := os.ReadDir(filepath.Dir(f.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := f.Open()
	require.NoError(t, err)
	assert.Equal(t, good.Events, data.Events)
}

func TestOpenCorruptFile(t *testing.T) {
	f := newFile(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(f.Path()), 0o755))
	require.NoError(t, os.WriteFile(f.Path(), []byte("{not json"), 0o644))

	_, err := f.Open()
	assert.ErrorIs(t, err, journal.ErrCorruptSave)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	f := newFile(t)
	require.NoError(t, Write(f.Path(), journal.NewSaveData()))

	entries, err := os.ReadDir(filepath.Dir(f.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "save.json", entries[0].Name())
}

func TestAmendLatestAfterAnotherEventWasAdded(t *testing.T) {
	f := newFile(t)
	first := event("Work", 1, journal.MustSimpleTime(9, 0), journal.MustSimpleTime(10, 0))
	second := event("Gym", 2, journal.MustSimpleTime(18, 0), journal.MustSimpleTime(19, 0))

	_, err := f.Commit([]journal.Delta{journal.AddEvent{Event: first}})
	require.NoError(t, err)
	_, err = f.Commit([]journal.Delta{journal.AddEvent{Event: second}})
	require.NoError(t, err)

	data, err := f.Open()
	require.NoError(t, err)
	idx, ok := data.EventIndex(0)
	require.True(t, ok)
	require.Equal(t, 1, idx)

	amended := second
	amended.Description = "leg day"
	original := data.Events[idx]
	data, err = f.Commit([]journal.Delta{journal.ReplaceEvent{Index: idx, Original: &original, Event: amended}})
	require.NoError(t, err)
	assert.Equal(t, first, data.Events[0])
	assert.Equal(t, amended, data.Events[1])
}

func TestStaleAmendIsReResolved(t *testing.T) {
	f := newFile(t)
	first := event("Work", 1, journal.MustSimpleTime(9, 0), journal.MustSimpleTime(10, 0))
	_, err := f.Commit([]journal.Delta{journal.AddEvent{Event: first}})
	require.NoError(t, err)

	// amend built against a snapshot with one event
	snapshot, err := f.Open()
	require.NoError(t, err)
	idx, _ := snapshot.EventIndex(0)
	original := snapshot.Events[idx]
	amended := first
	amended.Description = "edited"

	// meanwhile the file is rewritten with another event ahead of it
	other := journal.NewSaveData()
	intruder := event("Gym", 1, journal.MustSimpleTime(7, 0), journal.MustSimpleTime(8, 0))
	other.Events = []journal.Event{intruder, first}
	require.NoError(t, Write(f.Path(), other))

	data, err := f.Commit([]journal.Delta{journal.ReplaceEvent{Index: idx, Original: &original, Event: amended}})
	require.NoError(t, err)
	assert.Equal(t, intruder, data.Events[0])
	assert.Equal(t, amended, data.Events[1])
}

func TestStaleAmendOfVanishedEventFails(t *testing.T) {
	f := newFile(t)
	first := event("Work", 1, journal.MustSimpleTime(9, 0), journal.MustSimpleTime(10, 0))
	replacement := event("Gym", 1, journal.MustSimpleTime(9, 0), journal.MustSimpleTime(10, 0))
	_, err := f.Commit([]journal.Delta{journal.AddEvent{Event: first}})
	require.NoError(t, err)

	// another invocation amends the same event first
	_, err = f.Commit([]journal.Delta{journal.ReplaceEvent{Index: 0, Event: replacement}})
	require.NoError(t, err)

	_, err = f.Commit([]journal.Delta{journal.ReplaceEvent{Index: 0, Original: &first, Event: journal.Event{Category: "Work"}}})
	assert.ErrorIs(t, err, ErrStaleEvent)

	data, err := f.Open()
	require.NoError(t, err)
	assert.Equal(t, replacement, data.Events[0])
}

func TestResolveSeesEarlierAddEvents(t *testing.T) {
	base := journal.NewSaveData()
	added := event("Work", 3, journal.MustSimpleTime(9, 0), journal.MustSimpleTime(10, 0))
	deltas := []journal.Delta{
		journal.AddEvent{Event: added},
		journal.ReplaceEvent{Index: 5, Original: &added, Event: journal.Event{Category: "Gym"}},
	}
	resolved, err := Resolve(base, deltas)
	require.NoError(t, err)
	assert.Equal(t, 0, resolved[1].(journal.ReplaceEvent).Index)
}
