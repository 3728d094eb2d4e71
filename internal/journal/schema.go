package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrCorruptSave = errors.New("corrupt save file")

// Version identifies a revision of the on-disk schema.
type Version int

const (
	V1 Version = iota + 1
	V2
	V3
	V4

	CurrentVersion = V4
)

func (v Version) String() string { return fmt.Sprintf("V%d", int(v)) }

// SaveDataV1 holds events and categories.
type SaveDataV1 struct {
	Categories Categories `json:"categories"`
	Events     []Event    `json:"events"`
}

// SaveDataV2 adds archived categories.
type SaveDataV2 struct {
	Categories         Categories `json:"categories"`
	ArchivedCategories Categories `json:"archived_categories"`
	Events             []Event    `json:"events"`
}

// SaveDataV3 adds the tag registry and the category to tags map.
type SaveDataV3 struct {
	Categories         Categories          `json:"categories"`
	ArchivedCategories Categories          `json:"archived_categories"`
	Tags               []string            `json:"tags"`
	TagMap             map[string][]string `json:"tag_map"`
	Events             []Event             `json:"events"`
}

// SaveDataV4 adds one free-text note per day.
type SaveDataV4 struct {
	Categories         Categories          `json:"categories"`
	ArchivedCategories Categories          `json:"archived_categories"`
	Tags               []string            `json:"tags"`
	TagMap             map[string][]string `json:"tag_map"`
	Events             []Event             `json:"events"`
	DailyNotes         map[Date]string     `json:"daily_notes"`
}

// revision is implemented by every SaveDataVn. upgrade produces exactly the
// next revision; the current one returns nil.
type revision interface {
	version() Version
	upgrade() revision
}

func (SaveDataV1) version() Version { return V1 }
func (SaveDataV2) version() Version { return V2 }
func (SaveDataV3) version() Version { return V3 }
func (SaveDataV4) version() Version { return V4 }

func (d SaveDataV1) upgrade() revision {
	return SaveDataV2{
		Categories:         d.Categories,
		ArchivedCategories: Categories{Options: []string{}},
		Events:             d.Events,
	}
}

func (d SaveDataV2) upgrade() revision {
	return SaveDataV3{
		Categories:         d.Categories,
		ArchivedCategories: d.ArchivedCategories,
		Tags:               []string{},
		TagMap:             map[string][]string{},
		Events:             d.Events,
	}
}

func (d SaveDataV3) upgrade() revision {
	return SaveDataV4{
		Categories:         d.Categories,
		ArchivedCategories: d.ArchivedCategories,
		Tags:               d.Tags,
		TagMap:             d.TagMap,
		Events:             d.Events,
		DailyNotes:         map[Date]string{},
	}
}

func (SaveDataV4) upgrade() revision { return nil }

// Versioned is a store in any historical revision. It is encoded as a JSON
// object with a single key naming the revision, e.g. {"V4": {...}}.
type Versioned struct {
	rev revision
}

// NewVersioned wraps current data for writing.
func NewVersioned(data SaveData) Versioned {
	return Versioned{rev: data}
}

func versionedOf(rev revision) Versioned { return Versioned{rev: rev} }

func (v Versioned) Version() Version {
	if v.rev == nil {
		return CurrentVersion
	}
	return v.rev.version()
}

// Extract upgrades to the current revision one step at a time and reports
// whether any step ran.
func (v Versioned) Extract() (SaveData, bool) {
	if v.rev == nil {
		return NewSaveData(), false
	}
	rev := v.rev
	upgraded := false
	for steps := 0; rev.version() < CurrentVersion && steps < int(CurrentVersion); steps++ {
		rev = rev.upgrade()
		upgraded = true
	}
	current, ok := rev.(SaveDataV4)
	if !ok {
		panic(fmt.Sprintf("journal: upgrade chain ended at %v, want %v", rev.version(), CurrentVersion))
	}
	current.normalize()
	return current, upgraded
}

func (v Versioned) MarshalJSON() ([]byte, error) {
	rev := v.rev
	if rev == nil {
		rev = NewSaveData()
	}
	return json.Marshal(map[string]revision{rev.version().String(): rev})
}

func (v *Versioned) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("%w: want exactly one version key, got %d", ErrCorruptSave, len(tagged))
	}
	for key, body := range tagged {
		rev, err := decodeRevision(key, body)
		if err != nil {
			return err
		}
		v.rev = rev
	}
	return nil
}

func decodeRevision(key string, body json.RawMessage) (revision, error) {
	var err error
	var rev revision
	switch key {
	case V1.String():
		var d SaveDataV1
		err = json.Unmarshal(body, &d)
		rev = d
	case V2.String():
		var d SaveDataV2
		err = json.Unmarshal(body, &d)
		rev = d
	case V3.String():
		var d SaveDataV3
		err = json.Unmarshal(body, &d)
		rev = d
	case V4.String():
		var d SaveDataV4
		err = json.Unmarshal(body, &d)
		rev = d
	default:
		return nil, fmt.Errorf("%w: unknown version %q", ErrCorruptSave, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSave, key, err)
	}
	return rev, nil
}

// DecodeVersioned parses a save file. An empty document is an empty store.
func DecodeVersioned(raw []byte) (Versioned, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return NewVersioned(NewSaveData()), nil
	}
	var v Versioned
	if err := json.Unmarshal(raw, &v); err != nil {
		if errors.Is(err, ErrCorruptSave) {
			return Versioned{}, err
		}
		return Versioned{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return v, nil
}
