package store

import (
	"errors"
	"fmt"

	"github.com/rezmoss/taskit/internal/journal"
)

// ErrStaleEvent means the event an amend was built against is gone.
var ErrStaleEvent = errors.New("event changed since it was loaded")

// Resolve points every ReplaceEvent that carries its Original at where that
// event sits in data. Deltas earlier in the list that add events are taken
// into account. If the original cannot be found the whole batch is rejected.
func Resolve(data journal.SaveData, deltas []journal.Delta) ([]journal.Delta, error) {
	events := append([]journal.Event(nil), data.Events...)
	out := make([]journal.Delta, 0, len(deltas))
	for _, d := range deltas {
		switch delta := d.(type) {
		case journal.AddEvent:
			events = append(events, delta.Event)
		case journal.ReplaceEvent:
			if delta.Original != nil {
				idx, ok := locate(events, delta.Index, *delta.Original)
				if !ok {
					return nil, fmt.Errorf("%w: %s", ErrStaleEvent, delta.Original)
				}
				delta.Index = idx
			}
			if delta.Index >= 0 && delta.Index < len(events) {
				events[delta.Index] = delta.Event
			}
			d = delta
		}
		out = append(out, d)
	}
	return out, nil
}

// locate prefers the hinted index and otherwise takes the last match.
func locate(events []journal.Event, hint int, want journal.Event) (int, bool) {
	if hint >= 0 && hint < len(events) && events[hint].Equal(want) {
		return hint, true
	}
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Equal(want) {
			return i, true
		}
	}
	return 0, false
}
