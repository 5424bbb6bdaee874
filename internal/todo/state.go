package todo

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// State owns the ordered items (newest first), the draft for the next item
// and the current selection.
type State struct {
	items    []Item
	draft    string
	selected uuid.UUID
}

// NewState builds a state from persisted records. Every item starts idle.
func NewState(records []Record) State {
	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, itemFromRecord(r))
	}
	return State{items: items}
}

// Items returns a copy of the items in display order.
func (s State) Items() []Item {
	return slices.Clone(s.items)
}

func (s State) Len() int      { return len(s.items) }
func (s State) Draft() string { return s.draft }

// SelectedID returns the selected item id, if any.
func (s State) SelectedID() (uuid.UUID, bool) {
	return s.selected, s.selected != uuid.Nil
}

// Item looks up an item by id.
func (s State) Item(id uuid.UUID) (Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return Item{}, false
}

// Records projects every item to its persisted shape, in order.
func (s State) Records() []Record {
	out := make([]Record, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it.Record())
	}
	return out
}

func (s State) index(id uuid.UUID) int {
	if id == uuid.Nil {
		return -1
	}
	return slices.IndexFunc(s.items, func(it Item) bool { return it.id == id })
}

func (s State) clone() State {
	s.items = slices.Clone(s.items)
	return s
}

// Check verifies the selection invariants: at most one active item, and the
// selected id names exactly that item.
func (s State) Check() error {
	active := 0
	for _, it := range s.items {
		if !it.active {
			continue
		}
		active++
		if it.id != s.selected {
			return fmt.Errorf("item %s is selected but selection is %s", it.id, s.selected)
		}
	}
	if active > 1 {
		return fmt.Errorf("%d items selected", active)
	}
	if s.selected != uuid.Nil && active == 0 {
		return fmt.Errorf("selection %s has no selected item", s.selected)
	}
	return nil
}

// Reduce applies one in-memory transition and returns the new state, the
// follow-on intents it emits (in order) and whether the intent kind was
// recognised. Save and Reload touch the store and are left to the
// Dispatcher; Reduce reports them handled without changing state.
func Reduce(s State, in Intent) (State, []Intent, bool) {
	s = s.clone()
	switch in.Kind {
	case KindSelect:
		s.selectItem(in.ID)
		return s, nil, true
	case KindConfirm:
		if !s.unselect(in.ID, false) {
			return s, nil, true
		}
		return s, []Intent{Save()}, true
	case KindCancel:
		s.unselect(in.ID, true)
		return s, nil, true
	case KindRebuild:
		// Rendered is derived on demand, nothing is cached.
		return s, nil, true
	case KindToggleDone:
		i := s.index(in.ID)
		if i < 0 {
			return s, nil, true
		}
		s.items[i].done = !s.items[i].done
		return s, []Intent{Rebuild(in.ID), Save()}, true
	case KindSetText:
		if i := s.index(in.ID); i >= 0 && s.items[i].active {
			s.items[i].text = in.Text
		}
		return s, nil, true
	case KindSetDraft:
		s.draft = in.Text
		return s, nil, true
	case KindAdd:
		s.items = slices.Insert(s.items, 0, NewItem(in.Text))
		s.draft = ""
		return s, []Intent{Save()}, true
	case KindClearCompleted:
		s.items = slices.DeleteFunc(s.items, func(it Item) bool { return it.done })
		if s.index(s.selected) < 0 {
			s.selected = uuid.Nil
		}
		return s, []Intent{Save()}, true
	case KindSave, KindReload:
		return s, nil, true
	default:
		return s, nil, false
	}
}

// selectItem makes id the only active item. Selecting the already selected
// item, or an id that is not present, changes nothing.
func (s *State) selectItem(id uuid.UUID) {
	target := s.index(id)
	if target < 0 || s.items[target].active {
		return
	}
	s.selected = id
	for i := range s.items {
		if i == target {
			s.items[i].gainSelection()
		} else {
			s.items[i].loseSelection()
		}
	}
}

// unselect drops the selection on id. With discard the text typed since
// selection is restored first. It reports whether id was selected.
func (s *State) unselect(id uuid.UUID, discard bool) bool {
	i := s.index(id)
	if i < 0 || !s.items[i].active {
		return false
	}
	if discard {
		s.items[i].cancelEdit()
	}
	s.selected = uuid.Nil
	s.items[i].loseSelection()
	return true
}
