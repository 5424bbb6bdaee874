package todo

import "github.com/google/uuid"

// Item is one todo entry. The durable part is id, text and done; the rest
// only lives for the current session.
type Item struct {
	id   uuid.UUID
	text string
	done bool

	// stash holds text as it was when editing began, restored on cancel.
	stash string
	// active covers both selected and editing, which never differ.
	active bool
}

// Record is the persisted shape of an Item.
type Record struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
	Done bool      `json:"done"`
}

// Rendered is the display projection of an item.
type Rendered struct {
	Text   string
	Struck bool
}

// NewItem creates an unselected, not-done item with a fresh id.
func NewItem(text string) Item {
	return Item{
		id:    uuid.New(),
		text:  text,
		stash: text,
	}
}

func itemFromRecord(r Record) Item {
	return Item{
		id:    r.ID,
		text:  r.Text,
		done:  r.Done,
		stash: r.Text,
	}
}

func (it Item) ID() uuid.UUID  { return it.id }
func (it Item) Text() string   { return it.text }
func (it Item) Done() bool     { return it.done }
func (it Item) Selected() bool { return it.active }
func (it Item) Editing() bool  { return it.active }

// Record projects the durable fields.
func (it Item) Record() Record {
	return Record{ID: it.id, Text: it.text, Done: it.done}
}

// Rendered derives the display form from text and done. Done items are
// shown struck through.
func (it Item) Rendered() Rendered {
	return render(it.text, it.done)
}

func render(text string, done bool) Rendered {
	if done {
		return Rendered{Text: "~" + text + "~", Struck: true}
	}
	return Rendered{Text: text}
}

func (it *Item) gainSelection() {
	it.active = true
	it.stash = it.text
}

func (it *Item) loseSelection() {
	it.active = false
}

func (it *Item) cancelEdit() {
	it.text = it.stash
}
