package todo

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind tags an Intent. The set is closed; anything outside it is forwarded
// as unhandled.
type Kind int

const (
	KindUnknown Kind = iota
	KindSelect
	KindConfirm
	KindCancel
	KindRebuild
	KindSave
	KindToggleDone
	KindAdd
	KindClearCompleted
	KindSetText
	KindSetDraft
	KindReload
)

var kindNames = map[Kind]string{
	KindSelect:         "select",
	KindConfirm:        "unselect-confirm",
	KindCancel:         "unselect-cancel",
	KindRebuild:        "rebuild",
	KindSave:           "save",
	KindToggleDone:     "toggle-done",
	KindAdd:            "add",
	KindClearCompleted: "clear-completed",
	KindSetText:        "set-text",
	KindSetDraft:       "set-draft",
	KindReload:         "reload",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Intent is a user-action signal consumed by the Dispatcher.
type Intent struct {
	Kind Kind
	ID   uuid.UUID
	Text string
}

func (in Intent) String() string {
	if in.ID == uuid.Nil {
		return in.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", in.Kind, in.ID)
}

func Select(id uuid.UUID) Intent            { return Intent{Kind: KindSelect, ID: id} }
func Confirm(id uuid.UUID) Intent           { return Intent{Kind: KindConfirm, ID: id} }
func Cancel(id uuid.UUID) Intent            { return Intent{Kind: KindCancel, ID: id} }
func Rebuild(id uuid.UUID) Intent           { return Intent{Kind: KindRebuild, ID: id} }
func ToggleDone(id uuid.UUID) Intent        { return Intent{Kind: KindToggleDone, ID: id} }
func SetText(id uuid.UUID, t string) Intent { return Intent{Kind: KindSetText, ID: id, Text: t} }
func Save() Intent                          { return Intent{Kind: KindSave} }
func Add(text string) Intent                { return Intent{Kind: KindAdd, Text: text} }
func ClearCompleted() Intent                { return Intent{Kind: KindClearCompleted} }
func SetDraft(text string) Intent           { return Intent{Kind: KindSetDraft, Text: text} }
func Reload() Intent                        { return Intent{Kind: KindReload} }
