package todo

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func threeItems() (State, [3]uuid.UUID) {
	ids := [3]uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	s := NewState([]Record{
		{ID: ids[0], Text: "first"},
		{ID: ids[1], Text: "second", Done: true},
		{ID: ids[2], Text: "third"},
	})
	return s, ids
}

func reduce(t *testing.T, s State, intents ...Intent) State {
	t.Helper()
	for _, in := range intents {
		var ok bool
		s, _, ok = Reduce(s, in)
		require.True(t, ok, "intent %s not handled", in)
		require.NoError(t, s.Check())
	}
	return s
}

func TestNewStateStartsIdle(t *testing.T) {
	s, ids := threeItems()
	for _, it := range s.Items() {
		require.False(t, it.Selected())
		require.False(t, it.Editing())
	}
	_, ok := s.SelectedID()
	require.False(t, ok)

	second, ok := s.Item(ids[1])
	require.True(t, ok)
	require.Equal(t, Rendered{Text: "~second~", Struck: true}, second.Rendered())
}

func TestSelectIsExclusive(t *testing.T) {
	s, ids := threeItems()
	s = reduce(t, s, Select(ids[0]), Select(ids[2]))

	a, _ := s.Item(ids[0])
	b, _ := s.Item(ids[2])
	require.False(t, a.Selected())
	require.False(t, a.Editing())
	require.True(t, b.Selected())
	require.True(t, b.Editing())

	sel, ok := s.SelectedID()
	require.True(t, ok)
	require.Equal(t, ids[2], sel)
}

func TestSelectAlreadySelectedKeepsStash(t *testing.T) {
	s, ids := threeItems()
	s = reduce(t, s, Select(ids[0]), SetText(ids[0], "typed"), Select(ids[0]), Cancel(ids[0]))

	it, _ := s.Item(ids[0])
	require.Equal(t, "first", it.Text())
}

func TestSelectUnknownIDIsNoop(t *testing.T) {
	s, ids := threeItems()
	s = reduce(t, s, Select(ids[1]), Select(uuid.New()))

	sel, ok := s.SelectedID()
	require.True(t, ok)
	require.Equal(t, ids[1], sel)
}

func TestCancelRestoresText(t *testing.T) {
	s, ids := threeItems()
	s = reduce(t, s, Select(ids[0]), SetText(ids[0], "anything"), Cancel(ids[0]))

	it, _ := s.Item(ids[0])
	require.Equal(t, "first", it.Text())
	require.False(t, it.Editing())
	_, ok := s.SelectedID()
	require.False(t, ok)
}

func TestConfirmKeepsTextAndEmitsSave(t *testing.T) {
	s, ids := threeItems()
	s = reduce(t, s, Select(ids[0]), SetText(ids[0], "new"))

	s, follow, ok := Reduce(s, Confirm(ids[0]))
	require.True(t, ok)
	require.Equal(t, []Intent{Save()}, follow)

	it, _ := s.Item(ids[0])
	require.Equal(t, "new", it.Text())
	require.False(t, it.Selected())
}

func TestUnselectOtherItemIsNoop(t *testing.T) {
	s, ids := threeItems()
	s = reduce(t, s, Select(ids[0]))

	s, follow, ok := Reduce(s, Confirm(ids[1]))
	require.True(t, ok)
	require.Empty(t, follow)
	require.NoError(t, s.Check())

	sel, _ := s.SelectedID()
	require.Equal(t, ids[0], sel)
}

func TestSetTextIgnoredWhenIdle(t *testing.T) {
	s, ids := threeItems()
	s = reduce(t, s, SetText(ids[2], "nope"))

	it, _ := s.Item(ids[2])
	require.Equal(t, "third", it.Text())
}

func TestToggleDoneEmitsRebuildThenSave(t *testing.T) {
	s, ids := threeItems()
	s = reduce(t, s, Select(ids[0]))

	s, follow, ok := Reduce(s, ToggleDone(ids[0]))
	require.True(t, ok)
	require.Equal(t, []Intent{Rebuild(ids[0]), Save()}, follow)

	it, _ := s.Item(ids[0])
	require.True(t, it.Done())
	require.True(t, it.Selected(), "toggle does not touch selection")
	require.Equal(t, Rendered{Text: "~first~", Struck: true}, it.Rendered())
}

func TestAddPrependsAndClearsDraft(t *testing.T) {
	s := reduce(t, State{}, SetDraft("buy milk"), Add("buy milk"))

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, "buy milk", items[0].Text())
	require.False(t, items[0].Done())
	require.False(t, items[0].Selected())
	require.NotEqual(t, uuid.Nil, items[0].ID())
	require.Empty(t, s.Draft())

	s = reduce(t, s, Add("walk dog"))
	require.Equal(t, "walk dog", s.Items()[0].Text())
}

func TestClearCompletedPreservesOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	s := NewState([]Record{
		{ID: ids[0], Text: "a", Done: true},
		{ID: ids[1], Text: "b"},
		{ID: ids[2], Text: "c", Done: true},
		{ID: ids[3], Text: "d"},
	})

	s, follow, ok := Reduce(s, ClearCompleted())
	require.True(t, ok)
	require.Equal(t, []Intent{Save()}, follow)
	require.Equal(t, []Record{{ID: ids[1], Text: "b"}, {ID: ids[3], Text: "d"}}, s.Records())
}

func TestClearCompletedDropsRemovedSelection(t *testing.T) {
	s, ids := threeItems()
	s = reduce(t, s, Select(ids[1]), ClearCompleted())

	_, ok := s.SelectedID()
	require.False(t, ok)
	require.Equal(t, 2, s.Len())
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s, ids := threeItems()
	_, _, _ = Reduce(s, Select(ids[0]))

	it, _ := s.Item(ids[0])
	require.False(t, it.Selected())
}

func TestUnknownKindNotHandled(t *testing.T) {
	s, _ := threeItems()
	_, follow, ok := Reduce(s, Intent{Kind: Kind(99)})
	require.False(t, ok)
	require.Empty(t, follow)
}

func TestInvariantsHoldAcrossSequences(t *testing.T) {
	s, ids := threeItems()
	seq := []Intent{
		Select(ids[0]), Select(ids[1]), SetText(ids[1], "x"), ToggleDone(ids[2]),
		Cancel(ids[0]), Select(ids[2]), Confirm(ids[2]), Select(ids[0]),
		Add("new"), ClearCompleted(), Cancel(ids[0]), Select(ids[0]), Select(ids[0]),
	}
	for _, in := range seq {
		s, _, _ = Reduce(s, in)
		require.NoError(t, s.Check(), "after %s", in)
		selected := 0
		for _, it := range s.Items() {
			require.Equal(t, it.Selected(), it.Editing())
			if it.Selected() {
				selected++
			}
		}
		require.LessOrEqual(t, selected, 1)
	}
}
