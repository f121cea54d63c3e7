package prompts

import (
	"time"

	"github.com/grovetools/prompts/pkg/jsondoc"
	"github.com/grovetools/prompts/pkg/jsontree"
)

// State is the complete editor state. It is treated as an immutable value:
// Reduce never modifies the state it is given.
type State struct {
	Documents         []Document
	CurrentDocumentID string // empty when no document is current
	SelectedPath      jsondoc.Path
	EditingPath       jsondoc.Path
	Expansion         jsontree.Expansion
}

// Document returns the document with the given id.
func (s State) Document(id string) (Document, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Documents[i], true
	}
	return Document{}, false
}

// Current returns the current document.
func (s State) Current() (Document, bool) {
	if s.CurrentDocumentID == "" {
		return Document{}, false
	}
	return s.Document(s.CurrentDocumentID)
}

func (s State) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, d := range s.Documents {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// Action is a state transition understood by Reduce.
type Action interface {
	isAction()
}

// CreateDocument appends a new document and makes it current.
type CreateDocument struct {
	ID      string
	Name    string
	Content *jsondoc.Object
	At      time.Time
}

// UpdateDocument merges Patch into the document and bumps its UpdatedAt.
type UpdateDocument struct {
	ID    string
	Patch DocumentPatch
	At    time.Time
}

// EditContent replaces the current document's content with the result of
// Edit. Results that are not objects, or that are the content itself, are
// no-ops.
type EditContent struct {
	Edit func(*jsondoc.Object) any
	At   time.Time
}

// DeleteDocument removes a document. Deleting the current document leaves
// no document current.
type DeleteDocument struct {
	ID string
}

// SetCurrentDocument switches the current document and clears the
// selection and editing cursors. An empty ID clears the current document.
type SetCurrentDocument struct {
	ID string
}

// SetSelectedPath moves the selection cursor. Nil clears it.
type SetSelectedPath struct {
	Path jsondoc.Path
}

// SetEditingPath moves the edit cursor. Nil clears it.
type SetEditingPath struct {
	Path jsondoc.Path
}

// ToggleExpanded flips the expansion of one PathKey.
type ToggleExpanded struct {
	Key string
}

// ExpandAll marks every node expanded.
type ExpandAll struct{}

// CollapseAll clears all expansion.
type CollapseAll struct{}

// ReplaceState swaps in a whole new state, as when reloading from disk.
type ReplaceState struct {
	State State
}

func (CreateDocument) isAction()     {}
func (UpdateDocument) isAction()     {}
func (EditContent) isAction()        {}
func (DeleteDocument) isAction()     {}
func (SetCurrentDocument) isAction() {}
func (SetSelectedPath) isAction()    {}
func (SetEditingPath) isAction()     {}
func (ToggleExpanded) isAction()     {}
func (ExpandAll) isAction()          {}
func (CollapseAll) isAction()        {}
func (ReplaceState) isAction()       {}

// Reduce applies a to s and returns the resulting state, along with whether
// anything changed. Actions whose target does not exist are no-ops.
func Reduce(s State, a Action) (State, bool) {
	switch a := a.(type) {
	case CreateDocument:
		if a.ID == "" || s.indexOf(a.ID) >= 0 {
			return s, false
		}
		content := a.Content
		if content == nil {
			content = jsondoc.NewObject()
		}
		docs := make([]Document, len(s.Documents), len(s.Documents)+1)
		copy(docs, s.Documents)
		s.Documents = append(docs, Document{
			ID:        a.ID,
			Name:      a.Name,
			Content:   content,
			CreatedAt: a.At,
			UpdatedAt: a.At,
		})
		s.CurrentDocumentID = a.ID
		return s, true

	case UpdateDocument:
		i := s.indexOf(a.ID)
		if i < 0 {
			return s, false
		}
		docs := make([]Document, len(s.Documents))
		copy(docs, s.Documents)
		updated := a.Patch.apply(docs[i])
		updated.UpdatedAt = advance(docs[i].UpdatedAt, a.At)
		docs[i] = updated
		s.Documents = docs
		return s, true

	case EditContent:
		i := s.indexOf(s.CurrentDocumentID)
		if i < 0 || a.Edit == nil {
			return s, false
		}
		next, ok := a.Edit(s.Documents[i].Content).(*jsondoc.Object)
		if !ok || next == nil || next == s.Documents[i].Content {
			return s, false
		}
		docs := make([]Document, len(s.Documents))
		copy(docs, s.Documents)
		docs[i].Content = next
		docs[i].UpdatedAt = advance(docs[i].UpdatedAt, a.At)
		s.Documents = docs
		return s, true

	case DeleteDocument:
		i := s.indexOf(a.ID)
		if i < 0 {
			return s, false
		}
		docs := make([]Document, 0, len(s.Documents)-1)
		docs = append(docs, s.Documents[:i]...)
		docs = append(docs, s.Documents[i+1:]...)
		s.Documents = docs
		if s.CurrentDocumentID == a.ID {
			s.CurrentDocumentID = ""
		}
		return s, true

	case SetCurrentDocument:
		if a.ID != "" && s.indexOf(a.ID) < 0 {
			return s, false
		}
		s.CurrentDocumentID = a.ID
		s.SelectedPath = nil
		s.EditingPath = nil
		return s, true

	case SetSelectedPath:
		s.SelectedPath = a.Path.Clone()
		return s, true

	case SetEditingPath:
		s.EditingPath = a.Path.Clone()
		return s, true

	case ToggleExpanded:
		s.Expansion = s.Expansion.Toggle(a.Key)
		return s, true

	case ExpandAll:
		s.Expansion = jsontree.AllExpanded()
		return s, true

	case CollapseAll:
		s.Expansion = jsontree.NewExpansion()
		return s, true

	case ReplaceState:
		return a.State, true
	}
	return s, false
}

// advance returns the next UpdatedAt value. It is always strictly later
// than prev, even when the clock has not moved.
func advance(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}
