package prompts

import (
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grovetools/prompts/pkg/jsondoc"
	"github.com/grovetools/prompts/pkg/jsontree"
	"github.com/sirupsen/logrus"
)

// Store owns the editor state for one application instance. All mutations
// go through Dispatch, which runs Reduce under the store's lock, so a
// read-modify-write such as UpdateValue is atomic with respect to other
// callers. None of them return errors, and an action that cannot apply
// simply reports false.
type Store struct {
	mu          sync.Mutex
	state       State
	now         func() time.Time
	newID       func() string
	logger      *logrus.Entry
	subscribers map[int]func(State)
	nextSubID   int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug tracing of actions.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides how document ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithState seeds the store, typically from a loaded snapshot.
func WithState(state State) Option {
	return func(s *Store) {
		s.state = state
	}
}

// New creates a Store.
func New(opts ...Option) *Store {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	s := &Store{
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
		logger:      logrus.NewEntry(quiet),
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called after every applied action. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Dispatch applies a and notifies subscribers when the state changed.
func (s *Store) Dispatch(a Action) bool {
	s.mu.Lock()
	next, changed := Reduce(s.state, a)
	if changed {
		s.state = next
	}
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.logger.WithField("action", actionName(a)).WithField("changed", changed).Debug("Dispatched action")

	if changed {
		for _, fn := range subs {
			fn(next)
		}
	}
	return changed
}

// CreateDocument adds a document and makes it current. It returns the new
// document's id.
func (s *Store) CreateDocument(name string, content *jsondoc.Object) string {
	id := s.newID()
	s.Dispatch(CreateDocument{ID: id, Name: name, Content: content, At: s.now()})
	return id
}

// UpdateDocument merges patch into the document with the given id.
func (s *Store) UpdateDocument(id string, patch DocumentPatch) bool {
	return s.Dispatch(UpdateDocument{ID: id, Patch: patch, At: s.now()})
}

// DeleteDocument removes a document.
func (s *Store) DeleteDocument(id string) bool {
	return s.Dispatch(DeleteDocument{ID: id})
}

// SetCurrentDocument switches documents. Selection and editing cursors are
// reset since they only make sense within one document.
func (s *Store) SetCurrentDocument(id string) bool {
	return s.Dispatch(SetCurrentDocument{ID: id})
}

// SetSelectedPath moves the selection cursor; nil clears it.
func (s *Store) SetSelectedPath(p jsondoc.Path) bool {
	return s.Dispatch(SetSelectedPath{Path: p})
}

// SetEditingPath moves the edit cursor; nil clears it.
func (s *Store) SetEditingPath(p jsondoc.Path) bool {
	return s.Dispatch(SetEditingPath{Path: p})
}

// ToggleExpanded flips expansion of the node at key.
func (s *Store) ToggleExpanded(key string) bool {
	return s.Dispatch(ToggleExpanded{Key: key})
}

// ExpandAll expands every node, current and future.
func (s *Store) ExpandAll() bool {
	return s.Dispatch(ExpandAll{})
}

// CollapseAll collapses every node.
func (s *Store) CollapseAll() bool {
	return s.Dispatch(CollapseAll{})
}

// Replace swaps in a whole new state.
func (s *Store) Replace(state State) bool {
	return s.Dispatch(ReplaceState{State: state})
}

// CurrentDocument returns the current document.
func (s *Store) CurrentDocument() (Document, bool) {
	return s.State().Current()
}

// UpdateValue writes v at p in the current document, creating missing
// intermediate objects. Writing the root with anything but an object is
// refused.
func (s *Store) UpdateValue(p jsondoc.Path, v any) bool {
	return s.updateContent(func(content *jsondoc.Object) any {
		return jsondoc.Set(content, p, jsondoc.Normalize(v))
	})
}

// DeleteValue removes the entry at p from the current document.
func (s *Store) DeleteValue(p jsondoc.Path) bool {
	return s.updateContent(func(content *jsondoc.Object) any {
		return jsondoc.Delete(content, p)
	})
}

// AddArrayItem appends v to the array at p. The array must be reachable
// through objects only.
func (s *Store) AddArrayItem(p jsondoc.Path, v any) bool {
	return s.updateContent(func(content *jsondoc.Object) any {
		next, _ := jsondoc.Append(content, p, jsondoc.Normalize(v))
		return next
	})
}

// AddObjectKey sets key to v inside the object at p, creating p if needed.
func (s *Store) AddObjectKey(p jsondoc.Path, key string, v any) bool {
	return s.UpdateValue(p.Child(key), v)
}

// updateContent runs fn over the current document's content inside a single
// Dispatch. Results identical to the input, or that are not objects, are
// dropped.
func (s *Store) updateContent(fn func(*jsondoc.Object) any) bool {
	return s.Dispatch(EditContent{Edit: fn, At: s.now()})
}

// Project returns the tree projection of the current document under the
// current expansion state.
func (s *Store) Project() []*jsontree.Node {
	state := s.State()
	doc, ok := state.Current()
	if !ok {
		return nil
	}
	return jsontree.Project(doc.Content, state.Expansion)
}

func actionName(a Action) string {
	switch a.(type) {
	case CreateDocument:
		return "create_document"
	case UpdateDocument:
		return "update_document"
	case EditContent:
		return "edit_content"
	case DeleteDocument:
		return "delete_document"
	case SetCurrentDocument:
		return "set_current_document"
	case SetSelectedPath:
		return "set_selected_path"
	case SetEditingPath:
		return "set_editing_path"
	case ToggleExpanded:
		return "toggle_expanded"
	case ExpandAll:
		return "expand_all"
	case CollapseAll:
		return "collapse_all"
	case ReplaceState:
		return "replace_state"
	}
	return "unknown"
}
