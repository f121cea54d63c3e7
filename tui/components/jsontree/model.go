// Package jsontree is a Bubble Tea editor for the current prompt document.
// All edits go through a *prompts.Store; the component only keeps cursor,
// search and input state of its own.
package jsontree

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/prompts/pkg/jsondoc"
	tree "github.com/grovetools/prompts/pkg/jsontree"
	"github.com/grovetools/prompts/pkg/prompts"
	"github.com/grovetools/prompts/tui/keymap"
	"github.com/grovetools/prompts/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeEdit
	modeAddKey
	modeAddValue
)

// BackMsg is sent when the user leaves the editor.
type BackMsg struct{}

// ReloadMsg carries a snapshot that changed on disk.
type ReloadMsg struct {
	Snapshot prompts.Snapshot
}

type clearStatusMsg struct{}

// Model is the Bubble Tea model for the document editor.
type Model struct {
	store    *prompts.Store
	theme    *theme.Theme
	keys     KeyMap
	help     help.Model
	seq      *keymap.SequenceState
	viewport viewport.Model
	input    textinput.Model
	copy     func(string) error

	rows       []tree.Row
	arrayPaths map[string]bool
	cursor     int
	width      int
	height     int
	ready      bool

	mode      mode
	addTarget jsondoc.Path
	addKey    string

	searchQuery   string
	searchResults []int
	currentResult int

	statusMessage string
}

// Option configures a Model.
type Option func(*Model)

// WithTheme overrides the theme.
func WithTheme(t *theme.Theme) Option {
	return func(m *Model) {
		m.theme = t
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.copy = write
	}
}

// New creates an editor over store's current document.
func New(store *prompts.Store, opts ...Option) Model {
	ti := textinput.New()
	ti.CharLimit = 4096
	ti.Width = 40

	m := Model{
		store:         store,
		theme:         theme.DefaultTheme,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		seq:           keymap.NewSequenceState(),
		input:         ti,
		copy:          clipboard.WriteAll,
		currentResult: -1,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

// SetSize sets the size of the component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	bodyHeight := max(height-3, 1)
	if m.ready {
		m.viewport.Width = width
		m.viewport.Height = bodyHeight
	} else {
		m.viewport = viewport.New(width, bodyHeight)
		m.ready = true
	}
	m.help.Width = width
	m.input.Width = max(width-12, 10)
	m.updateContent()
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ReloadMsg:
		m.store.Replace(msg.Snapshot.State())
		m.refresh()
		m.statusMessage = "Reloaded from disk"
		return m, clearStatusAfter()

	case clearStatusMsg:
		m.statusMessage = ""
		m.updateContent()
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, idx := m.seq.Process(msg, m.keys.sequences()...)
	switch result {
	case keymap.SequencePending:
		return m, nil
	case keymap.SequenceMatch:
		m.seq.Clear()
		return m.runSequence(m.keys.sequences()[idx])
	}
	m.seq.Clear()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.moveCursor(-max(m.viewport.Height/2, 1))
	case key.Matches(msg, m.keys.HalfPageDown):
		m.moveCursor(max(m.viewport.Height/2, 1))
	case key.Matches(msg, m.keys.GotoEnd):
		m.moveCursor(len(m.rows))
	case key.Matches(msg, m.keys.Toggle):
		if n := m.selected(); n != nil && n.IsContainer() {
			m.store.ToggleExpanded(n.PathKey())
			m.refresh()
		}
	case key.Matches(msg, m.keys.Fold):
		m.fold()
	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()
	case key.Matches(msg, m.keys.Add):
		return m.startAdd()
	case key.Matches(msg, m.keys.YankAll):
		doc, ok := m.store.CurrentDocument()
		if !ok {
			return m, nil
		}
		return m.yank(doc.Content, "Copied document")
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.input.Prompt = "/"
		m.input.Placeholder = "Search..."
		m.input.SetValue(m.searchQuery)
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.NextResult):
		m.jumpResult(1)
	case key.Matches(msg, m.keys.PrevResult):
		m.jumpResult(-1)
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	}
	return m, nil
}

func (m Model) runSequence(b key.Binding) (tea.Model, tea.Cmd) {
	switch b.Keys()[0] {
	case "gg":
		m.moveCursor(-len(m.rows))
	case "zR":
		m.store.ExpandAll()
		m.refresh()
	case "zM":
		m.store.CollapseAll()
		m.cursor = 0
		m.refresh()
	case "dd":
		n := m.selected()
		if n == nil {
			return m, nil
		}
		if !m.store.DeleteValue(n.Path) {
			m.statusMessage = "Array items cannot be deleted"
			m.updateContent()
			return m, clearStatusAfter()
		}
		m.refresh()
	case "yy":
		if n := m.selected(); n != nil {
			return m.yank(n.Value, "Copied "+n.Path.Key())
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.endInput()
		return m, nil
	case tea.KeyEnter:
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		m.searchQuery = m.input.Value()
		m.performSearch()
		m.updateContent()
	}
	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()

	switch m.mode {
	case modeSearch:
		m.searchQuery = text
		m.performSearch()
		m.jumpResult(0)

	case modeEdit:
		n := m.selected()
		if n != nil {
			m.store.UpdateValue(n.Path, jsondoc.ParseLiteral(text))
		}

	case modeAddKey:
		if strings.TrimSpace(text) == "" {
			m.statusMessage = "Key cannot be empty"
			m.endInput()
			return m, clearStatusAfter()
		}
		m.addKey = text
		m.mode = modeAddValue
		m.input.Prompt = text + ": "
		m.input.Placeholder = "JSON value"
		m.input.SetValue("")
		return m, nil

	case modeAddValue:
		value := jsondoc.ParseLiteral(text)
		var ok bool
		if m.addKey == "" {
			ok = m.store.AddArrayItem(m.addTarget, value)
		} else {
			ok = m.store.AddObjectKey(m.addTarget, m.addKey, value)
		}
		if ok && !m.addTarget.IsRoot() && !m.store.State().Expansion.IsExpanded(m.addTarget.Key()) {
			m.store.ToggleExpanded(m.addTarget.Key())
		}
	}

	m.endInput()
	m.refresh()
	return m, nil
}

func (m *Model) endInput() {
	if m.mode == modeEdit {
		m.store.SetEditingPath(nil)
	}
	m.mode = modeNormal
	m.addKey = ""
	m.addTarget = nil
	m.input.Blur()
	m.input.SetValue("")
	m.updateContent()
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	n := m.selected()
	if n == nil {
		return m, nil
	}
	current, err := jsondoc.Marshal(n.Value)
	if err != nil {
		current = nil
	}
	m.store.SetEditingPath(n.Path)
	m.mode = modeEdit
	m.input.Prompt = n.Path.Key() + " = "
	m.input.Placeholder = "JSON value"
	m.input.SetValue(string(current))
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) startAdd() (tea.Model, tea.Cmd) {
	doc, ok := m.store.CurrentDocument()
	if !ok {
		return m, nil
	}

	target := jsondoc.Path{}
	if n := m.selected(); n != nil {
		if n.IsContainer() {
			target = n.Path
		} else if parent, ok := n.Path.Parent(); ok {
			target = parent
		}
	}

	value, _ := jsondoc.Get(doc.Content, target)
	m.addTarget = target
	if jsondoc.Classify(value) == jsondoc.KindArray {
		m.mode = modeAddValue
		m.input.Prompt = "+ "
		m.input.Placeholder = "JSON value"
	} else {
		m.mode = modeAddKey
		m.input.Prompt = "key: "
		m.input.Placeholder = "name"
	}
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m Model) yank(v any, status string) (tea.Model, tea.Cmd) {
	var text string
	if s, ok := v.(string); ok {
		text = s
	} else {
		data, err := jsondoc.MarshalIndent(v, "", "  ")
		if err != nil {
			m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
			return m, clearStatusAfter()
		}
		text = string(data)
	}
	if err := m.copy(text); err != nil {
		m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
	} else {
		m.statusMessage = status
	}
	m.updateContent()
	return m, clearStatusAfter()
}

// fold collapses the selected container, or moves to the parent row when
// the selection is a leaf or already collapsed.
func (m *Model) fold() {
	n := m.selected()
	if n == nil {
		return
	}
	if n.IsContainer() && n.Expanded && m.store.State().Expansion.Has(n.PathKey()) {
		m.store.ToggleExpanded(n.PathKey())
		m.refresh()
		return
	}
	parent, ok := n.Path.Parent()
	if !ok || parent.IsRoot() {
		return
	}
	for i, row := range m.rows {
		if row.Node.Path.Equal(parent) {
			m.cursor = i
			m.syncSelection()
			m.updateContent()
			return
		}
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	m.syncSelection()
	m.updateContent()
}

func (m *Model) jumpResult(delta int) {
	if len(m.searchResults) == 0 {
		m.currentResult = -1
		m.updateContent()
		return
	}
	if m.currentResult < 0 {
		m.currentResult = 0
	} else {
		n := len(m.searchResults)
		m.currentResult = ((m.currentResult+delta)%n + n) % n
	}
	m.cursor = m.searchResults[m.currentResult]
	m.syncSelection()
	m.updateContent()
}

func (m *Model) performSearch() {
	m.searchResults = tree.Search(m.rows, m.searchQuery)
	if len(m.searchResults) == 0 {
		m.currentResult = -1
	} else if m.currentResult >= len(m.searchResults) {
		m.currentResult = len(m.searchResults) - 1
	}
}

// refresh re-projects the current document and keeps the cursor on the
// same path when it is still visible.
func (m *Model) refresh() {
	var selectedPath jsondoc.Path
	if n := m.selected(); n != nil {
		selectedPath = n.Path
	} else {
		selectedPath = m.store.State().SelectedPath
	}

	m.rows = tree.Flatten(m.store.Project())
	m.arrayPaths = make(map[string]bool)
	for _, row := range m.rows {
		if row.Node.Kind == jsondoc.KindArray {
			m.arrayPaths[row.Node.PathKey()] = true
		}
	}

	if selectedPath != nil {
		for i, row := range m.rows {
			if row.Node.Path.Equal(selectedPath) {
				m.cursor = i
				break
			}
		}
	}
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))

	if m.searchQuery != "" {
		m.performSearch()
	}
	m.syncSelection()
	m.updateContent()
}

func (m *Model) syncSelection() {
	if n := m.selected(); n != nil {
		m.store.SetSelectedPath(n.Path)
	}
}

func (m Model) selected() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Node
}

// Selected returns the node under the cursor, if any.
func (m Model) Selected() (*tree.Node, bool) {
	n := m.selected()
	return n, n != nil
}

func clearStatusAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// updateContent renders the rows into the viewport.
func (m *Model) updateContent() {
	if !m.ready {
		return
	}

	lines := make([]string, len(m.rows))
	for i, row := range m.rows {
		lines[i] = m.renderRow(row, i == m.cursor, m.isSearchResult(i))
	}
	if len(lines) == 0 {
		lines = []string{m.theme.Muted.Render("  (empty document, press a to add a key)")}
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) isSearchResult(idx int) bool {
	for _, r := range m.searchResults {
		if r == idx {
			return true
		}
	}
	return false
}

func (m *Model) renderRow(row tree.Row, selected, match bool) string {
	n := row.Node
	t := m.theme

	icon := "  "
	if n.IsContainer() {
		icon = "▸ "
		if n.Expanded {
			icon = "▾ "
		}
	}

	label := n.Key
	if parent, ok := n.Path.Parent(); ok && m.isArray(parent) {
		label = "[" + n.Key + "]"
	}
	keyStyle := t.Key
	if match {
		keyStyle = t.Highlight
	}

	var value string
	if n.IsContainer() {
		value = t.Summary.Render(jsondoc.FormatForDisplay(n.Value))
	} else {
		value = t.ValueStyle(n.Kind).Render(jsondoc.FormatForDisplay(n.Value))
	}

	line := t.Guide.Render(strings.Repeat("│ ", row.Depth)) + icon + keyStyle.Render(label) + ": " + value
	if selected {
		return t.Selected.Render(line)
	}
	return line
}

func (m *Model) isArray(p jsondoc.Path) bool {
	if p.IsRoot() {
		return false
	}
	return m.arrayPaths[p.Key()]
}

// View renders the editor.
func (m Model) View() string {
	if !m.ready {
		return ""
	}

	var header string
	if doc, ok := m.store.CurrentDocument(); ok {
		header = m.theme.Title.Render(doc.Name) + " " + m.theme.Muted.Render(doc.ID)
	} else {
		header = m.theme.Muted.Render("No current document")
	}

	var footer string
	switch {
	case m.mode != modeNormal:
		footer = m.input.View()
	case m.statusMessage != "":
		footer = m.theme.Info.Render(m.statusMessage)
	case m.searchQuery != "" && len(m.searchResults) > 0:
		footer = m.theme.Muted.Render(fmt.Sprintf("/%s  %d/%d", m.searchQuery, m.currentResult+1, len(m.searchResults)))
	default:
		footer = m.help.View(m.keys)
	}

	return header + "\n" + m.viewport.View() + "\n" + footer
}
