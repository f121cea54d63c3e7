package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/prompts/logging"
	"github.com/grovetools/prompts/pkg/prompts"
	"github.com/grovetools/prompts/tui"
	"github.com/grovetools/prompts/tui/components/jsontree"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive tree editor",
		Long: `Open the current document in a full screen tree editor.

Edits are saved as they happen unless storage.auto_save is false, in which
case they are saved on exit. Changes written to the snapshot by another
process are picked up while the editor is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			doc, err := s.resolve(docRef(cmd))
			if err != nil {
				return err
			}
			loaded := prompts.SnapshotOf(s.store.State())
			s.store.SetCurrentDocument(doc.ID)
			if s.cfg.Editor.DefaultExpandAll {
				s.store.ExpandAll()
			}
			return runEditor(cmd.Context(), s, loaded)
		},
	}
	documentFlag(cmd)
	return cmd
}

// snapshotSaver persists store states, skipping writes whose persisted
// form matches what was last written or loaded.
type snapshotSaver struct {
	path   string
	logger *logrus.Entry

	mu   sync.Mutex
	last []byte
}

// newSnapshotSaver starts from the snapshot currently on disk.
func newSnapshotSaver(path string, logger *logrus.Entry, onDisk prompts.Snapshot) *snapshotSaver {
	s := &snapshotSaver{path: path, logger: logger}
	s.last, _ = snapshotBytes(onDisk)
	return s
}

func snapshotBytes(snap prompts.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

// Save writes state unless it is unchanged. It reports whether a write
// happened.
func (s *snapshotSaver) Save(state prompts.State) (bool, error) {
	data, err := snapshotBytes(prompts.SnapshotOf(state))
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bytes.Equal(data, s.last) {
		return false, nil
	}
	if err := prompts.SaveSnapshot(s.path, state); err != nil {
		return false, err
	}
	s.last = data
	s.logger.WithField("path", s.path).Debug("Saved snapshot")
	return true, nil
}

// Observe records a snapshot read from disk. It reports false when the
// snapshot is the one this saver wrote last, which means the change event
// was our own.
func (s *snapshotSaver) Observe(snap prompts.Snapshot) bool {
	data, err := snapshotBytes(snap)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bytes.Equal(data, s.last) {
		return false
	}
	s.last = data
	return true
}

// editorApp wraps the tree editor and quits when it asks to go back.
type editorApp struct {
	editor jsontree.Model
}

func (a editorApp) Init() tea.Cmd {
	return a.editor.Init()
}

func (a editorApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jsontree.BackMsg:
		return a, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}
	next, cmd := a.editor.Update(msg)
	a.editor = next.(jsontree.Model)
	return a, cmd
}

func (a editorApp) View() string {
	return a.editor.View()
}

func runEditor(ctx context.Context, s *session, onDisk prompts.Snapshot) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tui.InitializeTUI()
	logging.SetGlobalOutput(io.Discard)
	defer logging.SetGlobalOutput(os.Stderr)

	saver := newSnapshotSaver(s.path, s.logger, onDisk)
	autoSave := s.cfg.AutoSaveEnabled()
	if autoSave {
		unsubscribe := s.store.Subscribe(func(state prompts.State) {
			if _, err := saver.Save(state); err != nil {
				s.logger.WithError(err).Error("Auto-save failed")
			}
		})
		defer unsubscribe()
		// Persist the session's own changes, such as the current document.
		if _, err := saver.Save(s.store.State()); err != nil {
			return err
		}
	}

	p := tea.NewProgram(editorApp{editor: jsontree.New(s.store)}, tea.WithAltScreen(), tea.WithContext(ctx))

	debounce := time.Duration(s.cfg.Storage.WatchDebounceMs) * time.Millisecond
	watcher, err := prompts.NewSnapshotWatcher(s.path, debounce, func(snap prompts.Snapshot) {
		if saver.Observe(snap) {
			p.Send(jsontree.ReloadMsg{Snapshot: snap})
		}
	})
	if err != nil {
		s.logger.WithError(err).Warn("Snapshot watching disabled")
	} else {
		go watcher.Start(ctx)
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil && err != tea.ErrProgramKilled {
		return err
	}

	if !autoSave {
		if _, err := saver.Save(s.store.State()); err != nil {
			return err
		}
	}
	return nil
}
