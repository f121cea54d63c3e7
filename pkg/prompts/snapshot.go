package prompts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/pkg/jsontree"
	"github.com/grovetools/prompts/pkg/paths"
)

// SnapshotVersion is written into every snapshot file.
const SnapshotVersion = 1

// Snapshot is the persisted part of State. Selection and editing cursors
// are session-only and are not saved.
type Snapshot struct {
	Version           int                `json:"version"`
	Documents         []Document         `json:"documents" validate:"dive"`
	CurrentDocumentID string             `json:"currentDocumentId,omitempty"`
	Expansion         jsontree.Expansion `json:"expansion"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// SnapshotOf extracts the persisted fields of s.
func SnapshotOf(s State) Snapshot {
	docs := s.Documents
	if docs == nil {
		docs = []Document{}
	}
	return Snapshot{
		Version:           SnapshotVersion,
		Documents:         docs,
		CurrentDocumentID: s.CurrentDocumentID,
		Expansion:         s.Expansion,
	}
}

// State rebuilds an editor state from the snapshot. A current id that no
// longer names a document is dropped.
func (snap Snapshot) State() State {
	s := State{
		Documents:         snap.Documents,
		CurrentDocumentID: snap.CurrentDocumentID,
		Expansion:         snap.Expansion,
	}
	if s.indexOf(s.CurrentDocumentID) < 0 {
		s.CurrentDocumentID = ""
	}
	return s
}

// Validate checks document metadata and id uniqueness.
func (snap Snapshot) Validate() error {
	if err := validate.Struct(snap); err != nil {
		return errors.Wrap(err, errors.ErrCodeDocumentInvalid, "invalid document in snapshot")
	}
	seen := make(map[string]bool, len(snap.Documents))
	for _, d := range snap.Documents {
		if seen[d.ID] {
			return errors.New(errors.ErrCodeDocumentInvalid, fmt.Sprintf("duplicate document id '%s'", d.ID)).
				WithDetail("id", d.ID)
		}
		seen[d.ID] = true
	}
	return nil
}

// ValidateDocument checks a single document's metadata.
func ValidateDocument(d Document) error {
	if err := validate.Struct(d); err != nil {
		return errors.Wrap(err, errors.ErrCodeDocumentInvalid, "invalid document").
			WithDetail("id", d.ID)
	}
	return nil
}

// DefaultSnapshotPath returns the snapshot location used when none is
// configured, normally $XDG_DATA_HOME/grove/prompts/store.json.
func DefaultSnapshotPath() string {
	return paths.SnapshotFile()
}

// LoadSnapshot reads a snapshot file. A missing file yields an empty
// snapshot.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{Version: SnapshotVersion, Documents: []Document{}}, nil
		}
		return Snapshot{}, errors.SnapshotFailed(errors.ErrCodeSnapshotRead, path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.SnapshotFailed(errors.ErrCodeSnapshotRead, path, err)
	}
	if snap.Version > SnapshotVersion {
		return Snapshot{}, errors.New(errors.ErrCodeSnapshotRead,
			fmt.Sprintf("snapshot version %d is newer than supported version %d", snap.Version, SnapshotVersion)).
			WithDetail("path", path)
	}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// SaveSnapshot writes the persisted part of s to path. The file is written
// to a temporary sibling first and renamed into place.
func SaveSnapshot(path string, s State) error {
	data, err := json.MarshalIndent(SnapshotOf(s), "", "  ")
	if err != nil {
		return errors.SnapshotFailed(errors.ErrCodeSnapshotWrite, path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.SnapshotFailed(errors.ErrCodeSnapshotWrite, path, err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.json")
	if err != nil {
		return errors.SnapshotFailed(errors.ErrCodeSnapshotWrite, path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.SnapshotFailed(errors.ErrCodeSnapshotWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.SnapshotFailed(errors.ErrCodeSnapshotWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.SnapshotFailed(errors.ErrCodeSnapshotWrite, path, err)
	}
	return nil
}
