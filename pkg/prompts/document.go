// Package prompts holds prompt documents and the store that edits them.
package prompts

import (
	"encoding/json"
	"time"

	"github.com/grovetools/prompts/pkg/jsondoc"
)

// Document is a named prompt whose content is an arbitrary JSON object.
type Document struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description,omitempty" validate:"max=2000"`
	Content     *jsondoc.Object `json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" validate:"gtefield=CreatedAt"`
}

// DocumentPatch lists the fields to change on a document. Nil fields are
// left untouched.
type DocumentPatch struct {
	Name        *string
	Description *string
	Content     *jsondoc.Object
}

// IsEmpty reports whether the patch changes nothing.
func (p DocumentPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Content == nil
}

// apply returns a copy of d with the patch merged in. The content object is
// replaced, not merged.
func (p DocumentPatch) apply(d Document) Document {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Content != nil {
		d.Content = p.Content
	}
	return d
}

// Get reads the value at path from the document content.
func (d Document) Get(path jsondoc.Path) (any, bool) {
	return jsondoc.Get(d.Content, path)
}

type documentJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Content     json.RawMessage `json:"content"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// MarshalJSON encodes the document with its content in key order.
func (d Document) MarshalJSON() ([]byte, error) {
	content := d.Content
	if content == nil {
		content = jsondoc.NewObject()
	}
	raw, err := jsondoc.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(documentJSON{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Content:     raw,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	})
}

// UnmarshalJSON decodes a document, keeping the content's key order.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	content := jsondoc.NewObject()
	if len(raw.Content) > 0 && string(raw.Content) != "null" {
		obj, err := jsondoc.ParseObject(raw.Content)
		if err != nil {
			return err
		}
		content = obj
	}
	*d = Document{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Content:     content,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
	}
	return nil
}
