package prompts

import (
	"bytes"
	"strings"

	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/pkg/jsondoc"
	"github.com/grovetools/prompts/util/frontmatter"
	"gopkg.in/yaml.v3"
)

// Format names a serialization for document content.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// TemplateKey holds the body of a markdown prompt file. The remaining keys
// of the document form its frontmatter. A blank template stays in the
// frontmatter so it survives a round trip.
const TemplateKey = "template"

// ParseFormat resolves a user supplied format name. "yml" and "md" are
// accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", errors.UnknownFormat(name)
}

// FormatForPath guesses the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".markdown"):
		return FormatMarkdown
	}
	return FormatJSON
}

// Export serializes a document's content. JSON output is indented with two
// spaces and keeps key order.
func Export(doc Document, format Format) ([]byte, error) {
	content := doc.Content
	if content == nil {
		content = jsondoc.NewObject()
	}

	switch format {
	case FormatJSON:
		data, err := jsondoc.MarshalIndent(content, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode document").
				WithDetail("id", doc.ID)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := encodeYAML(content)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode document").
				WithDetail("id", doc.ID)
		}
		return data, nil
	case FormatMarkdown:
		front := content
		var body string
		if tmpl, ok := content.Get(TemplateKey); ok {
			if str, isString := tmpl.(string); isString && strings.TrimSpace(str) != "" {
				body = str
				front = jsondoc.Delete(content, jsondoc.Path{TemplateKey}).(*jsondoc.Object)
			}
		}
		var header []byte
		if front.Len() > 0 {
			var err error
			if header, err = encodeYAML(front); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode document").
					WithDetail("id", doc.ID)
			}
		}
		return frontmatter.Join(header, []byte(body)), nil
	}
	return nil, errors.UnknownFormat(string(format))
}

func encodeYAML(content *jsondoc.Object) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(jsondoc.ToYAMLNode(content)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import decodes document content. The decoded root must be an object.
func Import(data []byte, format Format) (*jsondoc.Object, error) {
	switch format {
	case FormatJSON:
		return jsondoc.ParseObject(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatMarkdown:
		front, body, ok := frontmatter.Split(data)
		content := jsondoc.NewObject()
		if ok {
			var err error
			if content, err = decodeYAML(front); err != nil {
				return nil, err
			}
		}
		if strings.TrimSpace(string(body)) != "" {
			content = jsondoc.Set(content, jsondoc.Path{TemplateKey}, string(body)).(*jsondoc.Object)
		}
		return content, nil
	}
	return nil, errors.UnknownFormat(string(format))
}

func decodeYAML(data []byte) (*jsondoc.Object, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidJSON, "invalid YAML")
	}
	if node.Kind == 0 {
		return jsondoc.NewObject(), nil
	}
	v, err := jsondoc.FromYAMLNode(&node)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidJSON, "invalid YAML")
	}
	if v == nil {
		return jsondoc.NewObject(), nil
	}
	obj, ok := v.(*jsondoc.Object)
	if !ok {
		return nil, errors.InvalidContent(string(jsondoc.Classify(v)))
	}
	return obj, nil
}
