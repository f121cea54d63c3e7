package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/grovetools/prompts/errors"
	"gopkg.in/yaml.v3"
)

// Parse decodes JSON text into the value model. Object key order is kept.
// Numbers are float64; a number outside the float64 range, such as 1e400,
// is rejected as invalid JSON naming the offending literal.
func Parse(data []byte) (any, error) {
	if !json.Valid(data) {
		// Let encoding/json describe what is wrong with the input.
		var probe any
		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = fmt.Errorf("malformed JSON")
		}
		return nil, errors.InvalidJSON(err)
	}

	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.InvalidJSON(err)
	}
	v, err := decodeValue(raw, dataType)
	if err != nil {
		return nil, errors.InvalidJSON(err)
	}
	return v, nil
}

// ParseObject decodes JSON text whose root must be an object.
func ParseObject(data []byte) (*Object, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, errors.InvalidContent(string(Classify(v)))
	}
	return obj, nil
}

// ParseLiteral interprets s as a JSON literal when it is one, and as a plain
// string otherwise. It is used for values typed by a user.
func ParseLiteral(s string) any {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	v, err := Parse([]byte(trimmed))
	if err != nil {
		return s
	}
	return v
}

func decodeValue(raw []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Object:
		obj := NewObject()
		err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, vt jsonparser.ValueType, _ int) error {
			v, err := decodeValue(value, vt)
			if err != nil {
				return err
			}
			obj.Set(string(key), v)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil

	case jsonparser.Array:
		arr := []any{}
		var itemErr error
		_, err := jsonparser.ArrayEach(raw, func(value []byte, vt jsonparser.ValueType, _ int, err error) {
			if itemErr != nil {
				return
			}
			if err != nil {
				itemErr = err
				return
			}
			v, err := decodeValue(value, vt)
			if err != nil {
				itemErr = err
				return
			}
			arr = append(arr, v)
		})
		if err != nil {
			return nil, err
		}
		if itemErr != nil {
			return nil, itemErr
		}
		return arr, nil

	case jsonparser.String:
		return jsonparser.ParseString(raw)
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(raw)
		if err != nil {
			return nil, fmt.Errorf("number %s is out of range for a 64-bit float", raw)
		}
		return f, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(raw)
	case jsonparser.Null:
		return nil, nil
	}
	return nil, fmt.Errorf("unexpected JSON value type %s", dataType)
}

// Marshal encodes v as compact JSON text, keeping object key order.
// HTML characters are not escaped.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, Normalize(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case *Object:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		first := true
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeString(buf, pair.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, Normalize(pair.Value)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, Normalize(item)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case string:
		return writeString(buf, t)
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case float64:
		buf.WriteString(FormatNumber(t))
	default:
		return fmt.Errorf("cannot encode %T as JSON", v)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// ToPlain converts ordered values into map[string]any and []any, for
// libraries that only understand plain Go values.
func ToPlain(v any) any {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return nil
		}
		out := make(map[string]any, t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = ToPlain(pair.Value)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = ToPlain(item)
		}
		return out
	}
	return v
}

// ToYAMLNode builds a YAML node tree for v, keeping object key order.
func ToYAMLNode(v any) *yaml.Node {
	v = Normalize(v)
	switch Classify(v) {
	case KindObject:
		obj := v.(*Object)
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
				ToYAMLNode(pair.Value))
		}
		return n
	case KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.([]any) {
			n.Content = append(n.Content, ToYAMLNode(item))
		}
		return n
	case KindNumber:
		f := v.(float64)
		tag := "!!float"
		if f == float64(int64(f)) {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: FormatNumber(f)}
	case KindBoolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprintf("%t", v)}
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprintf("%v", v)}
}

// FromYAMLNode converts a YAML node tree into the value model.
func FromYAMLNode(n *yaml.Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return FromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(n.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := FromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(n.Content[i].Value, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := FromYAMLNode(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool", "!!int", "!!float":
			var v any
			if err := n.Decode(&v); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return Normalize(v), nil
		}
		return n.Value, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}
