// Package frontmatter splits and joins markdown files that start with a YAML
// frontmatter block delimited by "---" lines.
package frontmatter

import (
	"bufio"
	"bytes"
	"strings"
)

const delimiter = "---"

// Split separates the frontmatter of a markdown file from its body. When the
// file does not open with a delimiter line, or the block is never closed,
// ok is false and body is the whole input.
func Split(data []byte) (front, body []byte, ok bool) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	offset := 0
	lineEnd := func(line string) {
		offset += len(line)
		if offset < len(data) && data[offset] == '\r' {
			offset++
		}
		if offset < len(data) && data[offset] == '\n' {
			offset++
		}
	}

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != delimiter {
		return nil, data, false
	}
	lineEnd(scanner.Text())
	start := offset

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(strings.TrimSuffix(line, "\r")) == delimiter {
			front = data[start:offset]
			lineEnd(line)
			return front, data[offset:], true
		}
		lineEnd(line)
	}
	return nil, data, false
}

// Join renders front as a frontmatter block followed by body. An empty
// front yields body unchanged.
func Join(front, body []byte) []byte {
	if len(bytes.TrimSpace(front)) == 0 {
		return body
	}
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(front)
	if !bytes.HasSuffix(front, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString(delimiter + "\n")
	buf.Write(body)
	return buf.Bytes()
}
