// Package document implements the record-store text format: an optional
// YAML header block fenced by --- delimiter lines, followed by a free-text
// Markdown body whose named sections hold bullet lists.
package document

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	openDelim  = "---\n"
	closeDelim = "\n---\n"
)

// Field is one header key/value pair. Encode writes fields in the order
// given, so callers control the on-disk key layout.
type Field struct {
	Key   string
	Value string
}

// Document is the decoded form of a record file.
type Document struct {
	Header map[string]string
	Body   string
	// Degraded reports that an opening delimiter was present but the
	// header could not be decoded, so the whole input was kept as Body.
	Degraded bool
}

// Decode splits raw content into a header mapping and a body. A document
// either starts with a fenced YAML header or has no header at all; a
// malformed or unterminated header degrades to an empty header with the
// entire content as body. Decode never fails.
func Decode(data []byte) Document {
	content := string(data)
	if !strings.HasPrefix(content, openDelim) {
		return Document{Header: map[string]string{}, Body: content}
	}
	end := strings.Index(content[len(openDelim):], closeDelim)
	if end < 0 {
		return Document{Header: map[string]string{}, Body: content, Degraded: true}
	}
	block := content[len(openDelim) : len(openDelim)+end]
	body := content[len(openDelim)+end+len(closeDelim):]

	header, ok := decodeHeader([]byte(block))
	if !ok {
		return Document{Header: map[string]string{}, Body: content, Degraded: true}
	}
	return Document{Header: header, Body: body}
}

// decodeHeader reads the YAML block into a flat string map. Values are
// taken from the raw scalar nodes so their literal text survives; the
// YAML type resolver never coerces dates or numbers. Null and non-scalar
// values are treated as absent keys.
func decodeHeader(block []byte) (map[string]string, bool) {
	var root yaml.Node
	if err := yaml.Unmarshal(block, &root); err != nil {
		return nil, false
	}
	if len(root.Content) == 0 {
		return map[string]string{}, true
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, false
	}
	header := make(map[string]string, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, val := mapping.Content[i], mapping.Content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			continue
		}
		if val.Tag == "!!null" {
			continue
		}
		header[key.Value] = val.Value
	}
	return header, true
}

// Encode renders the header fields between --- delimiters followed by the
// body. Fields keep their given order and empty values are omitted
// entirely. Output is byte-for-byte deterministic for the same inputs, so
// Decode(Encode(fields, body)) reproduces the field map and body exactly.
func Encode(fields []Field, body string) []byte {
	var b strings.Builder
	b.WriteString(openDelim)
	b.Write(encodeHeader(fields))
	b.WriteString("---\n")
	b.WriteString(body)
	return []byte(b.String())
}

func encodeHeader(fields []Field) []byte {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Value},
		)
	}
	out, err := yaml.Marshal(mapping)
	if err != nil {
		// A flat scalar mapping cannot fail to encode.
		panic("document: encode header: " + err.Error())
	}
	return out
}
