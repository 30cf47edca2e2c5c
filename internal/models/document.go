package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// NodeKind identifies the variant of a DocumentNode
type NodeKind int

const (
	KindText NodeKind = iota
	KindObject
	KindArray
	KindOther
)

// DocumentNode is one node of a rich-text document such as an Atlassian
// Document Format description. It is one of TextNode, ObjectNode, ArrayNode
// or OtherNode.
type DocumentNode interface {
	Kind() NodeKind
}

// TextNode is a bare JSON string
type TextNode struct {
	Text string
}

// ObjectNode is a JSON object. Text is set only when the object has a string
// "text" member; Content holds the parsed "content" member when present.
type ObjectNode struct {
	Type    string
	Text    *string
	Content DocumentNode
	Raw     json.RawMessage
}

// ArrayNode is a JSON array
type ArrayNode struct {
	Items []DocumentNode
}

// OtherNode is a number, boolean or null
type OtherNode struct {
	Raw json.RawMessage
}

func (TextNode) Kind() NodeKind   { return KindText }
func (ObjectNode) Kind() NodeKind { return KindObject }
func (ArrayNode) Kind() NodeKind  { return KindArray }
func (OtherNode) Kind() NodeKind  { return KindOther }

// ParseDocument builds a node tree from raw JSON. Empty input yields a nil node.
func ParseDocument(raw json.RawMessage) (DocumentNode, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("failed to parse text node: %w", err)
		}
		return TextNode{Text: s}, nil

	case '{':
		var members map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &members); err != nil {
			return nil, fmt.Errorf("failed to parse object node: %w", err)
		}
		node := ObjectNode{Raw: append(json.RawMessage(nil), trimmed...)}
		if t, ok := members["type"]; ok {
			_ = json.Unmarshal(t, &node.Type)
		}
		if t, ok := members["text"]; ok {
			var s string
			if err := json.Unmarshal(t, &s); err == nil {
				node.Text = &s
			}
		}
		if c, ok := members["content"]; ok {
			content, err := ParseDocument(c)
			if err != nil {
				return nil, err
			}
			node.Content = content
		}
		return node, nil

	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return nil, fmt.Errorf("failed to parse array node: %w", err)
		}
		items := make([]DocumentNode, 0, len(elements))
		for _, element := range elements {
			item, err := ParseDocument(element)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return ArrayNode{Items: items}, nil

	default:
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid document JSON: %.40s", trimmed)
		}
		return OtherNode{Raw: append(json.RawMessage(nil), trimmed...)}, nil
	}
}

// ExtractText flattens a document into plain text. Every text value is
// followed by one space in depth-first order, and the result is trimmed. A
// bare string is returned unchanged; an object with neither text nor a
// content collection falls back to its compact JSON. A root object with only
// a string text, or with an object-valued content, is walked rather than
// falling back, and so is a root array.
func ExtractText(node DocumentNode) string {
	switch n := node.(type) {
	case nil:
		return ""
	case TextNode:
		return n.Text
	case OtherNode:
		if string(n.Raw) == "null" {
			return ""
		}
		return string(n.Raw)
	case ObjectNode:
		if n.Text == nil && !isCollection(n.Content) {
			return compactJSON(n.Raw)
		}
	}

	var text strings.Builder
	appendText(&text, node)
	return strings.TrimSpace(text.String())
}

// ExtractTextFromJSON parses raw and extracts its text. Unparsable input is
// returned as-is so a description is never lost.
func ExtractTextFromJSON(raw json.RawMessage) string {
	node, err := ParseDocument(raw)
	if err != nil {
		return strings.TrimSpace(string(raw))
	}
	return ExtractText(node)
}

func appendText(text *strings.Builder, node DocumentNode) {
	switch n := node.(type) {
	case ArrayNode:
		for _, item := range n.Items {
			appendText(text, item)
		}
	case ObjectNode:
		if n.Text != nil {
			text.WriteString(*n.Text)
			text.WriteString(" ")
		}
		if isCollection(n.Content) {
			appendText(text, n.Content)
		}
	}
}

func isCollection(node DocumentNode) bool {
	if node == nil {
		return false
	}
	k := node.Kind()
	return k == KindObject || k == KindArray
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
