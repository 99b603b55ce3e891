package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// decodeJSONNode builds a yaml node tree from JSON text. Keys keep their order and every node carries the line it
// starts on, so JSON and YAML files decode the same way. Escapes only JSON knows, such as "\/", are handled by the
// JSON tokenizer.
func decodeJSONNode(content []byte) (*yaml.Node, error) {
	d := &jsonNodeDecoder{dec: json.NewDecoder(bytes.NewReader(content)), content: content}
	d.dec.UseNumber()

	root, err := d.value()
	if err != nil {
		return nil, err
	}
	if _, err := d.dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}

	return &yaml.Node{Kind: yaml.DocumentNode, Line: root.Line, Column: root.Column, Content: []*yaml.Node{root}}, nil
}

type jsonNodeDecoder struct {
	dec     *json.Decoder
	content []byte
}

// position returns the line and column of the next token.
func (d *jsonNodeDecoder) position() (int, int) {
	offset := int(d.dec.InputOffset())
	rest := d.content[offset:]
	offset += len(rest) - len(bytes.TrimLeft(rest, " \t\r\n,:"))

	before := d.content[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	column := offset - bytes.LastIndexByte(before, '\n')
	return line, column
}

func (d *jsonNodeDecoder) value() (*yaml.Node, error) {
	line, column := d.position()
	tok, err := d.dec.Token()
	if err != nil {
		return nil, err
	}
	node := &yaml.Node{Line: line, Column: column}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			node.Kind, node.Tag = yaml.MappingNode, "!!map"
			for d.dec.More() {
				keyLine, keyColumn := d.position()
				keyTok, err := d.dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("line %d: expected object key", keyLine)
				}
				value, err := d.value()
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key, Line: keyLine, Column: keyColumn},
					value)
			}
		case '[':
			node.Kind, node.Tag = yaml.SequenceNode, "!!seq"
			for d.dec.More() {
				item, err := d.value()
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, item)
			}
		default:
			return nil, fmt.Errorf("line %d: unexpected %q", line, v)
		}
		// closing delimiter
		if _, err := d.dec.Token(); err != nil {
			return nil, err
		}
	case string:
		node.Kind, node.Tag, node.Value, node.Style = yaml.ScalarNode, "!!str", v, yaml.DoubleQuotedStyle
	case json.Number:
		node.Kind, node.Value = yaml.ScalarNode, v.String()
		node.Tag = "!!int"
		if strings.ContainsAny(node.Value, ".eE") {
			node.Tag = "!!float"
		}
	case bool:
		node.Kind, node.Tag, node.Value = yaml.ScalarNode, "!!bool", fmt.Sprint(v)
	case nil:
		node.Kind, node.Tag, node.Value = yaml.ScalarNode, "!!null", "null"
	}

	return node, nil
}
