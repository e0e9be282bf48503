package formtree

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Snapshot is a point-in-time, serializable copy of a subtree's state.
// Group children keep their insertion order in both YAML and JSON
// output.
type Snapshot struct {
	Kind     Kind
	Disabled bool

	// Field state.
	Value   any
	Touched bool
	Valid   bool

	// Group state.
	Keys     []string
	Children map[string]*Snapshot
}

// Take copies the current state of node and its descendants.
func Take(node Node) *Snapshot {
	switch n := node.(type) {
	case *Group:
		snap := &Snapshot{
			Kind:     KindGroup,
			Disabled: n.disabled,
			Keys:     n.Keys(),
			Children: make(map[string]*Snapshot, len(n.order)),
		}
		for _, key := range n.order {
			snap.Children[key] = Take(n.children[key])
		}
		return snap
	case *Field:
		return &Snapshot{
			Kind:     KindField,
			Disabled: n.disabled,
			Value:    n.value,
			Touched:  n.touched,
			Valid:    n.valid,
		}
	default:
		return &Snapshot{
			Kind:     node.Kind(),
			Disabled: node.Disabled(),
		}
	}
}

// MarshalYAML emits the snapshot as a mapping. Group children are a
// nested mapping in insertion order.
func (s *Snapshot) MarshalYAML() (any, error) {
	return s.yamlNode()
}

func (s *Snapshot) yamlNode() (*yaml.Node, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	put := func(key string, value any) error {
		k := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		v := &yaml.Node{}
		if value == nil {
			v.Kind = yaml.ScalarNode
			v.Tag = "!!null"
			v.Value = "null"
		} else if err := v.Encode(value); err != nil {
			return err
		}
		root.Content = append(root.Content, k, v)
		return nil
	}

	if err := put("kind", s.Kind.String()); err != nil {
		return nil, err
	}
	if err := put("disabled", s.Disabled); err != nil {
		return nil, err
	}

	if s.Kind == KindField {
		if err := put("value", s.Value); err != nil {
			return nil, err
		}
		if err := put("touched", s.Touched); err != nil {
			return nil, err
		}
		if err := put("valid", s.Valid); err != nil {
			return nil, err
		}
		return root, nil
	}

	children := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range s.Keys {
		child, err := s.Children[key].yamlNode()
		if err != nil {
			return nil, err
		}
		children.Content = append(children.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key}, child)
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "children"}, children)
	return root, nil
}

// MarshalJSON emits the snapshot as an object. Group children are a
// nested object in insertion order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Snapshot) writeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	buf.WriteString(`"kind":`)
	writeJSONString(buf, s.Kind.String())
	buf.WriteString(`,"disabled":`)
	writeJSONBool(buf, s.Disabled)

	if s.Kind == KindField {
		value, err := json.Marshal(s.Value)
		if err != nil {
			return err
		}
		buf.WriteString(`,"value":`)
		buf.Write(value)
		buf.WriteString(`,"touched":`)
		writeJSONBool(buf, s.Touched)
		buf.WriteString(`,"valid":`)
		writeJSONBool(buf, s.Valid)
		buf.WriteByte('}')
		return nil
	}

	buf.WriteString(`,"children":{`)
	for i, key := range s.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, key)
		buf.WriteByte(':')
		if err := s.Children[key].writeJSON(buf); err != nil {
			return err
		}
	}
	buf.WriteString("}}")
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

func writeJSONBool(buf *bytes.Buffer, b bool) {
	if b {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}
}
