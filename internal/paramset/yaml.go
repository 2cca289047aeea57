package paramset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tx2_40_hb.yaml
var defaultTableYAML []byte

var (
	defaultOnce  sync.Once
	defaultTable Table
)

// Default returns the built-in TX2-40 HB parameter table. The embedded
// document is parsed once; a parse failure is a build defect and panics.
func Default() Table {
	defaultOnce.Do(func() {
		t, err := ParseTable(bytes.NewReader(defaultTableYAML))
		if err != nil {
			panic(fmt.Sprintf("embedded parameter table is invalid: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// ParseTable reads a YAML mapping of parameter names to numbers. Document
// order becomes table order and every key passes through CanonicalName.
// An empty document yields an empty table.
func ParseTable(r io.Reader) (Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, nil
		}
		return Table{}, fmt.Errorf("failed to decode parameter table: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Table{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return Table{}, fmt.Errorf("parameter table must be a mapping (line %d)", root.Line)
	}

	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return Table{}, fmt.Errorf("line %d: parameter name must be a scalar", k.Line)
		}
		if v.Kind != yaml.ScalarNode {
			return Table{}, fmt.Errorf("line %d: value of %q must be a number", v.Line, k.Value)
		}
		var f float64
		if err := v.Decode(&f); err != nil {
			return Table{}, fmt.Errorf("line %d: value of %q must be a number: %w", v.Line, k.Value, err)
		}
		entries = append(entries, Entry{Name: CanonicalName(k.Value), Value: f})
	}
	return NewTable(entries...)
}

// LoadTableFile parses the table stored at path.
func LoadTableFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open parameter table: %w", err)
	}
	defer f.Close()

	t, err := ParseTable(f)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// MarshalYAML encodes the table as an ordered mapping.
func (t Table) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range t.entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: formatValue(e.Value)},
		)
	}
	return node, nil
}

// WriteTable encodes t to w in the format ParseTable reads.
func WriteTable(w io.Writer, t Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("failed to encode parameter table: %w", err)
	}
	return enc.Close()
}

// SaveTableFile writes t to path, replacing any existing file.
func SaveTableFile(path string, t Table) error {
	var buf bytes.Buffer
	if err := WriteTable(&buf, t); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write parameter table: %w", err)
	}
	return nil
}

func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
