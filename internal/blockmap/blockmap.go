// File: internal/blockmap/blockmap.go
package blockmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

const (
	modelSection = "//Model uuids"
	portSection  = "//Port uuids"
)

// ErrNotFound is returned by Lookup for a block the map does not contain.
var ErrNotFound = errors.New("block not found in block map")

// assignment matches "= [Block Diagram].[A].[B] ;" and captures the path.
var assignment = regexp.MustCompile(`=\s*(\[[^\]]+\](?:\.\[[^\]]+\])*)\s*;`)

// Map resolves block names to their full block diagram paths.
type Map struct {
	paths map[string]string
	names []string
}

// Parse reads a controller export and collects the paths listed in its model
// uuid section. A block is indexed under its bare name and its bracketed name.
// When two blocks share a name the later one wins.
func Parse(r io.Reader) (*Map, error) {
	m := &Map{paths: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	inModel := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, modelSection) {
			inModel = true
			continue
		}
		if strings.HasPrefix(line, portSection) {
			break
		}
		if !inModel {
			continue
		}
		match := assignment.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		m.add(match[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read block map: %w", err)
	}
	return m, nil
}

// LoadFile parses the block map stored at path.
func LoadFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open block map %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func (m *Map) add(fullPath string) {
	segments := strings.Split(fullPath, "].[")
	name := strings.Trim(segments[len(segments)-1], "[]")
	if name == "" {
		return
	}
	if _, seen := m.paths[name]; !seen {
		m.names = append(m.names, name)
	}
	m.paths[name] = fullPath
	m.paths["["+name+"]"] = fullPath
}

// Lookup returns the full path of the named block. Bare and bracketed names
// are both accepted.
func (m *Map) Lookup(name string) (string, error) {
	name = strings.TrimSpace(name)
	if p, ok := m.paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Names returns the bare block names in first-seen order.
func (m *Map) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len returns the number of distinct block names.
func (m *Map) Len() int { return len(m.names) }
