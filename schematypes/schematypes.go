// Package schematypes reads and writes the naming file that keeps component
// names stable across regenerations.
//
// The file is a list of entries sorted by name. Each entry pins the location
// of one shared shape to the component name (and optionally the description)
// it should be published under:
//
//	[
//	  {
//	    "description": "Network a server is attached to",
//	    "name": "network",
//	    "path": ["get_server_response", "server", "private_net"]
//	  }
//	]
//
// JSON and YAML are both accepted; the extension of the file decides.
package schematypes

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/fileutil"
	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
)

// Entry pins a location to a component name.
type Entry struct {
	// Description replaces the component's derived description when set.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Name is the component id the shape is published under.
	Name string `json:"name" yaml:"name"`
	// Path is the location of one occurrence, root id first.
	Path []string `json:"path" yaml:"path"`
}

// Location returns the entry's path as a schema location.
func (e Entry) Location() schema.Location {
	return schema.Location(e.Path)
}

// Sort orders entries by name, then by path, in place.
func Sort(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Location().String(), b.Location().String())
	})
}

// Load reads a naming file. A file that cannot be read or decoded is a
// *oaserrors.ParseError.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "reading naming file", Cause: err}
	}
	return Parse(path, data)
}

// Parse decodes a naming file held in memory. name selects the format.
func Parse(name string, data []byte) ([]Entry, error) {
	var entries []Entry
	var err error
	if isYAML(name) {
		err = yaml.Unmarshal(data, &entries)
	} else {
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, &oaserrors.ParseError{Path: name, Message: "malformed naming file", Cause: err}
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, &oaserrors.ParseError{Path: name, Message: fmt.Sprintf("entry %d has no name", i)}
		}
		if len(e.Path) == 0 {
			return nil, &oaserrors.ParseError{Path: name, Message: fmt.Sprintf("entry %q has no path", e.Name)}
		}
	}
	return entries, nil
}

// Marshal encodes entries sorted by name. The input slice is not modified.
func Marshal(name string, entries []Entry) ([]byte, error) {
	sorted := slices.Clone(entries)
	Sort(sorted)
	if sorted == nil {
		sorted = []Entry{}
	}
	if isYAML(name) {
		return yaml.Marshal(sorted)
	}
	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save replaces the naming file at path atomically.
func Save(path string, entries []Entry) error {
	data, err := Marshal(path, entries)
	if err != nil {
		return fmt.Errorf("schematypes: encoding %s: %w", path, err)
	}
	if err := fileutil.WriteAtomic(path, data, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("schematypes: %w", err)
	}
	return nil
}

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
