package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

//go:embed data/mindmap.json
var defaultTreeJSON []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultTree returns a fresh copy of the bundled mind map.
func DefaultTree() *Node {
	tree, err := parseTree(defaultTreeJSON, ".json")
	if err != nil {
		panic(fmt.Sprintf("bundled mind map is invalid: %v", err))
	}
	return tree
}

// LoadTree reads the initial mind map from a JSON or YAML file. An empty
// path yields the bundled mind map.
func LoadTree(path string) (*Node, error) {
	if path == "" {
		return DefaultTree(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mind map: %w", err)
	}
	tree, err := parseTree(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tree, nil
}

func parseTree(data []byte, ext string) (*Node, error) {
	tree := &Node{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, tree); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json", "":
		if err := json.Unmarshal(data, tree); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	tree.Normalize()
	if err := ValidateTree(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// ValidateTree checks what the layout and collapse code take for granted:
// every node has an id and no id appears twice.
func ValidateTree(root *Node) error {
	if err := validate.Struct(root); err != nil {
		return fmt.Errorf("invalid mind map: %w", err)
	}
	seen := make(map[string]bool)
	var err error
	Walk(root, func(n *Node, _ int) bool {
		switch {
		case err != nil:
		case n.ID == "":
			err = fmt.Errorf("invalid mind map: node %q has no id", n.Title)
		case seen[n.ID]:
			err = fmt.Errorf("invalid mind map: duplicate node id %q", n.ID)
		default:
			seen[n.ID] = true
			return true
		}
		return false
	})
	return err
}
