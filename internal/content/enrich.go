package content

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnsureID returns the document's stable id, deriving it from the name and
// writing it back into the source file when absent. The write-back is what
// keeps re-runs stable: once a derived id is persisted, later ingestions
// resolve the quiz by id even if the display name changes.
func EnsureID(path string, doc Document) (id string, rewritten bool, err error) {
	if doc.ID != "" {
		return doc.ID, false, nil
	}

	id = Slug(doc.Name)
	if err := injectID(path, id); err != nil {
		return "", false, fmt.Errorf("writing id back to %s: %w", path, err)
	}
	return id, true, nil
}

// injectID appends an id entry to the document's top-level mapping, preserving
// every other key the file carries.
func injectID(path string, id string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return errors.New("document is not a mapping")
	}

	mapping := root.Content[0]
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "id"},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: id},
	)

	out, err := yaml.Marshal(mapping)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
