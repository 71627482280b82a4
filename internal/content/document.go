package content

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyDocument = errors.New("empty or invalid quiz document")
	ErrMissingName   = errors.New("quiz document has no name")
)

// Document is one quiz file from the content store.
type Document struct {
	Name      string        `yaml:"name"`
	ID        string        `yaml:"id,omitempty"`
	Questions []QuestionDoc `yaml:"questions"`
}

type QuestionDoc struct {
	Text    string   `yaml:"question"`
	Options []string `yaml:"options"`
	Answer  string   `yaml:"answer"`
}

// Validate checks the per-question requirements: all three fields present and
// exactly four options.
func (q QuestionDoc) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("missing question text")
	}
	if q.Answer == "" {
		return errors.New("missing answer")
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("has %d options instead of 4", len(q.Options))
	}
	return nil
}

// ParseDocument reads and decodes a quiz file. A document that decodes to
// nothing returns ErrEmptyDocument; one without a name returns ErrMissingName.
func ParseDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrEmptyDocument, err)
	}
	if doc.Name == "" && doc.ID == "" && len(doc.Questions) == 0 {
		return Document{}, ErrEmptyDocument
	}
	if doc.Name == "" {
		return Document{}, ErrMissingName
	}
	return doc, nil
}

var slugStrip = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// Slug derives the stable quiz id from a display name: non-alphanumeric
// characters stripped (spaces kept), lowercased, spaces to underscores.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(slugStrip.ReplaceAllString(name, "")), " ", "_")
}
