package stopwords

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownLanguage = errors.New("no stop words for language")

//go:embed lists/*.yaml
var lists embed.FS

// Source returns the stop words of a language
type Source interface {
	StopWords(language string) (map[string]struct{}, error)
}

// List is the YAML layout of one stop word file
type List struct {
	Language string   `yaml:"language"`
	Words    []string `yaml:"words"`
}

// Embedded serves the stop word lists compiled into the binary
type Embedded struct {
	words map[string]map[string]struct{}
}

// NewEmbedded loads every embedded list
func NewEmbedded() (*Embedded, error) {
	return Load(lists, "lists")
}

// Load reads every *.yaml list under dir of fsys
func Load(fsys fs.FS, dir string) (*Embedded, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	e := &Embedded{words: make(map[string]map[string]struct{}, len(files))}
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read stop words %s: %w", name, err)
		}
		var list List
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stop words %s: %w", name, err)
		}
		if list.Language == "" {
			list.Language = strings.TrimSuffix(path.Base(name), ".yaml")
		}
		set := make(map[string]struct{}, len(list.Words))
		for _, w := range list.Words {
			set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
		}
		e.words[strings.ToLower(list.Language)] = set
	}
	return e, nil
}

// StopWords returns the stop word set of language. The set is shared and must not be modified.
func (e *Embedded) StopWords(language string) (map[string]struct{}, error) {
	set, ok := e.words[strings.ToLower(language)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	return set, nil
}

// Languages returns the available language codes in order
func (e *Embedded) Languages() []string {
	out := make([]string, 0, len(e.words))
	for lang := range e.words {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
