// Package catalog loads the read-only lesson catalogs: grammar lessons,
// speaking activities, typing lessons and vocabulary categories.
//
// Catalogs are YAML documents validated against an embedded JSON Schema
// before they are decoded. The built-in catalog ships inside the binary;
// a directory of YAML files can replace it.
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var builtin embed.FS

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://parley/catalog.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// ValidationError reports a catalog file that failed schema or
// consistency checks.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Catalog is an in-memory Provider built from one or more documents.
type Catalog struct {
	grammar    []GrammarLesson
	speaking   []SpeakingActivity
	typing     []TypingLesson
	vocabulary []VocabularyCategory
}

var _ Provider = (*Catalog)(nil)

// Default loads the catalog embedded in the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(builtin, "content")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadDir loads every *.yaml / *.yml file under dir.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS loads every YAML file in fsys. All files are validated; the
// returned error joins every ValidationError found.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var paths []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext := path.Ext(p); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk catalog: %w", err)
	}
	sort.Strings(paths)

	c := &Catalog{}
	var errs []error
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			errs = append(errs, &ValidationError{Path: p, Err: err})
			continue
		}
		doc, err := Parse(data)
		if err != nil {
			errs = append(errs, &ValidationError{Path: p, Err: err})
			continue
		}
		if err := c.add(doc); err != nil {
			errs = append(errs, &ValidationError{Path: p, Err: err})
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	slog.Debug("catalog loaded",
		"files", len(paths),
		"grammar", len(c.grammar),
		"speaking", len(c.speaking),
		"typing", len(c.typing),
		"vocabulary", len(c.vocabulary))
	return c, nil
}

// Parse validates data against the catalog schema and decodes it.
func Parse(data []byte) (Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("parse yaml: %w", err)
	}
	if raw == nil {
		return Document{}, nil
	}
	if err := validateSchema(raw); err != nil {
		return Document{}, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := checkDocument(doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func validateSchema(raw any) error {
	compileOnce.Do(func() {
		var def any
		def, compileErr = jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if compileErr != nil {
			return
		}
		c := jsonschema.NewCompiler()
		if compileErr = c.AddResource(schemaURL, def); compileErr != nil {
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	if compileErr != nil {
		return fmt.Errorf("compile catalog schema: %w", compileErr)
	}

	// Round-trip through JSON so numbers reach the validator as json.Number.
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert yaml: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("convert yaml: %w", err)
	}
	if err := compiled.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// checkDocument enforces the rules JSON Schema cannot express.
func checkDocument(doc Document) error {
	for _, g := range doc.Grammar {
		for i, ex := range g.Exercises {
			if ex.Answer >= len(ex.Options) {
				return fmt.Errorf("grammar %q exercise %d: answer %d out of range (%d options)",
					g.ID, i+1, ex.Answer, len(ex.Options))
			}
		}
	}
	for _, v := range doc.Vocabulary {
		seen := make(map[string]bool, len(v.Words))
		for _, w := range v.Words {
			if seen[w.ID] {
				return fmt.Errorf("vocabulary %q: duplicate word id %q", v.ID, w.ID)
			}
			seen[w.ID] = true
		}
	}
	for _, t := range doc.Typing {
		if strings.TrimSpace(t.Text) != t.Text {
			return fmt.Errorf("typing %q: text has leading or trailing whitespace", t.ID)
		}
	}
	return nil
}

func (c *Catalog) add(doc Document) error {
	for _, g := range doc.Grammar {
		if _, dup := c.GrammarLesson(g.ID); dup {
			return fmt.Errorf("duplicate grammar lesson %q", g.ID)
		}
		c.grammar = append(c.grammar, g)
	}
	for _, s := range doc.Speaking {
		if _, dup := c.SpeakingActivity(s.ID); dup {
			return fmt.Errorf("duplicate speaking activity %q", s.ID)
		}
		c.speaking = append(c.speaking, s)
	}
	for _, t := range doc.Typing {
		if _, dup := c.TypingLesson(t.ID); dup {
			return fmt.Errorf("duplicate typing lesson %q", t.ID)
		}
		c.typing = append(c.typing, t)
	}
	for _, v := range doc.Vocabulary {
		if _, dup := c.VocabularyCategory(v.ID); dup {
			return fmt.Errorf("duplicate vocabulary category %q", v.ID)
		}
		c.vocabulary = append(c.vocabulary, v)
	}
	return nil
}
