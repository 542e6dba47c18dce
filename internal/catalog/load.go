package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the catalog format major version this build can read.
const SupportedMajor = "v1"

// ErrUnsupportedVersion is returned for catalogs written in a format this
// build does not understand.
var ErrUnsupportedVersion = errors.New("unsupported catalog version")

//go:embed catalog.schema.json
var schemaJSON []byte

const schemaURL = "schema://skill-catalog.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Document is the on-disk catalog format.
type Document struct {
	Version string        `json:"version"`
	Skills  []SkillMaster `json:"skills"`
}

// LoadError describes a catalog that could not be loaded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadFile reads and indexes the catalog at path.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()
	return Load(path, f)
}

// Load parses, schema-checks and indexes a catalog document. source names
// the input in error messages.
func Load(source string, r io.Reader) (*Index, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("read: %w", err)}
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	idx, err := NewIndex(doc.Skills)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return idx, nil
}

// Parse decodes raw catalog JSON after validating it against the catalog
// schema and checking the format version.
func Parse(raw []byte) (*Document, error) {
	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := catalogSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	return &doc, nil
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("%w: %s (this build reads %s.x)", ErrUnsupportedVersion, v, SupportedMajor)
	}
	return nil
}

// catalogSchema compiles the embedded schema once.
func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}
