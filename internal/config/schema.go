package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "taskmate.schema.json"

// ErrInvalidConfig is wrapped by every schema violation.
var ErrInvalidConfig = errors.New("invalid config")

// ValidationError is a single schema violation.
type ValidationError struct {
	// File is the config file, or "" for the merged configuration.
	File string
	// Path is the dotted key path, or "" for the document root.
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap returns ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// Schema returns the JSON Schema config files are validated against.
func Schema() string {
	return schemaJSON
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add config schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// ValidateFile checks TOML config data against the schema. path is used in
// error messages only. Violations are joined into one error; each is a
// *ValidationError.
func ValidateFile(path string, data []byte) error {
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return validateDocument(path, raw)
}

// validateResolved checks the merged configuration, which also covers values
// that came from the environment or flags.
func validateResolved(cfg *Config) error {
	doc := make(map[string]any)
	for _, f := range cfg.Fields() {
		doc[f.Key] = f.Value
	}
	return validateDocument("", doc)
}

func validateDocument(file string, doc map[string]any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	// Round-trip through JSON so TOML-specific value types become plain
	// JSON values.
	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config for validation: %w", err)
	}
	var instance any
	if err := json.Unmarshal(buf, &instance); err != nil {
		return fmt.Errorf("decode config for validation: %w", err)
	}

	err = schema.Validate(instance)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var errs []error
	collectSchemaErrors(&errs, file, ve)
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, file string, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			File:    file,
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, file, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	return strings.ReplaceAll(ptr, "/", ".")
}
