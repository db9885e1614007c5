package store

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"tasklist/internal/models"
)

//go:embed tasklist.schema.json
var taskSchema string

const schemaURL = "tasklist.schema.json"

// JSONStore keeps the task list in a single JSON file: an array of
// {date, time, priority, teg, task} records.
type JSONStore struct {
	path   string
	schema *jsonschema.Schema
}

// NewJSONStore returns a store for the file at path. The file is not
// touched until Load or Save.
func NewJSONStore(path string) (*JSONStore, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(taskSchema)); err != nil {
		return nil, fmt.Errorf("failed to add task schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile task schema: %w", err)
	}

	return &JSONStore{path: path, schema: schema}, nil
}

// Path returns the file the store reads and writes.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the file. A missing file is an empty list.
func (s *JSONStore) Load(ctx context.Context) ([]models.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse task file: %w", err)
	}
	if err := s.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("task file %s does not match schema: %w", s.path, schemaError(err))
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task file: %w", err)
	}
	if err := validateAll(tasks); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	return tasks, nil
}

// Save overwrites the file with tasks. The data goes to a temporary file
// in the same directory first, so a failed write leaves the old file.
func (s *JSONStore) Save(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create task file directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tasklist-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace task file: %w", err)
	}

	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *JSONStore) Close() error {
	return nil
}

// schemaError reduces a schema failure to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &models.ValidationError{
		Path: jsonPointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b bytes.Buffer
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
