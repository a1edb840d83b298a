package model

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrCorruptSnapshot = errors.New("model: corrupt task snapshot")

const snapshotSchemaURL = "tasks.schema.json"

//go:embed tasks.schema.json
var snapshotSchemaSource string

var snapshotSchema = jsonschema.MustCompileString(snapshotSchemaURL, snapshotSchemaSource)

// EncodeTasks serializes the list in display order. A nil list encodes as [].
func EncodeTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return payload, nil
}

// DecodeTasks parses a snapshot written by EncodeTasks (or by older clients
// using the same key). Anything that does not describe a valid list is
// reported as ErrCorruptSnapshot.
func DecodeTasks(payload []byte) ([]Task, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrCorruptSnapshot)
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if err := snapshotSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptSnapshot, schemaErrorMessage(err))
	}

	var tasks []Task
	if err := json.Unmarshal(payload, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		tasks[i].Text = strings.TrimSpace(tasks[i].Text)
		if err := tasks[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", ErrCorruptSnapshot, i, err)
		}
		if seen[tasks[i].ID] {
			return nil, fmt.Errorf("%w: duplicate task id %q", ErrCorruptSnapshot, tasks[i].ID)
		}
		seen[tasks[i].ID] = true
	}
	return tasks, nil
}

func schemaErrorMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}
