package task

import (
	"encoding/json"
	"fmt"
)

// Marshal serializes the whole list as a JSON array. A nil list encodes as [].
func Marshal(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return data, nil
}

// Unmarshal parses a slot value. Empty input yields an empty list. Records
// written before tasks carried IDs are accepted and repaired by
// EnsureConsistency.
func Unmarshal(data []byte) ([]Task, error) {
	if len(data) == 0 {
		return []Task{}, nil
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// Decode parses a slot value, treating malformed data as an empty list.
// The returned error is informational: the list is always usable.
func Decode(data []byte) ([]Task, []string, error) {
	tasks, err := Unmarshal(data)
	if err != nil {
		return []Task{}, nil, err
	}
	tasks, repairs := EnsureConsistency(tasks)
	return tasks, repairs, nil
}
