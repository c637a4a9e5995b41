package zephyr

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a ZAPI record identifier. The API is inconsistent about encoding:
// the same field arrives as a JSON number on some deployments and as a
// string on others. It deserializes from either and always serializes as a
// string. The Ad hoc cycle uses the reserved identifier "-1".
type ID string

// String returns the identifier as a plain string.
func (id ID) String() string { return string(id) }

// MarshalJSON serializes the identifier as a JSON string.
func (id ID) MarshalJSON() ([]byte, error) { return json.Marshal(string(id)) }

// UnmarshalJSON deserializes a string, number, or null identifier.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("unmarshal id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("unmarshal id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// --- ZAPI Response Types (hand-written, aligned with Zephyr Squad server) ---

// ProjectResource represents a project visible to the authenticated user.
type ProjectResource struct {
	ID          ID     `json:"id"`
	Key         string `json:"key,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// VersionResource represents a project version (release) from the version
// board. Depending on the deployment the identifier arrives under "id" or
// "value", and the display name under "name" or "label".
type VersionResource struct {
	ID          ID     `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Released    bool   `json:"released,omitempty"`
	Archived    bool   `json:"archived,omitempty"`
}

// UnmarshalJSON deserializes a version, normalizing the id/value and
// name/label field aliases.
func (v *VersionResource) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID          ID     `json:"id"`
		Value       ID     `json:"value"`
		Name        string `json:"name"`
		Label       string `json:"label"`
		Description string `json:"description"`
		Released    bool   `json:"released"`
		Archived    bool   `json:"archived"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("unmarshal version: %w", err)
	}
	v.ID = aux.ID
	if v.ID == "" {
		v.ID = aux.Value
	}
	v.Name = aux.Name
	if v.Name == "" {
		v.Name = aux.Label
	}
	v.Description = aux.Description
	v.Released = aux.Released
	v.Archived = aux.Archived
	return nil
}

// CycleResource represents a test cycle within a project version.
type CycleResource struct {
	ID              ID     `json:"id,omitempty"`
	Name            string `json:"name,omitempty"`
	Description     string `json:"description,omitempty"`
	Environment     string `json:"environment,omitempty"`
	Build           string `json:"build,omitempty"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
	VersionID       ID     `json:"versionId,omitempty"`
	TotalExecutions int    `json:"totalExecutions,omitempty"`
}

// ExecutionResource represents a single test execution.
type ExecutionResource struct {
	ID                  ID     `json:"id,omitempty"`
	CycleID             ID     `json:"cycleId,omitempty"`
	CycleName           string `json:"cycleName,omitempty"`
	Status              string `json:"executionStatus,omitempty"`
	TestCaseName        string `json:"testCaseName,omitempty"`
	TestCaseDescription string `json:"testCaseDescription,omitempty"`
	ExecutedOn          string `json:"executedOn,omitempty"`
	ExecutedBy          string `json:"executedBy,omitempty"`
	Comment             string `json:"comment,omitempty"`
}

// --- Collection wrappers ---
//
// ZAPI collections arrive in two shapes: a plain JSON array, or an object
// keyed by record ID with bookkeeping scalars such as recordsCount mixed in.
// The wrappers below accept both and always produce a slice in wire order.

// walkKeyedObject calls fn for each key/value pair of a JSON object,
// preserving wire order. The value is passed raw so the callback can decide
// what to do with non-object entries.
func walkKeyedObject(data []byte, fn func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("read object: unexpected token %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("read object key: unexpected token %v", keyTok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("read object value %q: %w", key, err)
		}
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return nil
}

// leadingByte returns the first non-whitespace byte of data, or 0.
func leadingByte(data []byte) byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

type projectCollection []ProjectResource

func (p *projectCollection) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*p = nil
		return nil
	}
	if leadingByte(trimmed) == '[' {
		return json.Unmarshal(trimmed, (*[]ProjectResource)(p))
	}
	var list []ProjectResource
	err := walkKeyedObject(trimmed, func(key string, value json.RawMessage) error {
		if leadingByte(value) != '{' {
			return nil
		}
		var project ProjectResource
		if err := json.Unmarshal(value, &project); err != nil {
			return fmt.Errorf("unmarshal project %q: %w", key, err)
		}
		if project.ID == "" {
			project.ID = ID(key)
		}
		list = append(list, project)
		return nil
	})
	if err != nil {
		return err
	}
	*p = list
	return nil
}

type versionCollection []VersionResource

func (v *versionCollection) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = nil
		return nil
	}
	if leadingByte(trimmed) == '[' {
		return json.Unmarshal(trimmed, (*[]VersionResource)(v))
	}
	var list []VersionResource
	err := walkKeyedObject(trimmed, func(key string, value json.RawMessage) error {
		if leadingByte(value) != '{' {
			return nil
		}
		var version VersionResource
		if err := json.Unmarshal(value, &version); err != nil {
			return fmt.Errorf("unmarshal version %q: %w", key, err)
		}
		if version.ID == "" {
			version.ID = ID(key)
		}
		list = append(list, version)
		return nil
	})
	if err != nil {
		return err
	}
	*v = list
	return nil
}

type cycleCollection []CycleResource

func (c *cycleCollection) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*c = nil
		return nil
	}
	if leadingByte(trimmed) == '[' {
		return json.Unmarshal(trimmed, (*[]CycleResource)(c))
	}
	var list []CycleResource
	err := walkKeyedObject(trimmed, func(key string, value json.RawMessage) error {
		if leadingByte(value) != '{' {
			return nil
		}
		var cycle CycleResource
		if err := json.Unmarshal(value, &cycle); err != nil {
			return fmt.Errorf("unmarshal cycle %q: %w", key, err)
		}
		if cycle.ID == "" {
			cycle.ID = ID(key)
		}
		list = append(list, cycle)
		return nil
	})
	if err != nil {
		return err
	}
	*c = list
	return nil
}

type executionCollection []ExecutionResource

func (e *executionCollection) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*e = nil
		return nil
	}
	if leadingByte(trimmed) == '[' {
		return json.Unmarshal(trimmed, (*[]ExecutionResource)(e))
	}
	var list []ExecutionResource
	err := walkKeyedObject(trimmed, func(key string, value json.RawMessage) error {
		switch {
		case key == "executions" && leadingByte(value) == '[':
			var execs []ExecutionResource
			if err := json.Unmarshal(value, &execs); err != nil {
				return fmt.Errorf("unmarshal executions: %w", err)
			}
			list = append(list, execs...)
		case leadingByte(value) == '{':
			var exec ExecutionResource
			if err := json.Unmarshal(value, &exec); err != nil {
				return fmt.Errorf("unmarshal execution %q: %w", key, err)
			}
			if exec.ID == "" {
				exec.ID = ID(key)
			}
			list = append(list, exec)
		}
		return nil
	})
	if err != nil {
		return err
	}
	*e = list
	return nil
}
