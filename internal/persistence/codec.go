package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/MrSnakeDoc/quill/internal/domain"
)

var (
	// ErrAbsent is returned by backends when nothing is stored under the key.
	ErrAbsent = errors.New("no stored workspace")
	// ErrVersionMismatch means the stored blob carries another schema version.
	ErrVersionMismatch = errors.New("schema version mismatch")
	// ErrCorrupt means the stored blob is not a valid workspace document.
	ErrCorrupt = errors.New("corrupt workspace")
	// ErrInvalidInput is returned for unusable backend configuration.
	ErrInvalidInput = errors.New("invalid input")
)

const schemaURL = "https://quill.local/schemas/workspace.json"

// workspaceSchema describes the persisted blob. Unknown fields are tolerated
// so that newer writers with the same version do not wipe older readers.
var workspaceSchema = fmt.Sprintf(`{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["folders", "notes", "trash", "version"],
  "properties": {
    "folders": {"type": "array", "items": {"$ref": "#/$defs/folder"}},
    "notes": {"type": "array", "items": {"$ref": "#/$defs/note"}},
    "trash": {
      "type": "object",
      "required": ["folders", "notes"],
      "properties": {
        "folders": {"type": "array", "items": {"$ref": "#/$defs/folder"}},
        "notes": {"type": "array", "items": {"$ref": "#/$defs/note"}}
      }
    },
    "backgroundType": {"enum": ["color", "image"]},
    "backgroundValue": {"type": "string"},
    "profile": {"type": "object"},
    "version": {"const": %d}
  },
  "$defs": {
    "folder": {
      "type": "object",
      "required": ["id", "name"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string", "minLength": 1},
        "tags": {"type": ["array", "null"], "items": {"type": "string"}}
      }
    },
    "note": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "title": {"type": "string"},
        "content": {"type": "string"},
        "folderId": {"type": ["string", "null"]},
        "pinned": {"type": "boolean"},
        "dueDate": {"type": ["string", "null"], "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"}
      }
    }
  }
}`, domain.SchemaVersion)

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(workspaceSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to parse workspace schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add workspace schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// Encode serializes a workspace. The input is not modified.
func Encode(ws *domain.Workspace) ([]byte, error) {
	out := ws.Clone()
	out.Normalize()
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workspace: %w", err)
	}
	return data, nil
}

// Decode parses a stored blob. It fails with ErrVersionMismatch before looking
// at the shape of the document, and with ErrCorrupt for anything unreadable.
func Decode(data []byte) (*domain.Workspace, error) {
	var probe struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if probe.Version == nil {
		return nil, fmt.Errorf("%w: version missing", ErrVersionMismatch)
	}
	if *probe.Version != domain.SchemaVersion {
		return nil, fmt.Errorf("%w: stored %d, expected %d", ErrVersionMismatch, *probe.Version, domain.SchemaVersion)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var ws domain.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	ws.Normalize()
	return &ws, nil
}
