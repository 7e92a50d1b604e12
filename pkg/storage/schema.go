package storage

// Profile names a storage configuration so it can be stored in the catalog,
// listed by admin tooling, and hot-swapped by the container when the active
// selection changes.
type Profile struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Provider    string            `json:"provider"`
	Config      Config            `json:"config"`
	Fallbacks   []string          `json:"fallbacks,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	Default     bool              `json:"default,omitempty"`
}

// Resource ids for the schema documents below. ProfileJSONSchema refers to
// the config document by id, so validators must register both under these
// names before compiling.
const (
	ConfigSchemaID  = "storage_config.json"
	ProfileSchemaID = "storage_profile.json"
)

// ConfigJSONSchema validates the serialized form of Config.
const ConfigJSONSchema = `
{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "StorageConfig",
  "type": "object",
  "properties": {
    "name": {
      "type": "string",
      "minLength": 1,
      "description": "Identifier for this connection, unique within the profile"
    },
    "driver": {
      "type": "string",
      "minLength": 1,
      "description": "database/sql driver name the adapter opens (sqlite3, postgres, pgx)"
    },
    "dsn": {
      "type": "string",
      "minLength": 1,
      "description": "Driver-specific connection string"
    },
    "readOnly": {
      "type": "boolean",
      "default": false
    },
    "options": {
      "type": "object",
      "additionalProperties": true,
      "description": "Tuning knobs passed through to the adapter untouched"
    }
  },
  "required": ["name", "driver", "dsn"],
  "additionalProperties": false
}
`

// ProfileJSONSchema validates profile definitions before they are persisted,
// so the container's swap loop never observes a profile it cannot boot.
const ProfileJSONSchema = `
{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "StorageProfile",
  "type": "object",
  "properties": {
    "name": {
      "type": "string",
      "pattern": "^[a-z0-9_-]+$",
      "description": "Lowercase identifier used to select this profile"
    },
    "description": {
      "type": "string"
    },
    "provider": {
      "type": "string",
      "minLength": 1,
      "description": "Factory key the container resolves when booting the profile"
    },
    "config": {
      "$ref": "` + ConfigSchemaID + `"
    },
    "fallbacks": {
      "type": "array",
      "items": {
        "type": "string"
      },
      "description": "Profiles to try, in order, when this one fails to open"
    },
    "labels": {
      "type": "object",
      "additionalProperties": {
        "type": "string"
      }
    },
    "default": {
      "type": "boolean",
      "description": "Selects this profile when the runtime config names none"
    }
  },
  "required": ["name", "provider", "config"],
  "additionalProperties": false
}
`
