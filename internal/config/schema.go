package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// configSchema constrains the shape of a sweep config file before it is
// decoded, so typos surface as schema errors instead of silently ignored
// fields.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "logbench sweep configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "libraries": {
      "type": "array",
      "items": {"type": "string"}
    },
    "async": {
      "type": "array",
      "items": {"type": "boolean"}
    },
    "sinks": {
      "type": "array",
      "items": {"type": "string"}
    },
    "producers": {
      "type": "array",
      "items": {"type": "integer", "minimum": 1}
    },
    "messageSizes": {
      "type": "array",
      "items": {"type": "integer", "minimum": 1}
    },
    "totalMessages": {"type": "integer", "minimum": 1},
    "warmupMessages": {"type": "integer", "minimum": 0},
    "timeout": {"type": ["string", "integer"]},
    "outputDir": {"type": "string"},
    "csvFile": {"type": "string"},
    "jsonFile": {"type": "string"},
    "htmlFile": {"type": "string"}
  }
}`

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("logbench-config.json", strings.NewReader(configSchema)); err != nil {
			schemaErr = fmt.Errorf("invalid schema: %w", err)
			return
		}
		schemaCompiled, schemaErr = compiler.Compile("logbench-config.json")
	})
	return schemaCompiled, schemaErr
}

// validateDocument checks raw YAML config bytes against the embedded
// schema.
func validateDocument(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	doc, err := normalize(doc)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}
	return nil
}

// normalize re-encodes a YAML-decoded tree through JSON so the schema
// validator sees the value kinds it expects.
func normalize(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
