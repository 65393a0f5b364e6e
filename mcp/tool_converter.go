package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaDocument converts a tool's InputSchema into a standalone JSON Schema
// document.
//
// MCP Tool structure:
//
//	{
//	  "name": "chat",
//	  "inputSchema": {
//	    "type": "object",
//	    "properties": {...},
//	    "required": [...]
//	  }
//	}
//
// The result is the inputSchema object itself, suitable for a schema compiler.
func schemaDocument(tool mcptypes.Tool) map[string]any {
	doc := map[string]any{
		"type":       "object",
		"properties": tool.InputSchema.Properties,
	}
	if doc["properties"] == nil {
		doc["properties"] = map[string]any{}
	}

	if len(tool.InputSchema.Required) > 0 {
		doc["required"] = tool.InputSchema.Required
	}

	if tool.InputSchema.Defs != nil {
		doc["$defs"] = tool.InputSchema.Defs
	}

	return doc
}

// compileToolSchema compiles the input schema of one tool.
func compileToolSchema(tool mcptypes.Tool) (*jsonschema.Schema, error) {
	data, err := json.Marshal(schemaDocument(tool))
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %s: %w", tool.Name, err)
	}

	url := "grokmcp://tools/" + tool.Name + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("load schema for %s: %w", tool.Name, err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema for %s: %w", tool.Name, err)
	}
	return schema, nil
}

// normalizeArguments round-trips arguments through JSON so the validator sees
// the same value types a wire client would send. Keys set to null are
// dropped: an explicit null means the optional parameter was not given.
func normalizeArguments(args map[string]any) (any, error) {
	present := make(map[string]any, len(args))
	for k, v := range args {
		if v != nil {
			present[k] = v
		}
	}

	data, err := json.Marshal(present)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
