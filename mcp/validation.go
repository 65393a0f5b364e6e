package mcp

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"grokmcp/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ArgumentValidator checks tool arguments against the published schemas
// before they are bound into params structs.
type ArgumentValidator struct {
	schemas map[string]*jsonschema.Schema
}

func NewArgumentValidator(tools []mcptypes.Tool) (*ArgumentValidator, error) {
	v := &ArgumentValidator{schemas: make(map[string]*jsonschema.Schema, len(tools))}
	for _, tool := range tools {
		schema, err := compileToolSchema(tool)
		if err != nil {
			return nil, err
		}
		v.schemas[tool.Name] = schema
	}
	return v, nil
}

// Validate returns an InvalidArgument error describing every violation.
func (v *ArgumentValidator) Validate(toolName string, args map[string]any) error {
	schema, ok := v.schemas[toolName]
	if !ok {
		return model.InvalidArgument("unknown tool %q", toolName)
	}

	doc, err := normalizeArguments(args)
	if err != nil {
		return model.InvalidArgument("arguments are not valid JSON: %v", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return model.InvalidArgument("%v", err)
	}
	return model.InvalidArgument("%s", describeViolations(verr))
}

// describeViolations flattens the validation tree to its leaves, one
// "location: message" entry per violation.
func describeViolations(verr *jsonschema.ValidationError) string {
	var leaves []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			leaves = append(leaves, formatViolation(e))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)

	sort.Strings(leaves)
	return "invalid arguments: " + strings.Join(leaves, "; ")
}

func formatViolation(e *jsonschema.ValidationError) string {
	loc := strings.TrimPrefix(e.InstanceLocation, "/")
	loc = strings.ReplaceAll(loc, "/", ".")
	if loc == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}
