package model

import "slices"

// ReasoningModels are the models that accept reasoning_effort and reject
// penalty and stop parameters.
var ReasoningModels = []string{
	"grok-4",
	"grok-3-mini",
	"grok-3-mini-fast",
	"grok-4-1-fast-reasoning",
}

func IsReasoningModel(name string) bool {
	return slices.Contains(ReasoningModels, name)
}

// SupportsReasoningEffort reports whether reasoning_effort may be forwarded.
// grok-4 reasons but has no effort knob.
func SupportsReasoningEffort(name string) bool {
	return IsReasoningModel(name) && name != "grok-4"
}
