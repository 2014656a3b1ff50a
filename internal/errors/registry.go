package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[Code]ErrorTemplate{
	// ============================================
	// Argument Errors (1xx)
	// ============================================

	CodeNotElement: {
		Category: CategoryArgument,
		Message:  "Component passed isn't an element",
		Detail:   "An element handle was expected, but the argument was nil or a non-element node.",
	},
	CodeUnknownArchetype: {
		Category: CategoryArgument,
		Message:  "Forged archetype doesn't exist",
		Detail:   "No archetype has been registered under this name. Register it with ForgeArchetype or load it from an archetype file.",
	},

	// ============================================
	// Document Errors (2xx)
	// ============================================

	CodeElementGone: {
		Category: CategoryDocument,
		Message:  "Element doesn't exist anymore",
		Detail:   "The aliased element is absent or no longer attached to the document.",
	},
	CodeParentNotFound: {
		Category: CategoryDocument,
		Message:  "Parent queried doesn't exist",
		Detail:   "The selector passed to Into matched no element in the document.",
	},

	// ============================================
	// Registry Errors (3xx)
	// ============================================

	CodeDuplicateAlias: {
		Category: CategoryRegistry,
		Message:  "Alias must be unique",
		Detail:   "Strict alias mode is enabled and the alias is already registered. Disable strict alias mode to allow overwriting.",
	},

	// ============================================
	// Input Errors (4xx)
	// ============================================

	CodeInvalidArchetypeFile: {
		Category: CategoryInput,
		Message:  "Invalid archetype file",
		Detail:   "The archetype file could not be decoded or references an unknown base archetype.",
	},
	CodeInvalidConfig: {
		Category: CategoryInput,
		Message:  "Invalid configuration",
		Detail:   "The forge configuration file could not be read or failed validation.",
	},
	CodeInvalidSelector: {
		Category: CategoryInput,
		Message:  "Invalid selector",
		Detail:   "The selector could not be compiled.",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []Code {
	codes := make([]Code, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code Code) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
