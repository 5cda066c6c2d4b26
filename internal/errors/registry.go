package errors

import "sort"

// ErrorTemplate defines a registered error code.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Route registration (R001-R099)
	"R001": {
		Category:   CategoryRoute,
		Message:    "Route has an empty path",
		Suggestion: `Add a path after the scheme, e.g. "app://users/:id", or use "app:///" for the scheme root`,
	},
	"R002": {
		Category:   CategoryRoute,
		Message:    "Route registered without a handler",
		Suggestion: "Pass a non-nil router.Handler or router.HandlerFunc",
	},

	// URL decoding (U001-U099)
	"U001": {
		Category: CategoryURL,
		Message:  "Invalid navigation URL",
	},

	// Manifest (M001-M099)
	"M001": {
		Category:   CategoryManifest,
		Message:    "Manifest references an unknown handler",
		Suggestion: "Use one of the registered handler names",
	},
	"M002": {
		Category: CategoryManifest,
		Message:  "Failed to fetch route manifest",
	},
	"M003": {
		Category:   CategoryManifest,
		Message:    "Route manifest is not valid JSON",
		Suggestion: `Expected {"routes":[{"route":"app://path","handler":"name"}]}`,
	},

	// Config (C001-C099)
	"C001": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create linkroute.json or pass --config",
	},
	"C002": {
		Category:   CategoryConfig,
		Message:    "Configuration file is invalid",
		Suggestion: "Check that linkroute.json is valid JSON",
	},
	"C003": {
		Category:   CategoryConfig,
		Message:    "Configuration file already exists",
		Suggestion: "Pass --force to overwrite it",
	},

	// CLI (X001-X099)
	"X001": {
		Category: CategoryCLI,
		Message:  "No route matches the URL",
	},
}

// Codes returns every registered error code in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
