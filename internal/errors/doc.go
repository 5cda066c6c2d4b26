// Package errors provides coded, actionable errors for linkroute.
//
// Each error carries a code (e.g. "R001") registered with a category, a
// short message, and a longer explanation. Callers add a suggestion or
// wrap an underlying cause with the With* builders:
//
//	err := errors.New("M001").
//	    WithDetail(`handler "profile" is not registered`).
//	    WithSuggestion("Register the handler before applying the manifest")
//
//	fmt.Fprint(os.Stderr, err.Format())
//
// # Error Categories
//
//   - route: route registration errors
//   - url: navigation URL decoding errors
//   - manifest: route manifest loading errors
//   - config: linkroute.json errors
//   - cli: command line usage errors
package errors
