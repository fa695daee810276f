// Package catfact retrieves random cat facts from a public HTTP API.
//
// One call to Fetch issues exactly one GET request. There is no retry; the
// caller decides whether to ask again.
package catfact
