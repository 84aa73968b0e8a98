// Package fixtures provides Given* helpers that arrange catalog, user, loan and payment rows
// through any circulation store in tests, and Current*/Appended* helpers that read the outcome back.
package fixtures
