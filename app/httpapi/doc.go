// Package httpapi exposes the circulation workflows over HTTP with gin.
//
// Every route translates the request into a command or query, runs it through the observable
// handler wrappers and maps errors to a status code and a {"error", "code"} body in one place.
// Each request carries a request id that becomes the correlation id of the audit events it appends.
package httpapi
