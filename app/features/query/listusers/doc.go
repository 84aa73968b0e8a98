// Package listusers implements the List Users query use case.
//
// Members are ordered by name. The search matches name, member id or email case-insensitively.
package listusers
