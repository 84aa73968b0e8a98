// Package registeruser implements the Register User use case.
//
// New members start active with a zero balance. The member id is assigned by the store.
package registeruser
