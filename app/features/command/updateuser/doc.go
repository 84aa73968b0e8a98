// Package updateuser implements the Update User use case.
//
// Deactivating a member blocks new loans but leaves active loans and the balance untouched.
package updateuser
