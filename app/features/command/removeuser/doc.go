// Package removeuser implements the Remove User use case.
//
// A user with active loans cannot be removed. The user row is locked for update first, so the
// active loan count cannot change before the delete. Returned loans and payments of the user are
// deleted with it.
package removeuser
