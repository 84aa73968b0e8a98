// Package core contains the functional core of the library circulation engine:
// the domain events of the audit trail, the business rule errors, the late fee rule
// and the DecisionResult returned by the pure Decide functions of the command features.
//
// Nothing in here performs I/O. The command handlers in app/features/command load the
// current rows inside a store transaction, call Decide, and persist the outcome.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
