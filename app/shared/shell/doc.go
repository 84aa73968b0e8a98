// Package shell contains the imperative shell shared by all features of the library circulation engine.
//
// It provides the retry logic for concurrency conflicts, the HandlerResult returned by command handlers,
// the mapping between domain events and the storable events of the audit trail, and the helpers
// for metrics, tracing and logging that the observable wrappers use.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'application' or 'infrastructure' layer.
package shell
