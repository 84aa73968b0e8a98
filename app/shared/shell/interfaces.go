package shell

import (
	"context"
)

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Handlers run the complete workflow inside one store transaction: load rows, Decide, persist, append the audit event.
// The output R is what the caller needs to answer the request, e.g. the issued loan. Handlers without output use NoOutput.
// Implementations should focus purely on business logic, they are wrapped with observable.CommandWrapper
// for metrics, tracing and logging.
type CoreCommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, command C) (R, HandlerResult, error)
}

// NoOutput is the output of command handlers that only report success or failure.
type NoOutput = struct{}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// CoreQueryHandler defines the contract for components that read rows and return a result.
// The generic parameters Q and R ensure type safety between queries and their corresponding results.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
