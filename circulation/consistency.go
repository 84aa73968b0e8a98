package circulation

import "context"

// ConsistencyLevel defines the consistency requirements for read transactions.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database to ensure read-after-write consistency.
	// This is the default, command handlers always run on the primary.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows read transactions to use a replica database if one is configured.
	// Suitable for listings that can tolerate slightly stale data.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "circulation.consistency_level"

// WithStrongConsistency returns a context that signals read transactions must use the primary database.
//
// Example usage:
//
//	ctx = circulation.WithStrongConsistency(ctx)
//	err := store.WithinReadTx(ctx, fn)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that signals read transactions may use a replica database.
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// If no consistency level is set, it returns StrongConsistency.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging and debugging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
