package llm

import "context"

type contextKey string

const operationKey contextKey = "llm_operation"

// WithOperation attaches an operation label (e.g. "deck_generation") to the
// context for request logging.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// OperationFrom extracts the operation label from the context.
func OperationFrom(ctx context.Context) string {
	if v, ok := ctx.Value(operationKey).(string); ok {
		return v
	}
	return "unknown"
}
