package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCommand names the CLI command being executed.
	FieldCommand = "command"
	// FieldWorkspace names the saved workspace an operation touches.
	FieldWorkspace = "workspace"
	// FieldListID identifies a list within a workspace.
	FieldListID = "list_id"
	// FieldEventType is a stable machine-readable event name.
	FieldEventType = "event_type"
	// FieldErrorKind classifies a failure (for example "validation").
	FieldErrorKind = "error_kind"
	// FieldErrorHint tells the operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey int

const (
	commandKey contextKey = iota
	workspaceKey
)

// ContextWithCommand records the running command name on ctx.
func ContextWithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// ContextWithWorkspace records the workspace name on ctx.
func ContextWithWorkspace(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, workspaceKey, name)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if command, ok := ctx.Value(commandKey).(string); ok && command != "" {
		fields = append(fields, slog.String(FieldCommand, command))
	}
	if name, ok := ctx.Value(workspaceKey).(string); ok && name != "" {
		fields = append(fields, slog.String(FieldWorkspace, name))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
