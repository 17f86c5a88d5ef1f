package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type loggerContextKey struct{}

// JSON logger used by the binaries, tagged with the given component
func NewRootLogger(w io.Writer, level slog.Leveler, component string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).With(
		slog.String("component", component),
	)
}

// Library callers are not required to put a logger in the context
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return NewRootLogger(os.Stderr, slog.LevelInfo, "fallback")
	}
	return logger
}

func AddToContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

func AddMetaToContext(ctx context.Context, args ...slog.Attr) context.Context {
	anySlice := make([]any, 0, len(args))
	for _, arg := range args {
		anySlice = append(anySlice, arg)
	}

	return AddToContext(ctx, FromContext(ctx).With(anySlice...))
}
