package llm

import (
	"context"
	"log/slog"
	"time"
)

type purposeKey struct{}

// WithPurpose labels requests made with ctx in the request log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func purposeOf(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok {
		return p
	}
	return "unknown"
}

type logged struct {
	next   Provider
	logger *slog.Logger
}

// WithLogging logs each request's model, purpose, latency and token usage.
// A nil logger means slog.Default().
func WithLogging(p Provider, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &logged{next: p, logger: logger}
}

func (l *logged) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.next.Generate(ctx, req)

	attrs := []slog.Attr{
		slog.String("model", l.next.ModelID()),
		slog.String("purpose", purposeOf(ctx)),
		slog.Duration("latency", time.Since(start)),
	}
	if req.Schema != nil {
		attrs = append(attrs, slog.String("schema", req.Schema.Name))
	}

	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "llm request failed", attrs...)
		return nil, err
	}

	attrs = append(attrs,
		slog.String("served_by", resp.Model),
		slog.Int("input_tokens", resp.Usage.Input),
		slog.Int("output_tokens", resp.Usage.Output),
		slog.String("stop", string(resp.Stop)),
	)
	l.logger.LogAttrs(ctx, slog.LevelInfo, "llm request", attrs...)
	return resp, nil
}

func (l *logged) ModelID() string { return l.next.ModelID() }
