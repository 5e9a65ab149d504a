package instrument

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

const maskedValue = "***"

// logOptions describes one process logger.
type logOptions struct {
	service  string
	level    slog.Level
	mask     []string
	provider *sdklog.LoggerProvider
}

func initLogging(w io.Writer, opts logOptions) {
	slog.SetDefault(newLogger(w, opts))
}

// newLogger layers, from the outside in: service and correlation stamping,
// masking, then the JSON writer teed to the OTLP bridge when a provider is set.
func newLogger(w io.Writer, opts logOptions) *slog.Logger {
	var h slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       opts.level,
		AddSource:   true,
		ReplaceAttr: renameAttr,
	})

	if opts.provider != nil {
		h = teeHandler{h, otelslog.NewHandler(opts.service, otelslog.WithLoggerProvider(opts.provider))}
	}

	if keys := newMaskSet(opts.mask); len(keys) > 0 {
		h = maskHandler{next: h, keys: keys}
	}

	return slog.New(stampHandler{Handler: h, service: opts.service})
}

// renameAttr maps slog's built-in keys to ts, severity and file. Sources
// outside the module's internal tree are dropped.
func renameAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		return slog.Attr{Key: "ts", Value: a.Value}
	case slog.LevelKey:
		return slog.Attr{Key: "severity", Value: a.Value}
	case slog.SourceKey:
		src, ok := a.Value.Any().(*slog.Source)
		if !ok {
			return a
		}
		_, rel, found := strings.Cut(src.File, "/internal/")
		if !found {
			return slog.Attr{}
		}
		return slog.String("file", "internal/"+rel+":"+strconv.Itoa(src.Line))
	}
	return a
}

type stampHandler struct {
	slog.Handler
	service string
}

func (h stampHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := GetCorrelationID(ctx); id != "" {
		r.AddAttrs(slog.String("_cID", id))
	}
	r.AddAttrs(slog.String("service", h.service))
	return h.Handler.Handle(ctx, r)
}

func (h stampHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return stampHandler{Handler: h.Handler.WithAttrs(attrs), service: h.service}
}

func (h stampHandler) WithGroup(name string) slog.Handler {
	return stampHandler{Handler: h.Handler.WithGroup(name), service: h.service}
}

// teeHandler hands every record to each handler that accepts its level.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return lo.SomeBy(t, func(h slog.Handler) bool { return h.Enabled(ctx, level) })
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler(lo.Map(t, func(h slog.Handler, _ int) slog.Handler { return h.WithAttrs(attrs) }))
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler(lo.Map(t, func(h slog.Handler, _ int) slog.Handler { return h.WithGroup(name) }))
}

// maskSet holds lower-cased attribute keys whose values are never logged.
type maskSet map[string]struct{}

func newMaskSet(fields []string) maskSet {
	keys := lo.Compact(lo.Map(fields, func(f string, _ int) string {
		return strings.ToLower(strings.TrimSpace(f))
	}))
	return lo.SliceToMap(keys, func(k string) (string, struct{}) { return k, struct{}{} })
}

func (m maskSet) apply(a slog.Attr) slog.Attr {
	if _, ok := m[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, maskedValue)
	}
	if a.Value.Kind() != slog.KindGroup {
		return a
	}
	group := lo.Map(a.Value.Group(), func(ga slog.Attr, _ int) slog.Attr { return m.apply(ga) })
	return slog.Attr{Key: a.Key, Value: slog.GroupValue(group...)}
}

// maskHandler rewrites record and handler attributes through keys, groups included.
type maskHandler struct {
	next slog.Handler
	keys maskSet
}

func (h maskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h maskHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.keys.apply(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h maskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return maskHandler{next: h.next.WithAttrs(lo.Map(attrs, func(a slog.Attr, _ int) slog.Attr { return h.keys.apply(a) })), keys: h.keys}
}

func (h maskHandler) WithGroup(name string) slog.Handler {
	return maskHandler{next: h.next.WithGroup(name), keys: h.keys}
}
