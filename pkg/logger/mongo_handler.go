// MongoHandler is an slog.Handler that asynchronously stores log records in
// the api_logs collection. Writes are enqueued into a buffered channel and a
// single background goroutine drains them with batched InsertMany calls; a
// full queue drops the record, because logging must never block a request.
package logger

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodnest/foodnest/pkg/sanitize"
)

const (
	logQueueSize = 4096
	logBatchSize = 50
	logDrainTick = 2 * time.Second
)

// LogDocument is the shape written to the api_logs collection.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// MongoHandler fans log records into MongoDB without blocking callers.
// Construct with NewMongoHandler and stop with Close during shutdown.
type MongoHandler struct {
	col   *mongo.Collection
	queue chan LogDocument
	done  chan struct{}
	attrs []slog.Attr
}

// NewMongoHandler wraps an already-connected collection. The collection is
// injected rather than dialled here so the mongo client lifecycle stays in
// one place (pkg/database).
func NewMongoHandler(col *mongo.Collection) *MongoHandler {
	h := &MongoHandler{
		col:   col,
		queue: make(chan LogDocument, logQueueSize),
		done:  make(chan struct{}),
	}
	go h.drainLoop()
	return h
}

func (h *MongoHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	doc := LogDocument{
		Time:  r.Time,
		Level: r.Level.String(),
		Msg:   r.Message,
		Attrs: bson.M{},
	}

	collect := func(a slog.Attr) {
		if a.Key == "request_id" {
			doc.RequestID = a.Value.String()
			return
		}
		// Stored documents carry hex strings, never raw ObjectIDs.
		doc.Attrs[a.Key] = sanitize.Document(a.Value.Any())
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	select {
	case h.queue <- doc:
	default:
		// queue full — drop rather than block the request path
	}
	return nil
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &MongoHandler{col: h.col, queue: h.queue, done: h.done, attrs: merged}
}

func (h *MongoHandler) WithGroup(string) slog.Handler { return h }

func (h *MongoHandler) drainLoop() {
	ticker := time.NewTicker(logDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, logBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = h.col.InsertMany(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-h.queue:
			batch = append(batch, doc)
			if len(batch) >= logBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-h.done:
			for len(h.queue) > 0 {
				batch = append(batch, <-h.queue)
			}
			flush()
			return
		}
	}
}

// Close flushes pending records. Safe to call multiple times.
func (h *MongoHandler) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

// MultiHandler fans out to multiple slog.Handlers (stdout + mongo).
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler returns a handler that sends each record to all hs.
func NewMultiHandler(hs ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: hs}
}
