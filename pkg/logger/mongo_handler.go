package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditMessage is the slog message that marks a record as an audit event.
// Only these records reach the MongoDB sink.
const AuditMessage = "audit"

const (
	auditQueueSize = 1024
	auditBatchSize = 50
	auditDrainTick = 2 * time.Second
)

// AuditDocument is the shape written to the audit collection.
type AuditDocument struct {
	Time      time.Time `bson:"time"`
	Event     string    `bson:"event"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// AuditHandler is a slog.Handler that stores audit records in MongoDB.
// Inserts happen on a background goroutine; a full queue drops records so
// logging never blocks a request.
type AuditHandler struct {
	col    *mongo.Collection
	client *mongo.Client
	queue  chan AuditDocument
	done   chan struct{}
	attrs  []slog.Attr
}

// NewAuditHandler connects to uri and writes into db.audit_events.
// The caller must eventually call Close.
func NewAuditHandler(uri, db string) (*AuditHandler, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).
		SetConnectTimeout(5*time.Second).
		SetServerSelectionTimeout(5*time.Second).
		SetMaxPoolSize(5))
	if err != nil {
		return nil, fmt.Errorf("audit: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("audit: ping: %w", err)
	}

	col := client.Database(db).Collection("audit_events")
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "time", Value: -1}}},
		{Keys: bson.D{{Key: "event", Value: 1}, {Key: "time", Value: -1}}},
	})

	h := &AuditHandler{
		col:    col,
		client: client,
		queue:  make(chan AuditDocument, auditQueueSize),
		done:   make(chan struct{}),
	}
	go h.drainLoop()
	return h, nil
}

func (h *AuditHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (h *AuditHandler) Handle(_ context.Context, r slog.Record) error {
	doc, ok := auditDocument(r, h.attrs)
	if !ok {
		return nil
	}

	select {
	case h.queue <- doc:
	default:
	}
	return nil
}

func (h *AuditHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(append(merged, h.attrs...), attrs...)
	return &AuditHandler{col: h.col, client: h.client, queue: h.queue, done: h.done, attrs: merged}
}

// WithGroup is a no-op; audit attributes are stored flat.
func (h *AuditHandler) WithGroup(string) slog.Handler { return h }

// Close flushes queued events and disconnects. Safe to call twice.
func (h *AuditHandler) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = h.client.Disconnect(ctx)
}

func (h *AuditHandler) drainLoop() {
	ticker := time.NewTicker(auditDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, auditBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := h.col.InsertMany(ctx, batch); err != nil {
			fmt.Printf("audit: insert %d events: %v\n", len(batch), err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-h.queue:
			batch = append(batch, doc)
			if len(batch) >= auditBatchSize {
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

// auditDocument converts an audit record; ok is false for ordinary log lines.
func auditDocument(r slog.Record, inherited []slog.Attr) (AuditDocument, bool) {
	if r.Message != AuditMessage {
		return AuditDocument{}, false
	}

	doc := AuditDocument{Time: r.Time, Attrs: bson.M{}}
	add := func(a slog.Attr) bool {
		switch a.Key {
		case "event":
			doc.Event = a.Value.String()
		case "request_id":
			doc.RequestID = a.Value.String()
		default:
			doc.Attrs[a.Key] = a.Value.Resolve().Any()
		}
		return true
	}
	for _, a := range inherited {
		add(a)
	}
	r.Attrs(add)

	return doc, doc.Event != ""
}
