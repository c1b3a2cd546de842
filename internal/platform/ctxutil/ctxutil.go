// Package ctxutil carries per-request metadata through context.Context for
// logging and tracing.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type key int

const (
	traceKey key = iota
	requestKey
)

type TraceData struct {
	TraceID   string
	RequestID string
}

// RequestData identifies the real user behind a request, even while the
// session is disguised.
type RequestData struct {
	UserID    uuid.UUID
	SessionID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceKey, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	td, _ := ctx.Value(traceKey).(*TraceData)
	return td
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, _ := ctx.Value(requestKey).(*RequestData)
	return rd
}
