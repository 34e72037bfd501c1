// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keySubjectID ctxKey = "subject_id"

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithSubject annotates context with the verified caller subject id
// Only the auth middleware writes this value; handlers read it and pass
// it down explicitly so services never reach back into the context
func WithSubject(ctx context.Context, subjectID string) context.Context {
	if subjectID != "" {
		ctx = context.WithValue(ctx, keySubjectID, subjectID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// SubjectID returns the verified subject id on the context if present
func SubjectID(ctx context.Context) string {
	if v, ok := ctx.Value(keySubjectID).(string); ok {
		return v
	}
	return ""
}
