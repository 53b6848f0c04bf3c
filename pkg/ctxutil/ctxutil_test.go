package ctxutil

import (
	"context"
	"testing"
)

func TestWithAdmin_And_AdminFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithAdmin(context.Background(), "kahu")

	got, ok := AdminFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for stored admin")
	}
	if got != "kahu" {
		t.Fatalf("expected %q, got %q", "kahu", got)
	}
	if !IsAdminCtx(ctx) {
		t.Fatal("IsAdminCtx should be true")
	}
}

func TestAdminFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := AdminFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != "" {
		t.Fatalf("expected empty name, got %q", got)
	}
	if IsAdminCtx(context.Background()) {
		t.Fatal("IsAdminCtx should be false")
	}
}

func TestAdminFromCtx_EmptyName(t *testing.T) {
	t.Parallel()

	if _, ok := AdminFromCtx(WithAdmin(context.Background(), "")); ok {
		t.Fatal("expected ok=false for empty name")
	}
}

func TestAdminFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), adminKey, 42)
	if _, ok := AdminFromCtx(ctx); ok {
		t.Fatal("expected ok=false for wrong type")
	}
}

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Fatalf("expected %q, got %q", "req-123", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestRequestIDFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), requestIDKey, 123)
	if got := RequestIDFromCtx(ctx); got != "" {
		t.Fatalf("expected empty string for wrong type, got %q", got)
	}
}
