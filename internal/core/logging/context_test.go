package logging

import (
	"context"
	"testing"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-abc")
	if got := GetRequestID(ctx); got != "req-abc" {
		t.Errorf("GetRequestID() = %q, want %q", got, "req-abc")
	}

	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID() on empty context = %q, want empty", got)
	}
}

func TestBookID_RoundTrip(t *testing.T) {
	ctx := WithBookID(context.Background(), "book-abc")
	if got := GetBookID(ctx); got != "book-abc" {
		t.Errorf("GetBookID() = %q, want %q", got, "book-abc")
	}

	if got := GetBookID(context.Background()); got != "" {
		t.Errorf("GetBookID() on empty context = %q, want empty", got)
	}
}
