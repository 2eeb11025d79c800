package otel

import (
	"context"
	"testing"
)

func TestNewProviders_EmptyEndpointIsNoop(t *testing.T) {
	p, err := NewProviders(context.Background(), "", "session-auth", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	if p.TracerProvider == nil || p.MeterProvider == nil {
		t.Fatal("providers should be non-nil even when disabled")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("no-op Shutdown: %v", err)
	}
}

func TestNewProviders_InvalidEndpoint(t *testing.T) {
	if _, err := NewProviders(context.Background(), "http://", "session-auth", false); err == nil {
		t.Error("NewProviders should reject an endpoint without host")
	}
}
