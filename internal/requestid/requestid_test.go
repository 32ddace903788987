package requestid_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ErlanBelekov/task-tracker/internal/requestid"
)

func TestValid(t *testing.T) {
	cases := map[string]bool{
		"":                       false,
		requestid.New():          true,
		"abc.DEF_123-x":          true,
		"has space":              false,
		"newline\ninjected":      false,
		strings.Repeat("a", 128): true,
		strings.Repeat("a", 129): false,
	}
	for in, want := range cases {
		if got := requestid.Valid(in); got != want {
			t.Errorf("Valid(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := requestid.WithRequestID(context.Background(), "req-1")
	if got := requestid.FromContext(ctx); got != "req-1" {
		t.Errorf("FromContext = %q, want req-1", got)
	}
	if got := requestid.FromContext(context.Background()); got != "" {
		t.Errorf("FromContext(empty) = %q, want empty", got)
	}
}
