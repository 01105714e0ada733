package collector

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/songzhibin97/pairscout/internal/models"
)

type fakeSource struct {
	name   string
	result []models.Listing
	err    error
	panics bool
	calls  int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Extract(ctx context.Context) ([]models.Listing, error) {
	f.calls++
	if f.panics {
		panic("boom")
	}
	return f.result, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMultiSourceCollector_Extract(t *testing.T) {
	listings := []models.Listing{{DisplayName: "A"}, {DisplayName: "B"}}

	tests := []struct {
		name    string
		sources []*fakeSource
		want    int
	}{
		{
			name:    "first source wins",
			sources: []*fakeSource{{name: "a", result: listings}, {name: "b", result: listings[:1]}},
			want:    2,
		},
		{
			name:    "fallback after error",
			sources: []*fakeSource{{name: "a", err: errors.New("timeout")}, {name: "b", result: listings[:1]}},
			want:    1,
		},
		{
			name:    "fallback after empty",
			sources: []*fakeSource{{name: "a"}, {name: "b", result: listings}},
			want:    2,
		},
		{
			name:    "panic is recovered",
			sources: []*fakeSource{{name: "a", panics: true}, {name: "b", result: listings}},
			want:    2,
		},
		{
			name:    "all fail",
			sources: []*fakeSource{{name: "a", err: errors.New("x")}, {name: "b", panics: true}},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources := make([]Source, 0, len(tt.sources))
			for _, s := range tt.sources {
				sources = append(sources, s)
			}
			c := NewMultiSourceCollector(sources, discardLogger())

			got := c.Extract(context.Background())
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestMultiSourceCollector_ExtractCancelled(t *testing.T) {
	src := &fakeSource{name: "a", result: []models.Listing{{DisplayName: "A"}}}
	c := NewMultiSourceCollector([]Source{src}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, c.Extract(ctx))
	assert.Equal(t, 0, src.calls)
}
