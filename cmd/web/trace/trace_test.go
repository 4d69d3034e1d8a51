package trace

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	assert.Len(t, a, 32)
	assert.NotContains(t, a, "-")
	assert.NotEqual(t, a, b)
}

func TestNextSpanIDIncrementsWithinRequest(t *testing.T) {
	ctx := WithRequestAndSpan(context.Background(), "req-1", 0)
	assert.Equal(t, "0", CurrentSpanID(ctx))

	reqID, span := NextSpanID(ctx)
	assert.Equal(t, "req-1", reqID)
	assert.Equal(t, "1", span)

	_, span = NextSpanID(ctx)
	assert.Equal(t, "2", span)
	assert.Equal(t, "2", CurrentSpanID(ctx))
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
}

func TestNextSpanIDConcurrentCallsAreUnique(t *testing.T) {
	ctx := WithRequestAndSpan(context.Background(), "req-2", 0)

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		spans = map[string]bool{}
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, span := NextSpanID(ctx)
			mu.Lock()
			spans[span] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, spans, 50)
	assert.Equal(t, "50", CurrentSpanID(ctx))
}

func TestNextSpanIDWithoutTrace(t *testing.T) {
	reqID, span := NextSpanID(context.Background())
	assert.NotEmpty(t, reqID)
	assert.Equal(t, "1", span)
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
	assert.Equal(t, "0", CurrentSpanID(context.Background()))
}

func TestNormalizeRequestID(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		keep bool
	}{
		{name: "plain id", raw: "req-1_a.b", keep: true},
		{name: "empty", raw: ""},
		{name: "control characters", raw: "abc\r\nX-Injected: 1"},
		{name: "spaces inside", raw: "a b"},
		{name: "too long", raw: strings.Repeat("a", 65)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeRequestID(tc.raw)
			if tc.keep {
				assert.Equal(t, tc.raw, got)
				return
			}
			assert.Len(t, got, 32)
			assert.NotEqual(t, tc.raw, got)
		})
	}
}

func TestOrderIDTravelsWithContext(t *testing.T) {
	ctx := WithRequestAndSpan(context.Background(), "req-3", 0)
	assert.Equal(t, "", OrderIDFromContext(ctx))

	ctx = WithOrderID(ctx, "order-1")
	assert.Equal(t, "order-1", OrderIDFromContext(ctx))
	assert.Equal(t, "req-3", RequestIDFromContext(ctx))

	assert.Equal(t, ctx, WithOrderID(ctx, ""))
}
