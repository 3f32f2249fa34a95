package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamRecorder потокобезопасный ResponseWriter для чтения SSE во время запроса
type streamRecorder struct {
	mu     sync.Mutex
	header http.Header
	body   bytes.Buffer
	code   int
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{header: http.Header{}}
}

func (r *streamRecorder) Header() http.Header { return r.header }

func (r *streamRecorder) WriteHeader(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.code = code
}

func (r *streamRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.Write(p)
}

func (r *streamRecorder) Flush() {}

func (r *streamRecorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.String()
}

func TestBookingEventsStream(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	alice := signToken(t, "alice", RoleCustomer, time.Hour)
	bob := signToken(t, "bob", RoleCustomer, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+alice)
	stream := newStreamRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.router.ServeHTTP(stream, req)
	}()

	require.Eventually(t, func() bool { return s.broker.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	monday := nextMonday().String()
	rec := s.do(t, http.MethodPost, "/api/v1/bookings", bob, map[string]any{
		"shop_id": "1", "service_name": "Haircut", "date": monday, "time": "09:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/v1/bookings", alice, map[string]any{
		"shop_id": "1", "service_name": "Haircut", "date": monday, "time": "09:30",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Eventually(t, func() bool {
		return strings.Contains(stream.String(), "event:"+string(model.BookingCreated))
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event stream did not stop after client disconnect")
	}

	body := stream.String()
	assert.Contains(t, body, `"customer_id":"alice"`)
	assert.NotContains(t, body, `"customer_id":"bob"`)
	assert.Equal(t, "text/event-stream", stream.Header().Get("Content-Type"))
	assert.Equal(t, 0, s.broker.Subscribers())
}

func TestBookingEventsRequiresAuth(t *testing.T) {
	s := newTestServer(t, RouterConfig{})

	rec := s.do(t, http.MethodGet, "/api/v1/bookings/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
