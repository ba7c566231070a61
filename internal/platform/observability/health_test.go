package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

var errDown = errors.New("connection refused")

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) (time.Duration, error) {
	return time.Millisecond, p.err
}

func TestServerRoutes(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name     string
		path     string
		pingErr  error
		wantCode int
	}{
		{name: "healthz always ok", path: "/healthz", pingErr: errDown, wantCode: http.StatusOK},
		{name: "ready", path: "/readyz", wantCode: http.StatusOK},
		{name: "not ready", path: "/readyz", pingErr: errDown, wantCode: http.StatusServiceUnavailable},
		{name: "metrics", path: "/metrics", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(stubPinger{err: tt.pingErr}, 0, &logger)
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
