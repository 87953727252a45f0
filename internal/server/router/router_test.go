package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestProbes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ready := false
	r := New(Handlers{Ready: func() bool { return ready }}, nil)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	if w := get("/healthz"); w.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", w.Code)
	}
	if w := get("/readyz"); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz before load: expected 503, got %d", w.Code)
	}
	ready = true
	if w := get("/readyz"); w.Code != http.StatusOK {
		t.Fatalf("readyz after load: expected 200, got %d", w.Code)
	}

	w := get("/metrics")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Fatalf("metrics endpoint not served: %d", w.Code)
	}
	if w := get("/records"); w.Code != http.StatusNotFound {
		t.Fatalf("records routes should be absent without a handler, got %d", w.Code)
	}
}
