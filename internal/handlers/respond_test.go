package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPanicEnvelopeRecoversToInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.CustomRecovery(PanicEnvelope))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	if envelope.ErrorCode != "INTERNAL_ERROR" {
		t.Fatalf("expected INTERNAL_ERROR, got %q", envelope.ErrorCode)
	}
	if envelope.ErrorMessage != "internal error" {
		t.Fatalf("unexpected error message %q", envelope.ErrorMessage)
	}
}
