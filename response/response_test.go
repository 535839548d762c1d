package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "pousada/errors"

	"github.com/gin-gonic/gin"
)

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func render(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/payments", nil)
	c.Set("requestId", "req-1")
	Error(c, err)
	return w
}

func TestErrorLogsInternalThroughLogger(t *testing.T) {
	rec := &recordingLogger{}
	prev := errorLogger
	SetLogger(rec)
	t.Cleanup(func() { SetLogger(prev) })

	w := render(errors.New("connection reset"))
	if w.Code != http.StatusInternalServerError || w.Body.String() != `{"error":"internal server error"}` {
		t.Fatalf("internal = %d %s", w.Code, w.Body)
	}
	if len(rec.errors) != 1 || !strings.Contains(rec.errors[0], "connection reset") || !strings.Contains(rec.errors[0], "req-1") {
		t.Errorf("logged = %v", rec.errors)
	}

	w = render(apperrors.Conflict("room number already exists in this establishment"))
	if w.Code != http.StatusBadRequest || w.Body.String() != `{"error":"room number already exists in this establishment"}` {
		t.Errorf("conflict = %d %s", w.Code, w.Body)
	}
	if len(rec.errors) != 1 {
		t.Errorf("client errors must not be logged: %v", rec.errors)
	}
}
