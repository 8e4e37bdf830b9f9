package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/addressbook-backend/internal/domain/contact"
	"github.com/yungbote/addressbook-backend/internal/platform/apierr"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestRespondAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondAPIError(c, apierr.NotFound("contact_not_found", errors.New("contact not found: abc")), "get_failed")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("RespondAPIError: status=%d", rec.Code)
	}
	env := decode(t, rec)
	if env.Error.Code != "contact_not_found" || env.Error.Message != "contact not found: abc" {
		t.Fatalf("RespondAPIError: unexpected %+v", env.Error)
	}

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	RespondAPIError(c, errors.New("dial tcp: refused"), "get_failed")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("RespondAPIError(untyped): status=%d", rec.Code)
	}
	env = decode(t, rec)
	if env.Error.Code != "get_failed" || env.Error.Message != "unknown error" {
		t.Fatalf("RespondAPIError(untyped): leaked %+v", env.Error)
	}
}

func TestRespondFieldErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondFieldErrors(c, contact.FieldErrors{{Field: "name", Tag: "min", Message: "Name must be between 3 and 64 characters"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("RespondFieldErrors: status=%d", rec.Code)
	}
	env := decode(t, rec)
	if len(env.Error.Fields) != 1 || env.Error.Fields[0].Field != "name" {
		t.Fatalf("RespondFieldErrors: unexpected %+v", env.Error)
	}
}
