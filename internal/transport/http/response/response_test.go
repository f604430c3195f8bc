package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/pkg/requestctx"
)

type decodeDst struct {
	A string `json:"a"`
	B int    `json:"b"`
}

func newReqWithBody(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSON(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"single object", `{"a":"x","b":1}`, false},
		{"unknown fields ignored", `{"a":"x","c":"oops"}`, false},
		{"truncated", `{"a":"x",`, true},
		{"trailing value", `{}{}`, true},
		{"wrong type", `{"b":"one"}`, true},
		{"empty", ``, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var dst decodeDst
			err := DecodeJSON(httptest.NewRecorder(), newReqWithBody(c.body), &dst)
			if c.wantErr {
				assert.True(t, domain.Is(err, "invalid_json"), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrEmailAlreadyExists(), http.StatusInternalServerError, "email_already_exists"},
		{domain.ErrInvalidCredentials(), http.StatusUnauthorized, "invalid_credentials"},
		{domain.ErrTokenMissing(), http.StatusUnauthorized, "token_missing"},
		{domain.ErrUnknownSubject(), http.StatusUnauthorized, "unknown_subject"},
		{domain.ErrInsufficientRole("user"), http.StatusForbidden, "insufficient_role"},
		{domain.ErrResetTokenInvalid(), http.StatusBadRequest, "reset_token_invalid"},
		{domain.ErrIncorrectPassword(), http.StatusBadRequest, "incorrect_password"},
		{domain.ErrUserNotFound(), http.StatusNotFound, "user_not_found"},
		{domain.ErrMailDeliveryFailed(errors.New("smtp")), http.StatusServiceUnavailable, "mail_delivery_failed"},
		{domain.ErrBootcampAlreadyExists(), http.StatusConflict, "bootcamp_already_exists"},
		{domain.ErrRateLimited("login"), http.StatusTooManyRequests, "rate_limited"},
		{errors.New("raw driver failure"), http.StatusInternalServerError, "internal_error"},
	}

	for _, c := range cases {
		t.Run(c.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req = req.WithContext(requestctx.WithRequestID(req.Context(), "rid-1"))

			WriteError(rec, req, c.err)

			assert.Equal(t, c.status, rec.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, c.code, body.Error.Code)
			assert.Equal(t, "rid-1", body.Error.RequestID)
		})
	}
}

func TestWriteError_DoesNotLeakCause(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), domain.ErrDBUnavailable(errors.New("password=hunter2")))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestSuccessEnvelopes(t *testing.T) {
	rec := httptest.NewRecorder()
	Token(rec, http.StatusCreated, "tok")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"token":"tok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Empty(rec)
	assert.JSONEq(t, `{"success":true,"data":{}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Message(rec, "Email sent")
	assert.JSONEq(t, `{"success":true,"data":"Email sent"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	List(rec, []query.Document{{"id": "1"}}, 6, query.Pagination{Next: &query.PageRef{Page: 2, Limit: 1}})
	assert.JSONEq(t, `{
		"success": true,
		"count": 1,
		"total": 6,
		"pagination": {"next": {"page": 2, "limit": 1}},
		"data": [{"id": "1"}]
	}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}
