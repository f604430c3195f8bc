package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSetSessionCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	SetSessionCookie(rr, "abc", 30*24*time.Hour, true)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "token" || c.Value != "abc" {
		t.Fatalf("unexpected cookie: %+v", c)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie flags: %+v", c)
	}
	if c.MaxAge != 30*24*3600 {
		t.Fatalf("unexpected max age: %d", c.MaxAge)
	}
}

func TestClearAndReadSessionCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	ClearSessionCookie(rr, false)
	if c := rr.Result().Cookies()[0]; c.MaxAge >= 0 || c.Value != "" {
		t.Fatalf("expected expired cookie, got %+v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := ReadSessionCookie(req); err == nil {
		t.Fatalf("expected error without cookie")
	}
	req.AddCookie(&http.Cookie{Name: "token", Value: "xyz"})
	v, err := ReadSessionCookie(req)
	if err != nil || v != "xyz" {
		t.Fatalf("expected xyz, got %q err=%v", v, err)
	}
}
