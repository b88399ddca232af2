package auth

import (
	"net/http"
	"testing"
)

func TestAuthorize(t *testing.T) {
	cred := New("tok123", "ada", "Ada")
	req, _ := http.NewRequest(http.MethodGet, "http://localhost:8000/api/projects/1/", nil)

	if err := cred.Authorize(req); err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer tok123" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestAuthorizeWithoutToken(t *testing.T) {
	cred := New("", "ada", "")
	req, _ := http.NewRequest(http.MethodGet, "http://localhost:8000/", nil)

	if err := cred.Authorize(req); err != ErrNoToken {
		t.Errorf("err = %v, want ErrNoToken", err)
	}
}

func TestQuery(t *testing.T) {
	cred := New("tok123", "", "")
	if got := cred.Query().Encode(); got != "token=tok123" {
		t.Errorf("Query = %q", got)
	}

	var none *Credential
	if got := none.Query().Encode(); got != "" {
		t.Errorf("nil credential Query = %q, want empty", got)
	}
}

func TestDisplayName(t *testing.T) {
	if got := New("t", "ada.l", "Ada").DisplayName(); got != "Ada" {
		t.Errorf("DisplayName = %q, want Ada", got)
	}
	if got := New("t", "ada.l", "").DisplayName(); got != "ada.l" {
		t.Errorf("DisplayName = %q, want ada.l", got)
	}
}
