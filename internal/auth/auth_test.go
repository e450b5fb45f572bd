package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	v := NewVerifier([]byte("test-secret"))

	tok, err := v.Issue("user-1", "Asha", "9876543210", time.Hour)
	require.NoError(t, err)

	claims, err := v.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "Asha", claims.Name)
	assert.Equal(t, "9876543210", claims.Phone)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	v := NewVerifier([]byte("test-secret"))
	tok, err := v.Issue("user-1", "Asha", "9876543210", time.Hour)
	require.NoError(t, err)

	other := NewVerifier([]byte("another-secret"))
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSubjectFromRequest(t *testing.T) {
	v := NewVerifier([]byte("test-secret"))
	tok, err := v.Issue("user-1", "Asha", "9876543210", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "valid token", header: "Bearer " + tok, want: "user-1"},
		{name: "no header", header: "", want: ""},
		{name: "not a bearer scheme", header: "Basic abc", want: ""},
		{name: "malformed token", header: "Bearer not-a-jwt", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, v.SubjectFromRequest(r))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	v := NewVerifier([]byte("test-secret"))
	tok, err := v.Issue("user-1", "Asha", "9876543210", time.Hour)
	require.NoError(t, err)

	var gotSubject string
	wrapped := v.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotSubject = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	wrapped(w, r, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "user-1", gotSubject)
}

func TestAuthenticate_RejectsWithEnvelope(t *testing.T) {
	v := NewVerifier([]byte("test-secret"))
	wrapped := v.Authenticate(func(http.ResponseWriter, *http.Request, httprouter.Params) {
		panic("handler must not run")
	})

	for _, header := range []string{"", "Bearer ", "Bearer garbage"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		wrapped(w, r, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"success":false,"message":"Unauthorized"}`, w.Body.String())
	}
}
