package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/findingfriends/internal/web/templates/layout"
)

func TestParseFlash(t *testing.T) {
	tests := []struct {
		value string
		want  layout.FlashMessage
	}{
		{"success:Round 3 added", layout.FlashMessage{Type: "success", Message: "Round 3 added"}},
		{"error:bid: too low", layout.FlashMessage{Type: "error", Message: "bid: too low"}},
		{"plain", layout.FlashMessage{Type: "info", Message: "plain"}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, *parseFlash(tt.value))
		})
	}
}

func TestFlashReadsAndClearsCookie(t *testing.T) {
	var got *layout.FlashMessage
	h := Flash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetFlash(r.Context())
	}))

	set := httptest.NewRecorder()
	SetFlash(set, FlashSuccess, "Saved")
	cookies := set.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.NotNil(t, got)
	assert.Equal(t, "Saved", got.Message)

	cleared := rr.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)
}

func TestFlashAbsent(t *testing.T) {
	called := false
	h := Flash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, GetFlash(r.Context()))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
	assert.Empty(t, rr.Result().Cookies())
}
