package evalaitest

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caio-campos/profilectl/profile"
)

func do(t *testing.T, s *Server, method, auth, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, s.APIURL()+"auth/user/", strings.NewReader(body))
	require.NoError(t, err)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestRequireToken(t *testing.T) {
	s := New("userKey", profile.User{Username: "abc123"})
	t.Cleanup(s.Close)

	tests := []struct {
		name string
		auth string
		want int
	}{
		{"token scheme", "Token userKey", http.StatusOK},
		{"bearer scheme", "Bearer userKey", http.StatusUnauthorized},
		{"wrong key", "Token other", http.StatusUnauthorized},
		{"missing", "", http.StatusUnauthorized},
		{"no key", "Token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, s, http.MethodGet, tt.auth, "").StatusCode)
		})
	}
}

func TestPutKeepsMissingKeys(t *testing.T) {
	s := New("userKey", profile.User{Username: "abc123", GithubURL: "https://github.com/ada"})
	t.Cleanup(s.Close)

	res := do(t, s, http.MethodPut, "Token userKey", `{"first_name":"Ada"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, profile.User{Username: "abc123", FirstName: "Ada", GithubURL: "https://github.com/ada"}, s.User())

	do(t, s, http.MethodPut, "Token userKey", `{"github_url":""}`)
	assert.Equal(t, "", s.User().GithubURL)
	assert.Len(t, s.Updates(), 2)
}

func TestEnqueueGet(t *testing.T) {
	s := New("userKey", profile.User{Username: "abc123"})
	t.Cleanup(s.Close)
	s.EnqueueGet(Reply{Status: http.StatusServiceUnavailable})

	assert.Equal(t, http.StatusServiceUnavailable, do(t, s, http.MethodGet, "Token userKey", "").StatusCode)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "Token userKey", "").StatusCode)
}
