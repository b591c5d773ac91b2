package dispatch

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"
)

const testToken = "userKey"

func newHTTPTestServer() *httptest.Server {
	return httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/test/status/") {
				statusCode, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/test/status/"))
				if err != nil || statusCode < 100 || statusCode > 599 {
					w.WriteHeader(http.StatusBadRequest)
					return
				}

				w.WriteHeader(statusCode)
				return
			}

			switch r.URL.Path {
			case "/test/methods":
				w.Header().Add("Content-Type", "application/json")
				if allowedMethods[r.Method] {
					w.WriteHeader(http.StatusOK)
				} else {
					w.WriteHeader(http.StatusBadRequest)
				}

			case "/api/auth/user/":
				if r.Header.Get("Authorization") != "Token "+testToken {
					writeJSON(w, http.StatusUnauthorized, `{"detail":"Invalid token."}`)
					return
				}
				switch r.Method {
				case http.MethodGet:
					writeJSON(w, http.StatusOK, `{"username":"abc123","first_name":"firstname","last_name":"lastname","affiliation":"affiliation"}`)
				case http.MethodPut, http.MethodPatch:
					body, _ := io.ReadAll(r.Body)
					writeJSON(w, http.StatusOK, string(body))
				default:
					w.WriteHeader(http.StatusMethodNotAllowed)
				}

			case "/test/fields":
				writeJSON(w, http.StatusBadRequest, `{"username":["username error"],"first_name":["firstname error","second"]}`)

			case "/test/empty-object":
				writeJSON(w, http.StatusBadRequest, `{}`)

			case "/test/null":
				writeJSON(w, http.StatusBadRequest, `null`)

			case "/test/empty":
				w.WriteHeader(http.StatusInternalServerError)

			case "/test/html":
				w.Header().Add("Content-Type", "text/html")
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("<html><body>bad gateway</body></html>"))

			case "/test/headers":
				headers := make(map[string]string, len(r.Header))
				for key := range r.Header {
					headers[key] = r.Header.Get(key)
				}
				payload, _ := json.Marshal(headers)
				writeJSON(w, http.StatusOK, string(payload))

			case "/test/slow":
				time.Sleep(2 * time.Second)
				w.WriteHeader(http.StatusOK)

			case "/test/large-response":
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(strings.Repeat("x", 2048)))

			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}),
	)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
