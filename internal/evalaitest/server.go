// Package evalaitest runs a fake EvalAI profile API for tests.
package evalaitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/caio-campos/profilectl/dispatch"
	"github.com/caio-campos/profilectl/profile"
)

// Reply is a canned answer for the next request of a method.
type Reply struct {
	Status int
	// Body is written verbatim; empty means no body.
	Body string
}

func (r Reply) write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.Status)
	if r.Body != "" {
		w.Write([]byte(r.Body))
	}
}

// Server stores one profile behind token authentication.
type Server struct {
	*httptest.Server

	Token string

	mu         sync.Mutex
	user       profile.User
	replies    []Reply
	getReplies []Reply
	updates    []profile.User
}

// New starts a server whose API root is URL() + "/api/".
func New(token string, user profile.User) *Server {
	s := &Server{Token: token, user: user}

	r := chi.NewRouter()
	r.Route("/api/auth/user", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/", s.handleGet)
		r.Put("/", s.handlePut)
		r.Patch("/", s.handlePut)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// APIURL is the base URL to configure the dispatcher with.
func (s *Server) APIURL() string {
	return s.URL + "/api/"
}

// Enqueue makes the next PUT answer with reply instead of storing the body.
func (s *Server) Enqueue(reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, reply)
}

// EnqueueGet makes the next GET answer with reply.
func (s *Server) EnqueueGet(reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getReplies = append(s.getReplies, reply)
}

// User returns the stored profile.
func (s *Server) User() profile.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Updates returns every PUT payload received, in order.
func (s *Server) Updates() []profile.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]profile.User, len(s.updates))
	copy(out, s.updates)
	return out
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, err := dispatch.ParseToken(r.Header.Get("Authorization"))
		if err != nil || scheme != dispatch.AuthTypeToken.String() || token != s.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if len(s.getReplies) > 0 {
		reply := s.getReplies[0]
		s.getReplies = s.getReplies[1:]
		s.mu.Unlock()
		reply.write(w)
		return
	}
	user := s.user
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, user)
}

// handlePut applies the body onto the stored profile. Keys missing from
// the body keep their stored value.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"non_field_errors": {"Invalid data."}})
		return
	}

	var sent profile.User
	if err := json.Unmarshal(body, &sent); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"non_field_errors": {"Invalid data."}})
		return
	}

	s.mu.Lock()
	s.updates = append(s.updates, sent)
	if len(s.replies) > 0 {
		reply := s.replies[0]
		s.replies = s.replies[1:]
		s.mu.Unlock()

		reply.write(w)
		return
	}
	user := s.user
	json.Unmarshal(body, &user)
	s.user = user
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, user)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
