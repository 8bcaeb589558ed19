package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/internal/observability"
	"github.com/sandevgo/tuskshop/pkg/log"
)

const (
	infoMessage  = "TuskShop Fashion Store Chatbot API aktif!"
	maxBodyBytes = 64 << 10
)

var errEmptyBody = errors.New("empty body")

// Replier produces the reply for one customer message.
type Replier interface {
	Reply(ctx context.Context, sessionID, message string) string
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type Server struct {
	addr    string
	replier Replier
	metrics *observability.Metrics
	server  *http.Server
}

// New builds the server. Request contexts derive from ctx so handlers inherit
// its logger, but not its cancellation: in-flight requests finish during
// Shutdown after the signal context is done.
func New(ctx context.Context, addr string, replier Replier, metrics *observability.Metrics) *Server {
	base := context.WithoutCancel(ctx)
	s := &Server{
		addr:    addr,
		replier: replier,
		metrics: metrics,
	}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return base
		},
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestContext)

	r.Get("/", s.handleInfo)
	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Post("/chat", s.handleChat)

	return r
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("http api listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"info":   infoMessage,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": core.ShopVersion,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := decodeJSON(r, &req); err != nil {
		if errors.Is(err, errEmptyBody) {
			s.respondError(w, r, http.StatusBadRequest, "empty_body", "request body is required")
			return
		}
		s.respondError(w, r, http.StatusBadRequest, "invalid_json", "request body must be a JSON object")
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		s.respondError(w, r, http.StatusBadRequest, "missing_session_id", "session_id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.respondError(w, r, http.StatusBadRequest, "missing_message", "message is required")
		return
	}

	reply := s.replier.Reply(r.Context(), req.SessionID, req.Message)
	s.count(r, http.StatusOK)
	respondJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// requestContext tags the request logger with a request id.
func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := log.WithFields(r.Context(), "request_id", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	log.FromCtx(r.Context()).Debug().Str("code", code).Msg("rejected chat request")
	s.count(r, status)
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

func (s *Server) count(r *http.Request, status int) {
	if s.metrics == nil {
		return
	}
	s.metrics.HTTPRequests.WithLabelValues(r.URL.Path, strconv.Itoa(status)).Inc()
}

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
