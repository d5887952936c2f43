package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	e "github.com/gartstein/gstdesk/internal/records/errors"
	"go.uber.org/zap"
)

// Server serves the command boundary over HTTP: POST /invoke/{command} with
// a JSON payload body. Results come back as {"result": ...}, failures as
// {"error": {"kind": ..., "message": ...}}.
type Server struct {
	httpServer *http.Server
	dispatcher *Dispatcher
	logger     *zap.Logger
	endpoint   string
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type responseEnvelope struct {
	Result interface{} `json:"result,omitempty"`
	Error  *errorBody  `json:"error,omitempty"`
}

// NewServer constructs a Server for the given dispatcher.
func NewServer(port int, dispatcher *Dispatcher, logger *zap.Logger) *Server {
	s := &Server{
		httpServer: &http.Server{},
		dispatcher: dispatcher,
		logger:     logger.Named("command_server"),
		endpoint:   fmt.Sprintf(":%d", port),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/invoke/", s.handleInvoke)
	s.httpServer.Handler = mux
	s.httpServer.Addr = s.endpoint
	return s
}

// Start runs the HTTP server until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("Starting command server",
		zap.String("endpoint", s.endpoint),
		zap.Int("commands", len(s.dispatcher.Commands())),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP serve error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down command server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Command server stopped")
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "invalid_request", "POST required")
		return
	}
	command := strings.TrimPrefix(r.URL.Path, "/invoke/")
	if command == "" {
		s.writeError(w, http.StatusNotFound, "not_found", "command name required")
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "failed to read request body")
		return
	}

	result, err := s.dispatcher.Invoke(r.Context(), command, payload)
	if err != nil {
		kind, status, message := classifyError(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("Command failed",
				zap.String("command", command),
				zap.Error(err),
			)
		}
		s.writeError(w, status, kind, message)
		return
	}

	s.writeJSON(w, http.StatusOK, responseEnvelope{Result: result})
}

// classifyError maps domain errors to the stable error kinds of the command
// boundary. Unknown errors surface as an opaque storage failure; the real
// cause goes to the log, not the caller.
func classifyError(err error) (kind string, status int, message string) {
	switch {
	case errors.Is(err, e.ErrNoFieldsToUpdate):
		return "no_fields_to_update", http.StatusBadRequest, err.Error()
	case errors.Is(err, e.ErrInvalidInput):
		return "invalid_field", http.StatusBadRequest, err.Error()
	case errors.Is(err, e.ErrDuplicateGST):
		return "conflict", http.StatusConflict, err.Error()
	case errors.Is(err, e.ErrNotFound):
		return "not_found", http.StatusNotFound, err.Error()
	default:
		return "storage_unavailable", http.StatusInternalServerError, "storage operation failed"
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, kind, message string) {
	s.writeJSON(w, status, responseEnvelope{Error: &errorBody{Kind: kind, Message: message}})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body responseEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}
