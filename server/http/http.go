// Package http exposes the assistant over a mux router: ask, reset
// conversation, archived history, and a plain-text transcript download.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	counsel "github.com/w-h-a/counsel"
	"github.com/w-h-a/counsel/server"
)

type httpServer struct {
	options   server.Options
	assistant *counsel.Assistant
	srv       *http.Server
}

func (s *httpServer) Run() error {
	slog.InfoContext(s.options.Context, "http server listening", "address", s.options.Address)
	return s.srv.ListenAndServe()
}

func (s *httpServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *httpServer) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req counsel.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.options.RequestTimeout)
	defer cancel()

	rsp := s.assistant.Ask(ctx, req)

	writeJSON(w, http.StatusOK, rsp)
}

func (s *httpServer) handleReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserId     string `json:"user_id,omitempty"`
		SessionKey string `json:"session_key,omitempty"`
	}

	// An empty body resets the anonymous session.
	_ = json.NewDecoder(r.Body).Decode(&req)

	key := req.UserId
	if len(key) == 0 {
		key = req.SessionKey
	}

	s.assistant.ResetConversation(key)

	writeJSON(w, http.StatusOK, map[string]string{"message": "New chat started!"})
}

func (s *httpServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("user_id")
	if len(userId) == 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	turns, err := s.assistant.History(r.Context(), userId)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load history", "user_id", userId, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"chat_history": turns})
}

func (s *httpServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("user_id")
	if len(userId) == 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	turns, err := s.assistant.History(r.Context(), userId)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load history", "user_id", userId, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=chat_history.txt")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, counsel.TranscriptText(turns))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func NewServer(assistant *counsel.Assistant, opts ...server.Option) server.Server {
	options := server.NewOptions(opts...)

	if assistant == nil {
		panic("assistant is required")
	}

	s := &httpServer{
		options:   options,
		assistant: assistant,
	}

	router := mux.NewRouter()
	router.HandleFunc("/ask", s.handleAsk).Methods(http.MethodPost)
	router.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	router.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	router.HandleFunc("/history/download", s.handleDownload).Methods(http.MethodGet)

	var handler http.Handler = router
	if ms, ok := MiddlewareFrom(options.Context); ok {
		for i := len(ms) - 1; i >= 0; i-- {
			handler = ms[i](handler)
		}
	}

	s.srv = &http.Server{
		Addr:    options.Address,
		Handler: handler,
	}

	return s
}
