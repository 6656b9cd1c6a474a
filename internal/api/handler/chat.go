package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/tabifor/stellachat/internal/api/middleware"
	"github.com/tabifor/stellachat/internal/api/response"
	"github.com/tabifor/stellachat/internal/domain"
	"github.com/tabifor/stellachat/internal/llm"
	"github.com/tabifor/stellachat/internal/persona"
	"github.com/tabifor/stellachat/internal/service"
)

// ChatHandler handles chat streaming and history endpoints
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Messages []llm.Message `json:"messages"`
}

// historyItem is the wire shape of one history entry
type historyItem struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Stream handles POST /chat/{persona}: it persists the user turn, then
// relays the model's reply to the client as a raw text/plain token stream.
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	p, ok := persona.Lookup(chi.URLParam(r, "persona"))
	if !ok {
		response.NotFound(w, "unknown persona")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		response.BadRequest(w, "messages are required")
		return
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != llm.RoleUser || last.Content == "" {
		response.BadRequest(w, "last message must be a non-empty user message")
		return
	}

	turn, err := h.chatService.Begin(r.Context(), userID, p, req.Messages)
	if err != nil {
		log.Error().Err(err).Str("persona", p.ID).Msg("failed to begin chat turn")
		if errors.Is(err, domain.ErrUpstream) {
			response.InternalError(w, "AI connection failed")
		} else {
			response.InternalError(w, "an internal error occurred")
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if err := turn.Relay(r.Context(), newFlushWriter(w)); err != nil {
		log.Error().Err(err).Str("persona", p.ID).Msg("chat stream aborted")
		// Headers are out; drop the connection so the client sees an error
		// instead of a silently truncated 200.
		panic(http.ErrAbortHandler)
	}
}

// History handles GET /chat/history/{persona}. A user with no chat for the
// persona gets an empty array.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	p, ok := persona.Lookup(chi.URLParam(r, "persona"))
	if !ok {
		response.NotFound(w, "unknown persona")
		return
	}

	messages, err := h.chatService.History(r.Context(), userID, p.ID)
	if err != nil {
		log.Error().Err(err).Str("persona", p.ID).Msg("failed to load history")
		response.InternalError(w, "an internal error occurred")
		return
	}

	items := make([]historyItem, 0, len(messages))
	for _, m := range messages {
		items = append(items, historyItem{
			ID:      m.ID.String(),
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	response.JSON(w, http.StatusOK, items)
}

// flushWriter flushes after every write so each fragment reaches the client
// as soon as it is produced.
type flushWriter struct {
	w io.Writer
	f http.Flusher
}

func newFlushWriter(w http.ResponseWriter) *flushWriter {
	fw := &flushWriter{w: w}
	if f, ok := w.(http.Flusher); ok {
		fw.f = f
	}
	return fw
}

func (fw *flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if fw.f != nil {
		fw.f.Flush()
	}
	return n, err
}
