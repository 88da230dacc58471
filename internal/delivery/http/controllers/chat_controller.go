package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	h "gradinvite/internal/delivery/http/helpers"
	"gradinvite/internal/domain"
)

const maxChatMessageRunes = 2000

// ChatRequest is the request body for POST /api/events/{eventID}/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// Validate implements Validator.
func (c ChatRequest) Validate() []string {
	msg := strings.TrimSpace(c.Message)
	switch {
	case msg == "":
		return []string{"message is required"}
	case utf8.RuneCountInString(msg) > maxChatMessageRunes:
		return []string{"message is too long"}
	}
	return nil
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// ChatSuccessResponse is the success envelope for POST /api/events/{eventID}/chat.
type ChatSuccessResponse struct {
	Data  ChatResponse `json:"data"`
	Error *h.APIError  `json:"error"`
}

type ChatController struct {
	Logger  *slog.Logger
	Service domain.ChatService
}

func NewChatController(logger *slog.Logger, svc domain.ChatService) *ChatController {
	return &ChatController{
		Logger:  logger,
		Service: svc,
	}
}

// Chat godoc
// @Summary Ask the event assistant
// @Description Forwards a guest question, together with the event details, to the chat assistant and returns its answer.
// @Tags chat
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body ChatRequest true "Guest message"
// @Success 200 {object} controllers.ChatSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /api/events/{eventID}/chat [post]
func (c *ChatController) Chat(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req ChatRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	reply, err := c.Service.Chat(r.Context(), eventID, req.Message)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, ChatResponse{Response: reply})
}
