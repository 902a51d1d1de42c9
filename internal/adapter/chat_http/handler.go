package chat_http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"chat-orchestrator/internal/domain"
	"chat-orchestrator/internal/usecase"
)

type Handler struct {
	chatUsecase usecase.ChatUsecase
	captioner   domain.Captioner
	logger      *slog.Logger
}

func NewHandler(chatUsecase usecase.ChatUsecase, captioner domain.Captioner, logger *slog.Logger) *Handler {
	return &Handler{
		chatUsecase: chatUsecase,
		captioner:   captioner,
		logger:      logger,
	}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Chat handles POST /chat. Provider fallback never surfaces here; the only
// error responses are missing fields (400) and internal pipeline failure
// (500).
func (h *Handler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" || req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message and session_id are required"})
	}

	response, err := h.chatUsecase.Execute(c.Request().Context(), usecase.ChatInput{
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		h.logger.Error("chat_pipeline_failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, chatResponse{Response: response})
}

// UploadImage handles POST /upload-image: the image is captioned by the
// hosted BLIP model and the caption returned as the response text.
func (h *Handler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No image uploaded"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No image uploaded"})
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process image"})
	}

	caption, err := h.captioner.Caption(c.Request().Context(), image)
	if err != nil {
		h.logger.Warn("image_caption_failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to analyze image"})
	}

	return c.JSON(http.StatusOK, chatResponse{Response: caption})
}
