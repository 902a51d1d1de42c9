package chat_http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"chat-orchestrator/internal/usecase"
)

type stubChatUsecase struct {
	response string
	err      error
	input    usecase.ChatInput
}

func (s *stubChatUsecase) Execute(_ context.Context, input usecase.ChatInput) (string, error) {
	s.input = input
	return s.response, s.err
}

type stubCaptioner struct {
	caption string
	err     error
}

func (s *stubCaptioner) Caption(_ context.Context, _ []byte) (string, error) {
	return s.caption, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postJSON(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestChat_Success(t *testing.T) {
	uc := &stubChatUsecase{response: "here is your answer"}
	h := NewHandler(uc, &stubCaptioner{}, testLogger())

	c, rec := postJSON(t, `{"message":"what is Go?","session_id":"s-1"}`)
	if err := h.Chat(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["response"] != "here is your answer" {
		t.Fatalf("unexpected response body: %v", resp)
	}
	if uc.input.SessionID != "s-1" || uc.input.Message != "what is Go?" {
		t.Fatalf("usecase received wrong input: %+v", uc.input)
	}
}

func TestChat_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{"session_id":"s-1"}`},
		{"missing session_id", `{"message":"hello"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubChatUsecase{}, &stubCaptioner{}, testLogger())
			c, rec := postJSON(t, tt.body)
			if err := h.Chat(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "Message and session_id are required") {
				t.Fatalf("unexpected error body: %s", rec.Body.String())
			}
		})
	}
}

func TestChat_PipelineFailure(t *testing.T) {
	uc := &stubChatUsecase{err: fmt.Errorf("history store down")}
	h := NewHandler(uc, &stubCaptioner{}, testLogger())

	c, rec := postJSON(t, `{"message":"hello","session_id":"s-1"}`)
	if err := h.Chat(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Internal server error") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func postImage(t *testing.T, fieldName string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, "photo.jpg")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte("fake image bytes")); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/upload-image", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUploadImage_Success(t *testing.T) {
	h := NewHandler(&stubChatUsecase{}, &stubCaptioner{caption: "a dog on a beach"}, testLogger())

	c, rec := postImage(t, "image")
	if err := h.UploadImage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "a dog on a beach") {
		t.Fatalf("unexpected response body: %s", rec.Body.String())
	}
}

func TestUploadImage_MissingFile(t *testing.T) {
	h := NewHandler(&stubChatUsecase{}, &stubCaptioner{}, testLogger())

	c, rec := postImage(t, "attachment")
	if err := h.UploadImage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No image uploaded") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestUploadImage_CaptionerFailure(t *testing.T) {
	h := NewHandler(&stubChatUsecase{}, &stubCaptioner{err: fmt.Errorf("model loading")}, testLogger())

	c, rec := postImage(t, "image")
	if err := h.UploadImage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to analyze image") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}
