package api_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/shopmate/orchestrator/agent"
	"github.com/shopmate/orchestrator/api"
	"github.com/shopmate/orchestrator/chat"
	"github.com/shopmate/orchestrator/config"
	"github.com/shopmate/orchestrator/domain"
	"github.com/shopmate/orchestrator/session"
	"github.com/shopmate/orchestrator/tests/helpers"
)

func newHandler(t *testing.T) (*api.Handler, *session.Registry) {
	t.Helper()

	st := helpers.NewTestSQLiteStore(t)
	registry := session.NewRegistry(func(cfg domain.EngineConfig) (*agent.Set, error) {
		return agent.NewMockSet(), nil
	})
	orchestrator := chat.New(st, nil)
	return api.NewHandler(registry, orchestrator, st, &config.Config{TurnTimeout: 5 * time.Second}), registry
}

func createSession(t *testing.T, registry *session.Registry) *session.Session {
	t.Helper()
	sess, err := registry.Create(domain.EngineConfig{
		LLMAPIKey:       "a",
		SearchAPIKey:    "b",
		FirecrawlAPIKey: "c",
	})
	assert.NoError(t, err)
	return sess
}

func postChat(t *testing.T, h *api.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.Chat(c))
	return rec
}

func TestChatUnknownSession(t *testing.T) {
	h, _ := newHandler(t)

	rec := postChat(t, h, domain.ChatRequest{SessionID: "nope", Message: "hello"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatConversationThenSearch(t *testing.T) {
	h, registry := newHandler(t)
	sess := createSession(t, registry)

	// first turn: the mock engine keeps gathering requirements
	rec := postChat(t, h, domain.ChatRequest{SessionID: sess.ID, Message: "I want running shoes"})
	assert.Equal(t, http.StatusOK, rec.Code)

	var first domain.ChatTurnResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.Equal(t, domain.TurnKindConversation, first.Kind)
	assert.True(t, first.ContinueConversation)
	assert.Empty(t, first.ProductsHTML)
	assert.Equal(t, 2, sess.Log.Len())

	// second turn: the mock engine hands off to product search
	rec = postChat(t, h, domain.ChatRequest{SessionID: sess.ID, Message: "size 10, under $100"})
	assert.Equal(t, http.StatusOK, rec.Code)

	var second domain.ChatTurnResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, domain.TurnKindProductSearch, second.Kind)
	assert.False(t, second.ContinueConversation)
	assert.Contains(t, second.ProductsHTML, "product-list")
	assert.Equal(t, 5, sess.Log.Len())
}

func TestChatMalformedImage(t *testing.T) {
	h, registry := newHandler(t)
	sess := createSession(t, registry)

	rec := postChat(t, h, domain.ChatRequest{
		SessionID: sess.ID,
		Message:   "what is this?",
		ImageData: "data:image/png;base64,@@@broken@@@",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, sess.Log.Len())
}

func TestChatWithImage(t *testing.T) {
	h, registry := newHandler(t)
	sess := createSession(t, registry)

	payload := "data:image/gif;base64," + base64.StdEncoding.EncodeToString([]byte("GIF89a"))
	rec := postChat(t, h, domain.ChatRequest{SessionID: sess.ID, Message: "these shoes", ImageData: payload})
	assert.Equal(t, http.StatusOK, rec.Code)

	messages := sess.Log.Snapshot()
	assert.Len(t, messages, 2)
	// the user message carries the interpreter's output, not the caption
	assert.Contains(t, messages[0].Content, "[MOCK] product photo")
	assert.Contains(t, messages[0].Content, "these shoes")
}

func TestGetHistorySurvivesDelete(t *testing.T) {
	h, registry := newHandler(t)
	sess := createSession(t, registry)

	rec := postChat(t, h, domain.ChatRequest{SessionID: sess.ID, Message: "I want a kettle"})
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NoError(t, registry.Delete(sess.ID))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/history/"+sess.ID, nil)
	histRec := httptest.NewRecorder()
	c := e.NewContext(req, histRec)
	c.SetParamNames("session_id")
	c.SetParamValues(sess.ID)

	assert.NoError(t, h.GetHistory(c))
	assert.Equal(t, http.StatusOK, histRec.Code)

	var resp struct {
		Turns    []domain.TurnRecord `json:"turns"`
		Messages []domain.Message    `json:"messages"`
	}
	assert.NoError(t, json.Unmarshal(histRec.Body.Bytes(), &resp))
	assert.Len(t, resp.Turns, 1)
	assert.Len(t, resp.Messages, 2)
}

func multipartFile(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	assert.NoError(t, err)
	_, err = part.Write(data)
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	h, registry := newHandler(t)
	sess := createSession(t, registry)

	body, contentType := multipartFile(t, "shoe.gif", "image/gif", []byte("GIF89a"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/upload-image/"+sess.ID, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(sess.ID)

	assert.NoError(t, h.UploadImage(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "shoe.gif", resp["filename"])
	assert.Contains(t, resp["extracted_text"], "[MOCK] product photo")
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	h, registry := newHandler(t)
	sess := createSession(t, registry)

	body, contentType := multipartFile(t, "notes.txt", "text/plain", []byte("not pixels"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/upload-image/"+sess.ID, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(sess.ID)

	assert.NoError(t, h.UploadImage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImageUnknownSession(t *testing.T) {
	h, _ := newHandler(t)

	body, contentType := multipartFile(t, "shoe.gif", "image/gif", []byte("GIF89a"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/upload-image/nope", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("nope")

	assert.NoError(t, h.UploadImage(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
