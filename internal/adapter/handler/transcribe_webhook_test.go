package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type fakeTranscriptFetcher struct {
	json    string
	fetched []string
}

func (f *fakeTranscriptFetcher) GetTranscriptJSON(_ context.Context, transcriptID string) ([]byte, error) {
	f.fetched = append(f.fetched, transcriptID)
	return []byte(f.json), nil
}

type fakeTextStore struct {
	objects map[string]string
}

func (f *fakeTextStore) PutText(_ context.Context, key, content string) error {
	if f.objects == nil {
		f.objects = map[string]string{}
	}
	f.objects[key] = content
	return nil
}

func signBody(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(t *testing.T, h *TranscribeWebhookHandler, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.HandleTranscribeWebhook(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestTranscribeWebhookArchivesCompletedTranscript(t *testing.T) {
	fetcher := &fakeTranscriptFetcher{json: `{"id":"tr-1","words":[]}`}
	store := &fakeTextStore{}
	h := NewTranscribeWebhookHandler(store, fetcher, "shh", zap.NewNop())

	body := `{"transcript_id":"tr-1","status":"completed"}`
	rec := postWebhook(t, h, "/v1/webhooks/assemblyai?object=meeting-mp3%2F123456789.1765432100000.wav", body,
		map[string]string{"x-assemblyai-signature": signBody("shh", body)})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(fetcher.fetched) != 1 || fetcher.fetched[0] != "tr-1" {
		t.Errorf("fetched = %v", fetcher.fetched)
	}
	want := "transcribe-output/123456789.1765432100000.json"
	if store.objects[want] != `{"id":"tr-1","words":[]}` {
		t.Errorf("objects = %v", store.objects)
	}
}

func TestTranscribeWebhookAcceptsSharedSecretHeader(t *testing.T) {
	fetcher := &fakeTranscriptFetcher{json: `{}`}
	store := &fakeTextStore{}
	h := NewTranscribeWebhookHandler(store, fetcher, "shh", zap.NewNop())

	body := `{"transcript_id":"tr-2","status":"completed"}`
	rec := postWebhook(t, h, "/v1/webhooks/assemblyai?object=meeting-mp3%2F1.2.wav", body,
		map[string]string{"Authorization": "shh"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestTranscribeWebhookRejectsBadSignature(t *testing.T) {
	fetcher := &fakeTranscriptFetcher{}
	store := &fakeTextStore{}
	h := NewTranscribeWebhookHandler(store, fetcher, "shh", zap.NewNop())

	body := `{"transcript_id":"tr-3","status":"completed"}`
	rec := postWebhook(t, h, "/v1/webhooks/assemblyai?object=meeting-mp3%2F1.2.wav", body,
		map[string]string{"x-assemblyai-signature": "deadbeef"})

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
	if len(fetcher.fetched) != 0 {
		t.Errorf("transcript fetched despite bad signature")
	}
}

func TestTranscribeWebhookIgnoresFailedTranscription(t *testing.T) {
	fetcher := &fakeTranscriptFetcher{}
	store := &fakeTextStore{}
	h := NewTranscribeWebhookHandler(store, fetcher, "shh", zap.NewNop())

	body := `{"transcript_id":"tr-4","status":"error"}`
	rec := postWebhook(t, h, "/v1/webhooks/assemblyai?object=meeting-mp3%2F1.2.wav", body,
		map[string]string{"Authorization": "shh"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(fetcher.fetched) != 0 || len(store.objects) != 0 {
		t.Error("failed transcription should not be archived")
	}
}

func TestTranscribeWebhookRejectsBadObjectKey(t *testing.T) {
	fetcher := &fakeTranscriptFetcher{json: `{}`}
	h := NewTranscribeWebhookHandler(&fakeTextStore{}, fetcher, "shh", zap.NewNop())

	body := `{"transcript_id":"tr-5","status":"completed"}`
	rec := postWebhook(t, h, "/v1/webhooks/assemblyai?object=not-an-artifact", body,
		map[string]string{"Authorization": "shh"})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}
