package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	meetinguse "github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/meeting"
	pkgvalidator "github.com/meeting-summarizer-team/meeting-summarizer/pkg/validator"
)

type fakeMeetingService struct {
	created   []string
	scheduled []meetinguse.ScheduledMeeting
	past      []meetinguse.PastMeeting
	titleErr  error
}

func (f *fakeMeetingService) CreateMeeting(_ context.Context, meetingInfo, _, _ string) error {
	f.created = append(f.created, meetingInfo)
	return nil
}

func (f *fakeMeetingService) GetScheduledMeetings(_ context.Context) ([]meetinguse.ScheduledMeeting, error) {
	return f.scheduled, nil
}

func (f *fakeMeetingService) GetPastMeetings(_ context.Context) ([]meetinguse.PastMeeting, error) {
	return f.past, nil
}

func (f *fakeMeetingService) UpdateTitle(_ context.Context, _, _, _ string) error {
	return f.titleErr
}

type fakePresigner struct {
	key string
}

func (f *fakePresigner) PresignedGetURL(_ context.Context, key string, _ time.Duration) (string, error) {
	f.key = key
	return "https://storage.local/signed/" + key, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	return e
}

func doJSON(t *testing.T, e *echo.Echo, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestGetMeetingsScheduled(t *testing.T) {
	svc := &fakeMeetingService{scheduled: []meetinguse.ScheduledMeeting{
		{Name: "987654321", MeetingID: "987654321", MeetingType: "Zoom", ScheduleExpression: "at(2026-06-10T15:30:00)"},
	}}
	h := NewMeetingHandler(svc, &fakePresigner{}, zap.NewNop())

	rec := doJSON(t, newTestEcho(), h.GetMeetings, http.MethodGet, "/v1/getMeetings?type=Scheduled", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data []meetinguse.ScheduledMeeting `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].MeetingID != "987654321" {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestGetMeetingsPast(t *testing.T) {
	svc := &fakeMeetingService{past: []meetinguse.PastMeeting{
		{CallID: "123456789", ScheduledTime: "1765432100000", MeetingType: "Webex", Summary: "Available After The Meeting"},
	}}
	h := NewMeetingHandler(svc, &fakePresigner{}, zap.NewNop())

	rec := doJSON(t, newTestEcho(), h.GetMeetings, http.MethodGet, "/v1/getMeetings?type=Past", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "123456789") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGetMeetingsRejectsUnknownType(t *testing.T) {
	h := NewMeetingHandler(&fakeMeetingService{}, &fakePresigner{}, zap.NewNop())

	rec := doJSON(t, newTestEcho(), h.GetMeetings, http.MethodGet, "/v1/getMeetings?type=Upcoming", "")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestCreateMeetingRequiresFields(t *testing.T) {
	svc := &fakeMeetingService{}
	h := NewMeetingHandler(svc, &fakePresigner{}, zap.NewNop())

	rec := doJSON(t, newTestEcho(), h.CreateMeeting, http.MethodPost, "/v1/createMeeting", `{"meetingInfo":"join my zoom"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if len(svc.created) != 0 {
		t.Errorf("service called despite invalid request: %v", svc.created)
	}
}

func TestCreateMeetingAccepted(t *testing.T) {
	svc := &fakeMeetingService{}
	h := NewMeetingHandler(svc, &fakePresigner{}, zap.NewNop())

	body := `{"meetingInfo":"join zoom 123","formattedDate":"2026-06-10T15:30","localTimeZone":"America/New_York"}`
	rec := doJSON(t, newTestEcho(), h.CreateMeeting, http.MethodPost, "/v1/createMeeting", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(svc.created) != 1 || svc.created[0] != "join zoom 123" {
		t.Errorf("created = %v", svc.created)
	}
}

func TestDownloadFileReturnsSignedURL(t *testing.T) {
	presigner := &fakePresigner{}
	h := NewMeetingHandler(&fakeMeetingService{}, presigner, zap.NewNop())

	body := `{"key":"call-summary/123.456.txt"}`
	rec := doJSON(t, newTestEcho(), h.DownloadFile, http.MethodPost, "/v1/downloadFile", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if presigner.key != "call-summary/123.456.txt" {
		t.Errorf("presigned key = %q", presigner.key)
	}
	if !strings.Contains(rec.Body.String(), "https://storage.local/signed/call-summary/123.456.txt") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestUpdateMeetingTitleNotFound(t *testing.T) {
	svc := &fakeMeetingService{titleErr: errors.ErrMeetingNotFound("123", "456")}
	h := NewMeetingHandler(svc, &fakePresigner{}, zap.NewNop())

	body := `{"callId":"123","scheduledTime":"456","title":"Roadmap sync"}`
	rec := doJSON(t, newTestEcho(), h.UpdateMeetingTitle, http.MethodPost, "/v1/updateMeetingTitle", body)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}
