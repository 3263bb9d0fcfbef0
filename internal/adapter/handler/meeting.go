package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	meetingdto "github.com/meeting-summarizer-team/meeting-summarizer/internal/adapter/dto/meeting"
	meetinguse "github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/meeting"
)

// downloadLinkExpiry bounds how long a generated artifact link stays valid
const downloadLinkExpiry = time.Hour

// Presigner issues time-limited download URLs for stored artifacts
type Presigner interface {
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// MeetingService is the meeting use case surface the handler needs
type MeetingService interface {
	CreateMeeting(ctx context.Context, meetingInfo, formattedDate, localTimeZone string) error
	GetScheduledMeetings(ctx context.Context) ([]meetinguse.ScheduledMeeting, error)
	GetPastMeetings(ctx context.Context) ([]meetinguse.PastMeeting, error)
	UpdateTitle(ctx context.Context, callID, scheduledTime, title string) error
}

// MeetingHandler exposes meeting requests over HTTP
type MeetingHandler struct {
	svc       MeetingService
	presigner Presigner
	logger    *zap.Logger
}

// NewMeetingHandler creates a new handler
func NewMeetingHandler(svc MeetingService, presigner Presigner, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{svc: svc, presigner: presigner, logger: logger}
}

// CreateMeeting accepts a pasted invitation and dials now or schedules later
// @Summary Process a meeting invitation
// @Tags meetings
// @Accept json
// @Produce json
// @Param request body meeting.CreateMeetingRequest true "invitation"
// @Success 200 {object} map[string]interface{}
// @Router /v1/createMeeting [post]
func (h *MeetingHandler) CreateMeeting(c echo.Context) error {
	var req meetingdto.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.svc.CreateMeeting(c.Request().Context(), req.MeetingInfo, req.FormattedDate, req.LocalTimeZone); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"status": "accepted"})
}

// GetMeetings lists past or scheduled meetings depending on the type param
// @Summary List meetings
// @Tags meetings
// @Produce json
// @Param type query string true "Past or Scheduled"
// @Success 200 {object} map[string]interface{}
// @Router /v1/getMeetings [get]
func (h *MeetingHandler) GetMeetings(c echo.Context) error {
	switch c.QueryParam("type") {
	case "Past":
		meetings, err := h.svc.GetPastMeetings(c.Request().Context())
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, meetings)
	case "Scheduled":
		meetings, err := h.svc.GetScheduledMeetings(c.Request().Context())
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, meetings)
	default:
		return HandleError(h.logger, c, errors.ErrInvalidArgument("type must be Past or Scheduled"))
	}
}

// DownloadFile issues a time-limited URL for one stored artifact key
// @Summary Get a download link for a meeting artifact
// @Tags meetings
// @Accept json
// @Produce json
// @Param request body meeting.DownloadFileRequest true "artifact key"
// @Success 200 {object} meeting.DownloadFileResponse
// @Router /v1/downloadFile [post]
func (h *MeetingHandler) DownloadFile(c echo.Context) error {
	var req meetingdto.DownloadFileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	url, err := h.presigner.PresignedGetURL(c.Request().Context(), req.Key, downloadLinkExpiry)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign", err))
	}
	return HandleSuccess(h.logger, c, meetingdto.DownloadFileResponse{URL: url})
}

// UpdateMeetingTitle renames a meeting row
// @Summary Rename a meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Param request body meeting.UpdateMeetingTitleRequest true "new title"
// @Success 200 {object} map[string]interface{}
// @Router /v1/updateMeetingTitle [post]
func (h *MeetingHandler) UpdateMeetingTitle(c echo.Context) error {
	var req meetingdto.UpdateMeetingTitleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.svc.UpdateTitle(c.Request().Context(), req.CallID, req.ScheduledTime, req.Title); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"status": "updated"})
}
