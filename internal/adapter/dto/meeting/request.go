package meeting

// CreateMeetingRequest represents a pasted meeting invitation to process
type CreateMeetingRequest struct {
	MeetingInfo   string `json:"meetingInfo" validate:"required"`
	FormattedDate string `json:"formattedDate" validate:"required"`
	LocalTimeZone string `json:"localTimeZone"`
}

// DownloadFileRequest represents a request for a download link to a meeting artifact
type DownloadFileRequest struct {
	Key string `json:"key" validate:"required"`
}

// UpdateMeetingTitleRequest represents a request to rename a meeting
type UpdateMeetingTitleRequest struct {
	CallID        string `json:"callId" validate:"required"`
	ScheduledTime string `json:"scheduledTime" validate:"required"`
	Title         string `json:"title" validate:"required,max=255"`
}
