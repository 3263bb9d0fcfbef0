package entities

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// Placeholder values written at request time, replaced by pipeline stages.
const (
	TranscriptPlaceholder = "Available After Meeting"
	SummaryPlaceholder    = "Available After The Meeting"
)

// Meeting is one dialed (or to-be-dialed) meeting. The composite key
// (call_id, scheduled_time) matches the `{id}.{time}` convention used for
// every storage artifact in the meeting's chain; scheduled_time is the epoch
// milliseconds rendered as a string.
type Meeting struct {
	CallID              string                                `json:"callId" gorm:"column:call_id;primaryKey;type:varchar(64)"`
	ScheduledTime       string                                `json:"scheduledTime" gorm:"column:scheduled_time;primaryKey;type:varchar(32)"`
	MeetingType         MeetingPlatform                       `json:"meetingType" gorm:"column:meeting_type;type:varchar(16);not null"`
	Title               string                                `json:"title,omitempty" gorm:"type:varchar(255)"`
	Transcript          string                                `json:"transcript" gorm:"type:text"`
	Summary             string                                `json:"summary" gorm:"type:text"`
	MeetingAudio        string                                `json:"meetingAudio,omitempty" gorm:"column:meeting_audio;type:text"`
	MeetingParticipants datatypes.JSONType[map[string]string] `json:"meetingParticipants,omitempty" gorm:"column:meeting_participants;type:jsonb"`
	CreatedAt           time.Time                             `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt           time.Time                             `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a placeholder meeting row for a freshly parsed request
func NewMeeting(callID string, scheduledTime int64, platform MeetingPlatform) *Meeting {
	return &Meeting{
		CallID:        callID,
		ScheduledTime: strconv.FormatInt(scheduledTime, 10),
		MeetingType:   platform,
		Transcript:    TranscriptPlaceholder,
		Summary:       SummaryPlaceholder,
	}
}
