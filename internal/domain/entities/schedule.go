package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ScheduleStateEnabled is the only state the dispatcher fires.
const ScheduleStateEnabled = "ENABLED"

// DialOutInput is the payload a schedule carries to the dial-out invoker.
// Field names mirror the wire shape the front-end and call arguments use.
type DialOutInput struct {
	MeetingID     string `json:"meetingID"`
	MeetingType   string `json:"meetingType"`
	ScheduledTime int64  `json:"scheduledTime"`
	DialIn        string `json:"dialIn,omitempty"`
}

// Schedule is a one-shot future dial-out invocation. The name
// `{meetingId}{epochMillis}` is idempotent per unique pairing; the dispatcher
// deletes the row once fired.
type Schedule struct {
	Name               string         `json:"name" gorm:"primaryKey;type:varchar(128)"`
	GroupName          string         `json:"groupName" gorm:"column:group_name;index;type:varchar(64)"`
	ScheduleExpression string         `json:"scheduleExpression" gorm:"column:schedule_expression;type:varchar(64)"`
	FireAt             time.Time      `json:"fireAt" gorm:"column:fire_at;index"`
	State              string         `json:"state" gorm:"type:varchar(16)"`
	Description        string         `json:"description,omitempty" gorm:"type:varchar(255)"`
	Input              datatypes.JSON `json:"input" gorm:"type:jsonb"`
	CreatedAt          time.Time      `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Schedule) TableName() string {
	return "schedules"
}

// NewSchedule builds a schedule that fires the dial-out payload at fireAt.
func NewSchedule(groupName string, input DialOutInput, fireAt time.Time) (*Schedule, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schedule input: %w", err)
	}
	return &Schedule{
		Name:               fmt.Sprintf("%s%d", input.MeetingID, input.ScheduledTime),
		GroupName:          groupName,
		ScheduleExpression: fmt.Sprintf("at(%s)", fireAt.UTC().Format("2006-01-02T15:04:05")),
		FireAt:             fireAt.UTC(),
		State:              ScheduleStateEnabled,
		Description:        "Meeting",
		Input:              datatypes.JSON(raw),
	}, nil
}

// DecodeInput unmarshals the stored dial-out payload
func (s *Schedule) DecodeInput() (DialOutInput, error) {
	var in DialOutInput
	if err := json.Unmarshal(s.Input, &in); err != nil {
		return DialOutInput{}, fmt.Errorf("failed to decode schedule input: %w", err)
	}
	return in, nil
}
