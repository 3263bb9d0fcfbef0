package entities

// Wire types for the SIP media application webhook. Field casing follows the
// telephony platform's JSON, which is PascalCase throughout.

// SchemaVersion10 is the only schema version the handler speaks.
const SchemaVersion10 = "1.0"

// InvocationEventType is the call lifecycle event that triggered the webhook
type InvocationEventType string

const (
	EventRinging           InvocationEventType = "RINGING"
	EventNewOutboundCall   InvocationEventType = "NEW_OUTBOUND_CALL"
	EventCallAnswered      InvocationEventType = "CALL_ANSWERED"
	EventActionSuccessful  InvocationEventType = "ACTION_SUCCESSFUL"
	EventActionInterrupted InvocationEventType = "ACTION_INTERRUPTED"
	EventActionFailed      InvocationEventType = "ACTION_FAILED"
	EventHangup            InvocationEventType = "HANGUP"
)

// Transaction attribute keys carried across call-control invocations
const (
	AttrMeetingID     = "MeetingId"
	AttrMeetingType   = "MeetingType"
	AttrScheduledTime = "ScheduledTime"
	AttrDialIn        = "DialIn"
)

// Call argument keys set by the dial-out invoker
const (
	ArgMeetingID     = "meetingID"
	ArgMeetingType   = "meetingType"
	ArgScheduledTime = "scheduledTime"
)

// ParticipantConnected is the status of a leg that is still on the call
const ParticipantConnected = "Connected"

// SIPMediaApplicationEvent is one call-control webhook invocation
type SIPMediaApplicationEvent struct {
	SchemaVersion       string              `json:"SchemaVersion"`
	InvocationEventType InvocationEventType `json:"InvocationEventType"`
	CallDetails         CallDetails         `json:"CallDetails"`
	ActionData          *ActionData         `json:"ActionData,omitempty"`
}

// CallDetails describes the call the event belongs to
type CallDetails struct {
	TransactionID         string            `json:"TransactionId,omitempty"`
	TransactionAttributes map[string]string `json:"TransactionAttributes,omitempty"`
	Participants          []CallParticipant `json:"Participants,omitempty"`
}

// CallParticipant is one leg of the call
type CallParticipant struct {
	CallID string `json:"CallId"`
	Status string `json:"Status"`
}

// ActionData carries the invocation arguments on NEW_OUTBOUND_CALL
type ActionData struct {
	Type       string               `json:"Type,omitempty"`
	Parameters ActionDataParameters `json:"Parameters"`
}

// ActionDataParameters holds the arguments map set at call placement
type ActionDataParameters struct {
	Arguments map[string]string `json:"Arguments,omitempty"`
}

// ActionType names a call action the telephony platform can execute
type ActionType string

const (
	ActionHangup      ActionType = "Hangup"
	ActionSpeak       ActionType = "Speak"
	ActionPause       ActionType = "Pause"
	ActionSendDigits  ActionType = "SendDigits"
	ActionRecordAudio ActionType = "RecordAudio"
)

// Action is one instruction in the response action list
type Action struct {
	Type       ActionType       `json:"Type"`
	Parameters ActionParameters `json:"Parameters"`
}

// ActionParameters is the union of parameters across action types; only the
// fields relevant to the action's Type are populated.
type ActionParameters struct {
	CallID                     string                `json:"CallId,omitempty"`
	SipResponseCode            string                `json:"SipResponseCode,omitempty"`
	Text                       string                `json:"Text,omitempty"`
	Engine                     string                `json:"Engine,omitempty"`
	LanguageCode               string                `json:"LanguageCode,omitempty"`
	TextType                   string                `json:"TextType,omitempty"`
	VoiceID                    string                `json:"VoiceId,omitempty"`
	DurationInMilliseconds     int                   `json:"DurationInMilliseconds,omitempty"`
	Digits                     string                `json:"Digits,omitempty"`
	ToneDurationInMilliseconds int                   `json:"ToneDurationInMilliseconds,omitempty"`
	DurationInSeconds          int                   `json:"DurationInSeconds,omitempty"`
	SilenceDurationInSeconds   int                   `json:"SilenceDurationInSeconds,omitempty"`
	SilenceThreshold           int                   `json:"SilenceThreshold,omitempty"`
	RecordingTerminators       []string              `json:"RecordingTerminators,omitempty"`
	RecordingDestination       *RecordingDestination `json:"RecordingDestination,omitempty"`
}

// RecordingDestination points a RecordAudio action at an object store prefix
type RecordingDestination struct {
	Type       string `json:"Type"`
	BucketName string `json:"BucketName"`
	Prefix     string `json:"Prefix"`
}

// SIPMediaApplicationResponse is the webhook reply the platform executes
type SIPMediaApplicationResponse struct {
	SchemaVersion         string            `json:"SchemaVersion"`
	Actions               []Action          `json:"Actions"`
	TransactionAttributes map[string]string `json:"TransactionAttributes,omitempty"`
}
