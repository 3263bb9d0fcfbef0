package errors

// ErrorCode identifies the category of an AppError
type ErrorCode int32

const (
	ErrorCode_HTTP_OK            ErrorCode = 0
	ErrorCode_INTERNAL           ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT   ErrorCode = 1001
	ErrorCode_NOT_FOUND          ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED    ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD    ErrorCode = 1004
	ErrorCode_METHOD_NOT_ALLOWED ErrorCode = 1005

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Meeting request processing
	ErrorCode_MEETING_PARSE_FAILED   ErrorCode = 3000
	ErrorCode_MEETING_NOT_FOUND      ErrorCode = 3001
	ErrorCode_MEETING_WRITE_FAILED   ErrorCode = 3002
	ErrorCode_SCHEDULE_CREATE_FAILED ErrorCode = 3003
	ErrorCode_SCHEDULE_LOOKUP_FAILED ErrorCode = 3004

	// Telephony
	ErrorCode_DIAL_OUT_FAILED ErrorCode = 4000

	// Pipeline
	ErrorCode_TRANSCRIPTION_FAILED ErrorCode = 5000
	ErrorCode_MODEL_FAILED         ErrorCode = 5001
	ErrorCode_STAGE_FAILED         ErrorCode = 5002

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 6000
	ErrorCode_INTEGRATION_SEARCH_FAILED  ErrorCode = 6001
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 6002

	// Knowledge base
	ErrorCode_KNOWLEDGE_BASE_FAILED ErrorCode = 7000
	ErrorCode_RETRIEVE_FAILED       ErrorCode = 7001

	// Database
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 8000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 8001
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_METHOD_NOT_ALLOWED:         "METHOD_NOT_ALLOWED",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_MEETING_PARSE_FAILED:       "MEETING_PARSE_FAILED",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_WRITE_FAILED:       "MEETING_WRITE_FAILED",
	ErrorCode_SCHEDULE_CREATE_FAILED:     "SCHEDULE_CREATE_FAILED",
	ErrorCode_SCHEDULE_LOOKUP_FAILED:     "SCHEDULE_LOOKUP_FAILED",
	ErrorCode_DIAL_OUT_FAILED:            "DIAL_OUT_FAILED",
	ErrorCode_TRANSCRIPTION_FAILED:       "TRANSCRIPTION_FAILED",
	ErrorCode_MODEL_FAILED:               "MODEL_FAILED",
	ErrorCode_STAGE_FAILED:               "STAGE_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_SEARCH_FAILED:  "INTEGRATION_SEARCH_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_KNOWLEDGE_BASE_FAILED:      "KNOWLEDGE_BASE_FAILED",
	ErrorCode_RETRIEVE_FAILED:            "RETRIEVE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:       "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name for the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
