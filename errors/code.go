package errors

// ErrorCode identifies an application error independently of its HTTP status.
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED                     ErrorCode = 0
	ErrorCode_INTERNAL                        ErrorCode = 1
	ErrorCode_INVALID_ARGUMENT                ErrorCode = 2
	ErrorCode_INVALID_PAYLOAD                 ErrorCode = 3
	ErrorCode_MISSING_CALL_ID                 ErrorCode = 4
	ErrorCode_MISSING_TRANSCRIPT              ErrorCode = 5
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 6
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                     "UNSPECIFIED",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_MISSING_CALL_ID:                 "MISSING_CALL_ID",
	ErrorCode_MISSING_TRANSCRIPT:              "MISSING_TRANSCRIPT",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
