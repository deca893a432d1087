package core

import "errors"

// ErrorCode enumerates the fallible outcomes a codec operation can report.
// CodeOK is what CodeOf returns for a nil error.
type ErrorCode int

const (
	CodeOK ErrorCode = iota
	CodeNotImplemented
	CodeUnexpected
	CodeHashTableError
	CodeOutOfBoundBuffer
	CodeNullPointerRef
	CodeMemoryAllocationError
	CodeInvalidEXIHeader
	CodeInconsistentProcState
	CodeInvalidEXIInput
	CodeBufferEndReached
	CodeEventCodeMissing
	CodeHandlerStopReceived
	CodeInvalidOperation
	CodeEmptyCollection
	CodeParsingComplete
	// CodeTooMuchPrefixesPerURI is returned when a prefix sub-table would
	// grow past MaximumNumberOfPrefixesPerURI. Not recoverable: the caller
	// chose a namespace context with more live prefixes than the codec is
	// willing to track.
	CodeTooMuchPrefixesPerURI
	CodeInvalidEXIPConfiguration
	CodeNoPrefixesPreservedXMLSchema
	// CodeInvalidStringOperation covers string-table misuse: duplicate
	// global values, a local hit referencing an evicted slot, a local-value
	// read while local value partitions are disabled.
	CodeInvalidStringOperation
	CodeHeaderOptionsMismatch
)

var errorCodeNames = map[ErrorCode]string{
	CodeOK:                           "OK",
	CodeNotImplemented:               "NOT_IMPLEMENTED",
	CodeUnexpected:                   "UNEXPECTED",
	CodeHashTableError:               "HASH_TABLE_ERROR",
	CodeOutOfBoundBuffer:             "OUT_OF_BOUND_BUFFER",
	CodeNullPointerRef:               "NULL_POINTER_REF",
	CodeMemoryAllocationError:        "MEMORY_ALLOCATION_ERROR",
	CodeInvalidEXIHeader:             "INVALID_EXI_HEADER",
	CodeInconsistentProcState:        "INCONSISTENT_PROC_STATE",
	CodeInvalidEXIInput:              "INVALID_EXI_INPUT",
	CodeBufferEndReached:             "BUFFER_END_REACHED",
	CodeEventCodeMissing:             "EVENT_CODE_MISSING",
	CodeHandlerStopReceived:          "HANDLER_STOP_RECEIVED",
	CodeInvalidOperation:             "INVALID_OPERATION",
	CodeEmptyCollection:              "EMPTY_COLLECTION",
	CodeParsingComplete:              "PARSING_COMPLETE",
	CodeTooMuchPrefixesPerURI:        "TOO_MUCH_PREFIXES_PER_URI",
	CodeInvalidEXIPConfiguration:     "INVALID_EXIP_CONFIGURATION",
	CodeNoPrefixesPreservedXMLSchema: "NO_PREFIXES_PRESERVED_XML_SCHEMA",
	CodeInvalidStringOperation:       "INVALID_STRING_OPERATION",
	CodeHeaderOptionsMismatch:        "HEADER_OPTIONS_MISMATCH",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNEXPECTED"
}

// EXIError carries an ErrorCode for the codec failures that are classified.
// Many operations still return plain errors (errors.New, fmt.Errorf); CodeOf
// reports those as CodeUnexpected. Site-specific detail lives in
// Message/Cause; callers that need to branch on outcome switch on Code
// instead of matching error strings.
type EXIError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func NewEXIError(code ErrorCode, message string) *EXIError {
	return &EXIError{Code: code, Message: message}
}

func WrapEXIError(code ErrorCode, cause error, message string) *EXIError {
	return &EXIError{Code: code, Message: message, Cause: cause}
}

func (e *EXIError) Error() string {
	if e.Cause != nil {
		return e.Code.String() + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Code.String() + ": " + e.Message
}

func (e *EXIError) Unwrap() error {
	return e.Cause
}

// CodeOf extracts the ErrorCode from an error returned by this package.
// Errors that did not originate here (an io.EOF bubbled through unwrapped,
// for instance) report CodeUnexpected rather than CodeOK.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var ee *EXIError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return CodeUnexpected
}
