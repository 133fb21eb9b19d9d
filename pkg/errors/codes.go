package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeTimeout            ErrorCode = "COMMON_006"
	ErrCodeValidation         ErrorCode = "COMMON_007"
	ErrCodeSerialization      ErrorCode = "COMMON_008"
	ErrCodeNotImplemented     ErrorCode = "COMMON_009"
)

// Atom typing error codes.
const (
	// ErrCodeTypeUnknown flags a classifier referencing a dictionary
	// identifier that does not exist. This is a build-time inconsistency
	// between code and reference data and is always fatal.
	ErrCodeTypeUnknown        ErrorCode = "ATM_001"
	ErrCodeDictionaryLoad     ErrorCode = "ATM_002"
	ErrCodeDictionaryDuplicate ErrorCode = "ATM_003"
	ErrCodePerceptionFailed   ErrorCode = "ATM_004"
)

// Molecule error codes.
const (
	ErrCodeMoleculeInvalid     ErrorCode = "MOL_001"
	ErrCodeAtomNotInMolecule   ErrorCode = "MOL_002"
	ErrCodeUnknownElement      ErrorCode = "MOL_003"
	ErrCodeFingerprintFailed   ErrorCode = "MOL_004"
	ErrCodeSimilarityThreshold ErrorCode = "MOL_005"
)

// Chemical file I/O error codes.
const (
	ErrCodeMolfileSyntax      ErrorCode = "IO_001"
	ErrCodeMolfileCounts      ErrorCode = "IO_002"
	ErrCodeMolfileAtomBlock   ErrorCode = "IO_003"
	ErrCodeMolfileBondBlock   ErrorCode = "IO_004"
	ErrCodeUnsupportedVersion ErrorCode = "IO_005"
	ErrCodeEmptyInput         ErrorCode = "IO_006"
	ErrCodeDepictionFailed    ErrorCode = "IO_007"
)

// Configuration error codes.
const (
	ErrCodeConfigLoad     ErrorCode = "CFG_001"
	ErrCodeConfigInvalid  ErrorCode = "CFG_002"
	ErrCodeConfigNotFound ErrorCode = "CFG_003"
)

// Infrastructure error codes.
const (
	ErrCodeDatabase     ErrorCode = "SYS_001"
	ErrCodeCache        ErrorCode = "SYS_002"
	ErrCodeMessaging    ErrorCode = "SYS_003"
	ErrCodeObjectStore  ErrorCode = "SYS_004"
	ErrCodeSearchIndex  ErrorCode = "SYS_005"
	ErrCodeVectorIndex  ErrorCode = "SYS_006"
	ErrCodeMigration    ErrorCode = "SYS_007"
)

// CodeOK is the sentinel returned by GetCode for a nil error.
const CodeOK = ErrorCode("OK")

// CodeUnknown is returned by GetCode when no AppError is present in the chain.
const CodeUnknown = ErrorCode("UNKNOWN")

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeTypeUnknown:         http.StatusInternalServerError,
	ErrCodeDictionaryLoad:      http.StatusInternalServerError,
	ErrCodeDictionaryDuplicate: http.StatusInternalServerError,
	ErrCodePerceptionFailed:    http.StatusInternalServerError,

	ErrCodeMoleculeInvalid:     http.StatusBadRequest,
	ErrCodeAtomNotInMolecule:   http.StatusBadRequest,
	ErrCodeUnknownElement:      http.StatusBadRequest,
	ErrCodeFingerprintFailed:   http.StatusInternalServerError,
	ErrCodeSimilarityThreshold: http.StatusBadRequest,

	ErrCodeMolfileSyntax:      http.StatusBadRequest,
	ErrCodeMolfileCounts:      http.StatusBadRequest,
	ErrCodeMolfileAtomBlock:   http.StatusBadRequest,
	ErrCodeMolfileBondBlock:   http.StatusBadRequest,
	ErrCodeUnsupportedVersion: http.StatusBadRequest,
	ErrCodeEmptyInput:         http.StatusBadRequest,
	ErrCodeDepictionFailed:    http.StatusInternalServerError,

	ErrCodeConfigLoad:     http.StatusInternalServerError,
	ErrCodeConfigInvalid:  http.StatusInternalServerError,
	ErrCodeConfigNotFound: http.StatusInternalServerError,

	ErrCodeDatabase:    http.StatusInternalServerError,
	ErrCodeCache:       http.StatusInternalServerError,
	ErrCodeMessaging:   http.StatusInternalServerError,
	ErrCodeObjectStore: http.StatusInternalServerError,
	ErrCodeSearchIndex: http.StatusInternalServerError,
	ErrCodeVectorIndex: http.StatusInternalServerError,
	ErrCodeMigration:   http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeTypeUnknown:         "unknown atom type identifier",
	ErrCodeDictionaryLoad:      "failed to load atom type dictionary",
	ErrCodeDictionaryDuplicate: "duplicate atom type identifier",
	ErrCodePerceptionFailed:    "atom type perception failed",

	ErrCodeMoleculeInvalid:     "invalid molecular graph",
	ErrCodeAtomNotInMolecule:   "atom does not belong to molecule",
	ErrCodeUnknownElement:      "unknown chemical element",
	ErrCodeFingerprintFailed:   "failed to generate fingerprint",
	ErrCodeSimilarityThreshold: "invalid similarity threshold",

	ErrCodeMolfileSyntax:      "malformed molfile",
	ErrCodeMolfileCounts:      "malformed molfile counts line",
	ErrCodeMolfileAtomBlock:   "malformed molfile atom block",
	ErrCodeMolfileBondBlock:   "malformed molfile bond block",
	ErrCodeUnsupportedVersion: "unsupported molfile version",
	ErrCodeEmptyInput:         "empty input",
	ErrCodeDepictionFailed:    "molecule depiction failed",

	ErrCodeConfigLoad:     "failed to load configuration",
	ErrCodeConfigInvalid:  "invalid configuration",
	ErrCodeConfigNotFound: "configuration file not found",

	ErrCodeDatabase:    "database error",
	ErrCodeCache:       "cache error",
	ErrCodeMessaging:   "message broker error",
	ErrCodeObjectStore: "object storage error",
	ErrCodeSearchIndex: "search index error",
	ErrCodeVectorIndex: "vector index error",
	ErrCodeMigration:   "schema migration failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
