package models

// Response codes.
const (
	// success
	CodeSuccess = 0

	// client errors (1000-1999)
	CodeInvalidParams     = 1000 // invalid parameters
	CodeMissingParams     = 1001 // missing required parameters
	CodeUserNotFound      = 1002 // user does not exist
	CodeProfileIncomplete = 1003 // profile has no embedding yet
	CodeInvalidQuery      = 1004 // blank search query
	CodeInsufficientUsers = 1005 // not enough users to form teams

	// server errors (2000-2999)
	CodeServerError          = 2000 // internal server error
	CodeDatabaseError        = 2001 // database error
	CodeEmbeddingUnavailable = 2002 // embedding service unavailable
)

// Messages for each response code.
var CodeMessages = map[int]string{
	CodeSuccess:              "success",
	CodeInvalidParams:        "invalid parameters",
	CodeMissingParams:        "missing required parameters",
	CodeUserNotFound:         "user not found",
	CodeProfileIncomplete:    "please update your profile with skills and interests to get recommendations",
	CodeInvalidQuery:         "search query is required",
	CodeInsufficientUsers:    "not enough users to form teams",
	CodeServerError:          "internal server error",
	CodeDatabaseError:        "database error",
	CodeEmbeddingUnavailable: "embedding service temporarily unavailable",
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Code:    CodeSuccess,
		Message: CodeMessages[CodeSuccess],
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope with the canonical message for the code.
func NewErrorResponse(code int, data interface{}) APIResponse {
	message, exists := CodeMessages[code]
	if !exists {
		message = "unknown error"
	}
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewCustomErrorResponse builds an error envelope with a custom message.
func NewCustomErrorResponse(code int, message string, data interface{}) APIResponse {
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
