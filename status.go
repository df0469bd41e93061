package zhttp

// HTTP status codes with a dedicated reason phrase.
const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusInternalServerError = 500
)

const unknownStatusMessage = "Unknown Error"

var statusMessages = map[int]string{
	StatusOK:                  "OK",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusInternalServerError: "Internal Error",
}

// StatusMessage returns the reason phrase written for statusCode.
//
// Codes without a dedicated phrase get "Unknown Error".
func StatusMessage(statusCode int) string {
	if s, ok := statusMessages[statusCode]; ok {
		return s
	}
	return unknownStatusMessage
}
