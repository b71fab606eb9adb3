package types

// Response is the uniform body every endpoint returns, success or failure.
// Message is any because a failure may carry either a single string or a
// list of field-error strings.
type Response struct {
	Status  string `json:"status"`
	Message any    `json:"message"`
	Data    any    `json:"data"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// NewSuccess returns a fresh success envelope. Handlers must never share a
// template value between requests.
func NewSuccess(message string, data any) Response {
	if data == nil {
		data = map[string]any{}
	}

	return Response{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// NewFailure returns a fresh failure envelope with empty data.
func NewFailure(message any) Response {
	return Response{
		Status:  StatusFailed,
		Message: message,
		Data:    map[string]any{},
	}
}
