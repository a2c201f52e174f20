package entity

type ChatErrorCode string

const (
	ChatErrAPIKeyMissing       ChatErrorCode = "API_KEY_MISSING"
	ChatErrServiceDisabled     ChatErrorCode = "SERVICE_DISABLED"
	ChatErrBadRequest          ChatErrorCode = "BAD_REQUEST"
	ChatErrRateLimit           ChatErrorCode = "RATE_LIMIT"
	ChatErrModelOverloaded     ChatErrorCode = "MODEL_OVERLOADED"
	ChatErrAPI                 ChatErrorCode = "API_ERROR"
	ChatErrInternal            ChatErrorCode = "INTERNAL_ERROR"
	ChatErrConfigurationNeeded ChatErrorCode = "CONFIGURATION_NEEDED"
)

// DefaultChatContext is used when a chat request carries no context.
const DefaultChatContext = "soporte_tecnico_general"

type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

type ChatResponse struct {
	Response string        `json:"response"`
	Error    ChatErrorCode `json:"error,omitempty"`
	Details  string        `json:"details,omitempty"`
}

// AssistantError is returned by the generative-language client when the
// upstream call did not produce an answer.
type AssistantError struct {
	Code       ChatErrorCode
	StatusCode int
	Details    string
}

func (e *AssistantError) Error() string {
	if e.Details == "" {
		return string(e.Code)
	}

	return string(e.Code) + ": " + e.Details
}
