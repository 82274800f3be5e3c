package chat

// Inbound message types.
const (
	MessageTypeQuery = "query"
	MessageTypePing  = "ping"
)

// Outbound message types.
const (
	TypeConnected   = "connected"
	TypeStatus      = "status"
	TypeStreamStart = "stream_start"
	TypeToken       = "token"
	TypeStreamEnd   = "stream_end"
	TypeComplete    = "complete"
	TypeError       = "error"
	TypePong        = "pong"
)

// Pipeline phases, announced via a status message before execution.
const (
	StatusSearchingPatient = "searching_patient"
	StatusVectorSearch     = "vector_search"
	StatusBuildingContext  = "building_context"
	StatusGenerating       = "generating"
)

// Stable error codes surfaced to the client. Collaborator error details
// stay in server-side logs.
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnknownMessageType = "UNKNOWN_MESSAGE_TYPE"
	CodePatientNotFound    = "PATIENT_NOT_FOUND"
	CodeDatabaseError      = "DATABASE_ERROR"
	CodeContextError       = "CONTEXT_ERROR"
	CodeLLMTimeout         = "LLM_TIMEOUT"
	CodeLLMError           = "LLM_ERROR"
	CodeProcessingError    = "PROCESSING_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

// InboundMessage is the raw client message; Type discriminates.
type InboundMessage struct {
	Type           string `json:"type"`
	SessionId      string `json:"session_id,omitempty"`
	DocumentTypeId int    `json:"document_type_id,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	Question       string `json:"question,omitempty"`
}

// QueryRequest carries the fields of an inbound query message. All three
// lookup fields are required; a missing one is a validation failure, not a
// protocol error.
type QueryRequest struct {
	SessionId      string
	DocumentTypeId int    `validate:"required"`
	DocumentNumber string `validate:"required"`
	Question       string `validate:"required"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorMessage struct {
	Type  string      `json:"type"`
	Error ErrorDetail `json:"error"`
}

func NewErrorMessage(code, message string) ErrorMessage {
	return ErrorMessage{
		Type:  TypeError,
		Error: ErrorDetail{Code: code, Message: message},
	}
}

type ConnectedMessage struct {
	Type    string `json:"type"`
	UserId  string `json:"user_id"`
	Message string `json:"message"`
}

type StatusMessage struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type PongMessage struct {
	Type string `json:"type"`
}

type StreamStartMessage struct {
	Type      string `json:"type"`
	SessionId string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

type TokenMessage struct {
	Type      string `json:"type"`
	Token     string `json:"token"`
	SessionId string `json:"session_id"`
}

type StreamEndMessage struct {
	Type      string `json:"type"`
	SessionId string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

type PatientInfo struct {
	PatientId      string `json:"patient_id"`
	FullName       string `json:"full_name"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
}

type Answer struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	ModelUsed  string  `json:"model_used"`
}

type Metadata struct {
	TotalRecordsAnalyzed int `json:"total_records_analyzed"`
	VectorChunksUsed     int `json:"vector_chunks_used"`
}

type CompleteMessage struct {
	Type        string      `json:"type"`
	SessionId   string      `json:"session_id"`
	Timestamp   string      `json:"timestamp"`
	PatientInfo PatientInfo `json:"patient_info"`
	Answer      Answer      `json:"answer"`
	Metadata    Metadata    `json:"metadata"`
}
