package chat

// RetrieveAndGenerateRequest represents a question over the meeting knowledge base
type RetrieveAndGenerateRequest struct {
	InputText string `json:"inputText" validate:"required"`
}
