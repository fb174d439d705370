package dto

// SendMessageRequest posts a chat message as the current profile.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// DescriptionRequest asks the assistant to draft an order brief.
type DescriptionRequest struct {
	Title      string `json:"title" binding:"required"`
	ClientName string `json:"clientName"`
}

// SpecsRequest asks the assistant for paper suggestions.
type SpecsRequest struct {
	Description string `json:"description" binding:"required"`
}

// AssistResponse is the assistant's text. It is never an error.
type AssistResponse struct {
	Text       string `json:"text"`
	Configured bool   `json:"configured"`
}
