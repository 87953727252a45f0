package models

// OutboundMessageRequest represents requests to send a message manually via the API.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

// Notification is the user-visible confirmation emitted after a record mutation.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
