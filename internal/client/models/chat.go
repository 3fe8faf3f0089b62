package models

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the assistant's answer.
type ChatReply struct {
	Message string `json:"message"`
}
