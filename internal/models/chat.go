package models

// ChatRequest is the payload the chat widget sends to the relay.
type ChatRequest struct {
	UserQuery string `json:"userQuery"`
}

// ChatReply is the relay's answer. Exactly one of Reply or Error is set.
type ChatReply struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// GenericChatError is the only failure text a chat client ever sees.
const GenericChatError = "Sorry, I'm having trouble connecting."
