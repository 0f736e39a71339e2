package model

// Message is one turn of the chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Document is an uploaded reference document included as RAG context.
type Document struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ChatRequest is the inbound body of the chat relay endpoint.
type ChatRequest struct {
	Messages  []Message  `json:"messages"`
	Documents []Document `json:"documents"`
	Asset     string     `json:"asset"`
}
