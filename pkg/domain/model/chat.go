package model

import "github.com/secmon-lab/asclepius/pkg/domain/types"

// ChatMessage is one turn of a conversation, relayed to the upstream service verbatim
type ChatMessage struct {
	Role    types.ChatRole `json:"role"`
	Content string         `json:"content"`
}
