// Package model contains the core domain entities for the bridge.
// These models represent the core business objects and are independent of external concerns.
package model

import (
	"time"
)

// InboundMessage represents a message received from the chat platform.
// It is immutable once received and carries everything needed to route
// the message and address the reply.
type InboundMessage struct {
	ID        string
	ChannelID string
	GuildID   string

	AuthorID        string
	AuthorName      string // display name shown in reply footers
	AuthorAvatarURL string
	IsBot           bool

	Text      string
	CreatedAt time.Time
}
