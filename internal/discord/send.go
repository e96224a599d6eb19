package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/aibridge/internal/domain/model"
	errs "github.com/edgard/aibridge/internal/errors"
	"github.com/edgard/aibridge/internal/reply"
)

// Reply sends msg as a reply to the inbound message. Notices go out as plain
// content, everything else as a single embed.
func (a *Adapter) Reply(ctx context.Context, to model.InboundMessage, msg reply.DisplayMessage) error {
	if err := ctx.Err(); err != nil {
		return errs.NewAdapterError("reply cancelled", err)
	}

	send := toMessageSend(to, msg)
	if _, err := a.session.ChannelMessageSendComplex(to.ChannelID, send, discordgo.WithContext(ctx)); err != nil {
		return errs.NewAdapterError("failed to send message", err)
	}

	a.log.DebugContext(ctx, "Sent reply",
		"channel_id", to.ChannelID,
		"reply_to", to.ID,
		"part", msg.PartIndex,
		"parts", msg.PartCount)
	return nil
}

func toMessageSend(to model.InboundMessage, msg reply.DisplayMessage) *discordgo.MessageSend {
	send := &discordgo.MessageSend{
		Reference: &discordgo.MessageReference{
			MessageID: to.ID,
			ChannelID: to.ChannelID,
			GuildID:   to.GuildID,
		},
	}
	if msg.IsNotice() {
		send.Content = msg.Body
		return send
	}

	send.Embeds = []*discordgo.MessageEmbed{toEmbed(msg)}
	return send
}

func toEmbed(msg reply.DisplayMessage) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Body,
		Color:       msg.Color,
	}
	if !msg.Timestamp.IsZero() {
		embed.Timestamp = msg.Timestamp.UTC().Format(time.RFC3339)
	}
	if msg.FooterText != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    msg.FooterText,
			IconURL: msg.FooterIcon,
		}
	}
	for _, f := range msg.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return embed
}
