package discord

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// StartTyping shows the typing indicator in channelID and refreshes it every
// TypingInterval until stop is called or ctx is done. stop waits for the
// refresh loop to exit and may be called more than once.
func (a *Adapter) StartTyping(ctx context.Context, channelID string) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		a.sendContinuousTyping(ctx, channelID)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func (a *Adapter) sendContinuousTyping(ctx context.Context, channelID string) {
	ticker := time.NewTicker(a.cfg.TypingInterval)
	defer ticker.Stop()

	if err := a.session.ChannelTyping(channelID, discordgo.WithContext(ctx)); err != nil {
		if ctx.Err() == nil {
			a.log.Error("Failed to send initial typing action", "error", err, "channel_id", channelID)
		}
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.session.ChannelTyping(channelID, discordgo.WithContext(ctx)); err != nil {
				if ctx.Err() != nil {
					return
				}
				a.log.Debug("Typing action failed", "error", err, "channel_id", channelID)
			}
		}
	}
}
