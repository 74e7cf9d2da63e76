package discord

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/bwmarrin/discordgo"

	"firepit/internal/config"
	"firepit/internal/firepit"
	"firepit/pkg/retrylimit"
)

// Bot is the Discord side of the engine: one gateway session shared by
// every monitor, converting platform events into Message facts and
// carrying sends back out.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	monitors []*firepit.Monitor
	lim      *retrylimit.AdaptiveLimiter

	mu       sync.RWMutex
	channels []string // observable text channel IDs
}

// NewBot creates the Discord adapter.
func NewBot(cfg *config.Config) *Bot {
	return &Bot{
		cfg: cfg,
		lim: retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5),
	}
}

// SetMonitors attaches the monitors that receive live messages. Call
// before Run.
func (b *Bot) SetMonitors(monitors []*firepit.Monitor) {
	b.monitors = monitors
}

// Run opens the session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onGuildCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Closing Discord session...")
	return nil
}

// onReady snapshots the observable channels once the gateway handshake
// completes.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.refreshChannels(s)
	log.Printf("[INFO] ✅ Discord session ready, observing %d channels", len(b.Channels()))
}

// onGuildCreate fires for every guild on connect and on later joins.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.refreshChannels(s)
	log.Printf("[INFO] Guild available: %s (%s)", g.Guild.Name, g.Guild.ID)
}

func (b *Bot) refreshChannels(s *discordgo.Session) {
	var ids []string
	for _, g := range s.State.Guilds {
		for _, ch := range g.Channels {
			if ch.Type == discordgo.ChannelTypeGuildText {
				ids = append(ids, ch.ID)
			}
		}
	}
	b.mu.Lock()
	b.channels = ids
	b.mu.Unlock()
}

// onMessageCreate converts the event into a Message fact and pushes it to
// every monitor's cache, so the next tick decides on the freshest window.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}
	msg := toMessage(m.Message)
	for _, mon := range b.monitors {
		mon.Observe(msg)
	}
}

// toMessage maps a Discord message onto the engine's Message fact.
func toMessage(m *discordgo.Message) firepit.Message {
	mentions := make([]string, 0, len(m.Mentions))
	for _, u := range m.Mentions {
		mentions = append(mentions, u.Username)
	}
	msg := firepit.Message{
		ID:         m.ID,
		ChannelID:  m.ChannelID,
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.Username,
		Content:    m.Content,
		Timestamp:  m.Timestamp,
		IsBot:      m.Author.Bot,
		Mentions:   mentions,
	}
	if m.Author.Bot {
		msg.BotName = m.Author.Username
	}
	if m.MessageReference != nil {
		msg.ReplyTo = m.MessageReference.MessageID
	}
	return msg
}

// Channels implements firepit.ChatGateway.
func (b *Bot) Channels() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.channels))
	copy(out, b.channels)
	return out
}

// History implements firepit.ChatGateway. Discord returns newest first;
// the engine wants oldest first.
func (b *Bot) History(ctx context.Context, channelID string, limit int) ([]firepit.Message, error) {
	var raw []*discordgo.Message
	err := retrylimit.WithRetry(ctx, func() error {
		var err error
		raw, err = b.dg.ChannelMessages(channelID, limit, "", "", "")
		return err
	}, b.lim, 3)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", channelID, err)
	}

	out := make([]firepit.Message, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		if raw[i].Author == nil {
			continue
		}
		out = append(out, toMessage(raw[i]))
	}
	return out, nil
}

// Send implements firepit.ChatGateway.
func (b *Bot) Send(ctx context.Context, channelID, text string) error {
	err := retrylimit.WithRetry(ctx, func() error {
		_, err := b.dg.ChannelMessageSend(channelID, text)
		return err
	}, b.lim, 3)
	if err != nil {
		return fmt.Errorf("send to %s: %w", channelID, err)
	}
	return nil
}

// Typing implements firepit.ChatGateway. Best effort.
func (b *Bot) Typing(channelID string) {
	if err := b.dg.ChannelTyping(channelID); err != nil {
		log.Printf("[WARN] typing indicator for %s: %v", channelID, err)
	}
}
