package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Notifier posts a round result to an external channel. Delivery is
// best-effort: failures are logged and never propagated.
type Notifier interface {
	PostResult(channelID string, s Summary)
}

type noopNotifier struct{}

func (noopNotifier) PostResult(string, Summary) {}

// Bot is the Discord side of the game: it hands out invitation links,
// renders the leaderboard, and posts result embeds back to the channel
// a round was started from.
type Bot struct {
	session *discordgo.Session
	tokens  *TokenStore
	board   Leaderboard
	baseURL string
}

func NewBot(token, baseURL string, tokens *TokenStore, board Leaderboard) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	bot := &Bot{
		session: session,
		tokens:  tokens,
		board:   board,
		baseURL: baseURL,
	}
	session.AddHandler(bot.handleMessage)
	return bot, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	logInfo("Discord bot connected")
	return nil
}

func (b *Bot) Close() {
	if err := b.session.Close(); err != nil {
		logWarn("Failed to close discord session: %v", err)
	}
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot {
		return
	}

	switch {
	case strings.HasPrefix(m.Content, CommandPlay):
		b.handlePlay(s, m)
	case strings.HasPrefix(m.Content, CommandLeaderboard):
		b.handleLeaderboard(s, m)
	}
}

func (b *Bot) handlePlay(s *discordgo.Session, m *discordgo.MessageCreate) {
	token := b.tokens.Mint(m.Author.ID, m.Author.Username, m.ChannelID)
	gameURL := fmt.Sprintf("%s/?token=%s", b.baseURL, url.QueryEscape(token))

	content := fmt.Sprintf("<@%s>, click here to start your round:\n👉 [Start game](%s)", m.Author.ID, gameURL)
	if _, err := s.ChannelMessageSend(m.ChannelID, content); err != nil {
		logWarn("Failed to send invitation to channel %s: %v", m.ChannelID, err)
	}
}

func (b *Bot) handleLeaderboard(s *discordgo.Session, m *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := b.board.TopN(ctx, LeaderboardSize)
	if err != nil {
		logWarn("Failed to read leaderboard: %v", err)
		if _, sendErr := s.ChannelMessageSend(m.ChannelID, "Could not fetch the leaderboard, try again later."); sendErr != nil {
			logWarn("Failed to send leaderboard error message: %v", sendErr)
		}
		return
	}
	if len(entries) == 0 {
		if _, err := s.ChannelMessageSend(m.ChannelID, "🏆 No scores recorded yet!"); err != nil {
			logWarn("Failed to send empty leaderboard message: %v", err)
		}
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	fields := make([]*discordgo.MessageEmbedField, 0, len(entries))
	for i, e := range entries {
		rank := fmt.Sprintf("#%d", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s  @%s", rank, e.DisplayName),
			Value:  fmt.Sprintf("⚡ **%d WPM**", e.BestWPM),
			Inline: true,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Global Leaderboard — FastFingers",
		Description: "The best performances across all players!",
		Color:       0xffd700,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: "🔥 Keep practicing to climb the ranks!"},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		logWarn("Failed to send leaderboard embed: %v", err)
	}
}

// PostResult implements Notifier with a result embed in the originating
// channel.
func (b *Bot) PostResult(channelID string, sum Summary) {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🏁 FastFingers — @%s's result", sum.PlayerName),
		Color: 0x00aaff,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🧠 Correct words", Value: fmt.Sprintf("%d/%d", sum.CorrectCount, sum.TotalCount), Inline: true},
			{Name: "🎯 Accuracy", Value: fmt.Sprintf("%.2f%%", sum.Accuracy), Inline: true},
			{Name: "⚡ WPM", Value: fmt.Sprintf("%d", sum.WPM), Inline: true},
			{Name: "⌨️ Keystrokes", Value: fmt.Sprintf("(%d✅ | %d❌) **%d**", sum.LettersCorrect, sum.LettersWrong, sum.Keystrokes), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "🔥 Practice to beat your record!"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logWarn("Failed to post result to channel %s: %v", channelID, err)
	}
}
