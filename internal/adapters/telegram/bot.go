// Package telegram is the chat transport: it long-polls updates, feeds
// the session router, and realizes the presenter surface (offers as
// inline keyboards, ephemeral callback answers, private deliveries).
package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"linguabot/internal/core/langpack"
	perr "linguabot/internal/platform/errors"
	"linguabot/internal/platform/logger"
	str "linguabot/internal/platform/strings"
	offersdom "linguabot/internal/services/offers/domain"
	prefsdom "linguabot/internal/services/prefs/domain"
	sessiondom "linguabot/internal/services/session/domain"
)

// Telegram caps outbound message text at 4096 characters
const maxMessageLen = 4096

const offerPrompt = "Translate this message?"

// Bot is the Telegram transport. It implements the session presenter
// port; the router is bound after construction because the two depend
// on each other.
type Bot struct {
	api    *tgbotapi.BotAPI
	pack   *langpack.Pack
	prefs  prefsdom.StorePort
	opts   Options
	log    logger.Logger
	router sessiondom.RouterPort
}

// New dials the Telegram API and returns the transport
func New(opts Options, pack *langpack.Pack, prefs prefsdom.StorePort) (*Bot, error) {
	if opts.Token == "" {
		return nil, perr.InvalidArgf("telegram: token is required")
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.UpdateTimeout <= 0 {
		opts.UpdateTimeout = 30
	}
	api, err := tgbotapi.NewBotAPI(opts.Token)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "telegram connect")
	}
	return &Bot{
		api:   api,
		pack:  pack,
		prefs: prefs,
		opts:  opts,
		log:   *logger.Named("telegram"),
	}, nil
}

// Bind attaches the session router. Must be called before Run.
func (b *Bot) Bind(router sessiondom.RouterPort) { b.router = router }

// Username returns the bot's own account name
func (b *Bot) Username() string { return b.api.Self.UserName }

// Run consumes updates until ctx is cancelled. Each update is handled
// on a bounded worker pool; a panicking or failing handler is logged
// and never takes the loop down.
func (b *Bot) Run(ctx context.Context) error {
	if b.router == nil {
		return perr.Internalf("telegram: Run before Bind")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.opts.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)
	b.log.Info().Str("username", b.Username()).Int("workers", b.opts.Workers).Msg("polling updates")

	sem := make(chan struct{}, b.opts.Workers)
	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			wg.Wait()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				wg.Wait()
				return nil
			}
			wg.Add(1)
			sem <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() {
					if r := recover(); r != nil {
						b.log.Error().Any("panic", r).Msg("update handler panicked")
					}
					<-sem
					wg.Done()
				}()
				b.handleUpdate(ctx, upd)
			}(upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		b.handleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.From == nil {
		return
	}
	if name, args, ok := parseCommand(m.Text, b.Username()); ok {
		b.handleCommand(m, name, args)
		return
	}

	err := b.router.HandleMessage(ctx, sessiondom.Message{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Actor:     prefsdom.UserID(m.From.ID),
		ActorBot:  m.From.IsBot,
		Text:      m.Text,
	})
	if err != nil {
		b.log.Warn().Err(err).Int64("chat_id", m.Chat.ID).Msg("message cycle failed")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	sel := sessiondom.Selection{
		CallbackID: cq.ID,
		Actor:      prefsdom.UserID(cq.From.ID),
		Token:      cq.Data,
	}
	if cq.Message != nil {
		sel.ChatID = cq.Message.Chat.ID
		if rt := cq.Message.ReplyToMessage; rt != nil {
			sel.RepliedText = rt.Text
			if sel.RepliedText == "" {
				sel.RepliedText = rt.Caption
			}
		}
	}
	if err := b.router.HandleSelection(ctx, sel); err != nil {
		b.log.Warn().Err(err).Int64("chat_id", sel.ChatID).Msg("selection cycle failed")
	}
}

func (b *Bot) handleCommand(m *tgbotapi.Message, name, args string) {
	switch name {
	case "start", "help":
		b.reply(m, welcomeText(b.pack))
	case "setlang":
		code, err := b.pack.ParseCode(args)
		if err != nil {
			b.reply(m, setlangUsage(b.pack))
			return
		}
		b.prefs.Set(prefsdom.UserID(m.From.ID), code)
		b.reply(m, fmt.Sprintf("Got it. You will see offers to translate into %s.", b.pack.Name(code)))
	}
}

func (b *Bot) reply(m *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(m.Chat.ID, str.Truncate(text, maxMessageLen))
	out.ReplyToMessageID = m.MessageID
	if _, err := b.api.Send(out); err != nil {
		b.log.Warn().Err(err).Int64("chat_id", m.Chat.ID).Msg("reply failed")
	}
}

// Offer attaches the candidate buttons to the observed message
func (b *Bot) Offer(_ context.Context, msg sessiondom.Message, offers []offersdom.Offer) error {
	out := tgbotapi.NewMessage(msg.ChatID, offerPrompt)
	out.ReplyToMessageID = msg.MessageID
	out.ReplyMarkup = keyboard(offers)
	if _, err := b.api.Send(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "telegram offer send")
	}
	return nil
}

// Notify answers the callback with a toast only the actor sees
func (b *Bot) Notify(_ context.Context, sel sessiondom.Selection, text string) error {
	cb := tgbotapi.NewCallback(sel.CallbackID, str.Truncate(text, 200))
	if _, err := b.api.Request(cb); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "telegram callback answer")
	}
	return nil
}

// Deliver sends a private message to the actor's own chat
func (b *Bot) Deliver(_ context.Context, actor prefsdom.UserID, text string) error {
	out := tgbotapi.NewMessage(int64(actor), str.Truncate(text, maxMessageLen))
	if _, err := b.api.Send(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "telegram private send")
	}
	return nil
}

// keyboard renders one button per offer, one offer per row
func keyboard(offers []offersdom.Offer) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(offers))
	for _, o := range offers {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Label, o.Token),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// parseCommand splits "/name@botname args" into its parts. Commands
// addressed to a different bot in the same group are ignored.
func parseCommand(text, self string) (name, args string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	head, rest, _ := strings.Cut(text[1:], " ")
	if head == "" {
		return "", "", false
	}
	if cmd, target, hasTarget := strings.Cut(head, "@"); hasTarget {
		if self != "" && !strings.EqualFold(target, self) {
			return "", "", false
		}
		head = cmd
	}
	return strings.ToLower(head), strings.TrimSpace(rest), true
}

func welcomeText(pack *langpack.Pack) string {
	var names []string
	for _, l := range pack.Languages() {
		names = append(names, fmt.Sprintf("%s (%s)", l.Name, l.Code))
	}
	return "I translate group messages on demand.\n" +
		"Pick your language with /setlang <code> and I will offer to translate " +
		"messages written in other languages. Translations arrive as a private " +
		"message, so start a chat with me first.\n" +
		"Supported: " + strings.Join(names, ", ")
}

func setlangUsage(pack *langpack.Pack) string {
	var codes []string
	for _, l := range pack.Languages() {
		codes = append(codes, string(l.Code))
	}
	return "Usage: /setlang <" + strings.Join(codes, "|") + ">"
}
