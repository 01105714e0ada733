package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/songzhibin97/pairscout/internal/bot"
	"github.com/songzhibin97/pairscout/internal/session"
)

// API is the subset of the Bot API the router needs
type API interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup *InlineKeyboardMarkup) error
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, markup *InlineKeyboardMarkup) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}

type callbackHandler func(ctx context.Context, cq *CallbackQuery) error

// Router dispatches updates to the bot service and renders the replies
type Router struct {
	api       API
	svc       *bot.Service
	logger    *slog.Logger
	callbacks map[string]callbackHandler
}

func NewRouter(api API, svc *bot.Service, logger *slog.Logger) *Router {
	r := &Router{api: api, svc: svc, logger: logger}
	r.callbacks = map[string]callbackHandler{
		CallbackStartResearch: r.handleStartResearch,
		CallbackSeeList:       r.handleSeeList,
		CallbackDeepResearch:  r.handleDeepResearch,
		CallbackBuy:           r.handleBuy,
		CallbackConnectWallet: r.handleConnectWallet,
		CallbackWalletsList:   r.handleWalletsList,
	}
	return r
}

// Handle processes one update. Errors are logged, never returned.
func (r *Router) Handle(ctx context.Context, u Update) {
	var err error
	switch {
	case u.CallbackQuery != nil:
		err = r.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil && u.Message.From != nil:
		err = r.handleMessage(ctx, u.Message)
	default:
		return
	}
	if err != nil {
		r.logger.Error("failed to handle update", "update_id", u.UpdateID, "user_id", u.UserID(), "err", err)
	}
}

func (r *Router) handleMessage(ctx context.Context, m *Message) error {
	userID := m.From.ID
	text := strings.TrimSpace(m.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		r.svc.CancelInput(userID)
		return r.api.SendMessage(ctx, m.Chat.ID, "👋 Hello! This bot tracks new coin launches. Please choose an option below:", MainMenu())
	case strings.HasPrefix(text, "/cancel"):
		r.svc.CancelInput(userID)
		return r.api.SendMessage(ctx, m.Chat.ID, "Cancelled.", nil)
	}

	outcome, addr, err := r.svc.SubmitWalletText(ctx, userID, text)
	if err != nil {
		return r.api.SendMessage(ctx, m.Chat.ID, "❌ Could not save your wallet. Please try again.", nil)
	}

	switch outcome {
	case session.OutcomeRetry:
		return r.api.SendMessage(ctx, m.Chat.ID, "⚠️ Invalid wallet address. Please try again.", nil)
	case session.OutcomeSaved:
		return r.api.SendMessage(ctx, m.Chat.ID, fmt.Sprintf("✅ Your wallet %s has been saved!", addr), nil)
	}
	return nil
}

func (r *Router) handleCallback(ctx context.Context, cq *CallbackQuery) error {
	if strings.HasPrefix(cq.Data, CallbackPagePrefix) {
		return r.handlePage(ctx, cq)
	}

	handler, ok := r.callbacks[cq.Data]
	if !ok {
		r.logger.Warn("unknown callback", "data", cq.Data, "user_id", cq.From.ID)
		return r.api.AnswerCallbackQuery(ctx, cq.ID, "")
	}
	return handler(ctx, cq)
}

func chatOf(cq *CallbackQuery) (chatID int64, messageID int) {
	if cq.Message == nil {
		return cq.From.ID, 0
	}
	return cq.Message.Chat.ID, cq.Message.MessageID
}

// show edits the callback's message in place, or sends a new one when there is none
func (r *Router) show(ctx context.Context, cq *CallbackQuery, text string, markup *InlineKeyboardMarkup) error {
	chatID, messageID := chatOf(cq)
	if messageID == 0 {
		return r.api.SendMessage(ctx, chatID, text, markup)
	}
	return r.api.EditMessageText(ctx, chatID, messageID, text, markup)
}

func (r *Router) handleStartResearch(ctx context.Context, cq *CallbackQuery) error {
	// 先应答回调, 抓取可能持续数十秒
	if err := r.api.AnswerCallbackQuery(ctx, cq.ID, ""); err != nil {
		return err
	}
	if err := r.show(ctx, cq, "🔎 Starting research...", nil); err != nil {
		return err
	}

	payload, err := r.svc.StartResearch(ctx, cq.From.ID)
	if err != nil {
		return r.show(ctx, cq, fmt.Sprintf("❌ Error during scraping: %s", err), nil)
	}
	return r.show(ctx, cq, "✅ Research complete!\n\n"+payload.Text(), PageKeyboard(payload))
}

func (r *Router) handleSeeList(ctx context.Context, cq *CallbackQuery) error {
	payload, err := r.svc.ShowList(ctx, cq.From.ID)
	if errors.Is(err, bot.ErrNoResults) {
		return r.api.AnswerCallbackQuery(ctx, cq.ID, "⚠️ No data available. Start research first.")
	}
	if err != nil {
		return err
	}
	if err := r.show(ctx, cq, payload.Text(), PageKeyboard(payload)); err != nil {
		return err
	}
	return r.api.AnswerCallbackQuery(ctx, cq.ID, "")
}

func (r *Router) handlePage(ctx context.Context, cq *CallbackQuery) error {
	index, err := strconv.Atoi(strings.TrimPrefix(cq.Data, CallbackPagePrefix))
	if err != nil {
		return r.api.AnswerCallbackQuery(ctx, cq.ID, "⚠️ Invalid page.")
	}

	payload, err := r.svc.Navigate(ctx, cq.From.ID, index)
	if errors.Is(err, bot.ErrNoResults) {
		return r.api.AnswerCallbackQuery(ctx, cq.ID, "⚠️ No data available. Start research first.")
	}
	if err != nil {
		return err
	}
	if err := r.show(ctx, cq, payload.Text(), PageKeyboard(payload)); err != nil {
		return err
	}
	return r.api.AnswerCallbackQuery(ctx, cq.ID, "")
}

func (r *Router) handleDeepResearch(ctx context.Context, cq *CallbackQuery) error {
	if err := r.svc.RequestEnrichment(ctx, cq.From.ID); err != nil {
		if errors.Is(err, bot.ErrNoResults) {
			return r.api.AnswerCallbackQuery(ctx, cq.ID, "⚠️ No data available.")
		}
		return err
	}
	return r.api.AnswerCallbackQuery(ctx, cq.ID, "🔬 Starting deep research...")
}

func (r *Router) handleBuy(ctx context.Context, cq *CallbackQuery) error {
	listing, err := r.svc.Current(cq.From.ID)
	if err != nil {
		return r.api.AnswerCallbackQuery(ctx, cq.ID, "⚠️ No token selected.")
	}

	pair := listing.TradingPair
	if pair == "" {
		pair = "N/A"
	}
	chatID, _ := chatOf(cq)
	if err := r.api.SendMessage(ctx, chatID, fmt.Sprintf("To buy %s, use the link below:", pair), BuyKeyboard(listing.CanonicalURL)); err != nil {
		return err
	}
	return r.api.AnswerCallbackQuery(ctx, cq.ID, "")
}

func (r *Router) handleConnectWallet(ctx context.Context, cq *CallbackQuery) error {
	r.svc.ConnectWallet(cq.From.ID)

	chatID, _ := chatOf(cq)
	if err := r.api.SendMessage(ctx, chatID, "💳 Please send me your wallet address (ETH format 0x...)", nil); err != nil {
		return err
	}
	return r.api.AnswerCallbackQuery(ctx, cq.ID, "")
}

func (r *Router) handleWalletsList(ctx context.Context, cq *CallbackQuery) error {
	chatID, _ := chatOf(cq)

	wallets, err := r.svc.Wallets(ctx, cq.From.ID)
	switch {
	case err != nil:
		r.logger.Error("failed to list wallets", "user_id", cq.From.ID, "err", err)
		err = r.api.SendMessage(ctx, chatID, "❌ Could not load your wallets.", nil)
	case len(wallets) == 0:
		err = r.api.SendMessage(ctx, chatID, "⚠️ You don’t have any wallets yet.", nil)
	default:
		err = r.api.SendMessage(ctx, chatID, "💼 Your wallets:\n"+strings.Join(wallets, "\n"), nil)
	}
	if err != nil {
		return err
	}
	return r.api.AnswerCallbackQuery(ctx, cq.ID, "")
}
