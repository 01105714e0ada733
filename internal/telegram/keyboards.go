package telegram

import (
	"strconv"

	"github.com/songzhibin97/pairscout/internal/pagination"
)

// Callback data
const (
	CallbackStartResearch = "start_research"
	CallbackSeeList       = "see_list"
	CallbackPagePrefix    = "page_"
	CallbackDeepResearch  = "deep_research"
	CallbackBuy           = "buy"
	CallbackConnectWallet = "connect_wallet"
	CallbackWalletsList   = "walletslist"
)

func button(text, data string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, CallbackData: data}
}

func MainMenu() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{button("🚀 Start Research", CallbackStartResearch)},
		{button("📋 See List", CallbackSeeList)},
		{button("Connect your wallet", CallbackConnectWallet)},
		{button("My wallets", CallbackWalletsList)},
	}}
}

// PageKeyboard maps the payload actions onto inline buttons
func PageKeyboard(p pagination.DisplayPayload) *InlineKeyboardMarkup {
	kb := &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{}}

	var nav []InlineKeyboardButton
	if b, ok := p.Button(pagination.ActionPrevious); ok {
		nav = append(nav, button("⬅️ Back", CallbackPagePrefix+strconv.Itoa(b.Target)))
	}
	if b, ok := p.Button(pagination.ActionNext); ok {
		nav = append(nav, button("➡️ Next", CallbackPagePrefix+strconv.Itoa(b.Target)))
	}
	if len(nav) > 0 {
		kb.InlineKeyboard = append(kb.InlineKeyboard, nav)
	}

	if p.Has(pagination.ActionDeepResearch) {
		kb.InlineKeyboard = append(kb.InlineKeyboard, []InlineKeyboardButton{button("🔬 Make Deep Research", CallbackDeepResearch)})
	}
	if p.Has(pagination.ActionBuy) {
		kb.InlineKeyboard = append(kb.InlineKeyboard, []InlineKeyboardButton{button("Buy token", CallbackBuy)})
	}
	return kb
}

func BuyKeyboard(url string) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{{Text: "🛒 Buy on Dexscreener", URL: url}},
	}}
}
