package pagination

import (
	"fmt"
	"strings"

	"github.com/songzhibin97/pairscout/internal/models"
	"github.com/songzhibin97/pairscout/internal/session"
)

type Action string

const (
	ActionPrevious     Action = "previous"
	ActionNext         Action = "next"
	ActionDeepResearch Action = "deep_research"
	ActionBuy          Action = "buy"
)

// Button is one available action. Target is the cursor a navigation action leads to.
type Button struct {
	Action Action
	Target int
}

// DisplayPayload is what the transport shows for a session
type DisplayPayload struct {
	Listing models.Listing
	Index   int
	Total   int
	Label   string
	Actions []Button
}

// Render builds the view of the listing under the session cursor.
// It panics when the session has no results.
func Render(s session.Session) DisplayPayload {
	total := len(s.Results)
	if total == 0 {
		panic("pagination: render called on empty result set")
	}
	cursor := session.Clamp(s.Cursor, total)

	actions := make([]Button, 0, 4)
	if cursor > 0 {
		actions = append(actions, Button{Action: ActionPrevious, Target: cursor - 1})
	}
	if cursor < total-1 {
		actions = append(actions, Button{Action: ActionNext, Target: cursor + 1})
	}
	actions = append(actions,
		Button{Action: ActionDeepResearch, Target: cursor},
		Button{Action: ActionBuy, Target: cursor},
	)

	return DisplayPayload{
		Listing: s.Results[cursor],
		Index:   cursor,
		Total:   total,
		Label:   fmt.Sprintf("%d/%d", cursor+1, total),
		Actions: actions,
	}
}

// Has reports whether action is available
func (p DisplayPayload) Has(action Action) bool {
	_, ok := p.Button(action)
	return ok
}

func (p DisplayPayload) Button(action Action) (Button, bool) {
	for _, b := range p.Actions {
		if b.Action == action {
			return b, true
		}
	}
	return Button{}, false
}

// Text formats the listing card
func (p DisplayPayload) Text() string {
	l := p.Listing

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Token %s\n\n", p.Label)
	fmt.Fprintf(&b, "🪙 Name: %s\n", orNA(l.DisplayName))
	fmt.Fprintf(&b, "💱 Trading Name: %s\n", orNA(l.TradingPair))
	fmt.Fprintf(&b, "💵 Price: %s\n", orNA(l.Price))
	fmt.Fprintf(&b, "⏳ Age: %s\n", orNA(l.Age))
	fmt.Fprintf(&b, "📈 Volume: %s\n", orNA(l.Volume))
	fmt.Fprintf(&b, "📜 Contract Address: %s\n", orNA(l.ContractAddress))
	fmt.Fprintf(&b, "🟢 Buys: %s\n", orNA(l.Buys))
	fmt.Fprintf(&b, "🔴 Sells: %s\n", orNA(l.Sells))
	fmt.Fprintf(&b, "🔗 Link: %s\n", orNA(l.CanonicalURL))
	return b.String()
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
