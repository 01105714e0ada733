package telegram

import "context"

// Pusher sends out-of-band messages to a user's private chat
type Pusher struct {
	api API
}

func NewPusher(api API) *Pusher {
	return &Pusher{api: api}
}

func (p *Pusher) Push(ctx context.Context, userID int64, text string) error {
	return p.api.SendMessage(ctx, userID, text, nil)
}
