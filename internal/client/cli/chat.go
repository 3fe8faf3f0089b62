package cli

import (
	"context"
	"strings"
)

const chatGreeting = "Hi! I'm your PhishShield AI assistant. How can I help you stay safe online today?"

// Chat sends message to the assistant. Without a message it starts an
// interactive conversation that ends on an empty line or "/exit".
func (a *App) Chat(ctx context.Context, message string) error {
	if strings.TrimSpace(message) != "" {
		return a.sendChat(ctx, message)
	}

	a.out.assistant(chatGreeting)
	for {
		line, err := getSimpleText(a.reader, "You (empty line to finish)", a.out.w)
		if err != nil || line == "" || line == "/exit" {
			return nil
		}
		// failures are shown and the conversation goes on
		_ = a.sendChat(ctx, line)
	}
}

func (a *App) sendChat(ctx context.Context, message string) error {
	res := a.api.SendChatMessage(ctx, message)
	if !res.OK {
		return a.fail(res.Error)
	}
	a.out.assistant(res.Data.Message)
	return nil
}
