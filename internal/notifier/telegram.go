package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"scamguard/internal/classifier"
)

type Telegram struct {
	apiURL   string
	botToken string
	chatIDs  []string
	client   *http.Client
}

func NewTelegram(apiURL, botToken string, chatIDs []string) *Telegram {
	return &Telegram{
		apiURL:   strings.TrimRight(apiURL, "/"),
		botToken: botToken,
		chatIDs:  chatIDs,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Telegram) Notify(ctx context.Context, n Notification) error {
	text := formatMessage(n)

	for _, chatID := range t.chatIDs {
		if err := t.send(ctx, chatID, text); err != nil {
			return fmt.Errorf("chat %s: %w", chatID, err)
		}
	}

	return nil
}

func (t *Telegram) send(ctx context.Context, chatID, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiURL, t.botToken)

	body, err := json.Marshal(map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %d", resp.StatusCode)
	}

	return nil
}

func formatMessage(n Notification) string {
	icon := "⚠️"
	if n.Result.RiskLabel == classifier.RiskHigh {
		icon = "🚨"
	}

	reasons := "none"
	if len(n.Result.Reasons) > 0 {
		reasons = strings.Join(n.Result.Reasons, ", ")
	}

	return fmt.Sprintf(`%s <b>Scam Guard: %s message</b>

<b>From:</b> %s
<b>Score:</b> %d

<b>Message:</b>
%s

<b>Suspicious because:</b> %s`,
		icon,
		html.EscapeString(n.Result.RiskLabel),
		html.EscapeString(n.Message.Username),
		n.Result.Score,
		html.EscapeString(n.Message.Content),
		html.EscapeString(reasons),
	)
}
