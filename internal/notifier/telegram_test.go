package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"scamguard/internal/classifier"
	"scamguard/internal/config"
	"scamguard/internal/domain"
)

func testNotification() Notification {
	v := classifier.Classify("Pay the fee <now> with your credit card")
	return Notification{
		Message: domain.Message{ID: "m1", Username: "unknown<sender>", Content: "Pay the fee <now> with your credit card"},
		Result:  classifier.Result{Verdict: v, RiskLabel: classifier.RiskLabel(v.Score)},
	}
}

func TestTelegram_Notify(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []map[string]any
		paths  []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		mu.Lock()
		bodies = append(bodies, body)
		paths = append(paths, r.URL.Path)
		mu.Unlock()
	}))
	defer srv.Close()

	tg := NewTelegram(srv.URL+"/", "TOKEN", []string{"100", "200"})
	if err := tg.Notify(context.Background(), testNotification()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bodies) != 2 {
		t.Fatalf("requests = %d, want 2", len(bodies))
	}
	if paths[0] != "/botTOKEN/sendMessage" {
		t.Errorf("path = %q", paths[0])
	}
	if bodies[1]["chat_id"] != "200" || bodies[1]["parse_mode"] != "HTML" {
		t.Errorf("body = %v", bodies[1])
	}
	text, _ := bodies[0]["text"].(string)
	if !strings.Contains(text, "high risk") {
		t.Errorf("text = %q", text)
	}
	if strings.Contains(text, "<now>") || !strings.Contains(text, "&lt;now&gt;") {
		t.Errorf("content not escaped: %q", text)
	}
}

func TestTelegram_NotifyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tg := NewTelegram(srv.URL, "bad", []string{"1"})
	err := tg.Notify(context.Background(), testNotification())
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want telegram 401", err)
	}
}

func TestLog_Notify(t *testing.T) {
	if err := NewLog(zap.NewNop().Sugar()).Notify(context.Background(), testNotification()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFromConfig(t *testing.T) {
	log := zap.NewNop().Sugar()

	if _, ok := FromConfig(config.NotifierConfig{}, log).(*Log); !ok {
		t.Error("want log notifier without token")
	}
	n := FromConfig(config.NotifierConfig{TelegramToken: "t", TelegramChatIDs: []string{"1"}, TelegramAPIURL: "http://x"}, log)
	if _, ok := n.(*Telegram); !ok {
		t.Error("want telegram notifier with token")
	}
}
