package visitlog

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestNewEntry(t *testing.T) {
	tests := []struct {
		name   string
		fwd    string
		remote string
		wantIP string
	}{
		{"forwarded first hop", " 203.0.113.7 , 10.0.0.1", "10.0.0.1:5555", "203.0.113.7"},
		{"remote with port", "", "192.0.2.4:41000", "192.0.2.4"},
		{"remote ipv6", "", "[2001:db8::1]:80", "2001:db8::1"},
		{"remote without port", "", "pipe", "pipe"},
		{"empty forwarded hop", " , 10.0.0.9", "192.0.2.5:1", "192.0.2.5"},
	}

	now := time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.FixedZone("IST", 5*3600+1800))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/chat?id=1", nil)
			r.RemoteAddr = tt.remote
			if tt.fwd != "" {
				r.Header.Set("X-Forwarded-For", tt.fwd)
			}
			r.Header.Set("User-Agent", "test-agent")
			r.Header.Set("Accept-Language", "en-IN")

			e := NewEntry(r, now)
			if e.IP != tt.wantIP {
				t.Errorf("ip = %q, want %q", e.IP, tt.wantIP)
			}
			if e.Time != "2024-03-01T07:00:45.123Z" {
				t.Errorf("time = %q", e.Time)
			}
			if e.URL != "/chat?id=1" {
				t.Errorf("url = %q", e.URL)
			}
			if e.UserAgent != "test-agent" || e.AcceptLanguage != "en-IN" {
				t.Errorf("headers = %q / %q", e.UserAgent, e.AcceptLanguage)
			}
		})
	}
}

func TestMiddleware_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visits.log")
	a := NewAppender(path)
	a.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	e := echo.New()
	e.Use(Middleware(a))
	e.GET("/*", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	for _, p := range []string{"/", "/about?x=<b>"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry Entry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		entries = append(entries, entry)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[1].URL != "/about?x=<b>" {
		t.Errorf("url = %q", entries[1].URL)
	}
	if entries[0].Time != "2024-01-02T03:04:05.000Z" {
		t.Errorf("time = %q", entries[0].Time)
	}
}

func TestMiddleware_IgnoresWriteFailure(t *testing.T) {
	a := NewAppender(filepath.Join(t.TempDir(), "missing", "visits.log"))

	e := echo.New()
	e.Use(Middleware(a))
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if err := a.Append(Entry{}); err == nil {
		t.Error("append to missing directory should fail")
	}
}
