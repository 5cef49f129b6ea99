// Package visitlog appends one JSON line per HTTP request to a file.
package visitlog

import (
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

var json = jsoniter.Config{EscapeHTML: false}.Froze()

type Entry struct {
	Time           string `json:"time"`
	IP             string `json:"ip"`
	UserAgent      string `json:"userAgent"`
	AcceptLanguage string `json:"acceptLanguage"`
	URL            string `json:"url"`
}

func NewEntry(r *http.Request, now time.Time) Entry {
	return Entry{
		Time:           now.UTC().Format(timeLayout),
		IP:             clientIP(r),
		UserAgent:      r.Header.Get("User-Agent"),
		AcceptLanguage: r.Header.Get("Accept-Language"),
		URL:            requestURL(r),
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func requestURL(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	if r.URL != nil {
		return r.URL.RequestURI()
	}
	return ""
}

// Appender writes entries to an append-only file. Each append opens the
// file so that rotation by an external tool is picked up.
type Appender struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewAppender(path string) *Appender {
	return &Appender{path: path, now: time.Now}
}

func (a *Appender) Append(e Entry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Middleware records every request before it is handled. Write failures
// are dropped and never affect the response.
func Middleware(a *Appender) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_ = a.Append(NewEntry(c.Request(), a.now()))
			return next(c)
		}
	}
}
