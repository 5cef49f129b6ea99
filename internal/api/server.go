package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"scamguard/internal/annotator"
	"scamguard/internal/classifier"
	"scamguard/internal/domain"
	"scamguard/internal/visitlog"
)

type Server struct {
	echo       *echo.Echo
	classifier classifier.Classifier
	annotator  *annotator.Annotator
	sse        *SSEBroker
	log        *zap.SugaredLogger
}

type Options struct {
	PublicDir string
	Visits    *visitlog.Appender
}

func NewServer(cl classifier.Classifier, an *annotator.Annotator, log *zap.SugaredLogger, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	if opts.Visits != nil {
		e.Use(visitlog.Middleware(opts.Visits))
	}
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Debugw("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	if opts.PublicDir != "" {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:    opts.PublicDir,
			Index:   "index.html",
			HTML5:   true,
			Skipper: skipNonGet,
		}))
	}

	s := &Server{
		echo:       e,
		classifier: cl,
		annotator:  an,
		sse:        NewSSEBroker(),
		log:        log,
	}

	s.routes()

	return s
}

func skipNonGet(c echo.Context) bool {
	m := c.Request().Method
	return m != http.MethodGet && m != http.MethodHead
}

func (s *Server) routes() {
	s.echo.GET("/health", s.health)
	s.echo.GET("/api/events", s.events)
	s.echo.POST("/api/classify", s.classify)
	s.echo.POST("/api/annotate", s.annotate)
}

func (s *Server) Start(addr string) error {
	err := s.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Broadcast(msg string) {
	s.sse.Broadcast(msg)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type classifyRequest struct {
	Text string `json:"text"`
}

func (s *Server) classify(c echo.Context) error {
	var req classifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	msg := domain.Message{
		Content:   req.Text,
		Source:    domain.SourceWeb,
		CreatedAt: time.Now(),
	}

	result, err := s.classifier.Classify(c.Request().Context(), msg)
	if errors.Is(err, classifier.ErrEmptyText) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text is required"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	if result.Suspicious {
		s.alert(msg, result.Verdict)
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) alert(msg domain.Message, v classifier.Verdict) {
	markup, err := s.annotator.Bubble(msg, v)
	if err != nil {
		s.log.Errorw("render alert", "error", err)
		return
	}
	s.sse.Broadcast(markup)
}

type annotateRequest struct {
	HTML      string               `json:"html"`
	Banner    bool                 `json:"banner"`
	Mutations []annotator.Mutation `json:"mutations"`
}

type annotateResponse struct {
	HTML  string          `json:"html"`
	Stats annotator.Stats `json:"stats"`
}

// annotate scans a chat page, then replays the given mutations against it
// as if they had been observed live.
func (s *Server) annotate(c echo.Context) error {
	var req annotateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.HTML) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "html is required"})
	}

	doc, err := annotator.NewDocument(strings.NewReader(req.HTML), s.annotator)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if req.Banner {
		doc.ShowBanner()
	}

	stats, err := doc.Scan()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	if len(req.Mutations) > 0 {
		batches := make(chan []annotator.Mutation, len(req.Mutations))
		for _, m := range req.Mutations {
			batches <- []annotator.Mutation{m}
		}
		close(batches)

		observed, err := annotator.NewWatcher(doc, s.log).Run(c.Request().Context(), batches)
		stats.Merge(observed)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		}
	}

	out, err := doc.HTML()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, annotateResponse{HTML: out, Stats: stats})
}

func (s *Server) events(c echo.Context) error {
	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")

	ch := s.sse.Subscribe()
	defer s.sse.Unsubscribe(ch)

	fmt.Fprintf(c.Response(), ": ping\n\n")
	c.Response().Flush()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case msg := <-ch:
			fmt.Fprintf(c.Response(), "event: message\n")
			for _, line := range strings.Split(msg, "\n") {
				fmt.Fprintf(c.Response(), "data: %s\n", line)
			}
			fmt.Fprintf(c.Response(), "\n")
			c.Response().Flush()
		}
	}
}
