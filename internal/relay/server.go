// Package relay serves the HTTP relay that keeps the provider API key off the
// client. POST /api/gemini takes {isStream, args}; streaming replies are
// newline-delimited JSON, one provider chunk per line.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/arin/career-copilot/internal/ai"
)

const (
	ContentTypeJSONL = "application/jsonl"

	errNoAPIKey         = "API key is not configured on the server."
	errMethodNotAllowed = "Method Not Allowed"
	errRateLimited      = "Too many requests, slow down."

	shutdownTimeout = 5 * time.Second
)

// Generator is the provider the relay forwards to.
type Generator interface {
	Generate(ctx context.Context, req ai.Request) (*genai.GenerateContentResponse, error)
	GenerateStream(ctx context.Context, req ai.Request) iter.Seq2[*genai.GenerateContentResponse, error]
}

// Options tunes a Server. The zero value is usable.
type Options struct {
	// RateLimit is the sustained number of relay calls per second across all
	// clients. Zero disables limiting.
	RateLimit rate.Limit
	Burst     int
	// AllowedOrigins are CORS origins accepted besides localhost.
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server is the relay HTTP server.
type Server struct {
	gen     Generator
	engine  *gin.Engine
	metrics *metrics
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewServer builds the routes. A nil gen means no API key is configured:
// the server still runs and answers every relay call with a 500.
func NewServer(gen Generator, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		gen:     gen,
		metrics: newMetrics(reg),
		logger:  logger,
	}
	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(opts.RateLimit, max(opts.Burst, 1))
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(gin.Recovery(), s.logRequests(), s.metrics.middleware(), cors.New(corsConfig(opts.AllowedOrigins)))
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": errMethodNotAllowed})
	})
	engine.POST(ai.DefaultRelayPath, s.rateLimit(), s.handleGemini)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "apiKey": s.gen != nil})
	})
	s.engine = engine
	return s
}

func corsConfig(extra []string) cors.Config {
	return cors.Config{
		AllowMethods: []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") || strings.HasPrefix(origin, "http://127.0.0.1") {
				return true
			}
			for _, o := range extra {
				if origin == o {
					return true
				}
			}
			return false
		},
		MaxAge: 12 * time.Hour,
	}
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.logger.Info("relay listening", slog.String("addr", ln.Addr().String()), slog.Bool("api_key", s.gen != nil))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("relay shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

func (s *Server) handleGemini(c *gin.Context) {
	if s.gen == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errNoAPIKey})
		return
	}

	var p ai.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if p.IsStream {
		s.stream(c, p.Args)
		return
	}

	resp, err := s.gen.Generate(c.Request.Context(), p.Args)
	if err != nil {
		s.logger.Error("generate failed", slog.String("model", p.Args.Model), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// stream forwards provider chunks as they arrive. A failure before the first
// chunk is still a plain 500; after that the status is committed and the
// failure is reported as a final {"error": ...} line.
func (s *Server) stream(c *gin.Context, req ai.Request) {
	next, stop := iter.Pull2(s.gen.GenerateStream(c.Request.Context(), req))
	defer stop()

	first, err, ok := next()
	if err != nil {
		s.logger.Error("stream failed", slog.String("model", req.Model), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", ContentTypeJSONL)
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)
	if !ok {
		c.Writer.WriteHeaderNow()
		return
	}

	pending := first
	chunks := 0
	c.Stream(func(w io.Writer) bool {
		if pending == nil {
			resp, err, ok := next()
			if !ok {
				return false
			}
			if err != nil {
				s.metrics.streamErrors.Inc()
				s.logger.Warn("stream interrupted", slog.Int("chunks", chunks), slog.Any("error", err))
				_ = writeLine(w, gin.H{"error": err.Error()})
				return false
			}
			pending = resp
		}
		err := writeLine(w, pending)
		pending = nil
		if err != nil {
			return false
		}
		s.metrics.chunks.Inc()
		chunks++
		return true
	})
}

func writeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": errRateLimited})
			return
		}
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}
