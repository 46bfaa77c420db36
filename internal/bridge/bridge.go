// Package bridge is the local single-shot channel: a trusted process holds the
// API key and answers one request per unix-socket connection.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arin/career-copilot/internal/ai"
)

const requestReadTimeout = 10 * time.Second

// reply is the single message written back on every connection.
type reply struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Server answers bridge requests with an ai.Invoker.
type Server struct {
	inv    ai.Invoker
	logger *slog.Logger
}

func NewServer(inv ai.Invoker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{inv: inv, logger: logger}
}

// ListenAndServe binds the socket at path, readable by the owner only, and
// serves until ctx is cancelled. A stale socket left by a crashed process is
// replaced.
func (s *Server) ListenAndServe(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	if info, err := os.Lstat(path); err == nil {
		if info.Mode()&fs.ModeSocket == 0 {
			return fmt.Errorf("%s exists and is not a socket", path)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		ln.Close()
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled and waits for
// in-flight requests before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})
	eg.Go(func() error {
		s.logger.Info("bridge listening", slog.String("socket", ln.Addr().String()))
		var wg sync.WaitGroup
		defer wg.Wait()
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.handle(ctx, conn)
			}()
		}
	})
	err := eg.Wait()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	start := time.Now()

	_ = conn.SetReadDeadline(time.Now().Add(requestReadTimeout))
	var p ai.Payload
	if err := json.NewDecoder(conn).Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		s.logger.Warn("bad bridge request", slog.Any("error", err))
		s.write(conn, reply{Error: "invalid request: " + err.Error()})
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	result, err := s.inv.Invoke(ctx, p)
	if err != nil {
		s.logger.Error("invoke failed", slog.String("model", p.Args.Model), slog.Any("error", err))
		s.write(conn, reply{Error: err.Error()})
		return
	}
	s.logger.Info("invoke", slog.String("model", p.Args.Model), slog.Duration("elapsed", time.Since(start)))
	s.write(conn, reply{Result: result})
}

func (s *Server) write(conn net.Conn, r reply) {
	if err := json.NewEncoder(conn).Encode(r); err != nil {
		s.logger.Warn("failed to write bridge reply", slog.Any("error", err))
	}
}

// Client reaches a bridge Server. It implements ai.Invoker.
type Client struct {
	path   string
	dialer net.Dialer
}

func NewClient(path string) *Client {
	return &Client{path: path}
}

// Invoke sends p and waits for the single reply. Cancelling ctx abandons
// the connection.
func (c *Client) Invoke(ctx context.Context, p ai.Payload) (string, error) {
	conn, err := c.dialer.DialContext(ctx, "unix", c.path)
	if err != nil {
		return "", fmt.Errorf("could not reach bridge at %s: %w", c.path, err)
	}
	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	if err := json.NewEncoder(conn).Encode(p); err != nil {
		return "", c.fail(ctx, err)
	}
	var r reply
	if err := json.NewDecoder(conn).Decode(&r); err != nil {
		return "", c.fail(ctx, err)
	}
	if r.Error != "" {
		return "", errors.New(r.Error)
	}
	return r.Result, nil
}

func (c *Client) fail(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// Available reports whether something is listening on the socket.
func (c *Client) Available() bool {
	conn, err := net.DialTimeout("unix", c.path, time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
