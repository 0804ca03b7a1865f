package syncserver

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"soloquest/internal/storage"
	syncwire "soloquest/internal/sync"
)

// Server is the sync daemon: a document store addressable by user code, with
// whole-document reads/writes and an SSE change feed per code.
type Server struct {
	repo   *storage.DocumentRepo
	router *gin.Engine
	logger *slog.Logger

	mu       sync.Mutex
	watchers map[string]map[chan []byte]struct{}
}

func NewServer(repo *storage.DocumentRepo, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		repo:     repo,
		router:   router,
		logger:   logger,
		watchers: map[string]map[chan []byte]struct{}{},
	}

	router.PUT("/v1/state/:code", s.handlePut)
	router.GET("/v1/state/:code", s.handleGet)
	router.GET("/v1/state/:code/watch", s.handleWatch)

	return s
}

func (s *Server) Router() *gin.Engine { return s.router }

func (s *Server) Run(addr string) error {
	s.logger.Info("syncd listening", "addr", addr)
	return s.router.Run(addr)
}

// Documents are namespaced so a code can never collide with the client-side
// state key when daemon and client share a database file.
func docKey(code string) string { return "user:" + code }

func (s *Server) handlePut(c *gin.Context) {
	code := c.Param("code")

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body: " + err.Error()})
		return
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON document"})
		return
	}

	env := syncwire.Envelope{
		State:     body,
		UpdatedAt: time.Now().UTC(),
	}
	doc, err := json.Marshal(env)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := s.repo.Put(c.Request.Context(), docKey(code), doc, env.UpdatedAt); err != nil {
		s.logger.Error("document put failed", "code", code, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store write failed"})
		return
	}

	s.broadcast(code, doc)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleGet(c *gin.Context) {
	code := c.Param("code")

	doc, _, err := s.repo.Get(c.Request.Context(), docKey(code))
	if err != nil {
		s.logger.Error("document get failed", "code", code, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store read failed"})
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile for code"})
		return
	}
	c.Data(http.StatusOK, "application/json", doc)
}

func (s *Server) handleWatch(c *gin.Context) {
	code := c.Param("code")
	ch := s.subscribe(code)
	defer s.unsubscribe(code, ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Replay the current document so late subscribers start in sync.
	if doc, _, err := s.repo.Get(c.Request.Context(), docKey(code)); err == nil && doc != nil {
		fmt.Fprintf(c.Writer, "data: %s\n\n", doc)
		c.Writer.Flush()
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case doc, ok := <-ch:
			if !ok {
				return false
			}
			fmt.Fprintf(w, "data: %s\n\n", doc)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (s *Server) subscribe(code string) chan []byte {
	ch := make(chan []byte, 8)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watchers[code] == nil {
		s.watchers[code] = map[chan []byte]struct{}{}
	}
	s.watchers[code][ch] = struct{}{}
	return ch
}

func (s *Server) unsubscribe(code string, ch chan []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watchers[code], ch)
	if len(s.watchers[code]) == 0 {
		delete(s.watchers, code)
	}
}

func (s *Server) broadcast(code string, doc []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.watchers[code] {
		select {
		case ch <- doc:
		default:
			// Slow subscriber: drop the frame, it will catch up on the
			// next write or reconnect.
		}
	}
}
