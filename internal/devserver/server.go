// Package devserver serves the task API from memory for local development
// and end-to-end tests.
package devserver

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ruminaider/taskdeck/internal/logging"
	"github.com/ruminaider/taskdeck/internal/tasks"
)

// BasePath is the route prefix of the task collection.
const BasePath = "/api/tasks"

// Server is an in-memory task API.
type Server struct {
	mu     sync.Mutex
	tasks  map[int64]tasks.Task
	nextID int64
	now    func() time.Time
	logger *slog.Logger
	router *gin.Engine
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger logs each request through logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithClock replaces time.Now for created and updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a server seeded with one open task per title.
func New(titles []string, opts ...Option) *Server {
	s := &Server{
		tasks:  make(map[int64]tasks.Task),
		nextID: 1,
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	for _, title := range titles {
		s.insert(tasks.NewDraft(title, ""))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	api := router.Group(BasePath)
	{
		api.GET("", s.handleList)
		api.POST("", s.handleCreate)
		api.GET("/:id", s.handleGet)
		api.PATCH("/:id", s.handlePatch)
	}
	s.router = router
	return s
}

// Handler returns the server as an http.Handler, for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Tasks returns every stored task in ascending id order.
func (s *Server) Tasks() []tasks.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked("")
}

func (s *Server) insert(d tasks.Draft) tasks.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	t := tasks.Task{
		ID:          s.nextID,
		Title:       d.Title,
		Description: d.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[t.ID] = t
	s.nextID++
	return t
}

func (s *Server) sortedLocked(search string) []tasks.Task {
	needle := strings.ToLower(search)
	out := make([]tasks.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.DescriptionText()), needle) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"request_id", c.GetHeader("X-Request-ID"),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) handleList(c *gin.Context) {
	s.mu.Lock()
	list := s.sortedLocked(c.Query("search"))
	s.mu.Unlock()
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	t, found := s.tasks[id]
	s.mu.Unlock()
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleCreate(c *gin.Context) {
	var d tasks.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	d = tasks.NewDraft(d.Title, derefString(d.Description))
	if err := d.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, s.insert(d))
}

type patchRequest struct {
	IsCompleted *bool `json:"isCompleted"`
}

func (s *Server) handlePatch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsCompleted == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isCompleted is required"})
		return
	}

	s.mu.Lock()
	t, found := s.tasks[id]
	if found {
		t.IsCompleted = *req.IsCompleted
		t.UpdatedAt = s.now().UTC()
		s.tasks[id] = t
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return id, true
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
