// Package fakeapi serves an in-memory /foods REST API for tests.
package fakeapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodplate-dashboard/models"
)

// Request is one call the fake received.
type Request struct {
	Method    string
	Path      string
	RequestID string
	Body      map[string]interface{}
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	foods    []models.FoodPlate
	nextID   int
	failures map[string]int
	requests []Request
}

// New starts a fake seeded with foods. Ids continue after the largest seeded id.
func New(seed ...models.FoodPlate) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		foods:    append([]models.FoodPlate(nil), seed...),
		nextID:   1,
		failures: make(map[string]int),
	}
	for _, f := range seed {
		if f.ID >= s.nextID {
			s.nextID = f.ID + 1
		}
	}

	r := gin.New()
	r.Use(s.record, s.injectFailure)
	r.GET("/foods", s.list)
	r.POST("/foods", s.create)
	r.PUT("/foods/:id", s.update)
	r.DELETE("/foods/:id", s.remove)

	s.Server = httptest.NewServer(r)
	return s
}

// Fail makes every request with method answer status. A status of 0 clears it.
func (s *Server) Fail(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, method)
		return
	}
	s.failures[method] = status
}

// Foods returns the server-side state.
func (s *Server) Foods() []models.FoodPlate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FoodPlate(nil), s.foods...)
}

// Requests returns every call received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) record(c *gin.Context) {
	req := Request{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		RequestID: c.GetHeader("X-Request-ID"),
	}
	if c.Request.Body != nil {
		raw, _ := io.ReadAll(c.Request.Body)
		c.Request.Body.Close()
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &req.Body)
		}
		c.Set("raw", raw)
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	c.Next()
}

func (s *Server) injectFailure(c *gin.Context) {
	s.mu.Lock()
	status, ok := s.failures[c.Request.Method]
	s.mu.Unlock()
	if ok {
		c.AbortWithStatusJSON(status, gin.H{"error": "injected failure"})
		return
	}
	c.Next()
}

func rawBody(c *gin.Context) []byte {
	v, _ := c.Get("raw")
	b, _ := v.([]byte)
	return b
}

func (s *Server) list(c *gin.Context) {
	c.JSON(http.StatusOK, s.Foods())
}

func (s *Server) create(c *gin.Context) {
	var food models.FoodPlate
	if err := json.Unmarshal(rawBody(c), &food); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	food.ID = s.nextID
	s.nextID++
	s.foods = append(s.foods, food)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, food)
}

func (s *Server) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var food models.FoodPlate
	if err := json.Unmarshal(rawBody(c), &food); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	food.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.foods {
		if s.foods[i].ID == id {
			s.foods[i] = food
			c.JSON(http.StatusOK, food)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{})
}

func (s *Server) remove(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.foods {
		if s.foods[i].ID == id {
			s.foods = append(s.foods[:i], s.foods[i+1:]...)
			c.JSON(http.StatusOK, gin.H{})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{})
}
