// Package fakeapi is an in-memory clinic backend speaking the real envelope
// contract. It backs the client and service tests and the CLI's dev-server
// command.
package fakeapi

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/pkg/httputil"
)

// Failure is an injected response for one route.
type Failure struct {
	Status  int
	Message string
	// Raw replaces the envelope body when set.
	Raw string
	// Times limits how often the failure fires; zero means every call.
	Times int
}

// Server holds the fake backend's state.
type Server struct {
	mu        sync.Mutex
	templates []model.Template
	patients  map[string]model.PatientRecord
	users     []model.User
	failures  map[string]*Failure
	calls     map[string]int
	delay     time.Duration
	seq       int
	export    []byte
	exportCT  string
	lastAuth  string
	engine    *gin.Engine
}

// New builds the backend. Without options it runs quietly with gin's own
// recovery, which is what tests want.
func New(opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	s := &Server{
		patients: map[string]model.PatientRecord{},
		failures: map[string]*Failure{},
		calls:    map[string]int{},
		export:   []byte("name,age\n"),
		exportCT: "text/csv",
	}
	r := gin.New()
	r.Use(requestID())
	if o.log != nil {
		r.Use(recovery(o.log), requestLogger(o.log))
	} else {
		r.Use(gin.Recovery())
	}
	if o.registry != nil {
		r.Use(newHTTPMetrics(o.registry).middleware())
		r.GET("/metrics", metricsHandler(o.registry))
	}
	r.GET("/health/live", liveness)

	s.registerRoutes(r.Group("", s.intercept))
	s.engine = r
	return s
}

// Handler returns the HTTP handler to mount in httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes(r *gin.RouterGroup) {
	templates := r.Group("/templates")
	{
		templates.GET("", s.listTemplates)
		templates.POST("", s.createTemplate)
		templates.GET("/:id", s.getTemplate)
		templates.PUT("/:id", s.updateTemplate)
		templates.DELETE("/:id", s.deleteTemplate)
	}

	patients := r.Group("/patients")
	{
		patients.POST("", s.createPatient)
		patients.GET("/export", s.exportPatients)
		patients.GET("/:id", s.getPatient)
		patients.PUT("/:id", s.updatePatient)
	}

	users := r.Group("/users")
	{
		users.GET("", s.listUsers)
		users.POST("", s.createUser)
		users.PUT("/:id", s.updateUser)
		users.DELETE("/:id", s.deleteUser)
	}
}

// intercept counts calls, applies the configured delay and injected failures.
func (s *Server) intercept(c *gin.Context) {
	route := c.Request.Method + " " + c.FullPath()

	s.mu.Lock()
	s.calls[route]++
	s.lastAuth = c.GetHeader("Authorization")
	delay := s.delay
	f := s.failures[route]
	var fire *Failure
	if f != nil {
		copied := *f
		fire = &copied
		if f.Times > 0 {
			f.Times--
			if f.Times == 0 {
				delete(s.failures, route)
			}
		}
	}
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fire != nil {
		if fire.Raw != "" {
			c.Data(fire.Status, "text/plain", []byte(fire.Raw))
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(fire.Status, httputil.Failure(fire.Message))
		return
	}
	c.Next()
}

// Fail injects f for route, e.g. "POST /templates" or "GET /templates/:id".
func (s *Server) Fail(route string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = &f
}

// Recover removes every injected failure.
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]*Failure{}
}

// Calls returns how many requests route has received.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// SetDelay makes every request wait d before being handled.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// LastAuthorization returns the Authorization header of the latest request.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

// SetExport sets the body and content type export requests return.
func (s *Server) SetExport(contentType string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exportCT = contentType
	s.export = append([]byte(nil), body...)
}

func (s *Server) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, httputil.Success(data))
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, httputil.Failure(message))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
