package web

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/eleven-am/taskboard/internal/auth"
	"github.com/eleven-am/taskboard/internal/board"
	"github.com/eleven-am/taskboard/internal/dashboard"
	"github.com/eleven-am/taskboard/internal/store"
	"github.com/eleven-am/taskboard/internal/task"
)

// Server is the taskboard web server
type Server struct {
	router    chi.Router
	sessions  *scs.SessionManager
	auth      *auth.Service
	boards    *board.Manager
	tasks     *task.Manager
	dashboard *dashboard.Aggregator
	renderer  *renderer
}

// NewServer wires the HTTP surface over the given store and session manager
func NewServer(st *store.Store, sessions *scs.SessionManager) (*Server, error) {
	renderer, err := newRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    chi.NewRouter(),
		sessions:  sessions,
		auth:      auth.NewService(st),
		boards:    board.NewManager(st),
		tasks:     task.NewManager(st),
		dashboard: dashboard.NewAggregator(st),
		renderer:  renderer,
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(sessions.LoadAndSave)

	// Public routes
	r.Get("/", s.handleHome)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Get("/register", s.handleRegisterForm)
	r.Post("/register", s.handleRegister)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/add-task", s.handleAddTaskForm)
		r.Post("/add-task", s.handleAddTask)
		r.Get("/delete-task/{taskID}", s.handleDeleteTask)
		r.Get("/edit-task/{taskID}", s.handleEditTaskForm)
		r.Post("/edit-task/{taskID}", s.handleEditTask)
		r.Get("/done/{taskID}", s.handleToggleProgress)
		r.Get("/new-board", s.handleNewBoardForm)
		r.Post("/new-board", s.handleNewBoard)
		r.Get("/delete-board-{tagID}", s.handleDeleteBoard)
		r.Get("/dashboard/{username}", s.handleDashboard)
		r.Get("/logout", s.handleLogout)
	})

	return s, nil
}

// Handler exposes the router for use by an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}
