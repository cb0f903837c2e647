package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/studyhub/backend/internal/auth"
	"github.com/studyhub/backend/internal/catalog"
	"github.com/studyhub/backend/internal/community"
	"github.com/studyhub/backend/internal/exam"
	"github.com/studyhub/backend/internal/gpa"
	"github.com/studyhub/backend/internal/middleware"
	"github.com/studyhub/backend/internal/mirror"
	"github.com/studyhub/backend/internal/models"
	"github.com/studyhub/backend/internal/pomodoro"
	"github.com/studyhub/backend/internal/profile"
	"github.com/studyhub/backend/internal/userdata"
	"github.com/studyhub/backend/internal/validation"
)

// app holds the wired services behind the HTTP API.
type app struct {
	source  *catalog.Source
	users   *userdata.Service
	board   *community.Board
	manager *exam.Manager
	timers  *pomodoro.Registry
	profile *profile.Service
	signer  *auth.Signer
	storage string
}

// newApp wires every service over store. mirror may be nil.
func newApp(source *catalog.Source, store userdata.Store, mir *mirror.Client, signer *auth.Signer, storage string) *app {
	var m userdata.Mirror
	if mir != nil {
		m = mir
	}

	users := userdata.NewService(store, m)
	bank := exam.NewBank(source.Current().Questions)

	return &app{
		source:  source,
		users:   users,
		board:   community.NewBoard(store, m, func() []models.CommunityPost { return source.Current().Posts }),
		manager: exam.NewManager(bank, users),
		timers:  pomodoro.NewRegistry(time.Now),
		profile: profile.NewService(users, func() int { return len(bank.Subjects()) }),
		signer:  signer,
		storage: storage,
	}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Learning  int    `json:"learning"`
	Prompts   int    `json:"prompts"`
	Questions int    `json:"questions"`
}

func (a *app) health(w http.ResponseWriter, r *http.Request) {
	c := a.source.Current()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Storage:   a.storage,
		Learning:  len(c.Learning),
		Prompts:   len(c.Prompts),
		Questions: a.manager.Bank().Len(),
	})
}

func (a *app) router() *mux.Router {
	v := validation.MustNew()
	authMW := middleware.NewAuth(a.signer)

	catalogHandler := catalog.NewHandler(a.source)
	examHandler := exam.NewHandler(a.manager)
	gpaHandler := gpa.NewHandler(v)
	timerHandler := pomodoro.NewHandler(a.timers)
	userHandler := userdata.NewHandler(a.users, v)
	communityHandler := community.NewHandler(a.board, v)
	profileHandler := profile.NewHandler(a.profile)
	meHandler := auth.NewHandler(middleware.RequestIdentity)

	r := mux.NewRouter()
	r.HandleFunc("/health", a.health).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", a.health).Methods("GET")

	// Public routes
	api.HandleFunc("/learning", catalogHandler.ListLearning).Methods("GET")
	api.HandleFunc("/learning/{id}", catalogHandler.GetLearning).Methods("GET")
	api.HandleFunc("/learning/{id}/pdf", catalogHandler.ExportLearningPDF).Methods("GET")
	api.HandleFunc("/prompts", catalogHandler.ListPrompts).Methods("GET")
	api.HandleFunc("/prompts/{id}", catalogHandler.GetPrompt).Methods("GET")
	api.HandleFunc("/prompts/{id}/fill", catalogHandler.FillPrompt).Methods("POST")
	api.HandleFunc("/subjects", catalogHandler.ListSubjects).Methods("GET")
	api.HandleFunc("/tools", catalogHandler.ListTools).Methods("GET")
	api.HandleFunc("/links", catalogHandler.ListLinks).Methods("GET")
	api.HandleFunc("/courses/computer", catalogHandler.GetComputerCourse).Methods("GET")
	api.HandleFunc("/render", catalogHandler.Render).Methods("POST")
	api.HandleFunc("/exam/subjects", examHandler.ListSubjects).Methods("GET")
	api.HandleFunc("/tools/gpa", gpaHandler.Calculate).Methods("POST")
	api.HandleFunc("/tools/gpa/scale", gpaHandler.GetScale).Methods("GET")
	api.HandleFunc("/community", communityHandler.List).Methods("GET")

	// Routes that record progress when signed in
	optional := api.PathPrefix("").Subrouter()
	optional.Use(authMW.Optional)
	optional.HandleFunc("/exam/sessions", examHandler.CreateSession).Methods("POST")
	optional.HandleFunc("/exam/sessions/{id}", examHandler.GetSession).Methods("GET")
	optional.HandleFunc("/exam/sessions/{id}/answer", examHandler.Answer).Methods("POST")
	optional.HandleFunc("/exam/sessions/{id}/next", examHandler.Next).Methods("POST")
	optional.HandleFunc("/exam/sessions/{id}/retry", examHandler.Retry).Methods("POST")
	optional.HandleFunc("/exam/sessions/{id}/select", examHandler.ChooseAnother).Methods("POST")
	optional.HandleFunc("/community", communityHandler.Create).Methods("POST")
	optional.HandleFunc("/community/{id}/like", communityHandler.Like).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMW.Required)
	protected.HandleFunc("/auth/me", meHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/tools/timer", timerHandler.Get).Methods("GET")
	protected.HandleFunc("/tools/timer/toggle", timerHandler.Toggle).Methods("POST")
	protected.HandleFunc("/tools/timer/skip", timerHandler.Skip).Methods("POST")
	protected.HandleFunc("/tools/timer/reset", timerHandler.Reset).Methods("POST")
	protected.HandleFunc("/tools/timer/settings", timerHandler.UpdateSettings).Methods("PUT")

	protected.HandleFunc("/bookmarks", userHandler.ListBookmarks).Methods("GET")
	protected.HandleFunc("/bookmarks/{id}", userHandler.ToggleBookmark).Methods("POST")
	protected.HandleFunc("/bookmarks/{id}", userHandler.AddBookmark).Methods("PUT")
	protected.HandleFunc("/bookmarks/{id}", userHandler.RemoveBookmark).Methods("DELETE")

	protected.HandleFunc("/notes", userHandler.ListNotes).Methods("GET")
	protected.HandleFunc("/notes", userHandler.CreateNote).Methods("POST")
	protected.HandleFunc("/notes/{id}", userHandler.UpdateNote).Methods("PATCH")
	protected.HandleFunc("/notes/{id}", userHandler.DeleteNote).Methods("DELETE")

	// /todos/completed must precede /todos/{id}
	protected.HandleFunc("/todos", userHandler.ListTodos).Methods("GET")
	protected.HandleFunc("/todos", userHandler.CreateTodo).Methods("POST")
	protected.HandleFunc("/todos/completed", userHandler.ClearCompleted).Methods("DELETE")
	protected.HandleFunc("/todos/{id}", userHandler.UpdateTodo).Methods("PATCH")
	protected.HandleFunc("/todos/{id}", userHandler.DeleteTodo).Methods("DELETE")
	protected.HandleFunc("/todos/{id}/toggle", userHandler.ToggleTodo).Methods("POST")

	protected.HandleFunc("/exam/history", userHandler.GetExamHistory).Methods("GET")
	protected.HandleFunc("/courses", userHandler.ListCourses).Methods("GET")
	protected.HandleFunc("/courses/{id}", userHandler.RegisterCourse).Methods("POST")

	profileHandler.RegisterRoutes(protected)

	r.NotFoundHandler = unmatched(r)
	r.MethodNotAllowedHandler = r.NotFoundHandler
	return r
}

// ── Unmatched Requests ───────────────────────────────────────

var routeMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

// unmatched answers requests no route accepted. mux loses a method mismatch
// once a later subrouter prefix matches, so the path is re-matched under
// each method to tell 405 from 404.
func unmatched(r *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if allowed := allowedMethods(r, req); len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			writeJSON(w, http.StatusMethodNotAllowed, models.ErrorResponse{Error: "Method not allowed"})
			return
		}
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
	})
}

func allowedMethods(r *mux.Router, req *http.Request) []string {
	var allowed []string
	for _, method := range routeMethods {
		if method == req.Method {
			continue
		}
		alt := req.Clone(req.Context())
		alt.Method = method
		var match mux.RouteMatch
		if r.Match(alt, &match) && match.MatchErr == nil {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// handler wraps the router with the request middleware stack, CORS and
// cleartext HTTP/2.
func (a *app) handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	stack := chi.Chain(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Logger,
		chimw.Recoverer,
		chimw.Compress(5),
	)
	return h2c.NewHandler(stack.Handler(c.Handler(a.router())), &http2.Server{})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
