package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Molmash/molmash/internal/auth"
	"github.com/Molmash/molmash/internal/service"
	"github.com/Molmash/molmash/pkg/health"
	"github.com/Molmash/molmash/pkg/middleware"
)

// MediaConfig tells the router where uploaded images live on disk and
// under which URL prefix they are served.
type MediaConfig struct {
	Dir     string
	BaseURL string
}

// NewRouter creates a chi router with all backend routes registered.
func NewRouter(
	authService *service.AuthService,
	blogService *service.BlogService,
	projectService *service.ProjectService,
	mailService *service.MailService,
	noteService *service.NoteService,
	gate *auth.Gate,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig CORSConfig,
	mediaConfig MediaConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("molmash"))
	r.Use(middleware.Tracing("molmash"))
	r.Use(Authenticate(authService, logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Uploaded images
	if mediaConfig.Dir != "" {
		fs := http.StripPrefix(mediaConfig.BaseURL+"/", http.FileServer(http.Dir(mediaConfig.Dir)))
		r.Get(mediaConfig.BaseURL+"/*", fs.ServeHTTP)
	}

	authHandler := NewAuthHandler(authService, logger)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(ContentTypeJSON).Post("/login", authHandler.Login)
		r.With(ContentTypeJSON).Post("/refresh", authHandler.Refresh)
		// Logout carries no body, only the bearer token.
		r.Post("/logout", authHandler.Logout)
	})

	mailHandler := NewMailHandler(mailService, gate, logger)
	r.With(ContentTypeJSON).Post("/api/v1/mail", mailHandler.Subscribe)

	noteHandler := NewNoteHandler(noteService, logger)
	r.With(ContentTypeJSON).Post("/api/v1/request-note", noteHandler.Submit)

	// Content writes accept multipart, so no content-type enforcement here.
	blogHandler := NewBlogHandler(blogService, gate, logger)
	r.Route("/api/v1/blogs", func(r chi.Router) {
		r.Get("/", blogHandler.List)
		r.Post("/", blogHandler.Create)
		r.Get("/{id}", blogHandler.Get)
		r.Put("/{id}", blogHandler.Update)
		r.Patch("/{id}", blogHandler.Update)
		r.Delete("/{id}", blogHandler.Delete)
	})

	projectHandler := NewProjectHandler(projectService, gate, logger)
	r.Route("/api/v1/projects", func(r chi.Router) {
		r.Get("/", projectHandler.List)
		r.Post("/", projectHandler.Create)
		r.Get("/{id}", projectHandler.Get)
		r.Put("/{id}", projectHandler.Update)
		r.Patch("/{id}", projectHandler.Update)
		r.Delete("/{id}", projectHandler.Delete)
	})

	return r
}
