package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/showcasehq/voting-service/internal/application"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func NewRouter(handler *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ok") })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ready") })

	r.Route("/v1", func(r chi.Router) {
		r.Get("/leaderboard", handler.getLeaderboard)

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", handler.listCampaigns)
			r.Get("/{campaign_ref}", handler.getCampaign)
			r.Group(func(r chi.Router) {
				r.Use(handler.authMiddleware)
				r.Post("/", handler.createCampaign)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", handler.listCategories)
			r.Group(func(r chi.Router) {
				r.Use(handler.authMiddleware)
				r.Post("/", handler.createCategory)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", handler.listTeams)
			r.Group(func(r chi.Router) {
				r.Use(handler.authMiddleware)
				r.Post("/", handler.createTeam)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handler.listProjects)
			r.Get("/{project_ref}", handler.getProject)
			r.Get("/{project_ref}/stats", handler.getProjectStats)
			r.Group(func(r chi.Router) {
				r.Use(handler.authMiddleware)
				r.Post("/", handler.createProject)
				r.Post("/{project_ref}/join", handler.joinCampaign)
			})
		})

		r.Route("/votes", func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Post("/", handler.castVote)
			r.Get("/mine", handler.myVotes)
		})
	})
	return r
}
