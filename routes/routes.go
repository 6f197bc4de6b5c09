package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/playerz/playerz-api/handlers"
	"github.com/playerz/playerz-api/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Player     *handlers.PlayerHandler
	Group      *handlers.GroupHandler
	Team       *handlers.TeamHandler
	Match      *handlers.MatchHandler
	Tournament *handlers.TournamentHandler
	Game       *handlers.GameHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	// JWTSecret enables bearer authentication on write routes when not empty.
	JWTSecret      string
	AllowedOrigins []string
}

func SetupRoutes(r chi.Router, h Handlers, opts Options) {
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Запись требует токен только если задан секрет
	protected := func(next http.Handler) http.Handler { return next }
	if opts.JWTSecret != "" {
		protected = middleware.Authenticate(opts.JWTSecret)
	}

	r.Get("/", banner)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/ws/tournaments/{id}", h.WebSocket.ServeWs)

	r.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.ListPlayers)
		r.Get("/{id}", h.Player.GetPlayer)
		r.Group(func(r chi.Router) {
			r.Use(protected)
			r.Post("/", h.Player.CreatePlayer)
			r.Put("/{id}", h.Player.UpdatePlayer)
			r.Delete("/{id}", h.Player.DeletePlayer)
			r.Post("/{id}/avatar", h.Player.UploadAvatar)
		})
	})

	r.Route("/groupes", func(r chi.Router) {
		r.Get("/", h.Group.ListGroups)
		r.Get("/{id}", h.Group.GetGroup)
		r.Get("/{id}/players", h.Group.ListMembers)
		r.Group(func(r chi.Router) {
			r.Use(protected)
			r.Post("/", h.Group.CreateGroup)
			r.Put("/{id}", h.Group.UpdateGroup)
			r.Delete("/{id}", h.Group.DeleteGroup)
			r.Post("/{id}/players", h.Group.AddMember)
			r.Delete("/{id}/players/{playerID}", h.Group.RemoveMember)
		})
	})

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.ListTeams)
		r.Get("/{id}", h.Team.GetTeam)
		r.Group(func(r chi.Router) {
			r.Use(protected)
			r.Post("/", h.Team.CreateTeam)
			r.Put("/{id}", h.Team.UpdateTeam)
			r.Delete("/{id}", h.Team.DeleteTeam)
		})
	})

	r.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Match.ListMatches)
		r.Get("/{id}", h.Match.GetMatch)
		r.Group(func(r chi.Router) {
			r.Use(protected)
			r.Post("/", h.Match.CreateMatch)
			r.Put("/{id}", h.Match.UpdateMatch)
			r.Delete("/{id}", h.Match.DeleteMatch)
			r.Put("/{id}/score/{side}", h.Match.UpdateScore)
		})
	})

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListTournaments)
		r.Get("/{id}", h.Tournament.GetTournament)
		r.Get("/{id}/ranking", h.Tournament.GetRanking)
		r.Get("/{id}/sessions", h.Tournament.ListSessions)
		r.Group(func(r chi.Router) {
			r.Use(protected)
			r.Post("/", h.Tournament.CreateTournament)
			r.Put("/{id}", h.Tournament.UpdateTournament)
			r.Delete("/{id}", h.Tournament.DeleteTournament)
			r.Post("/{id}/sessions", h.Tournament.CreateSession)
		})
	})

	r.Route("/games", func(r chi.Router) {
		r.Post("/organize_teams", h.Game.OrganizeTeams)
	})
}

func banner(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"PlayerZ API"}` + "\n"))
}
