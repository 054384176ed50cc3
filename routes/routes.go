package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tercas-fc/league-system/handlers"
	"github.com/tercas-fc/league-system/middleware"
)

// SetupRoutes wires every handler onto the router. Reads are public; all
// mutating routes sit behind the admin gate.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	seasonHandler *handlers.SeasonHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))

	router.Post("/auth/login", authHandler.Login)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", playerHandler.CreateHandler)
			r.Post("/{playerID}/payments", playerHandler.RegisterPaymentHandler)
			r.Delete("/{playerID}", playerHandler.DeactivateHandler)
		})
	})

	router.Get("/table", standingsHandler.TableHandler)

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/matches", matchHandler.CreateHandler)
	})

	router.Route("/champions", func(r chi.Router) {
		r.Get("/", seasonHandler.ListChampionsHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Delete("/{name}", seasonHandler.RemoveChampionTitleHandler)
		})
	})

	router.Route("/seasons", func(r chi.Router) {
		r.Get("/history", seasonHandler.HistoryHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/close", seasonHandler.CloseHandler)
			r.Post("/reset", seasonHandler.ResetHandler)
		})
	})

	router.Get("/ws", webSocketHandler.ServeWs)
}
