package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sportsfest/sportsday-live/docs"
	"github.com/sportsfest/sportsday-live/handlers"
	"github.com/sportsfest/sportsday-live/middleware"
	"github.com/sportsfest/sportsday-live/services"
)

// SetupRoutes собирает все маршруты приложения. Чтение открыто всем,
// мутации доступны только субъектам со способностью CanEdit.
func SetupRoutes(
	router *chi.Mux,
	authService services.AuthService,
	authHandler *handlers.AuthHandler,
	gameHandler *handlers.GameHandler,
	scheduleHandler *handlers.ScheduleHandler,
	resultHandler *handlers.ResultHandler,
	liveHandler *handlers.LiveHandler,
	bracketHandler *handlers.BracketHandler,
	standingsHandler *handlers.StandingsHandler,
	exportHandler *handlers.ExportHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.Authenticate(authService))

	router.Get("/swagger/doc.json", docs.ServeSpec)
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Post("/auth/login", authHandler.Login)

	router.Get("/live", liveHandler.All)

	router.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.List)

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", gameHandler.Get)

			r.Get("/schedules", scheduleHandler.List)
			r.Get("/schedules/pending", scheduleHandler.Pending)
			r.Get("/results", resultHandler.List)
			r.Get("/groups", standingsHandler.Groups)
			r.Get("/standings", standingsHandler.Table)
			r.Get("/bracket", bracketHandler.Get)
			r.Get("/knockout", bracketHandler.Knockout)
			r.Get("/live", liveHandler.Banner)
			r.Get("/live/{matchID}", liveHandler.IsLive)

			// Защищённые маршруты только для администраторов
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireEditor)

				r.Post("/schedules", scheduleHandler.Create)
				r.Put("/schedules/{scheduleID}", scheduleHandler.Update)
				r.Delete("/schedules/{scheduleID}", scheduleHandler.Delete)

				r.Post("/results", resultHandler.Create)
				r.Put("/results/{resultID}", resultHandler.Update)
				r.Delete("/results/{resultID}", resultHandler.Delete)

				r.Put("/live/{matchID}", liveHandler.Set)
				r.Put("/bracket", bracketHandler.Update)
			})
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireEditor)
		r.Delete("/live", liveHandler.ClearAll)
		r.Post("/export/snapshot", exportHandler.Snapshot)
	})

	router.Get("/ws/games/{gameID}", webSocketHandler.ServeWs)
}
