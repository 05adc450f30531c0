package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

// Deps carries everything the route tree needs. The session, broker and
// stores are built in main and shared by all handlers.
type Deps struct {
	Session          *Session
	Broker           *Broker
	Hosts            HostStore
	DB               *sql.DB
	HostPasswordHash []byte
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Mission Party API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.DB))

	// Read side — any device on the shared game can watch.
	r.Get("/api/game/state", handleGameState(deps.Session))
	r.Get("/api/game/events", handleGameEvents(deps.Broker))
	r.Get("/api/catalog/missions", handleCatalog(deps.Session))

	// Host auth.
	r.Post("/api/host/login", handleHostLogin(deps.HostPasswordHash, deps.Hosts))
	r.Post("/api/host/logout", handleHostLogout(deps.Hosts))
	r.Get("/api/host/me", handleHostMe(deps.Hosts))

	// Write side — only the hosting device mutates the game.
	r.Group(func(r chi.Router) {
		r.Use(hostAuthMiddleware(deps.Hosts))

		r.Post("/api/game", handleCreateGame(deps.Session))
		r.Put("/api/game/config", handleConfigureGame(deps.Session))
		r.Post("/api/game/players", handleAddPlayer(deps.Session))
		r.Delete("/api/game/players/{playerID}", handleRemovePlayer(deps.Session))
		r.Post("/api/game/players/{playerID}/missions", handleAssignMission(deps.Session))
		r.Post("/api/game/missions/complete", handleCompleteMission(deps.Session))
		r.Post("/api/game/start", handleStartGame(deps.Session))
		r.Put("/api/game/status", handleUpdateStatus(deps.Session))
		r.Post("/api/game/end", handleEndGame(deps.Session))
		r.Delete("/api/game/missions", handleClearAllMissions(deps.Session))
		r.Delete("/api/game", handleClearFinishedGame(deps.Session))
	})
}
