package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Mission Party API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the pass-the-device mission party game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/game/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/game/state")
	getState.SetSummary("Get game state")
	getState.SetDescription("Returns the full shared game state, live rankings, and whether the game can end.")
	getState.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getState)

	// GET /api/game/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/game/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of game change notifications.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/catalog/missions
	getCatalog, _ := r.NewOperationContext(http.MethodGet, "/api/catalog/missions")
	getCatalog.SetSummary("List catalog missions")
	getCatalog.SetDescription("Lists the built-in missions, optionally filtered by difficulty and excluding already assigned ones.")
	getCatalog.AddRespStructure(CatalogResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getCatalog.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getCatalog)

	// POST /api/host/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/host/login")
	postLogin.SetSummary("Host login")
	postLogin.SetDescription("Authenticate as the hosting device. Sets host_session cookie.")
	postLogin.AddReqStructure(HostLoginRequest{})
	postLogin.AddRespStructure(HostMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/host/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/host/logout")
	postLogout.SetSummary("Host logout")
	postLogout.SetDescription("Clears the host session and cookie.")
	postLogout.AddRespStructure(HostMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/host/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/host/me")
	getMe.SetSummary("Current host")
	getMe.SetDescription("Reports whether the caller holds a valid host session.")
	getMe.AddRespStructure(HostMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// POST /api/game
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/game")
	createGame.SetSummary("Create game")
	createGame.SetDescription("Replaces the shared game with a fresh one in the setup phase. Requires host_session cookie.")
	createGame.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createGame)

	// PUT /api/game/config
	configureGame, _ := r.NewOperationContext(http.MethodPut, "/api/game/config")
	configureGame.SetSummary("Configure game")
	configureGame.SetDescription("Sets missions per player and the difficulty mode. Requires host_session cookie.")
	configureGame.AddReqStructure(ConfigureRequest{})
	configureGame.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	configureGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	configureGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(configureGame)

	// POST /api/game/players
	addPlayer, _ := r.NewOperationContext(http.MethodPost, "/api/game/players")
	addPlayer.SetSummary("Add player")
	addPlayer.SetDescription("Adds a player to the roster. Names are unique case-insensitively. Requires host_session cookie.")
	addPlayer.AddReqStructure(AddPlayerRequest{})
	addPlayer.AddRespStructure(PlayerResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	addPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	addPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	addPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(addPlayer)

	// DELETE /api/game/players/{playerID}
	removePlayer, _ := r.NewOperationContext(http.MethodDelete, "/api/game/players/{playerID}")
	removePlayer.SetSummary("Remove player")
	removePlayer.SetDescription("Removes a player from the roster. Requires host_session cookie.")
	removePlayer.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	removePlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	removePlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(removePlayer)

	// POST /api/game/players/{playerID}/missions
	assignMission, _ := r.NewOperationContext(http.MethodPost, "/api/game/players/{playerID}/missions")
	assignMission.SetSummary("Assign mission")
	assignMission.SetDescription("Draws an unused mission from the catalog for the player. Requires host_session cookie.")
	assignMission.AddReqStructure(AssignMissionRequest{})
	assignMission.AddRespStructure(AssignMissionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	assignMission.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	assignMission.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	assignMission.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	assignMission.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(assignMission)

	// POST /api/game/missions/complete
	completeMission, _ := r.NewOperationContext(http.MethodPost, "/api/game/missions/complete")
	completeMission.SetSummary("Complete mission")
	completeMission.SetDescription("Records a mission as completed or caught, awarding points and timing. Requires host_session cookie.")
	completeMission.AddReqStructure(CompleteMissionRequest{})
	completeMission.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	completeMission.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	completeMission.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	completeMission.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	completeMission.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(completeMission)

	// POST /api/game/start
	startGame, _ := r.NewOperationContext(http.MethodPost, "/api/game/start")
	startGame.SetSummary("Start game")
	startGame.SetDescription("Moves a configured roster of at least three players into mission assignment. Requires host_session cookie.")
	startGame.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	startGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	startGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(startGame)

	// PUT /api/game/status
	updateStatus, _ := r.NewOperationContext(http.MethodPut, "/api/game/status")
	updateStatus.SetSummary("Update game status")
	updateStatus.SetDescription("Moves the game along its lifecycle. Illegal transitions are rejected. Requires host_session cookie.")
	updateStatus.AddReqStructure(UpdateStatusRequest{})
	updateStatus.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	updateStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updateStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	updateStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updateStatus)

	// POST /api/game/end
	endGame, _ := r.NewOperationContext(http.MethodPost, "/api/game/end")
	endGame.SetSummary("End game")
	endGame.SetDescription("Finishes the game and records the winner. Requires host_session cookie.")
	endGame.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	endGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(endGame)

	// DELETE /api/game/missions
	clearMissions, _ := r.NewOperationContext(http.MethodDelete, "/api/game/missions")
	clearMissions.SetSummary("Clear all missions")
	clearMissions.SetDescription("Strips every player's missions and scores, keeping the roster and configuration. Requires host_session cookie.")
	clearMissions.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	clearMissions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(clearMissions)

	// DELETE /api/game
	clearGame, _ := r.NewOperationContext(http.MethodDelete, "/api/game")
	clearGame.SetSummary("Clear finished game")
	clearGame.SetDescription("Resets a finished game back to a fresh setup phase. Requires host_session cookie.")
	clearGame.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	clearGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	clearGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(clearGame)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
