package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"quiz-battle-service/internal/app"
	"quiz-battle-service/internal/domain"
)

// BattleHandler exposes the battle use cases over REST.
type BattleHandler struct {
	service          *app.BattleService
	listLimit        int
	leaderboardLimit int
}

func NewBattleHandler(service *app.BattleService, listLimit int) *BattleHandler {
	if listLimit <= 0 {
		listLimit = 10
	}
	return &BattleHandler{service: service, listLimit: listLimit, leaderboardLimit: 20}
}

// Routes registers the REST endpoints on the mux.
func (h *BattleHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/battle/create", h.CreateBattle)
	mux.HandleFunc("GET /api/battle/list", h.ListBattles)
	mux.HandleFunc("POST /api/battle/join/{battleId}", h.JoinBattle)
	mux.HandleFunc("GET /api/topics", h.Topics)
	mux.HandleFunc("GET /api/leaderboard", h.Leaderboard)
}

func (h *BattleHandler) CreateBattle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Topic    string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Topic == "" {
		writeError(w, http.StatusBadRequest, "username and topic are required")
		return
	}

	session, err := h.service.CreateBattle(r.Context(), req.Username, req.Topic)
	if err != nil {
		log.Error().Err(err).Str("topic", req.Topic).Msg("create battle")
		writeError(w, http.StatusInternalServerError, "failed to create battle")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"battleId": session.ID,
		"battle":   session,
	})
}

func (h *BattleHandler) ListBattles(w http.ResponseWriter, r *http.Request) {
	battles := h.service.ListWaitingBattles(r.Context(), h.listLimit)
	if battles == nil {
		battles = []domain.BattleSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"battles": battles})
}

func (h *BattleHandler) JoinBattle(w http.ResponseWriter, r *http.Request) {
	battleID := r.PathValue("battleId")

	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	session, err := h.service.JoinBattle(r.Context(), battleID, req.Username)
	switch {
	case errors.Is(err, domain.ErrBattleNotFound):
		writeError(w, http.StatusNotFound, "battle not found")
		return
	case errors.Is(err, domain.ErrBattleNotJoinable), errors.Is(err, domain.ErrSelfJoin):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Str("battle_id", battleID).Msg("join battle")
		writeError(w, http.StatusInternalServerError, "failed to join battle")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"battle":  session,
	})
}

func (h *BattleHandler) Topics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.service.Topics(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list topics")
		writeError(w, http.StatusInternalServerError, "failed to list topics")
		return
	}
	if topics == nil {
		topics = []domain.TopicSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"topics": topics})
}

func (h *BattleHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Leaderboard(r.Context(), h.leaderboardLimit)
	if err != nil {
		log.Error().Err(err).Msg("read leaderboard")
		writeError(w, http.StatusInternalServerError, "failed to read leaderboard")
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"leaderboard": entries,
		"total":       len(entries),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
