package handler

import (
	"net/http"

	"github.com/albapepper/scoracle-baseball/internal/api/respond"
)

// GetFranchises returns the active MLB franchises.
// @Summary List active franchises
// @Description Returns every franchise marked active in the Lahman TeamsFranchises table. franchID values are the team ids the team endpoints accept.
// @Tags teams
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /franchises [get]
func (h *Handler) GetFranchises(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Franchises(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteData(w, r, t)
}

// GetTeamBatting returns a franchise's player batting lines for a season range.
// @Summary Team batting
// @Description Returns per-player batting for the franchise from Baseball-Reference, one row per player per season. Columns that are empty for every player are dropped, as are rows with any empty value.
// @Tags teams
// @Produce json
// @Param team_id path string true "Franchise id (see /franchises)"
// @Param start_year query int false "First season (default: current year)"
// @Param end_year query int false "Last season (default: start_year, the range spans at most BREF_MAX_SEASONS seasons)"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Failure 504 {object} respond.ErrorResponse
// @Router /teambatting/{team_id} [get]
func (h *Handler) GetTeamBatting(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}
	start, end, ok := h.seasonRange(w, r)
	if !ok {
		return
	}

	t, err := h.svc.TeamBatting(r.Context(), teamID, start, end)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteData(w, r, t)
}

// GetTeamPitching returns a franchise's player pitching lines for a season range.
// @Summary Team pitching
// @Description Returns per-player pitching for the franchise from Baseball-Reference, cleaned the same way as team batting.
// @Tags teams
// @Produce json
// @Param team_id path string true "Franchise id (see /franchises)"
// @Param start_year query int false "First season (default: current year)"
// @Param end_year query int false "Last season (default: start_year, the range spans at most BREF_MAX_SEASONS seasons)"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Failure 504 {object} respond.ErrorResponse
// @Router /teampitching/{team_id} [get]
func (h *Handler) GetTeamPitching(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}
	start, end, ok := h.seasonRange(w, r)
	if !ok {
		return
	}

	t, err := h.svc.TeamPitching(r.Context(), teamID, start, end)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteData(w, r, t)
}

// GetTeamName returns a franchise's name for a season and today.
// @Summary Team name
// @Description Returns the franchise's name in the given season (falling back to the season before) and its current name when it is still active.
// @Tags teams
// @Produce json
// @Param team_id path string true "Franchise id"
// @Param year query int false "Season (default: current year)"
// @Success 200 {object} baseball.TeamName
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /teamname/{team_id} [get]
func (h *Handler) GetTeamName(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}
	year, ok := queryYear(w, r, "year", h.now().Year())
	if !ok {
		return
	}

	name, err := h.svc.TeamName(r.Context(), teamID, year)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteData(w, r, name)
}

// GetPlayerName returns a player's display name.
// @Summary Player name
// @Description Returns "First Last" for a Baseball-Reference player id.
// @Tags players
// @Produce json
// @Param player_id path string true "Baseball-Reference player id"
// @Success 200 {object} map[string]string
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /playername/{player_id} [get]
func (h *Handler) GetPlayerName(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathID(w, r, "player_id")
	if !ok {
		return
	}

	name, err := h.svc.PlayerName(r.Context(), playerID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteData(w, r, map[string]string{"name": name})
}

// GetPlayerID returns the player id for a name.
// @Summary Player id
// @Description Looks a player up by "First Last". Falls back to first-name prefix matching when no exact match exists.
// @Tags players
// @Produce json
// @Param player_name path string true "Player name, e.g. Mike Trout"
// @Success 200 {object} map[string]string
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /playerid/{player_name} [get]
func (h *Handler) GetPlayerID(w http.ResponseWriter, r *http.Request) {
	name, ok := pathName(w, r, "player_name")
	if !ok {
		return
	}

	id, err := h.svc.PlayerID(r.Context(), name)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteData(w, r, map[string]string{"id": id})
}

// GetPlayerBatting returns a player's career batting.
// @Summary Player batting
// @Description Returns the player's Lahman batting rows, one per season and stint, with Year, Team, LG and the franchID of each team.
// @Tags players
// @Produce json
// @Param player_id path string true "Player id"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /playerbatting/{player_id} [get]
func (h *Handler) GetPlayerBatting(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathID(w, r, "player_id")
	if !ok {
		return
	}

	t, err := h.svc.PlayerBatting(r.Context(), playerID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteData(w, r, t)
}

// GetPlayerPitching returns a player's career pitching.
// @Summary Player pitching
// @Description Returns the player's Lahman pitching rows with IP in innings.outs notation and franchID. A player with no pitching rows yields 400.
// @Tags players
// @Produce json
// @Param player_id path string true "Player id"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /playerpitching/{player_id} [get]
func (h *Handler) GetPlayerPitching(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathID(w, r, "player_id")
	if !ok {
		return
	}

	t, err := h.svc.PlayerPitching(r.Context(), playerID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteData(w, r, t)
}
