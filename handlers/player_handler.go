package handlers

import (
	"net/http"
	"strings"

	"github.com/Dosada05/pickup-games/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: ps,
	}
}

type joinRequest struct {
	UserID string `json:"userId"`
	GameID string `json:"gameId"`
}

type finishRequest struct {
	GameID string `json:"gameId"`
}

// Join godoc
// @Summary Записаться на игру
// @Tags players
// @Description Если мест нет, игрок попадает в лист ожидания. В ответе status: joined или waitlisted.
// @Accept json
// @Produce json
// @Param body body joinRequest true "userId и gameId"
// @Success 200 {object} map[string]string "message, status"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string "Чужой userId без прав администратора"
// @Failure 404 {object} map[string]string "Пользователь или игра не найдены"
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /player/join [post]
func (h *PlayerHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	outcome, err := h.playerService.Join(r.Context(), currentUser(r), strings.TrimSpace(req.UserID), req.GameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	message := "Successfully joined the game."
	if outcome == services.JoinOutcomeWaitlisted {
		message = "Game is full. Added to waitlist."
	}
	response := jsonResponse{
		"message": message,
		"status":  outcome,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Finish godoc
// @Summary Завершить игру
// @Tags players
// @Description Переносит игру в историю всех участников и очищает состав и лист ожидания.
// @Accept json
// @Produce json
// @Param body body finishRequest true "gameId"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string "Только организатор игры или администратор"
// @Failure 404 {object} map[string]string "Игра не найдена"
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /player/finish [post]
func (h *PlayerHandler) Finish(w http.ResponseWriter, r *http.Request) {
	var req finishRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.Finish(r.Context(), currentUser(r), req.GameID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "Game finished and users updated."}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
