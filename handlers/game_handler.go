package handlers

import (
	"net/http"

	"github.com/Dosada05/pickup-games/services"
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gs services.GameService) *GameHandler {
	return &GameHandler{
		gameService: gs,
	}
}

// AddGame godoc
// @Summary Создать игру
// @Tags games
// @Description Статус вычисляется при создании: inactive, если участников уже не меньше лимита.
// @Accept json
// @Produce json
// @Param body body services.CreateGameInput true "Данные игры"
// @Success 201 {object} map[string]interface{} "message, gameId"
// @Failure 400 {object} map[string]string "Не хватает обязательных полей"
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /game/addgame [post]
func (h *GameHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	var input services.CreateGameInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.CreateGame(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "Game added successfully",
		"gameId":  game.ID,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameService.ListGames(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, games, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.GetGame(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetGamesByName(w http.ResponseWriter, r *http.Request) {
	name, err := getIDFromURL(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	games, err := h.gameService.GetGamesByName(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, games, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateGame godoc
// @Summary Обновить игру
// @Tags games
// @Description Частичное обновление. Числа приводятся к целым, startTime принимается в RFC 3339.
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Param body body object true "Изменяемые поля"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Игра не найдена"
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /game/updategame/{id} [put]
func (h *GameHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var fields map[string]any
	if err := readJSON(w, r, &fields); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.gameService.UpdateGame(r.Context(), id, fields); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "Game updated successfully"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.gameService.DeleteGame(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "Game deleted successfully"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
