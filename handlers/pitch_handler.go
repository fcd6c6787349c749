package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/pickup-games/services"
)

const maxPhotoBytes = 10 << 20

type PitchHandler struct {
	pitchService services.PitchService
}

func NewPitchHandler(ps services.PitchService) *PitchHandler {
	return &PitchHandler{
		pitchService: ps,
	}
}

// AddPitch godoc
// @Summary Добавить площадку
// @Tags pitches
// @Accept json
// @Produce json
// @Param body body services.CreatePitchInput true "address, gmaplink, pitchname, type"
// @Success 201 {object} map[string]interface{} "message, pitchId"
// @Failure 400 {object} map[string]string "Не все поля заполнены"
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /pitch/addpitch [post]
func (h *PitchHandler) AddPitch(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePitchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pitch, err := h.pitchService.CreatePitch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "Pitch added successfully",
		"pitchId": pitch.ID,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PitchHandler) GetPitches(w http.ResponseWriter, r *http.Request) {
	pitches, err := h.pitchService.ListPitches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, pitches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PitchHandler) GetPitch(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pitch, err := h.pitchService.GetPitch(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, pitch, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPitchesByName godoc
// @Summary Найти площадки по точному имени
// @Tags pitches
// @Produce json
// @Param name path string true "Pitch name"
// @Success 200 {array} models.Pitch
// @Failure 404 {object} map[string]string "Ничего не найдено"
// @Failure 500 {object} map[string]string
// @Router /pitch/getpitch/name/{name} [get]
func (h *PitchHandler) GetPitchesByName(w http.ResponseWriter, r *http.Request) {
	name, err := getIDFromURL(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pitches, err := h.pitchService.GetPitchesByName(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, pitches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdatePitch принимает частичный документ площадки прямо в теле запроса.
func (h *PitchHandler) UpdatePitch(w http.ResponseWriter, r *http.Request) {
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

	if err := h.pitchService.UpdatePitch(r.Context(), id, fields); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "Pitch updated successfully"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PitchHandler) DeletePitch(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.pitchService.DeletePitch(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "Pitch deleted successfully"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadPhoto godoc
// @Summary Загрузить фото площадки
// @Tags pitches
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Pitch ID"
// @Param photo formData file true "Изображение (jpeg, png, webp, gif)"
// @Success 200 {object} models.Pitch
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Площадка не найдена"
// @Failure 503 {object} map[string]string "Хранилище файлов не настроено"
// @Security BearerAuth
// @Router /pitch/uploadphoto/{id} [put]
func (h *PitchHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get photo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for photo"))
		return
	}

	pitch, err := h.pitchService.UploadPhoto(r.Context(), id, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, pitch, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
