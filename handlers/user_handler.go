package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/pickup-games/models"
	"github.com/Dosada05/pickup-games/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{
		userService: us,
	}
}

type updateRoleRequest struct {
	UID  string `json:"uid"`
	Role string `json:"role"`
}

type updateUserRequest struct {
	UID        string         `json:"uid"`
	UpdateData map[string]any `json:"updateData"`
}

// Register godoc
// @Summary Регистрация пользователя
// @Tags users
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Email, пароль и имя"
// @Success 201 {object} map[string]interface{} "message, uid"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 500 {object} map[string]string
// @Router /user/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "User registered successfully",
		"uid":     user.ID,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListUsers godoc
// @Summary Список пользователей
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /user/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, users, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	uid, err := getIDFromURL(r, "uid")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.GetUser(r.Context(), uid)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) GetUsersByName(w http.ResponseWriter, r *http.Request) {
	name, err := getIDFromURL(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	users, err := h.userService.GetUsersByName(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, users, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateRole godoc
// @Summary Изменить роль пользователя
// @Tags users
// @Accept json
// @Produce json
// @Param body body updateRoleRequest true "uid и роль (admin, organizer, player)"
// @Success 200 {object} map[string]interface{} "message, uid, role"
// @Failure 400 {object} map[string]string "Нет uid или недопустимая роль"
// @Failure 404 {object} map[string]string "Пользователь не найден"
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /user/user/role [put]
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	req.UID = strings.TrimSpace(req.UID)
	if req.UID == "" || strings.TrimSpace(req.Role) == "" {
		badRequestResponse(w, r, errors.New("uid and role are required"))
		return
	}

	role := models.UserRole(strings.TrimSpace(req.Role))
	if err := h.userService.UpdateRole(r.Context(), req.UID, role); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "User role updated successfully",
		"uid":     req.UID,
		"role":    role,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	req.UID = strings.TrimSpace(req.UID)
	if req.UID == "" || len(req.UpdateData) == 0 {
		badRequestResponse(w, r, errors.New("uid and update data are required"))
		return
	}

	if err := h.userService.UpdateUser(r.Context(), currentUser(r), req.UID, req.UpdateData); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "User updated successfully"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteUser godoc
// @Summary Удалить пользователя
// @Tags users
// @Description Удаляет профиль и учетную запись в провайдере идентификации.
// @Produce json
// @Param uid path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Пользователь не найден"
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /user/user/{uid} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	uid, err := getIDFromURL(r, "uid")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), uid); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "User deleted successfully"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) Blacklist(w http.ResponseWriter, r *http.Request) {
	h.setBlacklisted(w, r, true, "User blacklisted successfully")
}

func (h *UserHandler) Unblacklist(w http.ResponseWriter, r *http.Request) {
	h.setBlacklisted(w, r, false, "User unblacklisted successfully")
}

func (h *UserHandler) setBlacklisted(w http.ResponseWriter, r *http.Request, blacklisted bool, message string) {
	uid, err := getIDFromURL(r, "uid")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.userService.SetBlacklisted(r.Context(), uid, blacklisted); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": message}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
