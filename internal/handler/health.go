package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// HealthHandler отвечает на проверки работоспособности сервиса
type HealthHandler struct {
	logger *logrus.Logger // Логгер
}

// NewHealthHandler создает новый HealthHandler
func NewHealthHandler(logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// RegisterRoutes регистрирует маршрут проверки работоспособности
func (h *HealthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.Health).Methods("GET") // Маршрут health-проверки
}

// Health возвращает текущий статус сервиса
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
