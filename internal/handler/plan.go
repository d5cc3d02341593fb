package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/seantp00/RealGoodEstate/internal/model"
	"github.com/seantp00/RealGoodEstate/internal/service"
)

// PlanHandler обрабатывает запросы планирования накоплений
type PlanHandler struct {
	planner *service.PlannerService // Сервис планирования
	logger  *logrus.Logger          // Логгер
}

// NewPlanHandler создает новый PlanHandler
func NewPlanHandler(planner *service.PlannerService, logger *logrus.Logger) *PlanHandler {
	return &PlanHandler{
		planner: planner,
		logger:  logger,
	}
}

// RegisterRoutes регистрирует маршруты планирования
func (h *PlanHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/projection", h.Projection).Methods("POST", "OPTIONS") // Маршрут построения проекции
	router.HandleFunc("/savings", h.Savings).Methods("POST", "OPTIONS")       // Маршрут расчета плана накоплений
}

// Projection обрабатывает запрос на построение рядов для графика накоплений
func (h *PlanHandler) Projection(w http.ResponseWriter, r *http.Request) {
	var req model.ProjectionRequest
	// Декодируем входные данные
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Не удалось декодировать запрос проекции")
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// Строим проекцию
	resp, err := h.planner.Projection(req.Profile, req.YearsOverride)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, resp) // Отправляем ответ
}

// Savings обрабатывает запрос на расчет требуемых ежемесячных накоплений
func (h *PlanHandler) Savings(w http.ResponseWriter, r *http.Request) {
	var profile model.HouseholdProfile
	// Декодируем входные данные
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.logger.WithError(err).Error("Не удалось декодировать профиль для плана накоплений")
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// Рассчитываем ключевые показатели плана
	figures, err := h.planner.SavingsPlan(profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, figures) // Отправляем ответ
}
