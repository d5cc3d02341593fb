package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/seantp00/RealGoodEstate/internal/model"
	"github.com/seantp00/RealGoodEstate/internal/service"
)

// EstimateHandler обрабатывает запросы оценки стоимости объекта
type EstimateHandler struct {
	estimator *service.EstimatorService // Сервис оценки
	logger    *logrus.Logger            // Логгер
}

// NewEstimateHandler создает новый EstimateHandler
func NewEstimateHandler(estimator *service.EstimatorService, logger *logrus.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimator: estimator,
		logger:    logger,
	}
}

// RegisterRoutes регистрирует маршруты оценки стоимости
func (h *EstimateHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.Estimate).Methods("POST", "OPTIONS") // Маршрут оценки
}

// Estimate обрабатывает запрос на детерминированную оценку стоимости
func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req model.PriceEstimateRequest
	// Декодируем входные данные
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Не удалось декодировать запрос оценки")
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// Рассчитываем оценку
	resp, err := h.estimator.Estimate(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, resp) // Отправляем ответ
}
