package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/seantp00/RealGoodEstate/internal/model"
	"github.com/seantp00/RealGoodEstate/internal/service"
)

// AnalyzeHandler обрабатывает запросы расчета покупательной способности
type AnalyzeHandler struct {
	affordability *service.AffordabilityService // Сервис расчета доступности
	logger        *logrus.Logger                // Логгер
}

// NewAnalyzeHandler создает новый AnalyzeHandler
func NewAnalyzeHandler(affordability *service.AffordabilityService, logger *logrus.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		affordability: affordability,
		logger:        logger,
	}
}

// RegisterRoutes регистрирует маршруты анализа профиля
func (h *AnalyzeHandler) RegisterRoutes(router *mux.Router) {
	// OPTIONS регистрируется явно: preflight-запросы браузера должны
	// дойти до CORS-middleware, а не упасть в 405 маршрутизатора
	router.HandleFunc("", h.Analyze).Methods("POST", "OPTIONS") // Маршрут расчета доступности
}

// Analyze обрабатывает запрос на расчет готовности и вероятности покупки
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var profile model.HouseholdProfile
	// Декодируем входные данные
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.logger.WithError(err).Error("Не удалось декодировать профиль домохозяйства")
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// Рассчитываем показатели
	result, err := h.affordability.Analyze(profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, result) // Отправляем ответ
}
