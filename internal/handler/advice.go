package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/seantp00/RealGoodEstate/internal/model"
	"github.com/seantp00/RealGoodEstate/internal/service"
)

// AdviceHandler обрабатывает запросы к финансовому советнику
type AdviceHandler struct {
	advisor       *service.AdvisorService       // Сервис советника
	affordability *service.AffordabilityService // Сервис расчета доступности
	logger        *logrus.Logger                // Логгер
}

// NewAdviceHandler создает новый AdviceHandler
func NewAdviceHandler(advisor *service.AdvisorService, affordability *service.AffordabilityService, logger *logrus.Logger) *AdviceHandler {
	return &AdviceHandler{
		advisor:       advisor,
		affordability: affordability,
		logger:        logger,
	}
}

// RegisterRoutes регистрирует маршруты советника
func (h *AdviceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/initial", h.Initial).Methods("POST", "OPTIONS") // Маршрут первичных рекомендаций
	router.HandleFunc("/chat", h.Chat).Methods("POST", "OPTIONS")       // Маршрут вопросов в чате
}

// Initial обрабатывает запрос на первичные рекомендации по профилю
func (h *AdviceHandler) Initial(w http.ResponseWriter, r *http.Request) {
	var req model.AdviceRequest
	// Декодируем входные данные
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Не удалось декодировать запрос рекомендаций")
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// Советник получает профиль вместе с рассчитанными показателями
	req.Profile.Normalize()
	result, err := h.affordability.Analyze(req.Profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reply, ok := h.advisor.InitialAdvice(r.Context(), req.Profile, *result)
	writeJSON(w, http.StatusOK, model.AdviceResponse{Reply: reply, Fallback: !ok})
}

// Chat обрабатывает вопрос пользователя в контексте его профиля
func (h *AdviceHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	// Декодируем входные данные
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Не удалось декодировать вопрос чата")
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, errs)
		return
	}

	req.Profile.Normalize()
	result, err := h.affordability.Analyze(req.Profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reply, ok := h.advisor.Chat(r.Context(), req.Profile, *result, req.Message)
	writeJSON(w, http.StatusOK, model.AdviceResponse{Reply: reply, Fallback: !ok})
}
