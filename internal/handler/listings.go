package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/seantp00/RealGoodEstate/internal/model"
	"github.com/seantp00/RealGoodEstate/internal/service"
)

// ListingsHandler обрабатывает запросы поиска объектов недвижимости
type ListingsHandler struct {
	listings *service.ListingService // Сервис поиска объектов
	logger   *logrus.Logger          // Логгер
}

// NewListingsHandler создает новый ListingsHandler
func NewListingsHandler(listings *service.ListingService, logger *logrus.Logger) *ListingsHandler {
	return &ListingsHandler{
		listings: listings,
		logger:   logger,
	}
}

// RegisterRoutes регистрирует маршруты поиска объектов
func (h *ListingsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/search", h.Search).Methods("POST", "OPTIONS") // Маршрут поиска и ранжирования
}

// Search обрабатывает запрос на поиск, фильтрацию и ранжирование объектов
func (h *ListingsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req model.SearchListingsRequest
	// Декодируем входные данные
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Не удалось декодировать запрос поиска объектов")
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// Выполняем поиск
	resp, err := h.listings.Search(r.Context(), req)
	if err != nil {
		// Ошибки валидации отдаем как 400, сбой источника данных как 502
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		h.logger.WithError(err).Error("Поиск объектов завершился ошибкой")
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, resp) // Отправляем ответ
}
