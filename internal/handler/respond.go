package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/seantp00/RealGoodEstate/internal/model"
)

// errorResponse - тело ответа при ошибке обработки
type errorResponse struct {
	Error  string                 `json:"error"`
	Fields model.ValidationErrors `json:"fields,omitempty"`
}

// writeJSON сериализует тело ответа и выставляет статус
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError превращает ошибку в JSON-ответ: ошибки валидации всегда
// отдаются как 400 со списком полей, остальные используют переданный статус
func writeError(w http.ResponseWriter, status int, err error) {
	var verrs model.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "Некорректные входные данные",
			Fields: verrs,
		})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
