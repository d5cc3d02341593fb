package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// requestIDHeader - заголовок, в котором клиенту возвращается идентификатор запроса
const requestIDHeader = "X-Request-ID"

// RequestLogMiddleware присваивает каждому запросу идентификатор и пишет
// access-лог с методом, путем и длительностью обработки
func RequestLogMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Генерируем идентификатор запроса
			requestID := uuid.New().String()
			w.Header().Set(requestIDHeader, requestID)

			start := time.Now()
			next.ServeHTTP(w, r)

			logger.WithFields(logrus.Fields{
				"requestId": requestID,
				"method":    r.Method,
				"path":      r.URL.Path,
				"duration":  time.Since(start).String(),
			}).Info("Запрос обработан")
		})
	}
}

// CORSMiddleware разрешает запросы из браузерного интерфейса
func CORSMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			// Preflight-запросы завершаем сразу
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
