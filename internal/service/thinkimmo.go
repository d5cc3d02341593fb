package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seantp00/RealGoodEstate/internal/model"
)

// ThinkImmoClient - клиент API поиска недвижимости ThinkImmo
type ThinkImmoClient struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	logger     *logrus.Logger
}

// NewThinkImmoClient создает новый экземпляр клиента для взаимодействия с API объявлений
func NewThinkImmoClient(baseURL string, pageSize int, logger *logrus.Logger) *ThinkImmoClient {
	return &ThinkImmoClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:  baseURL,
		pageSize: pageSize,
		logger:   logger,
	}
}

// searchRequest - тело запроса в формате апстрима
type searchRequest struct {
	Active      bool        `json:"active"`
	Type        string      `json:"type"`
	SortBy      string      `json:"sortBy"`
	SortKey     string      `json:"sortKey"`
	From        int         `json:"from"`
	Size        int         `json:"size"`
	GeoSearches geoSearches `json:"geoSearches"`
}

type geoSearches struct {
	GeoSearchQuery string `json:"geoSearchQuery"`
	GeoSearchType  string `json:"geoSearchType"`
}

// searchResponse - ответ апстрима; записи остаются нетипизированными,
// их схема нестабильна и разбирается через списки возможных имен полей
type searchResponse struct {
	Results []model.Listing `json:"results"`
}

// FetchListings получает сырую выборку объявлений по населенному пункту.
// Апстрим сортирует по возрастанию цены, локальная сортировка выполняется
// движком фильтрации поверх снимка.
func (c *ThinkImmoClient) FetchListings(ctx context.Context, location string, propertyType model.PropertyType) ([]model.Listing, error) {
	payload := searchRequest{
		Active:  true,
		Type:    propertyType.UpstreamType(),
		SortBy:  "asc",
		SortKey: "buyingPrice",
		From:    1,
		Size:    c.pageSize,
		GeoSearches: geoSearches{
			GeoSearchQuery: location,
			GeoSearchType:  "city",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"location": location,
		"type":     payload.Type,
		"size":     payload.Size,
	}).Info("Запрос объявлений в ThinkImmo...")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("Ошибка при выполнении запроса к ThinkImmo")
		return nil, fmt.Errorf("ошибка запроса к API объявлений: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithField("status", resp.StatusCode).Error("API объявлений вернуло ошибку")
		return nil, fmt.Errorf("API объявлений вернуло статус %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа: %w", err)
	}

	c.logger.WithField("count", len(parsed.Results)).Info("Выборка объявлений получена")
	return parsed.Results, nil
}
