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

	"github.com/seantp00/RealGoodEstate/internal/format"
	"github.com/seantp00/RealGoodEstate/internal/model"
)

// Сообщение, показываемое при любой недоступности языковой модели.
// Отказ советника никогда не блокирует остальную функциональность.
const advisorFallback = "Sorry, connection issue. Please try again later."

// AdvisorService - клиент генеративной языковой модели. Единственный
// контракт: передать снимок профиля как контекст, вернуть ответ как
// непрозрачный текст, при отказе показать запасное сообщение.
type AdvisorService struct {
	httpClient *http.Client
	baseURL    string
	modelName  string
	apiKey     string
	enabled    bool
	logger     *logrus.Logger
}

func NewAdvisorService(baseURL, modelName, apiKey string, enabled bool, logger *logrus.Logger) *AdvisorService {
	return &AdvisorService{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   baseURL,
		modelName: modelName,
		apiKey:    apiKey,
		enabled:   enabled,
		logger:    logger,
	}
}

// InitialAdvice генерирует три шага по увеличению покупательной способности
// на основе текущего профиля. Ошибки апстрима превращаются в запасной текст.
func (s *AdvisorService) InitialAdvice(ctx context.Context, p model.HouseholdProfile, result model.AffordabilityResult) (string, bool) {
	prompt := fmt.Sprintf(`Act as a home financing advisor.
%s

Instruction: Answer in English. Begin the response with 'Here are some steps you can take to increase your purchasing power: '. Only display 3 concise financial steps the user can take to increase his buying power and his equity as fast as possible based on his current situation, taking into account the provided values. Provide these 3 steps in a list format with each step beginning with 1. or 2. or 3. . Do not include any prelude or introduction or conclusion. Keep each step as concise as possible, don't use any filler words or phrases.`,
		profileContext(p, result))

	return s.generate(ctx, prompt)
}

// Chat отвечает на произвольный вопрос пользователя в контексте профиля
func (s *AdvisorService) Chat(ctx context.Context, p model.HouseholdProfile, result model.AffordabilityResult, question string) (string, bool) {
	prompt := fmt.Sprintf(`Act as a home financing advisor.
%s

User Question: %q

Instructions: Answer in English. Answer concisely (max 2-3 sentences). Be realistic about family costs and risk.`,
		profileContext(p, result), question)

	return s.generate(ctx, prompt)
}

// profileContext собирает текстовый снимок профиля для промпта
func profileContext(p model.HouseholdProfile, result model.AffordabilityResult) string {
	return fmt.Sprintf(`User Profile:
- Income: %s
- Savings: %s (Current), %s/mo
- Family: %s, %d children.
- Risk Profile: %s (%.1f%% APY).
- Goal: %s home in %d years.
- Current Buying Power: %s.`,
		format.Euro(p.Income),
		format.Euro(p.Equity),
		format.Euro(p.MonthlySavings),
		p.MaritalStatus,
		p.NumberOfChildren,
		p.RiskProfile.Label(),
		p.RiskProfile.AnnualRate(),
		format.Euro(p.TargetPrice),
		p.HorizonYears,
		format.Euro(result.CurrPower))
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate выполняет один вызов generateContent и извлекает текст первого
// кандидата. Второй результат false означает, что возвращен запасной
// текст вместо ответа модели.
func (s *AdvisorService) generate(ctx context.Context, prompt string) (string, bool) {
	if !s.enabled {
		s.logger.Warn("Советник отключен конфигурацией")
		return advisorFallback, false
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		s.logger.WithError(err).Error("Ошибка сериализации запроса к языковой модели")
		return advisorFallback, false
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.modelName, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		s.logger.WithError(err).Error("Ошибка создания запроса к языковой модели")
		return advisorFallback, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WithError(err).Warn("Языковая модель недоступна")
		return advisorFallback, false
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.WithError(err).Warn("Ошибка чтения ответа языковой модели")
		return advisorFallback, false
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.WithField("status", resp.StatusCode).Warn("Языковая модель вернула ошибку")
		return advisorFallback, false
	}

	var parsed geminiResponse
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		s.logger.WithError(err).Warn("Ошибка разбора ответа языковой модели")
		return advisorFallback, false
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "No response.", true
	}

	s.logger.Debug("Ответ языковой модели получен")
	return parsed.Candidates[0].Content.Parts[0].Text, true
}
