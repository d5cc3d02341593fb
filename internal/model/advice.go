package model

// AdviceRequest - запрос первичных рекомендаций по профилю
type AdviceRequest struct {
	Profile HouseholdProfile `json:"profile"`
}

// ChatRequest - вопрос пользователя в контексте профиля
type ChatRequest struct {
	Profile HouseholdProfile `json:"profile"`
	Message string           `json:"message"`
}

// Validate проверяет вопрос чата
func (r *ChatRequest) Validate() ValidationErrors {
	var errs ValidationErrors
	if r.Message == "" {
		errs = errs.Add("message", "вопрос не может быть пустым")
	}
	return errs
}

// AdviceResponse - непрозрачный текст ответа советника. Fallback
// выставляется, когда языковая модель была недоступна и показан
// запасной текст.
type AdviceResponse struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}
