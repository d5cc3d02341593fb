package model

import (
	"fmt"
	"strings"
)

// MaritalStatus - семейное положение домохозяйства
type MaritalStatus string

const (
	MaritalSingle  MaritalStatus = "single"
	MaritalMarried MaritalStatus = "married"
)

// RiskProfile - инвестиционный профиль, определяет номинальную годовую доходность
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative" // 2.5% годовых
	RiskBalanced     RiskProfile = "balanced"     // 5.0% годовых
	RiskAggressive   RiskProfile = "aggressive"   // 7.5% годовых
)

// AnnualRate возвращает номинальную годовую доходность профиля в процентах
func (r RiskProfile) AnnualRate() float64 {
	switch r {
	case RiskConservative:
		return 2.5
	case RiskAggressive:
		return 7.5
	default:
		return 5.0
	}
}

// MonthlyRate возвращает месячную ставку в долях (годовая / 12 / 100)
func (r RiskProfile) MonthlyRate() float64 {
	return r.AnnualRate() / 12 / 100
}

// Label возвращает отображаемое имя профиля (используется в промптах советника)
func (r RiskProfile) Label() string {
	switch r {
	case RiskConservative:
		return "Conservative"
	case RiskAggressive:
		return "Aggressive"
	default:
		return "Balanced"
	}
}

// HouseholdProfile - входные данные домохозяйства на одну сессию планирования.
// Состояние не сохраняется между сессиями, профиль передается в каждом запросе.
type HouseholdProfile struct {
	Income           float64       `json:"income"`  // чистый месячный доход
	Equity           float64       `json:"equity"`  // текущие накопления под покупку
	MonthlySavings   float64       `json:"savings"` // регулярный месячный взнос
	TargetPrice      float64       `json:"target"`  // желаемая цена объекта
	HorizonYears     int           `json:"years"`   // горизонт планирования, лет
	MaritalStatus    MaritalStatus `json:"marital"`
	NumberOfChildren int           `json:"kids"`
	RiskProfile      RiskProfile   `json:"riskProfile"`
	Location         string        `json:"location"`

	// Желаемый профиль объекта для рекомендательной оценки
	DesiredSqm       float64 `json:"sqm"`
	DesiredRooms     float64 `json:"rooms"`
	DesiredYearBuilt float64 `json:"yearBuilt"`
}

// Normalize подставляет значения по умолчанию для пустых перечислений
func (p *HouseholdProfile) Normalize() {
	if p.MaritalStatus == "" {
		p.MaritalStatus = MaritalSingle
	}
	if p.RiskProfile == "" {
		p.RiskProfile = RiskBalanced
	}
}

// Validate проверяет поля профиля и возвращает список ошибок по полям.
// Нулевые и отрицательные целевые цены отклоняются здесь, чтобы расчетные
// формулы никогда не делили на ноль.
func (p *HouseholdProfile) Validate() ValidationErrors {
	var errs ValidationErrors
	if p.Income < 0 {
		errs = errs.Add("income", "доход не может быть отрицательным")
	}
	if p.Equity < 0 {
		errs = errs.Add("equity", "накопления не могут быть отрицательными")
	}
	if p.MonthlySavings < 0 {
		errs = errs.Add("savings", "месячный взнос не может быть отрицательным")
	}
	if p.TargetPrice <= 0 {
		errs = errs.Add("target", "целевая цена должна быть больше нуля")
	}
	if p.HorizonYears < 0 {
		errs = errs.Add("years", "горизонт планирования не может быть отрицательным")
	}
	if p.NumberOfChildren < 0 {
		errs = errs.Add("kids", "число детей не может быть отрицательным")
	}
	switch p.MaritalStatus {
	case MaritalSingle, MaritalMarried:
	default:
		errs = errs.Add("marital", "допустимые значения: single, married")
	}
	switch p.RiskProfile {
	case RiskConservative, RiskBalanced, RiskAggressive:
	default:
		errs = errs.Add("riskProfile", "допустимые значения: conservative, balanced, aggressive")
	}
	return errs
}

// AffordabilityResult - результат расчета покупательной способности.
// Чистая функция от HouseholdProfile, нигде не сохраняется.
type AffordabilityResult struct {
	Readiness    int     `json:"readiness"`    // готовность сегодня, 0-100
	Likelihood   int     `json:"likelihood"`   // вероятность достижения цели, 10-100
	CurrPower    float64 `json:"currPower"`    // текущая покупательная способность
	FutureEquity float64 `json:"futureEquity"` // накопления на конец горизонта
}

// FieldError - ошибка валидации конкретного поля запроса
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors - набор ошибок валидации, возвращается клиенту как 400
type ValidationErrors []FieldError

func (v ValidationErrors) Add(field, message string) ValidationErrors {
	return append(v, FieldError{Field: field, Message: message})
}

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}
