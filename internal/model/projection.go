package model

// SavingsRequirement - требуемый месячный взнос для достижения цели
// по первоначальному взносу: линейный (наличные) и инвестированный
type SavingsRequirement struct {
	RequiredCash     float64 `json:"requiredCash"`
	RequiredInvested float64 `json:"requiredInvested"`
}

// TimeToGoal - срок достижения цели в годах при текущем темпе накоплений.
// JSON не умеет Infinity, поэтому недостижимость кодируется флагом.
type TimeToGoal struct {
	CashYears         float64 `json:"timeToGoalCash"`
	CashReachable     bool    `json:"cashReachable"`
	InvestedYears     float64 `json:"timeToGoalInvested"`
	InvestedReachable bool    `json:"investedReachable"`
}

// ProjectionSeries - погодовые траектории накоплений для графика.
// Длина каждого ряда = HorizonYears + 1, индекс 0 - текущие накопления.
type ProjectionSeries struct {
	Years            []string           `json:"yearsArr"`
	ActualInvested   []float64          `json:"dataCompound"`
	ActualCash       []float64          `json:"dataCash"`
	RequiredInvested []float64          `json:"dataRequiredInvested"`
	RequiredCash     []float64          `json:"dataRequiredCash"`
	TargetLine       []float64          `json:"targetLine"`
	DownPaymentGoal  float64            `json:"downpaymentGoal"`
	Required         SavingsRequirement `json:"requiredSavings"`
}

// KeyFigures - сводка ключевых показателей для панели рядом с графиком
type KeyFigures struct {
	BuyingPower     float64            `json:"buyingPower"`
	TargetPrice     float64            `json:"targetPrice"`
	ProjectedEquity float64            `json:"projectedEquity"`
	DownPaymentGoal float64            `json:"downPaymentGoal"`
	Required        SavingsRequirement `json:"requiredSavings"`
	Time            TimeToGoal         `json:"timeToGoal"`
}

// ProjectionRequest - запрос на построение проекции. YearsOverride
// используется слайдером горизонта без изменения самого профиля.
type ProjectionRequest struct {
	Profile       HouseholdProfile `json:"profile"`
	YearsOverride *int             `json:"yearsOverride,omitempty"`
}

// ProjectionResponse - ряды для графика плюс ключевые показатели
type ProjectionResponse struct {
	Series     ProjectionSeries `json:"series"`
	KeyFigures KeyFigures       `json:"keyFigures"`
}
