package service

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/seantp00/RealGoodEstate/internal/model"
)

// Минимальный располагаемый доход после семейных расходов. Ниже этой
// границы банковская модель не опускается даже при больших вычетах.
const minAdjustedIncome = 1000

// Множитель дохода: приближение банковского отношения дохода к кредитной
// емкости, помноженное на месячный располагаемый доход
const incomeMultiplier = 90

type AffordabilityService struct {
	logger *logrus.Logger
}

func NewAffordabilityService(logger *logrus.Logger) *AffordabilityService {
	return &AffordabilityService{logger: logger}
}

// familyCostDeduction возвращает фиксированный месячный вычет на семью:
// 400 для супружеской пары плюс 300 на каждого ребенка
func familyCostDeduction(p model.HouseholdProfile) float64 {
	deduction := 0.0
	if p.MaritalStatus == model.MaritalMarried {
		deduction += 400
	}
	deduction += float64(p.NumberOfChildren) * 300
	return deduction
}

// adjustedIncome возвращает доход после семейных вычетов с нижней границей
func adjustedIncome(p model.HouseholdProfile) float64 {
	return math.Max(minAdjustedIncome, p.Income-familyCostDeduction(p))
}

// simulateMonths прогоняет помесячное сложное начисление: каждый месяц
// капитал умножается на (1 + ставка) и пополняется взносом
func simulateMonths(start, contribution float64, months int, monthlyRate float64) float64 {
	value := start
	for i := 0; i < months; i++ {
		value = value*(1+monthlyRate) + contribution
	}
	return value
}

// Analyze рассчитывает покупательную способность, готовность, вероятность
// достижения цели и проекцию накоплений на конец горизонта. Чистая функция
// от профиля: никакого скрытого состояния и ввода-вывода.
func (s *AffordabilityService) Analyze(p model.HouseholdProfile) (*model.AffordabilityResult, error) {
	p.Normalize()
	if errs := p.Validate(); len(errs) > 0 {
		s.logger.WithField("errors", errs.Error()).Warn("Профиль не прошел валидацию")
		return nil, errs
	}

	adjusted := adjustedIncome(p)
	currPower := math.Floor(adjusted*incomeMultiplier + p.Equity)

	// Готовность: квадратичный штраф, большое отставание от цели
	// наказывается непропорционально сильнее малого
	ratio := currPower / p.TargetPrice
	readiness := 100
	if ratio < 1 {
		readiness = int(math.Max(0, math.Floor(100*ratio*ratio)))
	}

	// Проекция накоплений: помесячная капитализация на весь горизонт
	monthlyRate := p.RiskProfile.MonthlyRate()
	futureEquity := simulateMonths(p.Equity, p.MonthlySavings, p.HorizonYears*12, monthlyRate)

	// Вероятность: логистическая кривая по покрытию цели будущей
	// покупательной способностью, пол 10
	futurePower := adjusted*incomeMultiplier + futureEquity
	coverage := futurePower / p.TargetPrice
	likelihood := int(math.Floor(100 / (1 + math.Exp(-10*(coverage-0.85)))))
	if likelihood < 10 {
		likelihood = 10
	}
	// Логистика сама по себе не дает стабильных 98-100, поэтому
	// достигнутая цель фиксируется явно
	if futurePower >= p.TargetPrice {
		likelihood = 98
	}

	result := &model.AffordabilityResult{
		Readiness:    readiness,
		Likelihood:   likelihood,
		CurrPower:    currPower,
		FutureEquity: math.Floor(futureEquity),
	}

	s.logger.WithFields(logrus.Fields{
		"curr_power":    result.CurrPower,
		"readiness":     result.Readiness,
		"likelihood":    result.Likelihood,
		"future_equity": result.FutureEquity,
	}).Info("Расчет покупательной способности выполнен")

	return result, nil
}
