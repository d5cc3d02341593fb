package service

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/seantp00/RealGoodEstate/internal/model"
)

// Доля целевой цены, принимаемая за цель по первоначальному взносу
const downPaymentShare = 0.20

// Жесткий предел итеративного поиска срока: 50 лет. Замкнутой формулы для
// "месяцев до цели" при капитализации со взносами нет в вырожденных случаях
// (логарифм отношения может быть неположительным у границы достигнутой
// цели), поэтому срок ищется симуляцией с ограничением числа шагов.
const maxGoalMonths = 50 * 12

type PlannerService struct {
	affordability *AffordabilityService
	logger        *logrus.Logger
}

func NewPlannerService(affordability *AffordabilityService, logger *logrus.Logger) *PlannerService {
	return &PlannerService{
		affordability: affordability,
		logger:        logger,
	}
}

// RequiredMonthlySavings решает обратную задачу: какой месячный взнос
// нужен, чтобы достичь цели за заданный срок. Наличный вариант линейный,
// инвестированный использует обратную формулу аннуитета.
func (s *PlannerService) RequiredMonthlySavings(goal, currentEquity float64, years int, monthlyRate float64) model.SavingsRequirement {
	totalMonths := years * 12
	if totalMonths <= 0 {
		return model.SavingsRequirement{}
	}

	requiredCash := math.Max(0, (goal-currentEquity)/float64(totalMonths))

	requiredInvested := requiredCash
	if monthlyRate > 0 {
		growthFactor := math.Pow(1+monthlyRate, float64(totalMonths))
		annuityFactor := (growthFactor - 1) / monthlyRate
		if annuityFactor > 0 {
			requiredInvested = math.Max(0, (goal-currentEquity*growthFactor)/annuityFactor)
		}
	}

	return model.SavingsRequirement{
		RequiredCash:     requiredCash,
		RequiredInvested: requiredInvested,
	}
}

// TimeToGoal оценивает срок достижения цели в годах при текущем темпе
// накоплений. Инвестированный вариант считается помесячной симуляцией.
func (s *PlannerService) TimeToGoal(goal, currentEquity, monthlySaving, monthlyRate float64) model.TimeToGoal {
	needed := goal - currentEquity
	if needed <= 0 {
		return model.TimeToGoal{CashReachable: true, InvestedReachable: true}
	}

	result := model.TimeToGoal{}
	if monthlySaving > 0 {
		result.CashYears = math.Ceil(needed/monthlySaving) / 12
		result.CashReachable = true
	}

	// Цель достижима, если есть взносы либо капитал растет сам по себе
	if monthlySaving > 0 || (currentEquity > 0 && monthlyRate > 0) {
		equity := currentEquity
		months := 0
		for equity < goal && months < maxGoalMonths {
			equity = equity*(1+monthlyRate) + monthlySaving
			months++
		}
		if months < maxGoalMonths {
			result.InvestedYears = float64(months) / 12
			result.InvestedReachable = true
		}
	}

	return result
}

// Projection строит погодовые траектории накоплений для графика вместе со
// сводкой ключевых показателей. yearsOverride позволяет слайдеру менять
// горизонт графика без изменения профиля.
func (s *PlannerService) Projection(p model.HouseholdProfile, yearsOverride *int) (*model.ProjectionResponse, error) {
	p.Normalize()
	errs := p.Validate()
	if yearsOverride != nil && *yearsOverride < 0 {
		errs = errs.Add("yearsOverride", "горизонт не может быть отрицательным")
	}
	if len(errs) > 0 {
		s.logger.WithField("errors", errs.Error()).Warn("Запрос проекции не прошел валидацию")
		return nil, errs
	}

	years := p.HorizonYears
	if yearsOverride != nil {
		years = *yearsOverride
	}

	monthlyRate := p.RiskProfile.MonthlyRate()
	downPaymentGoal := p.TargetPrice * downPaymentShare
	required := s.RequiredMonthlySavings(downPaymentGoal, p.Equity, years, monthlyRate)

	series := model.ProjectionSeries{
		Years:            make([]string, 0, years+1),
		ActualInvested:   buildSeries(p.Equity, p.MonthlySavings, years, monthlyRate),
		ActualCash:       buildSeries(p.Equity, p.MonthlySavings, years, 0),
		RequiredInvested: buildSeries(p.Equity, required.RequiredInvested, years, monthlyRate),
		RequiredCash:     buildSeries(p.Equity, required.RequiredCash, years, 0),
		TargetLine:       make([]float64, years+1),
		DownPaymentGoal:  downPaymentGoal,
		Required:         required,
	}
	for y := 0; y <= years; y++ {
		series.Years = append(series.Years, fmt.Sprintf("Year %d", y))
		series.TargetLine[y] = downPaymentGoal
	}

	keyFigures, err := s.keyFigures(p, series)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"years":             years,
		"monthly_rate":      monthlyRate,
		"down_payment_goal": downPaymentGoal,
	}).Debug("Проекция накоплений построена")

	return &model.ProjectionResponse{
		Series:     series,
		KeyFigures: *keyFigures,
	}, nil
}

// SavingsPlan возвращает только сводку ключевых показателей без рядов
func (s *PlannerService) SavingsPlan(p model.HouseholdProfile) (*model.KeyFigures, error) {
	resp, err := s.Projection(p, nil)
	if err != nil {
		return nil, err
	}
	return &resp.KeyFigures, nil
}

// buildSeries строит ряд длиной years+1: индекс 0 - текущие накопления,
// индекс k - значение после k полных лет (12k месяцев) симуляции
func buildSeries(start, contribution float64, years int, monthlyRate float64) []float64 {
	series := make([]float64, 0, years+1)
	series = append(series, start)
	value := start
	for y := 1; y <= years; y++ {
		value = simulateMonths(value, contribution, 12, monthlyRate)
		series = append(series, value)
	}
	return series
}

func (s *PlannerService) keyFigures(p model.HouseholdProfile, series model.ProjectionSeries) (*model.KeyFigures, error) {
	result, err := s.affordability.Analyze(p)
	if err != nil {
		return nil, err
	}

	monthlyRate := p.RiskProfile.MonthlyRate()
	projectedEquity := p.Equity
	if n := len(series.ActualInvested); n > 0 {
		projectedEquity = series.ActualInvested[n-1]
	}

	return &model.KeyFigures{
		BuyingPower:     result.CurrPower,
		TargetPrice:     p.TargetPrice,
		ProjectedEquity: projectedEquity,
		DownPaymentGoal: series.DownPaymentGoal,
		Required:        series.Required,
		Time:            s.TimeToGoal(series.DownPaymentGoal, p.Equity, p.MonthlySavings, monthlyRate),
	}, nil
}
