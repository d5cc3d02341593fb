package service

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seantp00/RealGoodEstate/internal/model"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestAnalyze_FamilyDeductionScenario(t *testing.T) {
	s := NewAffordabilityService(testLogger())

	// Семья с двумя детьми: вычет 400 + 2*300 = 1000,
	// скорректированный доход 2000, способность 2000*90 + 50000
	result, err := s.Analyze(model.HouseholdProfile{
		Income:           3000,
		Equity:           50000,
		MonthlySavings:   500,
		TargetPrice:      300000,
		HorizonYears:     10,
		MaritalStatus:    model.MaritalMarried,
		NumberOfChildren: 2,
		RiskProfile:      model.RiskBalanced,
	})
	require.NoError(t, err)

	assert.Equal(t, 230000.0, result.CurrPower)
	// (230000/300000)^2 * 100 = 58.77..., округление вниз
	assert.Equal(t, 58, result.Readiness)
	assert.Greater(t, result.FutureEquity, 50000.0)
}

func TestAnalyze_AdjustedIncomeFloor(t *testing.T) {
	s := NewAffordabilityService(testLogger())

	// Вычеты больше дохода, но доход не опускается ниже 1000
	result, err := s.Analyze(model.HouseholdProfile{
		Income:           1200,
		Equity:           0,
		TargetPrice:      300000,
		MaritalStatus:    model.MaritalMarried,
		NumberOfChildren: 4,
		RiskProfile:      model.RiskBalanced,
	})
	require.NoError(t, err)

	assert.Equal(t, 90000.0, result.CurrPower)
}

func TestAnalyze_ReadinessCapsAtFull(t *testing.T) {
	s := NewAffordabilityService(testLogger())

	result, err := s.Analyze(model.HouseholdProfile{
		Income:      5000,
		Equity:      100000,
		TargetPrice: 200000,
	})
	require.NoError(t, err)

	assert.Equal(t, 100, result.Readiness)
}

func TestAnalyze_LikelihoodForcedWhenGoalReached(t *testing.T) {
	s := NewAffordabilityService(testLogger())

	// Будущая способность заведомо выше цели: ровно 98, не 100
	result, err := s.Analyze(model.HouseholdProfile{
		Income:         5000,
		Equity:         150000,
		MonthlySavings: 1000,
		TargetPrice:    200000,
		HorizonYears:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, 98, result.Likelihood)
}

func TestAnalyze_LikelihoodFloor(t *testing.T) {
	s := NewAffordabilityService(testLogger())

	result, err := s.Analyze(model.HouseholdProfile{
		Income:      0,
		Equity:      0,
		TargetPrice: 10000000,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Likelihood)
}

func TestAnalyze_CompoundingBeatsCash(t *testing.T) {
	s := NewAffordabilityService(testLogger())

	base := model.HouseholdProfile{
		Income:         3000,
		Equity:         20000,
		MonthlySavings: 500,
		TargetPrice:    400000,
		HorizonYears:   15,
	}

	conservative := base
	conservative.RiskProfile = model.RiskConservative
	aggressive := base
	aggressive.RiskProfile = model.RiskAggressive

	low, err := s.Analyze(conservative)
	require.NoError(t, err)
	high, err := s.Analyze(aggressive)
	require.NoError(t, err)

	assert.Greater(t, high.FutureEquity, low.FutureEquity)
}

func TestAnalyze_RejectsInvalidProfile(t *testing.T) {
	s := NewAffordabilityService(testLogger())

	_, err := s.Analyze(model.HouseholdProfile{Income: 3000})
	require.Error(t, err)

	var verrs model.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "target", verrs[0].Field)
}

func TestSimulateMonths(t *testing.T) {
	// Без ставки: линейное накопление
	assert.Equal(t, 1200.0, simulateMonths(0, 100, 12, 0))

	// Один месяц под ставку: капитализация плюс взнос
	assert.InDelta(t, 1000*(1+0.01)+100, simulateMonths(1000, 100, 1, 0.01), 1e-9)

	// Нулевой срок возвращает стартовый капитал
	assert.Equal(t, 500.0, simulateMonths(500, 100, 0, 0.05))
}
