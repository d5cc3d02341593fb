package service

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seantp00/RealGoodEstate/internal/model"
)

// Параметры модели оценки стоимости, откалиброванные по немецкому рынку:
// базовая цена 3500 €/м² плюс 2000 за класс расположения, надбавки за
// комнаты и санузлы, до +30% за состояние, возрастной дисконт до 200 лет.
const (
	basePricePerSqm     = 3500.0
	locationPremiumStep = 2000.0
	roomBonus           = 5000.0
	bathroomBonus       = 8000.0
	conditionStep       = 0.15
	ageHalfLifeYears    = 200.0
	minEstimatePrice    = 50000.0
)

type EstimatorService struct {
	logger *logrus.Logger
}

func NewEstimatorService(logger *logrus.Logger) *EstimatorService {
	return &EstimatorService{logger: logger}
}

// Estimate рассчитывает ориентировочную стоимость объекта по его
// характеристикам. Детерминированная модель без случайного шума.
func (s *EstimatorService) Estimate(req model.PriceEstimateRequest) (*model.PriceEstimateResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		s.logger.WithField("errors", errs.Error()).Warn("Запрос оценки не прошел валидацию")
		return nil, errs
	}

	age := math.Max(0, float64(time.Now().Year()-req.YearBuilt))

	perSqm := basePricePerSqm + req.Location.Premium()*locationPremiumStep
	conditionFactor := 1 + req.Condition.Factor()*conditionStep
	agePenalty := math.Max(0, 1-age/ageHalfLifeYears)

	price := req.Sqm*perSqm*conditionFactor*agePenalty +
		req.Rooms*roomBonus +
		req.Bathrooms*bathroomBonus
	price = math.Max(minEstimatePrice, math.Floor(price))

	s.logger.WithFields(logrus.Fields{
		"sqm":       req.Sqm,
		"location":  req.Location,
		"condition": req.Condition,
		"age":       age,
		"price":     price,
	}).Info("Оценка стоимости объекта рассчитана")

	return &model.PriceEstimateResponse{
		PredictedPrice: price,
		Inputs:         req,
	}, nil
}
