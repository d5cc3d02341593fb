package model

// LocationClass - класс расположения объекта
type LocationClass string

const (
	LocationRural   LocationClass = "rural"
	LocationCity    LocationClass = "city"
	LocationPremium LocationClass = "premium"
)

// Premium возвращает числовой класс расположения (0 - сельская местность,
// 1 - город, 2 - премиальный район); неизвестные значения считаются городом
func (l LocationClass) Premium() float64 {
	switch l {
	case LocationRural:
		return 0
	case LocationPremium:
		return 2
	default:
		return 1
	}
}

// PropertyCondition - состояние объекта
type PropertyCondition string

const (
	ConditionRenovation PropertyCondition = "renovation"
	ConditionGood       PropertyCondition = "good"
	ConditionNew        PropertyCondition = "new"
)

// Factor возвращает числовое состояние (0 - под ремонт, 1 - хорошее,
// 2 - новостройка); неизвестные значения считаются хорошим состоянием
func (c PropertyCondition) Factor() float64 {
	switch c {
	case ConditionRenovation:
		return 0
	case ConditionNew:
		return 2
	default:
		return 1
	}
}

// PriceEstimateRequest - запрос оценки стоимости объекта
type PriceEstimateRequest struct {
	Sqm       float64           `json:"sqm"`
	Rooms     float64           `json:"rooms"`
	Bathrooms float64           `json:"bathrooms"`
	Location  LocationClass     `json:"location"`
	Condition PropertyCondition `json:"condition"`
	YearBuilt int               `json:"yearBuilt"`
}

// Validate проверяет параметры оценки
func (r *PriceEstimateRequest) Validate() ValidationErrors {
	var errs ValidationErrors
	if r.Sqm <= 0 {
		errs = errs.Add("sqm", "площадь должна быть больше нуля")
	}
	if r.Rooms < 0 {
		errs = errs.Add("rooms", "число комнат не может быть отрицательным")
	}
	if r.Bathrooms < 0 {
		errs = errs.Add("bathrooms", "число санузлов не может быть отрицательным")
	}
	return errs
}

// PriceEstimateResponse - оценка стоимости с эхом входных параметров
type PriceEstimateResponse struct {
	PredictedPrice float64              `json:"predictedPrice"`
	Inputs         PriceEstimateRequest `json:"inputs"`
}
