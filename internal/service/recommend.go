package service

import (
	"math"

	"github.com/seantp00/RealGoodEstate/internal/model"
)

// Веса факторов рекомендательной оценки. Год постройки весит меньше:
// "хорошие" отклонения (больше площади, ниже цена) поощряются, "плохие"
// (меньше площади, выше цена) штрафуются.
const (
	weightSqm   = 30.0
	weightRooms = 20.0
	weightYear  = 10.0
	weightPrice = 30.0

	// Знаменатель нормализации фиксирован независимо от числа факторов
	// с данными: объявления с редкими полями тяготеют к нейтральным 50,
	// а не исключаются из выдачи
	scoreDenominator = 100.0
)

// RecommendationScore сопоставляет объявление с желаемым профилем и
// возвращает оценку совместимости 0-100. Отсутствующий либо нулевой
// фактор вносит нулевой вклад.
func RecommendationScore(listing model.Listing, desired model.DesiredProperty) int {
	score := 0.0

	// Фактор 1: площадь - премия до 50% превышения, штраф без ограничения
	if desired.Sqm > 0 {
		if sqm, ok := listing.SquareMeters(); ok && sqm != 0 {
			ratio := sqm / desired.Sqm
			if ratio >= 1 {
				capped := math.Min(ratio, 1.5)
				score += (capped - 1) / 0.5 * weightSqm
			} else {
				score -= (1 - ratio) * weightSqm
			}
		}
	}

	// Фактор 2: комнаты - симметричный штраф с насыщением
	if desired.Rooms > 0 {
		if rooms, ok := listing.Rooms(); ok {
			diff := math.Abs(rooms - desired.Rooms)
			score -= math.Min(weightRooms, diff*5)
		}
	}

	// Фактор 3: год постройки - пониженный вес, ~1 балл за 5 лет разницы
	if desired.YearBuilt > 0 {
		if year, ok := listing.ConstructionYear(); ok && year != 0 {
			diff := math.Abs(year - desired.YearBuilt)
			score -= math.Min(weightYear, diff/5)
		}
	}

	// Фактор 4: цена - премия за дешевизну с отсечкой на 30% ниже цели,
	// чтобы гаражи и аномально дешевые лоты не набирали максимум
	if desired.Price > 0 {
		if price, ok := listing.Price(); ok && price != 0 {
			ratio := price / desired.Price
			if ratio <= 1 {
				capped := math.Max(ratio, 0.7)
				score += (1 - capped) / 0.3 * weightPrice
			} else {
				score -= math.Min(weightPrice, (ratio-1)*weightPrice)
			}
		}
	}

	// score лежит в [-100, +100], переводим в [0, 100]
	normalized := (score + scoreDenominator) / (2 * scoreDenominator) * 100
	return int(math.Round(math.Max(0, math.Min(100, normalized))))
}

// ScoreListings считает оценки для всей выборки один раз и возвращает
// явную карту "ключ объявления -> оценка". Карта заменяет скрытое
// кеширование оценки на самом объекте и переиспользуется сортировкой.
func ScoreListings(listings []model.Listing, desired model.DesiredProperty) map[string]int {
	scores := make(map[string]int, len(listings))
	for _, l := range listings {
		scores[l.ID()] = RecommendationScore(l, desired)
	}
	return scores
}
