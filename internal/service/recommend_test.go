package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seantp00/RealGoodEstate/internal/model"
)

var desired = model.DesiredProperty{Sqm: 100, Rooms: 3, YearBuilt: 2000, Price: 300000}

func TestRecommendationScore_ExactMatchIsNeutral(t *testing.T) {
	l := model.Listing{
		"squareMeter":      100.0,
		"rooms":            3.0,
		"constructionYear": 2000.0,
		"buyingPrice":      300000.0,
	}
	assert.Equal(t, 50, RecommendationScore(l, desired))
}

func TestRecommendationScore_NoDataIsNeutral(t *testing.T) {
	// Объявление без единого поля не исключается, а остается нейтральным
	assert.Equal(t, 50, RecommendationScore(model.Listing{}, desired))
	// Пустой желаемый профиль дает нейтральную оценку любому объявлению
	assert.Equal(t, 50, RecommendationScore(model.Listing{"buyingPrice": 100000.0}, model.DesiredProperty{}))
}

func TestRecommendationScore_SqmPremiumCapped(t *testing.T) {
	// 150% площади: полный бонус фактора
	l := model.Listing{"squareMeter": 150.0, "rooms": 3.0, "constructionYear": 2000.0, "buyingPrice": 300000.0}
	assert.Equal(t, 65, RecommendationScore(l, desired))

	// Выше 150% бонус не растет
	l["squareMeter"] = 300.0
	assert.Equal(t, 65, RecommendationScore(l, desired))
}

func TestRecommendationScore_SqmPenaltyUncapped(t *testing.T) {
	// Половина площади: штраф 15
	l := model.Listing{"squareMeter": 50.0, "rooms": 3.0, "constructionYear": 2000.0, "buyingPrice": 300000.0}
	assert.Equal(t, 43, RecommendationScore(l, desired))
}

func TestRecommendationScore_RoomPenaltySaturates(t *testing.T) {
	l := model.Listing{"squareMeter": 100.0, "rooms": 1.0, "constructionYear": 2000.0, "buyingPrice": 300000.0}
	// Разница 2 комнаты: штраф 10
	assert.Equal(t, 45, RecommendationScore(l, desired))

	// Разница 10 комнат упирается в вес фактора
	l["rooms"] = 13.0
	assert.Equal(t, 40, RecommendationScore(l, desired))
}

func TestRecommendationScore_PriceBonusCutoff(t *testing.T) {
	// Ровно на 30% дешевле: полный бонус 30
	l := model.Listing{"squareMeter": 100.0, "rooms": 3.0, "constructionYear": 2000.0, "buyingPrice": 210000.0}
	assert.Equal(t, 65, RecommendationScore(l, desired))

	// Аномально дешевый лот не набирает больше
	l["buyingPrice"] = 50000.0
	assert.Equal(t, 65, RecommendationScore(l, desired))
}

func TestRecommendationScore_PricePenalty(t *testing.T) {
	// Вдвое дороже: полный штраф фактора
	l := model.Listing{"squareMeter": 100.0, "rooms": 3.0, "constructionYear": 2000.0, "buyingPrice": 600000.0}
	assert.Equal(t, 35, RecommendationScore(l, desired))
}

func TestRecommendationScore_YearFactor(t *testing.T) {
	// 25 лет разницы: штраф 5
	l := model.Listing{"squareMeter": 100.0, "rooms": 3.0, "constructionYear": 1975.0, "buyingPrice": 300000.0}
	assert.Equal(t, 48, RecommendationScore(l, desired))

	// Столетняя разница упирается в вес 10
	l["constructionYear"] = 1900.0
	assert.Equal(t, 45, RecommendationScore(l, desired))
}

func TestRecommendationScore_Bounds(t *testing.T) {
	// Сильно худший по всем факторам объект не уходит ниже нуля
	l := model.Listing{"squareMeter": 5.0, "rooms": 20.0, "constructionYear": 1850.0, "buyingPrice": 3000000.0}
	score := RecommendationScore(l, desired)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}

func TestScoreListings_KeyedByID(t *testing.T) {
	listings := []model.Listing{
		{"id": "a", "squareMeter": 150.0, "rooms": 3.0, "constructionYear": 2000.0, "buyingPrice": 300000.0},
		{"id": "b"},
	}

	scores := ScoreListings(listings, desired)
	assert.Equal(t, 65, scores["a"])
	assert.Equal(t, 50, scores["b"])
}
