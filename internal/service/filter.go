package service

import (
	"sort"
	"time"

	"github.com/seantp00/RealGoodEstate/internal/model"
)

const (
	defaultSortKey  = "buyingPrice"
	sortOrderDesc   = "desc"
	sortByRecommend = "recommendation"
	sortKeyPPSqm    = "pricePerSqm"
)

// Ключи сортировки, сравниваемые как даты
var dateSortKeys = map[string]bool{
	"publishDate":   true,
	"publishedAt":   true,
	"datePublished": true,
	"updatedAt":     true,
	"lastUpdated":   true,
	"modified":      true,
}

// FilterListings применяет все заданные границы критериев к выборке и
// возвращает новый срез; вход не изменяется. Объявление остается, только
// если проходит каждую заданную границу.
func FilterListings(listings []model.Listing, f model.FilterCriteria) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if passesFilters(l, f) {
			out = append(out, l)
		}
	}
	return out
}

func passesFilters(l model.Listing, f model.FilterCriteria) bool {
	price, hasPrice := l.Price()

	// "Цена по запросу" отсекается только явным флагом
	if f.PriceListedOnly && (!hasPrice || price == 0) {
		return false
	}
	// Нижняя граница цены отклоняет и объявления без цены: покупатель,
	// задавший минимум, не хочет видеть "цену по запросу"
	if f.MinPrice != nil && (!hasPrice || price < *f.MinPrice) {
		return false
	}
	// Верхняя граница цены пропускает объявления без цены
	if f.MaxPrice != nil && hasPrice && price > *f.MaxPrice {
		return false
	}

	// Остальные границы отклоняют только при наличии значения
	if !inRange(l.Rooms, f.MinRooms, f.MaxRooms) {
		return false
	}
	if !inRange(l.SquareMeters, f.MinSqm, f.MaxSqm) {
		return false
	}
	if !inRange(l.PricePerSqm, f.MinPPSqm, f.MaxPPSqm) {
		return false
	}
	if !inRange(l.ConstructionYear, f.MinYear, f.MaxYear) {
		return false
	}

	if !inDateRange(l.PublishedAt, f.PublishedFrom, f.PublishedTo) {
		return false
	}
	if !inDateRange(l.UpdatedAt, f.UpdatedFrom, f.UpdatedTo) {
		return false
	}

	return true
}

func inRange(resolve func() (float64, bool), min, max *float64) bool {
	v, ok := resolve()
	if !ok {
		return true
	}
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

func inDateRange(resolve func() (time.Time, bool), from, to *time.Time) bool {
	v, ok := resolve()
	if !ok {
		return true
	}
	if from != nil && v.Before(*from) {
		return false
	}
	if to != nil && v.After(*to) {
		return false
	}
	return true
}

// SortListings устойчиво упорядочивает выборку по ключу критериев.
// Отсутствующие значения всегда уходят в "худший" конец независимо от
// направления: в конец при возрастании и в начало при убывании, никогда
// не приравниваясь к реальным значениям. Ключ "recommendation" сортирует
// по карте рекомендательных оценок.
func SortListings(listings []model.Listing, f model.FilterCriteria, scores map[string]int) {
	key := f.SortKey
	if key == "" {
		key = defaultSortKey
	}
	desc := f.SortOrder == sortOrderDesc

	value := func(l model.Listing) (float64, bool) {
		if key == sortByRecommend {
			return float64(scores[l.ID()]), true
		}
		return sortValue(l, key)
	}

	sort.SliceStable(listings, func(i, j int) bool {
		a, aok := value(listings[i])
		b, bok := value(listings[j])
		switch {
		case !aok && !bok:
			return false
		case !aok:
			return desc
		case !bok:
			return !desc
		}
		if desc {
			return a > b
		}
		return a < b
	})
}

// sortValue извлекает сравниваемое значение по литеральному имени ключа;
// даты сравниваются по отметке времени, цена за метр при отсутствии
// выводится из цены и площади
func sortValue(l model.Listing, key string) (float64, bool) {
	if dateSortKeys[key] {
		d, ok := l.Date(key)
		if !ok {
			return 0, false
		}
		return float64(d.UnixMilli()), true
	}

	if v, ok := l.Number(key); ok {
		return v, true
	}
	if key == sortKeyPPSqm {
		return l.PricePerSqm()
	}
	return 0, false
}
