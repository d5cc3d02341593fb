package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Listing - сырое объявление из API поиска недвижимости. Схема апстрима
// нестабильна, поэтому объявление хранится как нетипизированный JSON-объект,
// а значения извлекаются через упорядоченные списки возможных имен полей:
// выигрывает первое присутствующее непустое значение.
type Listing map[string]any

// Упорядоченные списки имен полей апстрима для каждого атрибута
var (
	PriceFields       = []string{"buyingPrice", "price", "priceValue"}
	RoomFields        = []string{"rooms", "roomCount"}
	SqmFields         = []string{"squareMeter", "area", "size"}
	PricePerSqmFields = []string{"pricePerSqm", "pricePerSquareMeter"}
	YearFields        = []string{"constructionYear", "yearBuilt", "builtYear"}
	PublishedFields   = []string{"publishDate", "publishedAt", "datePublished"}
	UpdatedFields     = []string{"updatedAt", "lastUpdated", "modified"}
)

// First возвращает первое присутствующее непустое значение из списка полей
func (l Listing) First(keys ...string) (any, bool) {
	for _, k := range keys {
		v, ok := l[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// Number разрешает поле как число с учетом строковых и json.Number значений
func (l Listing) Number(keys ...string) (float64, bool) {
	v, ok := l.First(keys...)
	if !ok {
		return 0, false
	}
	return toNumber(v)
}

// Date разрешает поле как момент времени
func (l Listing) Date(keys ...string) (time.Time, bool) {
	v, ok := l.First(keys...)
	if !ok {
		return time.Time{}, false
	}
	return toTime(v)
}

// ID возвращает ключ объявления для карт оценок; при отсутствии id
// используется адресуемое представление самого объекта
func (l Listing) ID() string {
	if v, ok := l.First("id", "listingId", "externalId"); ok {
		return fmt.Sprintf("%v", v)
	}
	// Запасной ключ: заголовок + цена, достаточно стабильно внутри одной выборки
	title, _ := l.First("title")
	price, _ := l.Number(PriceFields...)
	return fmt.Sprintf("%v|%v", title, price)
}

func (l Listing) Title() string {
	if v, ok := l.First("title"); ok {
		if s, isStr := v.(string); isStr {
			return s
		}
	}
	return ""
}

// City возвращает город из вложенного адреса
func (l Listing) City() string {
	addr, ok := l["address"].(map[string]any)
	if !ok {
		return ""
	}
	city, _ := addr["city"].(string)
	return city
}

func (l Listing) Price() (float64, bool) { return l.Number(PriceFields...) }

func (l Listing) Rooms() (float64, bool) { return l.Number(RoomFields...) }

func (l Listing) SquareMeters() (float64, bool) { return l.Number(SqmFields...) }

// ConstructionYear пробует constructionYear, yearBuilt, builtYear по порядку
func (l Listing) ConstructionYear() (float64, bool) { return l.Number(YearFields...) }

func (l Listing) PublishedAt() (time.Time, bool) { return l.Date(PublishedFields...) }
func (l Listing) UpdatedAt() (time.Time, bool)   { return l.Date(UpdatedFields...) }

// PricePerSqm возвращает цену за квадратный метр: прямое поле апстрима
// либо производное значение цена/площадь при наличии обоих
func (l Listing) PricePerSqm() (float64, bool) {
	if v, ok := l.Number(PricePerSqmFields...); ok {
		return v, true
	}
	price, okPrice := l.Price()
	sqm, okSqm := l.SquareMeters()
	if okPrice && okSqm && sqm > 0 {
		return price / sqm, true
	}
	return 0, false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case float64:
		// Апстрим отдает миллисекунды эпохи
		return time.UnixMilli(int64(t)), true
	default:
		return time.Time{}, false
	}
}

// FilterCriteria - границы фильтрации, задаваемые пользователем.
// Отсутствующая граница (nil) означает отсутствие ограничения.
// Критерии собираются заново при каждом обращении к панели фильтров.
type FilterCriteria struct {
	MinPrice        *float64   `json:"minPrice,omitempty"`
	MaxPrice        *float64   `json:"maxPrice,omitempty"`
	MinRooms        *float64   `json:"minRooms,omitempty"`
	MaxRooms        *float64   `json:"maxRooms,omitempty"`
	MinSqm          *float64   `json:"minSqm,omitempty"`
	MaxSqm          *float64   `json:"maxSqm,omitempty"`
	MinPPSqm        *float64   `json:"minPPSqm,omitempty"`
	MaxPPSqm        *float64   `json:"maxPPSqm,omitempty"`
	MinYear         *float64   `json:"minYear,omitempty"`
	MaxYear         *float64   `json:"maxYear,omitempty"`
	PublishedFrom   *time.Time `json:"publishedFrom,omitempty"`
	PublishedTo     *time.Time `json:"publishedTo,omitempty"`
	UpdatedFrom     *time.Time `json:"updatedFrom,omitempty"`
	UpdatedTo       *time.Time `json:"updatedTo,omitempty"`
	PriceListedOnly bool       `json:"priceListedOnly"`
	SortKey         string     `json:"sortKey"`
	SortOrder       string     `json:"sortOrder"`
}

// PropertyType - тип объекта для API поиска
type PropertyType string

const (
	PropertyApartmentBuy PropertyType = "apartment-buy"
	PropertyHouseBuy     PropertyType = "house-buy"
)

// UpstreamType возвращает код типа в формате апстрима
func (p PropertyType) UpstreamType() string {
	if p == PropertyHouseBuy {
		return "HOUSEBUY"
	}
	return "APARTMENTBUY"
}

// DesiredProperty - желаемый профиль объекта для рекомендательной оценки
type DesiredProperty struct {
	Sqm       float64 `json:"sqm"`
	Rooms     float64 `json:"rooms"`
	YearBuilt float64 `json:"yearBuilt"`
	Price     float64 `json:"price"`
}

// SearchListingsRequest - запрос поиска объявлений. CurrPower передается
// клиентом (сервер не хранит сессию); BudgetOverride действует только на
// этот запрос и заменяет покупательную способность как бюджет по умолчанию.
type SearchListingsRequest struct {
	Location       string          `json:"location"`
	PropertyType   PropertyType    `json:"propertyType"`
	CurrPower      float64         `json:"currPower"`
	BudgetOverride *float64        `json:"budgetOverride,omitempty"`
	Desired        DesiredProperty `json:"desired"`
	Filters        FilterCriteria  `json:"filters"`
}

// Validate проверяет параметры поиска
func (r *SearchListingsRequest) Validate() ValidationErrors {
	var errs ValidationErrors
	if r.Location == "" {
		errs = errs.Add("location", "населенный пункт обязателен")
	}
	switch r.PropertyType {
	case "", PropertyApartmentBuy, PropertyHouseBuy:
	default:
		errs = errs.Add("propertyType", "допустимые значения: apartment-buy, house-buy")
	}
	if r.BudgetOverride != nil && *r.BudgetOverride <= 0 {
		errs = errs.Add("budgetOverride", "бюджет должен быть больше нуля")
	}
	return errs
}

// EffectiveBudget возвращает бюджет запроса: разовое переопределение
// либо текущая покупательная способность
func (r *SearchListingsRequest) EffectiveBudget() float64 {
	if r.BudgetOverride != nil && *r.BudgetOverride > 0 {
		return *r.BudgetOverride
	}
	return r.CurrPower
}

// ScoredListing - объявление с рекомендательной оценкой 0-100
type ScoredListing struct {
	Listing        Listing `json:"listing"`
	Recommendation int     `json:"recommendation"`
}

// SearchListingsResponse - отфильтрованная и отсортированная выборка
type SearchListingsResponse struct {
	Listings        []ScoredListing `json:"listings"`
	TotalFetched    int             `json:"totalFetched"`
	TotalFiltered   int             `json:"totalFiltered"`
	EffectiveBudget float64         `json:"effectiveBudget"`
	FromCache       bool            `json:"fromCache"`
}
