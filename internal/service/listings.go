package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/seantp00/RealGoodEstate/internal/model"
	"github.com/seantp00/RealGoodEstate/internal/repository"
)

// ListingFetcher - источник сырых выборок объявлений
type ListingFetcher interface {
	FetchListings(ctx context.Context, location string, propertyType model.PropertyType) ([]model.Listing, error)
}

// ListingService - конвейер поиска: снимок рынка (кеш либо апстрим),
// фильтрация, рекомендательная оценка, сортировка. Каждый проход работает
// над снимком атомарно и не изменяет входные данные.
type ListingService struct {
	fetcher   ListingFetcher
	snapshots *repository.SnapshotRepository
	flight    singleflight.Group
	logger    *logrus.Logger
}

func NewListingService(fetcher ListingFetcher, snapshots *repository.SnapshotRepository, logger *logrus.Logger) *ListingService {
	return &ListingService{
		fetcher:   fetcher,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Search выполняет один цикл поиска. Повторный запрос того же снимка во
// время незавершенного обращения к апстриму присоединяется к нему через
// singleflight: устаревший ответ не может перемешаться с новым.
func (s *ListingService) Search(ctx context.Context, req model.SearchListingsRequest) (*model.SearchListingsResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		s.logger.WithField("errors", errs.Error()).Warn("Запрос поиска не прошел валидацию")
		return nil, errs
	}
	if req.PropertyType == "" {
		req.PropertyType = model.PropertyApartmentBuy
	}

	key := repository.SnapshotKey{Location: req.Location, PropertyType: req.PropertyType}
	snapshot, fromCache, err := s.snapshot(ctx, key)
	if err != nil {
		return nil, err
	}

	// Бюджет запроса служит верхней границей цены по умолчанию,
	// если пользователь не задал собственную
	criteria := req.Filters
	if criteria.MaxPrice == nil {
		if budget := req.EffectiveBudget(); budget > 0 {
			criteria.MaxPrice = &budget
		}
	}

	filtered := FilterListings(snapshot, criteria)
	scores := ScoreListings(filtered, req.Desired)
	SortListings(filtered, criteria, scores)

	scored := make([]model.ScoredListing, 0, len(filtered))
	for _, l := range filtered {
		scored = append(scored, model.ScoredListing{
			Listing:        l,
			Recommendation: scores[l.ID()],
		})
	}

	s.logger.WithFields(logrus.Fields{
		"location":   req.Location,
		"fetched":    len(snapshot),
		"filtered":   len(filtered),
		"from_cache": fromCache,
	}).Info("Поиск объявлений выполнен")

	return &model.SearchListingsResponse{
		Listings:        scored,
		TotalFetched:    len(snapshot),
		TotalFiltered:   len(filtered),
		EffectiveBudget: req.EffectiveBudget(),
		FromCache:       fromCache,
	}, nil
}

// snapshot возвращает снимок рынка: из кеша либо одним общим обращением
// к апстриму на все конкурентные запросы одного ключа
func (s *ListingService) snapshot(ctx context.Context, key repository.SnapshotKey) ([]model.Listing, bool, error) {
	if cached, ok := s.snapshots.Get(ctx, key); ok {
		return cached, true, nil
	}

	flightKey := fmt.Sprintf("%s|%s", key.PropertyType, key.Location)
	v, err, _ := s.flight.Do(flightKey, func() (any, error) {
		listings, err := s.fetcher.FetchListings(ctx, key.Location, key.PropertyType)
		if err != nil {
			return nil, err
		}
		if err := s.snapshots.Store(ctx, key, listings); err != nil {
			s.logger.WithError(err).Warn("Не удалось закешировать снимок рынка")
		}
		return listings, nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("ошибка получения снимка рынка: %w", err)
	}

	return v.([]model.Listing), false, nil
}

// RefreshSnapshots заново запрашивает все живые снимки. Вызывается
// планировщиком, ошибки отдельных снимков не прерывают прогрев.
func (s *ListingService) RefreshSnapshots(ctx context.Context) error {
	keys, err := s.snapshots.TrackedSnapshots(ctx)
	if err != nil {
		return err
	}

	s.logger.WithField("count", len(keys)).Info("Плановый прогрев снимков рынка")
	for _, key := range keys {
		listings, err := s.fetcher.FetchListings(ctx, key.Location, key.PropertyType)
		if err != nil {
			s.logger.WithError(err).WithField("location", key.Location).Warn("Не удалось обновить снимок")
			continue
		}
		if err := s.snapshots.Store(ctx, key, listings); err != nil {
			s.logger.WithError(err).WithField("location", key.Location).Warn("Не удалось сохранить снимок")
		}
	}

	return nil
}
