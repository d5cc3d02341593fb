package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/seantp00/RealGoodEstate/internal/model"
)

const snapshotKeyPrefix = "listings:snapshot:"

// SnapshotKey идентифицирует закешированный снимок рынка
type SnapshotKey struct {
	Location     string
	PropertyType model.PropertyType
}

// SnapshotRepository - кеш сырых выборок объявлений в Redis. Кешируются
// только данные апстрима на короткий срок; пользовательское состояние
// сервис не сохраняет. Репозиторий с nil-клиентом всегда промахивается,
// сервис в этом случае ходит в апстрим напрямую.
type SnapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewSnapshotRepository(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func snapshotKey(k SnapshotKey) string {
	return fmt.Sprintf("%s%s:%s", snapshotKeyPrefix, k.PropertyType.UpstreamType(), strings.ToLower(strings.TrimSpace(k.Location)))
}

// Get возвращает снимок из кеша; любой сбой кеша трактуется как промах
func (r *SnapshotRepository) Get(ctx context.Context, k SnapshotKey) ([]model.Listing, bool) {
	if r.client == nil {
		return nil, false
	}

	raw, err := r.client.Get(ctx, snapshotKey(k)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WithError(err).Warn("Ошибка чтения снимка из кеша")
		}
		return nil, false
	}

	var listings []model.Listing
	if err := json.Unmarshal(raw, &listings); err != nil {
		r.logger.WithError(err).Warn("Поврежденный снимок в кеше, игнорируется")
		return nil, false
	}

	r.logger.WithFields(logrus.Fields{
		"location": k.Location,
		"count":    len(listings),
	}).Debug("Снимок объявлений получен из кеша")
	return listings, true
}

// Store сохраняет снимок с настроенным TTL
func (r *SnapshotRepository) Store(ctx context.Context, k SnapshotKey, listings []model.Listing) error {
	if r.client == nil {
		return nil
	}

	raw, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("ошибка сериализации снимка: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey(k), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи снимка в кеш: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"location": k.Location,
		"count":    len(listings),
		"ttl":      r.ttl,
	}).Debug("Снимок объявлений сохранен в кеш")
	return nil
}

// TrackedSnapshots перечисляет ключи живых снимков для планового прогрева
func (r *SnapshotRepository) TrackedSnapshots(ctx context.Context) ([]SnapshotKey, error) {
	if r.client == nil {
		return nil, nil
	}

	var keys []SnapshotKey
	iter := r.client.Scan(ctx, 0, snapshotKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		rest := strings.TrimPrefix(iter.Val(), snapshotKeyPrefix)
		parts := strings.SplitN(rest, ":", 2)
		if len(parts) != 2 {
			continue
		}
		propertyType := model.PropertyApartmentBuy
		if parts[0] == model.PropertyHouseBuy.UpstreamType() {
			propertyType = model.PropertyHouseBuy
		}
		keys = append(keys, SnapshotKey{Location: parts[1], PropertyType: propertyType})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("ошибка перечисления снимков: %w", err)
	}

	return keys, nil
}
