package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"halalshop-backend/internal/dto"
	"halalshop-backend/internal/geo"
	"halalshop-backend/internal/model"
	"halalshop-backend/internal/observability"
	"halalshop-backend/internal/utils"
)

// ErrShopNotFound is returned when an operation names an unknown id.
var ErrShopNotFound = errors.New("Shop not found")

// ShopService owns the shop record store and the proximity query
// pipeline on top of it.
type ShopService struct {
	db      *gorm.DB
	events  *ShopEventPublisher
	metrics *observability.ShopMetrics
	log     *zap.Logger
}

// NewShopService creates a ShopService. events and metrics may be nil
// when the producer or the metrics endpoint is disabled.
func NewShopService(db *gorm.DB, events *ShopEventPublisher, metrics *observability.ShopMetrics, log *zap.Logger) *ShopService {
	return &ShopService{db: db, events: events, metrics: metrics, log: log}
}

// Create stores a new record. The id comes from the caller; a
// duplicate surfaces as a storage error, uniqueness is the caller's
// problem.
func (s *ShopService) Create(ctx context.Context, shop *model.Shop) error {
	if err := s.db.WithContext(ctx).Create(shop).Error; err != nil {
		return err
	}
	s.events.Publish(ctx, EventShopCreated, shop.ID)
	return nil
}

func (s *ShopService) GetByID(ctx context.Context, id string) (*model.Shop, error) {
	var shop model.Shop
	err := s.db.WithContext(ctx).First(&shop, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// Update applies a partial update: only the fields present in the
// payload change, everything else keeps its stored value.
func (s *ShopService) Update(ctx context.Context, update dto.ShopUpdate) error {
	shop, err := s.GetByID(ctx, update.ID)
	if err != nil {
		return err
	}
	update.Apply(shop)
	if err := s.db.WithContext(ctx).Save(shop).Error; err != nil {
		return err
	}
	s.events.Publish(ctx, EventShopModified, shop.ID)
	return nil
}

func (s *ShopService) Delete(ctx context.Context, id string) error {
	shop, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(shop).Error; err != nil {
		return err
	}
	s.events.Publish(ctx, EventShopDeleted, id)
	return nil
}

// List returns one page of records in id order.
func (s *ShopService) List(ctx context.Context, page, size int) ([]model.Shop, error) {
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	shops := []model.Shop{}
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(size).
		Find(&shops).Error
	return shops, err
}

// NearbyShop is one proximity result: the record plus its computed
// distance from the query point, always in kilometers.
type NearbyShop struct {
	model.Shop
	Distance float64
}

// FindNearby answers "which shops lie within radiusKm of the point,
// nearest first, one page at a time". The pipeline is a deliberate
// full scan: fetch every record, compute the Haversine distance,
// keep those at or inside the radius (the boundary is inclusive),
// stable-sort ascending by distance so equal distances keep their
// id-order, then window by the 1-indexed page. A page past the end is
// an empty result, not an error.
//
// The scan reads a single unisolated snapshot, so a query running
// beside a write may observe a mix of pre- and post-write state.
// A stored record whose text coordinates do not parse fails the whole
// query.
func (s *ShopService) FindNearby(ctx context.Context, lat, lng, radiusKm float64, page, size int) ([]NearbyShop, error) {
	tracer := otel.Tracer("halalshop-backend/internal/service")
	ctx, span := tracer.Start(ctx, "shop.find_nearby", trace.WithAttributes(
		attribute.Float64("query.lat", lat),
		attribute.Float64("query.lng", lng),
		attribute.Float64("query.radius_km", radiusKm),
	))
	defer span.End()
	start := time.Now()

	shops := []model.Shop{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&shops).Error; err != nil {
		span.RecordError(err)
		s.metrics.ObserveSearch("error", time.Since(start), 0, 0)
		return nil, err
	}

	center := geo.Point{Lat: lat, Lng: lng}
	matched := make([]NearbyShop, 0, len(shops))
	for i := range shops {
		loc, err := shops[i].Location()
		if err != nil {
			span.RecordError(err)
			s.metrics.ObserveSearch("error", time.Since(start), len(shops), 0)
			return nil, err
		}
		d := geo.Distance(center, loc)
		if d <= radiusKm {
			matched = append(matched, NearbyShop{Shop: shops[i], Distance: d})
		}
	}

	// Stable sort: records at exactly equal distances stay in storage
	// (id) order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Distance < matched[j].Distance
	})

	span.SetAttributes(
		attribute.Int("query.scanned", len(shops)),
		attribute.Int("query.matched", len(matched)),
	)
	s.metrics.ObserveSearch("success", time.Since(start), len(shops), len(matched))

	lo, hi := utils.PageBounds(page, size, len(matched))
	return matched[lo:hi], nil
}
