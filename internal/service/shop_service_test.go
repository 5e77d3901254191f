package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"halalshop-backend/internal/dto"
	"halalshop-backend/internal/model"
)

func newTestService(t *testing.T) *ShopService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Fresh table per test: the shared-cache DSN reuses the handle.
	if err := db.Migrator().DropTable(&model.Shop{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	if err := db.AutoMigrate(&model.Shop{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewShopService(db, nil, nil, zap.NewNop())
}

func testShop(id string, lat, lng float64) *model.Shop {
	expire, _ := model.ParseDate("2027-12-31")
	return &model.Shop{
		ID:               id,
		Name:             "shop " + id,
		Address:          "street " + id,
		Phone:            "09-12345678",
		IsHalalCertified: true,
		SocialMediaLink:  "https://example.com/" + id,
		Latitude:         strconv.FormatFloat(lat, 'f', -1, 64),
		Longitude:        strconv.FormatFloat(lng, 'f', -1, 64),
		ExpireOn:         expire,
		Description:      "a shop",
		Cluster:          "north",
		FoodCategory:     "noodles",
		ShopType:         "restaurant",
		Remark:           "-",
		Img1:             "img1",
		Img2:             "img2",
		Img3:             "img3",
		Preserved1:       "p1",
		Preserved2:       "p2",
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	want := testShop("s-001", 16.8409, 96.1735)
	if err := svc.Create(ctx, want); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(ctx, "s-001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != want.ID || got.Name != want.Name || got.Address != want.Address ||
		got.Phone != want.Phone || got.IsHalalCertified != want.IsHalalCertified ||
		got.SocialMediaLink != want.SocialMediaLink || got.Latitude != want.Latitude ||
		got.Longitude != want.Longitude || got.Description != want.Description ||
		got.Cluster != want.Cluster || got.FoodCategory != want.FoodCategory ||
		got.ShopType != want.ShopType || got.Remark != want.Remark ||
		got.Img1 != want.Img1 || got.Img2 != want.Img2 || got.Img3 != want.Img3 ||
		got.Preserved1 != want.Preserved1 || got.Preserved2 != want.Preserved2 {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, want)
	}
	// Dates compare as calendar dates, not strings.
	if !got.ExpireOn.Equal(want.ExpireOn) {
		t.Errorf("expireOn = %s, want %s", got.ExpireOn, want.ExpireOn)
	}
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.GetByID(context.Background(), "nope"); !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("err = %v, want ErrShopNotFound", err)
	}
}

func TestPartialUpdateLeavesOtherFieldsUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	original := testShop("s-002", 16.8, 96.1)
	if err := svc.Create(ctx, original); err != nil {
		t.Fatalf("create: %v", err)
	}

	newName := "renamed"
	if err := svc.Update(ctx, dto.ShopUpdate{ID: "s-002", Name: &newName}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.GetByID(ctx, "s-002")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "renamed" {
		t.Errorf("name = %q, want renamed", got.Name)
	}
	if got.Address != original.Address || got.Phone != original.Phone ||
		got.Latitude != original.Latitude || got.Longitude != original.Longitude ||
		got.Description != original.Description || got.Remark != original.Remark ||
		got.Preserved1 != original.Preserved1 || got.Preserved2 != original.Preserved2 ||
		!got.ExpireOn.Equal(original.ExpireOn) {
		t.Errorf("unrelated fields changed: %+v", got)
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	svc := newTestService(t)
	name := "x"
	err := svc.Update(context.Background(), dto.ShopUpdate{ID: "nope", Name: &name})
	if !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("err = %v, want ErrShopNotFound", err)
	}
}

func TestDeleteUnknownIDReturnsNotFound(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("err = %v, want ErrShopNotFound", err)
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if err := svc.Create(ctx, testShop("s-003", 1, 1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, "s-003"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, "s-003"); !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("record still present after delete: %v", err)
	}
}

// seedGrid inserts shops at increasing offsets north of the center, so
// shop i is strictly farther than shop i-1.
func seedGrid(t *testing.T, svc *ShopService, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		lat := 16.8 + float64(i)*0.01
		shop := testShop(fmt.Sprintf("grid-%03d", i), lat, 96.1)
		if err := svc.Create(ctx, shop); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
}

func TestFindNearbyRespectsRadiusAndOrder(t *testing.T) {
	svc := newTestService(t)
	seedGrid(t, svc, 20)

	results, err := svc.FindNearby(context.Background(), 16.8, 96.1, 10, 1, 100)
	if err != nil {
		t.Fatalf("find nearby: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected matches inside 10 km")
	}
	for i, r := range results {
		if r.Distance > 10 {
			t.Errorf("result %d distance %v exceeds radius", i, r.Distance)
		}
		if i > 0 && results[i-1].Distance > r.Distance {
			t.Errorf("results not sorted: [%d]=%v > [%d]=%v", i-1, results[i-1].Distance, i, r.Distance)
		}
	}
}

func TestFindNearbyInclusiveBoundary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if err := svc.Create(ctx, testShop("center", 16.8, 96.1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Create(ctx, testShop("far", 17.8, 96.1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Query with the exact computed distance as the radius: the record
	// sitting on the boundary must be included.
	all, err := svc.FindNearby(ctx, 16.8, 96.1, 1e9, 1, 10)
	if err != nil {
		t.Fatalf("find nearby: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both seeds, got %d", len(all))
	}
	boundary := all[1].Distance
	exact, err := svc.FindNearby(ctx, 16.8, 96.1, boundary, 1, 10)
	if err != nil {
		t.Fatalf("find nearby at boundary: %v", err)
	}
	if len(exact) != 2 {
		t.Errorf("record exactly at the radius excluded: got %d results", len(exact))
	}
}

func TestFindNearbyPaginationPartition(t *testing.T) {
	svc := newTestService(t)
	seedGrid(t, svc, 23)
	ctx := context.Background()

	full, err := svc.FindNearby(ctx, 16.8, 96.1, 1e9, 1, 1000)
	if err != nil {
		t.Fatalf("full query: %v", err)
	}
	if len(full) != 23 {
		t.Fatalf("full query returned %d, want 23", len(full))
	}

	const pageSize = 5
	var joined []NearbyShop
	for page := 1; ; page++ {
		chunk, err := svc.FindNearby(ctx, 16.8, 96.1, 1e9, page, pageSize)
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if len(chunk) == 0 {
			break
		}
		joined = append(joined, chunk...)
	}
	if len(joined) != len(full) {
		t.Fatalf("concatenated pages have %d results, want %d", len(joined), len(full))
	}
	for i := range full {
		if joined[i].ID != full[i].ID {
			t.Errorf("page concat mismatch at %d: %s vs %s", i, joined[i].ID, full[i].ID)
		}
	}
}

func TestFindNearbyPageBeyondEndIsEmpty(t *testing.T) {
	svc := newTestService(t)
	seedGrid(t, svc, 3)

	results, err := svc.FindNearby(context.Background(), 16.8, 96.1, 1e9, 99, 10)
	if err != nil {
		t.Fatalf("find nearby: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("page past the end returned %d results, want 0", len(results))
	}
}

// Equal distances keep storage (id) order: two shops at mirrored
// offsets from the center are equidistant.
func TestFindNearbyStableTieBreak(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if err := svc.Create(ctx, testShop("tie-a", 1, 96.1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Create(ctx, testShop("tie-b", -1, 96.1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	results, err := svc.FindNearby(ctx, 0, 96.1, 1e9, 1, 10)
	if err != nil {
		t.Fatalf("find nearby: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Distance != results[1].Distance {
		t.Skipf("seeds not equidistant: %v vs %v", results[0].Distance, results[1].Distance)
	}
	if results[0].ID != "tie-a" || results[1].ID != "tie-b" {
		t.Errorf("tie not broken by id order: got %s, %s", results[0].ID, results[1].ID)
	}
}

func TestFindNearbyFailsOnUnparseableCoordinates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	bad := testShop("bad", 0, 0)
	bad.Latitude = "not-a-number"
	if err := svc.Create(ctx, bad); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.FindNearby(ctx, 16.8, 96.1, 5, 1, 10); err == nil {
		t.Fatal("query over a record with bad coordinates should fail wholly")
	}
}

func TestListPagesInIDOrder(t *testing.T) {
	svc := newTestService(t)
	seedGrid(t, svc, 12)
	ctx := context.Background()

	page1, err := svc.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	page2, err := svc.List(ctx, 2, 10)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page1) != 10 || len(page2) != 2 {
		t.Fatalf("page sizes = %d, %d; want 10, 2", len(page1), len(page2))
	}
	if page1[0].ID != "grid-000" || page2[0].ID != "grid-010" {
		t.Errorf("listing not in id order: %s, %s", page1[0].ID, page2[0].ID)
	}
}
