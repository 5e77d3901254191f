package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"halalshop-backend/internal/dto"
	"halalshop-backend/internal/model"
	"halalshop-backend/internal/service"
	"halalshop-backend/internal/utils"
)

// ShopHandler exposes the shop CRUD and proximity search endpoints.
type ShopHandler struct {
	service *service.ShopService
}

func NewShopHandler(svc *service.ShopService) *ShopHandler {
	return &ShopHandler{service: svc}
}

// RegisterRoutes binds the public API surface.
func (h *ShopHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/addNewShop", h.addNewShop)
	r.GET("/retrieveAllShop", h.retrieveAllShop)
	r.GET("/nearOrNot", h.nearOrNot)
	r.GET("/searchNearShop", h.searchNearShop)
	r.POST("/modifyShop", h.modifyShop)
	r.GET("/findShopByID", h.findShopByID)
	r.POST("/deleteShop", h.deleteShop)
}

func (h *ShopHandler) addNewShop(ctx *gin.Context) {
	var shop model.Shop
	if err := ctx.ShouldBindJSON(&shop); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Err("invalid payload: "+err.Error()))
		return
	}
	if shop.ID == "" {
		ctx.JSON(http.StatusBadRequest, dto.Err("Missing shop ID"))
		return
	}
	if shop.ExpireOn.IsZero() {
		ctx.JSON(http.StatusBadRequest, dto.Err("expireOn is required as YYYY-MM-DD"))
		return
	}
	if err := h.service.Create(ctx.Request.Context(), &shop); err != nil {
		// Raw storage error text, the documented loose error surface.
		ctx.JSON(http.StatusInternalServerError, dto.Err(err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, dto.Msg("Shop added successfully"))
}

func (h *ShopHandler) retrieveAllShop(ctx *gin.Context) {
	page := utils.ParsePage(ctx.Query("page"), utils.DEFAULT_PAGE)
	pageSize := utils.ParsePage(ctx.Query("pageSize"), utils.DEFAULT_PAGE_SIZE)

	shops, err := h.service.List(ctx.Request.Context(), page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.Err(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.ShopListResponse{
		Shops:    shops,
		Page:     page,
		PageSize: pageSize,
	})
}

// nearbyQuery parses the shared proximity parameters. The radius
// parameter name differs between the two endpoints, so it is passed in.
func nearbyQuery(ctx *gin.Context, radiusParam string) (lat, lng, radius float64, unit string, page, pageSize int, err error) {
	lat, err = strconv.ParseFloat(ctx.Query("lat"), 64)
	if err != nil {
		return 0, 0, 0, "", 0, 0, errors.New("invalid or missing lat parameter")
	}
	lng, err = strconv.ParseFloat(ctx.Query("lng"), 64)
	if err != nil {
		return 0, 0, 0, "", 0, 0, errors.New("invalid or missing lng parameter")
	}
	radius = utils.DEFAULT_RADIUS_KM
	if raw := ctx.Query(radiusParam); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, 0, 0, "", 0, 0, errors.New("invalid " + radiusParam + " parameter")
		}
	}
	unit = ctx.DefaultQuery("unit", utils.DEFAULT_UNIT)
	page = utils.ParsePage(ctx.Query("page"), utils.DEFAULT_PAGE)
	pageSize = utils.ParsePage(ctx.Query("pageSize"), utils.DEFAULT_PAGE_SIZE)
	return lat, lng, radius, unit, page, pageSize, nil
}

// nearOrNot returns the narrow projection. The unit label is echoed
// back verbatim and never applied: distances are always kilometers,
// whatever the label says.
func (h *ShopHandler) nearOrNot(ctx *gin.Context) {
	lat, lng, radius, unit, page, pageSize, err := nearbyQuery(ctx, "range")
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.Err(err.Error()))
		return
	}
	results, err := h.service.FindNearby(ctx.Request.Context(), lat, lng, radius, page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.Err(err.Error()))
		return
	}
	shops := make([]dto.NearbyShopSummary, 0, len(results))
	for _, r := range results {
		shops = append(shops, dto.NearbyShopSummary{
			ID:       r.ID,
			Name:     r.Name,
			Address:  r.Address,
			Distance: r.Distance,
			Unit:     unit,
			ExpireOn: r.ExpireOn,
		})
	}
	ctx.JSON(http.StatusOK, dto.NearbyResponse{
		NearbyShops: shops,
		Page:        page,
		PageSize:    pageSize,
	})
}

// searchNearShop is the same pipeline with the full record projection
// and the radius parameter named "radius" instead of "range".
func (h *ShopHandler) searchNearShop(ctx *gin.Context) {
	lat, lng, radius, unit, page, pageSize, err := nearbyQuery(ctx, "radius")
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.Err(err.Error()))
		return
	}
	results, err := h.service.FindNearby(ctx.Request.Context(), lat, lng, radius, page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.Err(err.Error()))
		return
	}
	shops := make([]dto.NearbyShopDetail, 0, len(results))
	for _, r := range results {
		shops = append(shops, dto.NearbyShopDetail{
			Shop:     r.Shop,
			Distance: r.Distance,
			Unit:     unit,
		})
	}
	ctx.JSON(http.StatusOK, dto.NearbyResponse{
		NearbyShops: shops,
		Page:        page,
		PageSize:    pageSize,
	})
}

func (h *ShopHandler) modifyShop(ctx *gin.Context) {
	var update dto.ShopUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Err("invalid payload: "+err.Error()))
		return
	}
	if update.ID == "" {
		ctx.JSON(http.StatusBadRequest, dto.Err("Missing shop ID"))
		return
	}
	if err := h.service.Update(ctx.Request.Context(), update); err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Err("Shop not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.Err(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.Msg("Shop modified successfully"))
}

func (h *ShopHandler) findShopByID(ctx *gin.Context) {
	id := ctx.Query("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.Err("Missing shop ID"))
		return
	}
	shop, err := h.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Err("Shop not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.Err(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) deleteShop(ctx *gin.Context) {
	var payload struct {
		ID string `json:"id"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Err("invalid payload: "+err.Error()))
		return
	}
	if payload.ID == "" {
		ctx.JSON(http.StatusBadRequest, dto.Err("Missing shop ID"))
		return
	}
	if err := h.service.Delete(ctx.Request.Context(), payload.ID); err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Err("Shop not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.Err(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.Msg("Shop deleted successfully"))
}
