package dto

import "halalshop-backend/internal/model"

// Response shapes mirror the public API exactly: flat objects keyed by
// message/error on writes, shops/nearbyShops plus a page echo on reads.

// MessageResponse is the success body of the write endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the failure body of every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

func Msg(message string) MessageResponse {
	return MessageResponse{Message: message}
}

func Err(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// ShopListResponse is the paged body of /retrieveAllShop.
type ShopListResponse struct {
	Shops    []model.Shop `json:"shops"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
}

// NearbyResponse is the paged body of the two proximity endpoints. The
// element shape differs between them, hence the untyped list.
type NearbyResponse struct {
	NearbyShops interface{} `json:"nearbyShops"`
	Page        int         `json:"page"`
	PageSize    int         `json:"pageSize"`
}

// NearbyShopSummary is the narrow /nearOrNot projection.
type NearbyShopSummary struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Address  string     `json:"address"`
	Distance float64    `json:"distance"`
	Unit     string     `json:"unit"`
	ExpireOn model.Date `json:"expireOn"`
}

// NearbyShopDetail is the full /searchNearShop projection: every stored
// field plus the computed distance and the echoed unit label.
type NearbyShopDetail struct {
	model.Shop
	Distance float64 `json:"distance"`
	Unit     string  `json:"unit"`
}

// ShopUpdate is the /modifyShop payload. Nil fields are left unchanged
// on the stored record (partial update, not replace).
type ShopUpdate struct {
	ID               string      `json:"id"`
	Name             *string     `json:"name"`
	Address          *string     `json:"address"`
	Phone            *string     `json:"phone"`
	IsHalalCertified *bool       `json:"isHalalCertified"`
	SocialMediaLink  *string     `json:"socialMediaLink"`
	Latitude         *string     `json:"latitude"`
	Longitude        *string     `json:"longitude"`
	ExpireOn         *model.Date `json:"expireOn"`
	Description      *string     `json:"description"`
	Cluster          *string     `json:"cluster"`
	FoodCategory     *string     `json:"foodCategory"`
	ShopType         *string     `json:"shopType"`
	Remark           *string     `json:"remark"`
	Img1             *string     `json:"img1"`
	Img2             *string     `json:"img2"`
	Img3             *string     `json:"img3"`
	Preserved1       *string     `json:"preserved1"`
	Preserved2       *string     `json:"preserved2"`
}

// Apply copies the non-nil fields onto an existing record. The id is
// immutable and never touched.
func (u *ShopUpdate) Apply(shop *model.Shop) {
	setString(&shop.Name, u.Name)
	setString(&shop.Address, u.Address)
	setString(&shop.Phone, u.Phone)
	if u.IsHalalCertified != nil {
		shop.IsHalalCertified = *u.IsHalalCertified
	}
	setString(&shop.SocialMediaLink, u.SocialMediaLink)
	setString(&shop.Latitude, u.Latitude)
	setString(&shop.Longitude, u.Longitude)
	if u.ExpireOn != nil {
		shop.ExpireOn = *u.ExpireOn
	}
	setString(&shop.Description, u.Description)
	setString(&shop.Cluster, u.Cluster)
	setString(&shop.FoodCategory, u.FoodCategory)
	setString(&shop.ShopType, u.ShopType)
	setString(&shop.Remark, u.Remark)
	setString(&shop.Img1, u.Img1)
	setString(&shop.Img2, u.Img2)
	setString(&shop.Img3, u.Img3)
	setString(&shop.Preserved1, u.Preserved1)
	setString(&shop.Preserved2, u.Preserved2)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
