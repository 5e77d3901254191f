package model

import (
	"fmt"
	"strconv"

	"halalshop-backend/internal/geo"
)

// Shop is the single persisted entity: one halal shop listing.
// The id is supplied by the caller, never generated. Latitude and
// longitude are stored as text, mirroring the upstream data source,
// and only parsed when a proximity query needs them.
type Shop struct {
	ID               string `gorm:"column:id;primaryKey;size:50" json:"id"`
	Name             string `gorm:"column:name;size:255" json:"name"`
	Address          string `gorm:"column:address;size:355" json:"address"`
	Phone            string `gorm:"column:phone;size:20" json:"phone"`
	IsHalalCertified bool   `gorm:"column:is_halal_certified" json:"isHalalCertified"`
	SocialMediaLink  string `gorm:"column:social_media_link;size:255" json:"socialMediaLink"`
	Latitude         string `gorm:"column:latitude;size:20" json:"latitude"`
	Longitude        string `gorm:"column:longitude;size:20" json:"longitude"`
	ExpireOn         Date   `gorm:"column:expire_on" json:"expireOn"`
	Description      string `gorm:"column:description;type:text" json:"description"`
	Cluster          string `gorm:"column:cluster;size:50" json:"cluster"`
	FoodCategory     string `gorm:"column:food_category;size:50" json:"foodCategory"`
	ShopType         string `gorm:"column:shop_type;size:100" json:"shopType"`
	Remark           string `gorm:"column:remark;type:text" json:"remark"`
	Img1             string `gorm:"column:img1;type:text" json:"img1"`
	Img2             string `gorm:"column:img2;type:text" json:"img2"`
	Img3             string `gorm:"column:img3;type:text" json:"img3"`
	Preserved1       string `gorm:"column:preserved1;type:text" json:"preserved1"`
	Preserved2       string `gorm:"column:preserved2;size:255" json:"preserved2"`
}

func (Shop) TableName() string { return "shop" }

// Location parses the stored text coordinates. A record with
// unparseable coordinates fails the whole query that touched it.
func (s *Shop) Location() (geo.Point, error) {
	lat, err := strconv.ParseFloat(s.Latitude, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("shop %s: invalid latitude %q", s.ID, s.Latitude)
	}
	lng, err := strconv.ParseFloat(s.Longitude, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("shop %s: invalid longitude %q", s.ID, s.Longitude)
	}
	return geo.Point{Lat: lat, Lng: lng}, nil
}
