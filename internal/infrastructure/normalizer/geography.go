package normalizer

import (
	"strings"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// Geography classification tables. Freeform province/district strings are
// classified by case-insensitive substring match against known city names.
// Matching is diacritic-sensitive on purpose: the source names are
// Vietnamese and stripping accents would merge distinct provinces.

// cityClass describes one known city/province entry
type cityClass struct {
	names   []string // accepted spellings, matched as substrings
	region  string   // NORTH / CENTRAL / SOUTH
	tier    int      // economic tier, 1 = metropolitan
	isMetro bool
	isUrban bool
	days    int // standard delivery days
}

// metroCities are the five centrally governed cities
var metroCities = []cityClass{
	{names: []string{"Hà Nội", "Ha Noi", "Hanoi"}, region: "NORTH", tier: 1, isMetro: true, isUrban: true, days: 2},
	{names: []string{"Hồ Chí Minh", "Ho Chi Minh", "TP. HCM", "TP.HCM", "HCM"}, region: "SOUTH", tier: 1, isMetro: true, isUrban: true, days: 2},
	{names: []string{"Đà Nẵng", "Da Nang"}, region: "CENTRAL", tier: 1, isMetro: true, isUrban: true, days: 2},
	{names: []string{"Hải Phòng", "Hai Phong"}, region: "NORTH", tier: 1, isMetro: true, isUrban: true, days: 2},
	{names: []string{"Cần Thơ", "Can Tho"}, region: "SOUTH", tier: 1, isMetro: true, isUrban: true, days: 3},
}

// urbanProvinces are industrialized tier-2 provinces
var urbanProvinces = []cityClass{
	{names: []string{"Bình Dương", "Binh Duong"}, region: "SOUTH", tier: 2, isUrban: true, days: 3},
	{names: []string{"Đồng Nai", "Dong Nai"}, region: "SOUTH", tier: 2, isUrban: true, days: 3},
	{names: []string{"Bắc Ninh", "Bac Ninh"}, region: "NORTH", tier: 2, isUrban: true, days: 3},
	{names: []string{"Quảng Ninh", "Quang Ninh"}, region: "NORTH", tier: 2, isUrban: true, days: 3},
	{names: []string{"Khánh Hòa", "Khanh Hoa", "Nha Trang"}, region: "CENTRAL", tier: 2, isUrban: true, days: 3},
	{names: []string{"Thừa Thiên Huế", "Thua Thien Hue", "Huế"}, region: "CENTRAL", tier: 2, isUrban: true, days: 4},
	{names: []string{"Hải Dương", "Hai Duong"}, region: "NORTH", tier: 2, isUrban: true, days: 3},
	{names: []string{"Vũng Tàu", "Bà Rịa", "Ba Ria"}, region: "SOUTH", tier: 2, isUrban: true, days: 3},
}

// northernProvinces anchors region classification for the remaining provinces
var northernProvinces = []string{
	"Lào Cai", "Yên Bái", "Thái Nguyên", "Lạng Sơn", "Phú Thọ", "Vĩnh Phúc",
	"Hưng Yên", "Thái Bình", "Nam Định", "Ninh Bình", "Hà Nam", "Sơn La",
	"Điện Biên", "Cao Bằng", "Hà Giang", "Tuyên Quang", "Bắc Giang", "Hòa Bình",
}

// centralProvinces anchors region classification for the central coast and highlands
var centralProvinces = []string{
	"Thanh Hóa", "Nghệ An", "Hà Tĩnh", "Quảng Bình", "Quảng Trị",
	"Quảng Nam", "Quảng Ngãi", "Bình Định", "Phú Yên", "Ninh Thuận",
	"Bình Thuận", "Kon Tum", "Gia Lai", "Đắk Lắk", "Đắk Nông", "Lâm Đồng",
}

// ClassifyGeography builds the GeographyInfo row for a shipping destination.
// Unknown provinces fall back to tier 3, rural, SOUTH-less region "" and the
// five day delivery standard.
func ClassifyGeography(orderID, province, district string) *canonical.GeographyInfo {
	info := &canonical.GeographyInfo{
		OrderID:         orderID,
		Province:        province,
		District:        district,
		Region:          "",
		IsUrban:         false,
		IsMetro:         false,
		EconomicTier:    3,
		ShippingZone:    "ZONE_REMOTE",
		StdDeliveryDays: 5,
	}

	name := strings.ToLower(strings.TrimSpace(province))
	if name == "" {
		return info
	}

	for _, c := range metroCities {
		if matchesCity(name, c.names) {
			applyClass(info, c)
			info.ShippingZone = "ZONE_METRO"
			return info
		}
	}
	for _, c := range urbanProvinces {
		if matchesCity(name, c.names) {
			applyClass(info, c)
			info.ShippingZone = "ZONE_URBAN"
			return info
		}
	}

	// Remaining provinces: classify region only
	for _, p := range northernProvinces {
		if strings.Contains(name, strings.ToLower(p)) {
			info.Region = "NORTH"
			return info
		}
	}
	for _, p := range centralProvinces {
		if strings.Contains(name, strings.ToLower(p)) {
			info.Region = "CENTRAL"
			return info
		}
	}
	// Everything else in the known list is the Mekong delta and southeast
	info.Region = "SOUTH"
	return info
}

func matchesCity(lowerName string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(lowerName, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

func applyClass(info *canonical.GeographyInfo, c cityClass) {
	info.Region = c.region
	info.EconomicTier = c.tier
	info.IsMetro = c.isMetro
	info.IsUrban = c.isUrban
	info.StdDeliveryDays = c.days
}
