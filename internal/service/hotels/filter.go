package hotels

import (
	"sort"
	"strings"

	"github.com/Domenick1991/hotelbooking/internal/domain"
)

type SortOption string

const (
	SortRecommended SortOption = ""
	SortPriceAsc    SortOption = "price_asc"
	SortPriceDesc   SortOption = "price_desc"
	SortRating      SortOption = "rating"
)

const (
	DefaultPageSize = 9
	MaxPageSize     = 100
)

// Filter narrows the hotel catalogue. Zero values disable the corresponding criterion.
type Filter struct {
	Query      string
	MinPrice   float64
	MaxPrice   float64
	StarRating []int
	RoomTypes  []string
	Amenities  []string
	Sort       SortOption
	Page       int
	PageSize   int
}

// Page is one page of matching hotels; Total counts all matches.
type Page struct {
	Hotels   []domain.Hotel `json:"hotels"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

func (f Filter) matches(h domain.Hotel) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !containsFold(q, h.Name, h.City, h.State, h.Address, h.Description) {
			return false
		}
	}
	if h.PricePerNight < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && h.PricePerNight > f.MaxPrice {
		return false
	}
	if len(f.StarRating) > 0 && !containsInt(f.StarRating, h.StarRating) {
		return false
	}
	if len(f.RoomTypes) > 0 && !anyOf(f.RoomTypes, h.RoomTypes) {
		return false
	}
	for _, a := range f.Amenities {
		if !containsString(h.Amenities, a) {
			return false
		}
	}
	return true
}

// Apply filters, sorts and paginates hotels. The input slice is not modified.
func Apply(all []domain.Hotel, f Filter) Page {
	matched := make([]domain.Hotel, 0, len(all))
	for _, h := range all {
		if f.matches(h) {
			matched = append(matched, h)
		}
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].PricePerNight < matched[j].PricePerNight })
	case SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].PricePerNight > matched[j].PricePerNight })
	case SortRating:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].StarRating > matched[j].StarRating })
	}

	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	// page-1 is compared before multiplying so huge page numbers cannot overflow.
	if page-1 > len(matched)/size {
		return Page{Hotels: []domain.Hotel{}, Total: len(matched), Page: page, PageSize: size}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	return Page{Hotels: matched[start:end], Total: len(matched), Page: page, PageSize: size}
}

func containsFold(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func anyOf(want, have []string) bool {
	for _, w := range want {
		if containsString(have, w) {
			return true
		}
	}
	return false
}
