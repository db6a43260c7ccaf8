package catalog

import (
	"math"
	"net/url"

	"github.com/spf13/cast"
)

// SortKey selects the ordering of a product listing. Values match the sort
// codes the storefront sends.
type SortKey string

const (
	SortNone      SortKey = ""  // price ascending, no annotation
	SortPriceAsc  SortKey = "1" // price ascending
	SortPriceDesc SortKey = "2" // price descending
	SortPurchases SortKey = "3" // purchase count descending
	SortReviews   SortKey = "4" // review count descending
	SortRating    SortKey = "5" // average review rating descending
)

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 999999

	// PageSize is the fixed listing page size. Out-of-range pages yield an
	// empty page, not an error.
	PageSize = 10
)

// FilterSpec is the validated listing filter derived from untrusted query
// parameters. Price bounds are whole currency units, inclusive.
type FilterSpec struct {
	MinPrice int
	MaxPrice int
	Sort     SortKey
}

// ParseFilterSpec never fails: malformed, missing or zero price bounds fall
// back to their defaults, and unknown sort codes mean "no sort".
func ParseFilterSpec(values url.Values) FilterSpec {
	spec := FilterSpec{MinPrice: DefaultMinPrice, MaxPrice: DefaultMaxPrice}

	if v, err := cast.ToIntE(values.Get("min_price")); err == nil && v > 0 {
		spec.MinPrice = v
	}
	if v, err := cast.ToIntE(values.Get("max_price")); err == nil && v > 0 {
		spec.MaxPrice = v
	}

	switch s := SortKey(values.Get("sort")); s {
	case SortPriceAsc, SortPriceDesc, SortPurchases, SortReviews, SortRating:
		spec.Sort = s
	default:
		spec.Sort = SortNone
	}
	return spec
}

// maxPage keeps (page-1)*PageSize inside int range.
const maxPage = math.MaxInt / PageSize

// Offset converts a 1-based page number to a row offset. Pages below 1 are
// treated as the first page; pages large enough to overflow are clamped,
// which still lands far past any real data and yields an empty page.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	return (page - 1) * PageSize
}
