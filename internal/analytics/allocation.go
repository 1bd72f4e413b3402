package analytics

import (
	"sort"
	"strings"

	"github.com/niveshai/niveshai-backend/internal/model"
)

// Asset-class buckets, in their canonical order.
const (
	AssetEquity = "equity"
	AssetDebt   = "debt"
	AssetGold   = "gold"
	AssetCash   = "cash"
	AssetOther  = "other"
)

// OthersSector is the sector bucket for investments without a sector.
const OthersSector = "Others"

// AssetClasses lists the buckets in canonical order.
var AssetClasses = []string{AssetEquity, AssetDebt, AssetGold, AssetCash, AssetOther}

var kindToAssetClass = map[string]string{
	model.KindEquity:             AssetEquity,
	model.KindStock:              AssetEquity,
	model.KindEquityFund:         AssetEquity,
	model.KindExchangeTradedFund: AssetEquity,
	model.KindMutualFund:         AssetDebt,
	model.KindBond:               AssetDebt,
	model.KindGoldETF:            AssetGold,
	model.KindGoldFund:           AssetGold,
	model.KindLiquidFund:         AssetCash,
}

// AssetClassOf maps an investment kind to its bucket. Unknown kinds map to "other".
func AssetClassOf(kind string) string {
	if class, ok := kindToAssetClass[strings.ToLower(strings.TrimSpace(kind))]; ok {
		return class
	}
	return AssetOther
}

// IsAssetClass reports whether name is one of the canonical buckets.
func IsAssetClass(name string) bool {
	for _, c := range AssetClasses {
		if c == name {
			return true
		}
	}
	return false
}

// ByAssetClass partitions the current value of p into the five asset-class
// buckets. Every bucket is present in the result, in canonical order.
func ByAssetClass(p *model.Portfolio) []model.AllocationBucket {
	values := make(map[string]float64, len(AssetClasses))
	total := 0.0
	for i := range p.Investments {
		inv := &p.Investments[i]
		values[AssetClassOf(inv.Kind)] += inv.CurrentValue
		total += inv.CurrentValue
	}

	buckets := make([]model.AllocationBucket, 0, len(AssetClasses))
	for _, class := range AssetClasses {
		buckets = append(buckets, model.AllocationBucket{
			Name:       class,
			Value:      values[class],
			Percentage: percentOf(values[class], total),
		})
	}
	return buckets
}

// BySector groups the current value of p by sector label. Labels are used
// verbatim; an empty label goes to "Others". Buckets are ordered by value
// descending, then by name.
func BySector(p *model.Portfolio) []model.AllocationBucket {
	values := make(map[string]float64)
	total := 0.0
	for i := range p.Investments {
		inv := &p.Investments[i]
		sector := inv.Sector
		if strings.TrimSpace(sector) == "" {
			sector = OthersSector
		}
		values[sector] += inv.CurrentValue
		total += inv.CurrentValue
	}

	buckets := make([]model.AllocationBucket, 0, len(values))
	for name, value := range values {
		buckets = append(buckets, model.AllocationBucket{
			Name:       name,
			Value:      value,
			Percentage: percentOf(value, total),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Value != buckets[j].Value {
			return buckets[i].Value > buckets[j].Value
		}
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}

// AllocationMap flattens a bucket slice into name -> percentage.
func AllocationMap(buckets []model.AllocationBucket) map[string]float64 {
	m := make(map[string]float64, len(buckets))
	for _, b := range buckets {
		m[b.Name] = b.Percentage
	}
	return m
}

func largestPercentage(buckets []model.AllocationBucket) float64 {
	largest := 0.0
	for _, b := range buckets {
		if b.Percentage > largest {
			largest = b.Percentage
		}
	}
	return largest
}
