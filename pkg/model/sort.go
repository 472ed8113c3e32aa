package model

import (
	"fmt"
	"sort"
	"time"
)

// CompareValues imposes a null-safe total order on field values: nil or
// missing sorts before any present value, then values are grouped by kind
// (bool, number, time, string, everything else) and compared within the
// kind. Cross-kind comparisons fall back to the kind rank so the order
// stays total.
func CompareValues(a, b interface{}) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case rankBool:
		ab, bb := a.(bool), b.(bool)
		if ab == bb {
			return 0
		}
		if !ab {
			return -1
		}
		return 1
	case rankNumber:
		af, bf := toFloat(a), toFloat(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	case rankTime:
		at, bt := a.(time.Time), b.(time.Time)
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		}
		return 0
	case rankString:
		as, bs := a.(string), b.(string)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		}
		return 0
	default:
		as, bs := fmt.Sprint(a), fmt.Sprint(b)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		}
		return 0
	}
}

const (
	rankBool = iota
	rankNumber
	rankTime
	rankString
	rankOther
)

func kindRank(v interface{}) int {
	switch v.(type) {
	case bool:
		return rankBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return rankNumber
	case time.Time:
		return rankTime
	case string:
		return rankString
	default:
		return rankOther
	}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// Compare orders two quotes by the full multi-key sort spec. The first key
// that differs decides; equal quotes compare as 0.
func (s SortSpec) Compare(a, b *Quote) int {
	for _, key := range s {
		av, aok := a.Value(key.Field)
		bv, bok := b.Value(key.Field)
		if !aok {
			av = nil
		}
		if !bok {
			bv = nil
		}
		cmp := CompareValues(av, bv)
		if cmp == 0 {
			continue
		}
		if key.Desc {
			return -cmp
		}
		return cmp
	}
	return 0
}

// Sort orders quotes in place. The sort is stable: quotes equal under the
// spec keep their incoming order, which the merge layer relies on for
// first-occurrence-wins semantics.
func (s SortSpec) Sort(quotes []*Quote) {
	if len(s) == 0 {
		return
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		return s.Compare(quotes[i], quotes[j]) < 0
	})
}
