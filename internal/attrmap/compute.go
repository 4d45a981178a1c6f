package attrmap

import (
	"context"
	"fmt"

	"github.com/Sternrassler/eve-attrengine/internal/sde"
	"github.com/Sternrassler/eve-attrengine/pkg/logger"
)

const childName = "attributeCalculator"

// compute implements spec §4.1's compute contract, steps a-j.
func (m *Map) compute(ctx context.Context, attrID int64) (float64, error) {
	meta, err := m.store.Attribute(ctx, attrID)
	if err != nil {
		m.log.Record("error", logger.LogRecord{
			Exception: "MetaError", ItemID: m.holder.ItemType().ID, OffendingID: attrID, ChildName: childName,
		}, "attribute metadata unavailable")
		return 0, fmt.Errorf("%w: attribute %d metadata: %v", ErrNotFound, attrID, err)
	}

	result, ok := m.baseValue(attrID, meta)
	if !ok {
		m.log.Record("warning", logger.LogRecord{
			Exception: "BaseValueError", ItemID: m.holder.ItemType().ID, OffendingID: attrID, ChildName: childName,
		}, "no base value for attribute")
		return 0, fmt.Errorf("%w: attribute %d has no base value", ErrNotFound, attrID)
	}

	affectors, err := m.tracker.GetAffectors(ctx, m.holder, attrID)
	if err != nil {
		return 0, fmt.Errorf("attrmap: get affectors for attribute %d: %w", attrID, err)
	}

	buckets := newOpBuckets()
	for _, aff := range affectors {
		v, err := aff.Source.Attribute(ctx, aff.Modifier.SourceAttributeID)
		if err != nil {
			// Source-read error: the source's own read already logged
			// its root cause. Skip this affector silently.
			continue
		}

		kind, value, ok := normalizeOperator(aff.Modifier.Operator, v)
		if !ok {
			m.log.Record("warning", logger.LogRecord{
				Exception: "OperatorError", ItemID: aff.Source.ItemType().ID,
				OffendingID: int64(aff.Modifier.Operator), ChildName: childName,
			}, "unrecognized operator")
			continue
		}

		penalized := isPenalized(meta, aff.Source.ItemType().CategoryID, aff.Modifier.Operator)
		buckets.add(aff.Modifier.Operator, kind, value, penalized)

		m.tracker.RecordAffectorDependency(m.holder, attrID, aff.Source, aff.Modifier.SourceAttributeID)
	}

	result = buckets.apply(result, meta.HighIsGood)

	if meta.MaxAttributeID != nil {
		capValue, err := m.holder.Attribute(ctx, *meta.MaxAttributeID)
		if err == nil {
			if capValue < result {
				result = capValue
			}
			m.tracker.RecordCapDependency(m.holder, attrID, *meta.MaxAttributeID)
		}
	}

	return result, nil
}

// baseValue is spec §4.1 step b: the item's own override, else the
// attribute's static default.
func (m *Map) baseValue(attrID int64, meta *sde.AttributeMeta) (float64, bool) {
	if v, ok := m.holder.ItemType().Attributes[attrID]; ok {
		return v, true
	}
	if meta.DefaultValue != nil {
		return *meta.DefaultValue, true
	}
	return 0, false
}

// isPenalized implements spec §4.1 step f.
func isPenalized(meta *sde.AttributeMeta, sourceCategoryID int64, op sde.Operator) bool {
	if meta.Stackable {
		return false
	}
	if sde.IsStackingExemptCategory(sourceCategoryID) {
		return false
	}
	switch op {
	case sde.OpPreMul, sde.OpPostMul, sde.OpPostPercent, sde.OpPreDiv, sde.OpPostDiv:
		return true
	default:
		return false
	}
}

// normKind is the normalized aggregation behavior for a bucket.
type normKind int

const (
	normAssignment normKind = iota
	normAddition
	normMultiplication
)

// normalizeOperator implements spec §4.1 step e.
func normalizeOperator(op sde.Operator, v float64) (kind normKind, value float64, ok bool) {
	switch op {
	case sde.OpPreAssignment, sde.OpPostAssignment:
		return normAssignment, v, true
	case sde.OpPreMul, sde.OpPostMul:
		return normMultiplication, v, true
	case sde.OpPreDiv, sde.OpPostDiv:
		if v == 0 {
			return 0, 0, false
		}
		return normMultiplication, 1 / v, true
	case sde.OpPostPercent:
		return normMultiplication, v/100+1, true
	case sde.OpModAdd:
		return normAddition, v, true
	case sde.OpModSub:
		return normAddition, -v, true
	default:
		return 0, 0, false
	}
}

// opBucket holds one operator code's normal and penalized values.
type opBucket struct {
	kind      normKind
	normal    []float64
	penalized []float64
}

// opBuckets groups affector values by original operator code, applied
// in the fixed order spec §4.1 step h requires.
type opBuckets struct {
	buckets map[sde.Operator]*opBucket
}

func newOpBuckets() *opBuckets {
	return &opBuckets{buckets: make(map[sde.Operator]*opBucket)}
}

func (b *opBuckets) add(op sde.Operator, kind normKind, value float64, penalized bool) {
	bucket, ok := b.buckets[op]
	if !ok {
		bucket = &opBucket{kind: kind}
		b.buckets[op] = bucket
	}
	if penalized {
		bucket.penalized = append(bucket.penalized, value)
	} else {
		bucket.normal = append(bucket.normal, value)
	}
}

// operatorOrder is the fixed application order from spec §4.1 step h
// — operator codes 1..9 already sort into exactly this order.
var operatorOrder = []sde.Operator{
	sde.OpPreAssignment, sde.OpPreMul, sde.OpPreDiv, sde.OpModAdd, sde.OpModSub,
	sde.OpPostMul, sde.OpPostDiv, sde.OpPostPercent, sde.OpPostAssignment,
}

func (b *opBuckets) apply(result float64, highIsGood bool) float64 {
	for _, op := range operatorOrder {
		bucket, ok := b.buckets[op]
		if !ok {
			continue
		}

		values := bucket.normal
		if len(bucket.penalized) > 0 {
			combined := append([]float64{}, values...)
			combined = append(combined, stackingPenaltyMultiplier(bucket.penalized))
			values = combined
		}
		if len(values) == 0 {
			continue
		}

		switch bucket.kind {
		case normAssignment:
			best := values[0]
			for _, v := range values[1:] {
				if (highIsGood && v > best) || (!highIsGood && v < best) {
					best = v
				}
			}
			result = best
		case normAddition:
			for _, v := range values {
				result += v
			}
		case normMultiplication:
			for _, v := range values {
				result *= v
			}
		}
	}
	return result
}
