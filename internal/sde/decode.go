package sde

import "encoding/json"

// rawModifier mirrors the modifierInfo JSON column on dogmaEffects,
// one entry per compiled modifier. Field names follow the teacher's
// dogma.ModifierInfo shape, extended with the state/context fields
// this engine's modifier record needs.
type rawModifier struct {
	State              int   `json:"state"`
	Context            int   `json:"context"`
	Location           int   `json:"location"`
	FilterType         int   `json:"filterType"`
	FilterValue        int64 `json:"filterValue"`
	Operator           int   `json:"operator"`
	SourceAttributeID  int64 `json:"sourceAttributeId"`
	TargetAttributeID  int64 `json:"targetAttributeId"`
}

// decodeModifiers decodes an effect's already-compiled modifierInfo
// JSON blob into Modifier records. Malformed JSON is a store-level
// error (the effect can't be loaded at all); individual modifiers
// with unrecognized operators are still decoded here and left for the
// attribute calculator to skip and log per spec §4.1 step e.
func decodeModifiers(raw []byte) ([]Modifier, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var decoded []rawModifier
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	mods := make([]Modifier, 0, len(decoded))
	for _, d := range decoded {
		mods = append(mods, Modifier{
			State:             State(d.State),
			Context:           Context(d.Context),
			Location:          Location(d.Location),
			FilterType:        FilterType(d.FilterType),
			FilterValue:       d.FilterValue,
			Operator:          Operator(d.Operator),
			SourceAttributeID: d.SourceAttributeID,
			TargetAttributeID: d.TargetAttributeID,
		})
	}
	return mods, nil
}

// rawDogmaAttribute mirrors one entry of a type's dogmaAttributes JSON
// column: a static base-value override for one attribute id.
type rawDogmaAttribute struct {
	AttributeID int64   `json:"attributeID"`
	Value       float64 `json:"value"`
}

func decodeDogmaAttributes(raw []byte) (map[int64]float64, error) {
	attrs := make(map[int64]float64)
	if len(raw) == 0 {
		return attrs, nil
	}
	var decoded []rawDogmaAttribute
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	for _, a := range decoded {
		attrs[a.AttributeID] = a.Value
	}
	return attrs, nil
}

// rawEffectRef mirrors one entry of a type's dogmaEffects JSON column.
type rawEffectRef struct {
	EffectID  int64 `json:"effectID"`
	IsDefault bool  `json:"isDefault"`
}

func decodeEffectRefs(raw []byte) ([]rawEffectRef, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var refs []rawEffectRef
	if err := json.Unmarshal(raw, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func decodeRequiredSkills(raw []byte) (map[int64]int, error) {
	skills := make(map[int64]int)
	if len(raw) == 0 {
		return skills, nil
	}
	if err := json.Unmarshal(raw, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// deriveItemType fills in ItemType's derived highest-allowed state,
// targeted flag, and slot kind from its loaded effects, and its
// capital-size flag from its attributes. The required-skills map is
// decoded separately by the stores (decodeRequiredSkills).
func deriveItemType(it *ItemType) {
	it.HighestAllowedState = StateOffline
	it.Targeted = false
	for _, eff := range it.Effects {
		if s := eff.Category.HighestState(); s > it.HighestAllowedState {
			it.HighestAllowedState = s
		}
		if eff.Category == EffectTarget {
			it.Targeted = true
		}
		switch eff.ID {
		case EffectIDHiPower:
			it.SlotKind = SlotHigh
		case EffectIDMedPower:
			it.SlotKind = SlotMed
		case EffectIDLoPower:
			it.SlotKind = SlotLow
		case EffectIDRigSlot:
			it.SlotKind = SlotRig
		}
	}
	const isCapitalSizeAttributeID int64 = 1785
	if v, ok := it.Attributes[isCapitalSizeAttributeID]; ok && v != 0 {
		it.IsCapitalSize = true
	}
}
