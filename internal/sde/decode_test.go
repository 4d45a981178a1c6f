package sde

import "testing"

func TestDecodeModifiers(t *testing.T) {
	raw := []byte(`[
		{"state":2,"context":0,"location":3,"filterType":0,"filterValue":0,"operator":6,"sourceAttributeId":50,"targetAttributeId":51},
		{"state":1,"context":0,"location":1,"filterType":1,"filterValue":0,"operator":4,"sourceAttributeId":30,"targetAttributeId":31}
	]`)

	mods, err := decodeModifiers(raw)
	if err != nil {
		t.Fatalf("decodeModifiers: %v", err)
	}
	if len(mods) != 2 {
		t.Fatalf("got %d modifiers, want 2", len(mods))
	}
	if mods[0].Operator != OpPostMul || mods[0].Location != LocationShip {
		t.Errorf("mods[0] = %+v, unexpected fields", mods[0])
	}
	if mods[1].FilterType != FilterAll || mods[1].State != StateOnline {
		t.Errorf("mods[1] = %+v, unexpected fields", mods[1])
	}
}

func TestDecodeModifiersEmpty(t *testing.T) {
	mods, err := decodeModifiers(nil)
	if err != nil || mods != nil {
		t.Fatalf("decodeModifiers(nil) = %v, %v; want nil, nil", mods, err)
	}
}

func TestDecodeDogmaAttributes(t *testing.T) {
	raw := []byte(`[{"attributeID":38,"value":400},{"attributeID":9,"value":1000000}]`)
	attrs, err := decodeDogmaAttributes(raw)
	if err != nil {
		t.Fatalf("decodeDogmaAttributes: %v", err)
	}
	if attrs[38] != 400 || attrs[9] != 1000000 {
		t.Errorf("attrs = %+v, unexpected values", attrs)
	}
}

func TestDecodeRequiredSkills(t *testing.T) {
	raw := []byte(`{"3336":5,"3337":4}`)
	skills, err := decodeRequiredSkills(raw)
	if err != nil {
		t.Fatalf("decodeRequiredSkills: %v", err)
	}
	if skills[3336] != 5 || skills[3337] != 4 {
		t.Errorf("skills = %+v, unexpected values", skills)
	}
}

func TestDeriveItemTypeHighestStateAndTargeted(t *testing.T) {
	it := &ItemType{
		Attributes: map[int64]float64{},
		Effects: []Effect{
			{Category: EffectPassive},
			{Category: EffectOnline},
			{Category: EffectTarget},
		},
	}
	deriveItemType(it)

	if it.HighestAllowedState != StateActive {
		t.Errorf("HighestAllowedState = %v, want %v", it.HighestAllowedState, StateActive)
	}
	if !it.Targeted {
		t.Error("Targeted = false, want true (type has a Target-category effect)")
	}
	if it.IsCapitalSize {
		t.Error("IsCapitalSize = true, want false (no isCapitalSize attribute set)")
	}
}

func TestDeriveItemTypeCapitalSize(t *testing.T) {
	it := &ItemType{Attributes: map[int64]float64{1785: 1}}
	deriveItemType(it)
	if !it.IsCapitalSize {
		t.Error("IsCapitalSize = false, want true")
	}
}
