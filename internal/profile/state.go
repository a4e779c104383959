package profile

import "fmt"

type Attributes map[Attribute]int

type Checklist map[ChecklistItem]bool

type Equalizer map[EqualizerChannel]int

// ParseChecklist validates raw keys from a request body.
func ParseChecklist(raw map[string]bool) (Checklist, error) {
	out := make(Checklist, len(raw))
	for k, v := range raw {
		item := ChecklistItem(k)
		if !item.IsValid() {
			return nil, &InvalidKeyError{Kind: "checklist item", Key: k}
		}
		out[item] = v
	}
	return out, nil
}

func ParseEqualizer(raw map[string]int) (Equalizer, error) {
	out := make(Equalizer, len(raw))
	for k, v := range raw {
		ch := EqualizerChannel(k)
		if !ch.IsValid() {
			return nil, &InvalidKeyError{Kind: "equalizer channel", Key: k}
		}
		if v < EqualizerMin || v > EqualizerMax {
			return nil, fmt.Errorf("equalizer %s must be between %d and %d", k, EqualizerMin, EqualizerMax)
		}
		out[ch] = v
	}
	return out, nil
}

func ParseAttribute(raw string) (*Attribute, error) {
	if raw == "" {
		return nil, nil
	}
	a := Attribute(raw)
	if !a.IsValid() {
		return nil, &InvalidKeyError{Kind: "attribute", Key: raw}
	}
	return &a, nil
}
