package profile

import "fmt"

type Attribute string

const (
	AttributeStrength     Attribute = "strength"
	AttributeIntelligence Attribute = "intelligence"
	AttributeDiscipline   Attribute = "discipline"
	AttributeCharisma     Attribute = "charisma"
	AttributeVitality     Attribute = "vitality"
	AttributeWisdom       Attribute = "wisdom"
)

var AllAttributes = []Attribute{
	AttributeStrength,
	AttributeIntelligence,
	AttributeDiscipline,
	AttributeCharisma,
	AttributeVitality,
	AttributeWisdom,
}

func (a Attribute) IsValid() bool {
	for _, v := range AllAttributes {
		if a == v {
			return true
		}
	}
	return false
}

type ChecklistItem string

const (
	ChecklistWater      ChecklistItem = "water"
	ChecklistExercise   ChecklistItem = "exercise"
	ChecklistMeditation ChecklistItem = "meditation"
	ChecklistReading    ChecklistItem = "reading"
	ChecklistGratitude  ChecklistItem = "gratitude"
	ChecklistSleep      ChecklistItem = "sleep"
	ChecklistPlanning   ChecklistItem = "planning"
)

var AllChecklistItems = []ChecklistItem{
	ChecklistWater,
	ChecklistExercise,
	ChecklistMeditation,
	ChecklistReading,
	ChecklistGratitude,
	ChecklistSleep,
	ChecklistPlanning,
}

func (c ChecklistItem) IsValid() bool {
	for _, v := range AllChecklistItems {
		if c == v {
			return true
		}
	}
	return false
}

type EqualizerChannel string

const (
	EqualizerEnergy EqualizerChannel = "energy"
	EqualizerFocus  EqualizerChannel = "focus"
	EqualizerMood   EqualizerChannel = "mood"
	EqualizerSleep  EqualizerChannel = "sleep"
	EqualizerStress EqualizerChannel = "stress"
	EqualizerSocial EqualizerChannel = "social"
)

var AllEqualizerChannels = []EqualizerChannel{
	EqualizerEnergy,
	EqualizerFocus,
	EqualizerMood,
	EqualizerSleep,
	EqualizerStress,
	EqualizerSocial,
}

const (
	EqualizerMin = 0
	EqualizerMax = 10
)

func (e EqualizerChannel) IsValid() bool {
	for _, v := range AllEqualizerChannels {
		if e == v {
			return true
		}
	}
	return false
}

type InvalidKeyError struct {
	Kind string
	Key  string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Key)
}
