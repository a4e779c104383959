package progress

type Pillar string

const (
	PillarFinancial           Pillar = "financial"
	PillarEmotional           Pillar = "emotional"
	PillarPhysical            Pillar = "physical"
	PillarRelational          Pillar = "relational"
	PillarEnvironment         Pillar = "environment"
	PillarHealth              Pillar = "health"
	PillarPersonalDevelopment Pillar = "personal-development"
)

var AllPillars = []Pillar{
	PillarFinancial,
	PillarEmotional,
	PillarPhysical,
	PillarRelational,
	PillarEnvironment,
	PillarHealth,
	PillarPersonalDevelopment,
}

func (p Pillar) IsValid() bool {
	for _, v := range AllPillars {
		if p == v {
			return true
		}
	}
	return false
}

const (
	ScaleMin = 0
	ScaleMax = 100

	DefaultPillarPercent = 50
)
