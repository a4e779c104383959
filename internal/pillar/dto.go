package pillar

import "github.com/saulo-duarte/ascend-lambda/internal/progress"

type UpsertPillarDTO struct {
	Today   *int    `json:"today"`
	Desired *int    `json:"desired"`
	Note    *string `json:"note"`
}

type PillarResponse struct {
	Pillar     progress.Pillar `json:"pillar"`
	Today      int             `json:"today"`
	Desired    int             `json:"desired"`
	Gap        int             `json:"gap"`
	Percent    int             `json:"percent"`
	GoalCount  int             `json:"goal_count"`
	Note       string          `json:"note,omitempty"`
	Configured bool            `json:"configured"`
}

type OverviewResponse struct {
	Pillars      []PillarResponse `json:"pillars"`
	CriticalArea *PillarResponse  `json:"critical_area,omitempty"`
}
