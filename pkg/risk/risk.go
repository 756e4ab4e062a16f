// Package risk derives numeric risk scores for zones and projects. Scores
// are deterministic functions of the project graph: asset criticality,
// target security level, and conduit exposure. Nothing is cached; callers
// recompute on demand.
package risk

import (
	"math"

	"github.com/otsec/zonegraph/pkg/model"
)

// Level classifies a 0-100 risk score for display
type Level string

const (
	LevelCritical Level = "critical"
	LevelHigh     Level = "high"
	LevelMedium   Level = "medium"
	LevelLow      Level = "low"
	LevelMinimal  Level = "minimal"
)

// ClassifyLevel maps a score onto a level. The thresholds match the
// dashboard's published bands; engine and presentation must agree.
func ClassifyLevel(score float64) Level {
	switch {
	case score >= 80:
		return LevelCritical
	case score >= 60:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	case score >= 20:
		return LevelLow
	default:
		return LevelMinimal
	}
}

// Factors breaks a zone score down into its weighted contributions
type Factors struct {
	AssetCriticality float64 `json:"asset_criticality"`
	SecurityLevel    float64 `json:"security_level"`
	Exposure         float64 `json:"exposure"`
}

// ZoneRisk is the derived risk for a single zone
type ZoneRisk struct {
	ZoneID  string  `json:"zone_id"`
	Score   float64 `json:"score"`
	Level   Level   `json:"level"`
	Factors Factors `json:"factors"`
}

// Assessment is the derived risk for a whole project
type Assessment struct {
	Score float64    `json:"score"`
	Level Level      `json:"level"`
	Zones []ZoneRisk `json:"zones"`
}

// Component weights. Criticality dominates: what an attacker can reach
// matters more than how they reach it.
const (
	weightCriticality = 0.40
	weightLevel       = 0.35
	weightExposure    = 0.25
)

// CalculateZoneRisk scores one zone in the context of its project. The
// project supplies the conduit topology for the exposure factor.
func CalculateZoneRisk(p *model.Project, zone *model.Zone) ZoneRisk {
	factors := Factors{
		AssetCriticality: criticalityFactor(zone),
		SecurityLevel:    levelFactor(zone),
		Exposure:         exposureFactor(p, zone),
	}

	score := factors.AssetCriticality*weightCriticality +
		factors.SecurityLevel*weightLevel +
		factors.Exposure*weightExposure
	score = round1(score)

	return ZoneRisk{
		ZoneID:  zone.ID,
		Score:   score,
		Level:   ClassifyLevel(score),
		Factors: factors,
	}
}

// AssessProject scores every zone and aggregates. The project score blends
// the worst zone with the asset-weighted mean (70/30); the max term keeps
// the aggregate monotonic, so adding a zone at or above the current project
// score can never lower it.
func AssessProject(p *model.Project) *Assessment {
	assessment := &Assessment{
		Zones: make([]ZoneRisk, 0, len(p.Zones)),
	}

	if len(p.Zones) == 0 {
		assessment.Level = LevelMinimal
		return assessment
	}

	maxScore := 0.0
	weightedSum := 0.0
	totalWeight := 0.0
	for i := range p.Zones {
		zone := &p.Zones[i]
		zr := CalculateZoneRisk(p, zone)
		assessment.Zones = append(assessment.Zones, zr)

		if zr.Score > maxScore {
			maxScore = zr.Score
		}
		// Weight each zone by its asset count; an empty zone still counts
		// once so it cannot vanish from the aggregate.
		weight := float64(len(zone.Assets)) + 1
		weightedSum += zr.Score * weight
		totalWeight += weight
	}

	mean := weightedSum / totalWeight
	assessment.Score = round1(0.7*maxScore + 0.3*mean)
	assessment.Level = ClassifyLevel(assessment.Score)
	return assessment
}

// criticalityFactor normalizes mean asset criticality (1-5) to 0-100. A
// zone with no assets contributes nothing on this axis.
func criticalityFactor(zone *model.Zone) float64 {
	if len(zone.Assets) == 0 {
		return 0
	}
	sum := 0
	for i := range zone.Assets {
		sum += zone.Assets[i].Criticality
	}
	mean := float64(sum) / float64(len(zone.Assets))
	return round1(mean / 5 * 100)
}

// levelFactor maps the target security level inversely onto 0-100: SL 1
// scores 100, SL 4 scores 0.
func levelFactor(zone *model.Zone) float64 {
	return round1(float64(4-zone.SecurityLevel) / 3 * 100)
}

// exposureFactor scores connectivity: each attached conduit widens the
// attack surface, and security level gaps on those conduits widen it
// further. Capped at 100.
func exposureFactor(p *model.Project, zone *model.Zone) float64 {
	conduits := p.ConduitsFor(zone.ID)
	totalGap := 0
	for _, c := range conduits {
		from := p.Zone(c.FromZone)
		to := p.Zone(c.ToZone)
		gap := from.SecurityLevel - to.SecurityLevel
		if gap < 0 {
			gap = -gap
		}
		totalGap += gap
	}

	score := float64(len(conduits))*15 + float64(totalGap)*10
	return round1(math.Min(score, 100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
