// Package resolver maps zone security level targets and the IEC 62443-3-3
// requirement catalog onto concrete recommended controls per zone and
// conduit, plus a project-wide control baseline.
package resolver

import (
	"sort"

	"github.com/otsec/zonegraph/pkg/model"
	"github.com/otsec/zonegraph/pkg/seclevel"
)

// SecurityControl is one recommended control for a zone
type SecurityControl struct {
	ID       string     `json:"id"`
	Category FRCategory `json:"category"`
	Title    string     `json:"title"`
	Priority int        `json:"priority"` // 1 = highest
}

// ZoneProfile holds the controls recommended for one zone at its SL-T
type ZoneProfile struct {
	ZoneID        string            `json:"zone_id"`
	SecurityLevel int               `json:"security_level"`
	Controls      []SecurityControl `json:"controls"`
}

// ConduitProfile holds the derived protection requirements for one conduit
type ConduitProfile struct {
	ConduitID             string   `json:"conduit_id"`
	RequiredSecurityLevel int      `json:"required_security_level"`
	RequiresInspection    bool     `json:"requires_inspection"`
	RequiresEncryption    bool     `json:"requires_encryption"`
	Protocols             []string `json:"protocols"`
	RecommendedControls   []string `json:"recommended_controls"`
}

// Resolution is the full resolver output for a project
type Resolution struct {
	ZoneProfiles     []ZoneProfile    `json:"zone_profiles"`
	ConduitProfiles  []ConduitProfile `json:"conduit_profiles"`
	GlobalControls   []string         `json:"global_controls"`
	MaxSecurityLevel int              `json:"max_security_level"`
}

// Conduit control strings, emitted in this exact precedence
const (
	ControlInspection    = "traffic inspection (DPI or application proxy)"
	ControlEncryption    = "encryption in transit"
	ControlStatefulFW    = "stateful firewall"
	ControlProtocolIDS   = "protocol-aware IDS/IPS"
	ControlExplicitFlows = "define explicit protocol flows"
)

// ResolveSecurityControls derives the recommended control set for every
// zone and conduit in the project, plus the global baseline driven by the
// highest zone SL-T.
func ResolveSecurityControls(p *model.Project) *Resolution {
	res := &Resolution{
		ZoneProfiles:     make([]ZoneProfile, 0, len(p.Zones)),
		ConduitProfiles:  make([]ConduitProfile, 0, len(p.Conduits)),
		MaxSecurityLevel: p.MaxSecurityLevel(),
	}

	for i := range p.Zones {
		res.ZoneProfiles = append(res.ZoneProfiles, resolveZone(&p.Zones[i]))
	}
	for i := range p.Conduits {
		res.ConduitProfiles = append(res.ConduitProfiles, resolveConduit(p, &p.Conduits[i]))
	}
	res.GlobalControls = GlobalControls(res.MaxSecurityLevel)

	return res
}

// resolveZone emits one control per catalog entry applicable at the zone's
// SL-T, ordered by priority and then catalog order.
func resolveZone(zone *model.Zone) ZoneProfile {
	controls := make([]SecurityControl, 0)
	for _, entry := range catalog {
		if entry.MinLevel > zone.SecurityLevel {
			continue
		}
		controls = append(controls, SecurityControl{
			ID:       entry.ID,
			Category: entry.Category,
			Title:    entry.Title,
			Priority: categoryPriority(entry.Category),
		})
	}

	sort.SliceStable(controls, func(i, j int) bool {
		return controls[i].Priority < controls[j].Priority
	})

	return ZoneProfile{
		ZoneID:        zone.ID,
		SecurityLevel: zone.SecurityLevel,
		Controls:      controls,
	}
}

// resolveConduit derives the conduit's required level and the ordered
// recommended control list.
func resolveConduit(p *model.Project, conduit *model.Conduit) ConduitProfile {
	from := p.Zone(conduit.FromZone)
	to := p.Zone(conduit.ToZone)

	required := seclevel.EffectiveConduitLevel(conduit.RequiredSecurityLevel, from.SecurityLevel, to.SecurityLevel)
	needsInspection := conduit.RequiresInspection ||
		seclevel.RequiresInspection(from.SecurityLevel, to.SecurityLevel)
	needsEncryption := seclevel.RequiresEncryption(required)

	protocols := make([]string, 0, len(conduit.Flows))
	for i := range conduit.Flows {
		protocols = append(protocols, conduit.Flows[i].Protocol)
	}

	controls := make([]string, 0)
	if needsInspection {
		controls = append(controls, ControlInspection)
	}
	if needsEncryption {
		controls = append(controls, ControlEncryption)
	}
	if required >= 2 {
		controls = append(controls, ControlStatefulFW)
	}
	if required >= 3 {
		controls = append(controls, ControlProtocolIDS)
	}
	if len(conduit.Flows) == 0 {
		controls = append(controls, ControlExplicitFlows)
	}

	return ConduitProfile{
		ConduitID:             conduit.ID,
		RequiredSecurityLevel: required,
		RequiresInspection:    needsInspection,
		RequiresEncryption:    needsEncryption,
		Protocols:             protocols,
		RecommendedControls:   controls,
	}
}

// GlobalControls returns the project-wide control baseline for the given
// maximum security level. The set only grows with the level: every control
// present at level N is present at N+1.
func GlobalControls(maxSL int) []string {
	controls := []string{
		"network segmentation per zone and conduit model",
		"centralized logging",
	}
	if maxSL >= 2 {
		controls = append(controls, "security monitoring")
	}
	if maxSL >= 3 {
		controls = append(controls,
			"incident response plan",
			"vulnerability management program",
		)
	}
	if maxSL >= 4 {
		controls = append(controls,
			"red team exercises",
			"threat intelligence feeds",
		)
	}
	return controls
}
