package validation

import (
	"fmt"
	"strings"

	"github.com/otsec/zonegraph/pkg/model"
)

// zoneCircularRefCheck detects cycles in the zone parent hierarchy using
// DFS with three-color marking. Every zone has at most one parent link, so
// each walk follows a single chain; a revisit of a GRAY zone is a back edge
// closing a cycle. One diagnostic is emitted per distinct cycle, not one
// per participating zone.
type zoneCircularRefCheck struct{}

func (zoneCircularRefCheck) Code() string { return CodeZoneCircularRef }

func (zoneCircularRefCheck) Run(p *model.Project) []Result {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current walk
		black = 2 // finished
	)

	color := make(map[string]int, len(p.Zones))
	results := make([]Result, 0)

	for i := range p.Zones {
		start := p.Zones[i].ID
		if color[start] != white {
			continue
		}

		path := make([]string, 0, 4)
		current := start
		for current != "" && color[current] == white {
			color[current] = gray
			path = append(path, current)
			current = p.Zone(current).ParentZone
		}

		if current != "" && color[current] == gray {
			// Back edge into the current walk: the cycle is the path
			// suffix starting at the revisited zone.
			cycleStart := 0
			for j, id := range path {
				if id == current {
					cycleStart = j
					break
				}
			}
			cycle := path[cycleStart:]
			results = append(results, Result{
				Severity: SeverityError,
				Code:     CodeZoneCircularRef,
				Message: fmt.Sprintf("circular parent reference: %s -> %s",
					strings.Join(cycle, " -> "), cycle[0]),
				Location: "zone/" + cycle[0],
			})
		}

		for _, id := range path {
			color[id] = black
		}
	}

	return results
}

// criticalAssetLowSLCheck flags zones that host inherently critical asset
// types while targeting the minimum security level.
type criticalAssetLowSLCheck struct{}

func (criticalAssetLowSLCheck) Code() string { return CodeCriticalAssetLowSL }

func (criticalAssetLowSLCheck) Run(p *model.Project) []Result {
	results := make([]Result, 0)
	for i := range p.Zones {
		zone := &p.Zones[i]
		if zone.SecurityLevel != 1 {
			continue
		}
		for ai := range zone.Assets {
			asset := &zone.Assets[ai]
			if model.CriticalAssetTypes[asset.Type] {
				results = append(results, Result{
					Severity: SeverityWarning,
					Code:     CodeCriticalAssetLowSL,
					Message: fmt.Sprintf("zone %q contains critical asset %q (%s) but targets SL 1",
						zone.ID, asset.Name, asset.Type),
					Location: "zone/" + zone.ID,
				})
			}
		}
	}
	return results
}

// safetyAssetTypes are the asset types expected inside a safety zone.
// Safety zones hold the safety instrumented system and nothing else.
var safetyAssetTypes = map[model.AssetType]bool{
	model.AssetTypePLC:   true,
	model.AssetTypeRTU:   true,
	model.AssetTypeIED:   true,
	model.AssetTypeOther: true,
}

// safetyZoneAssetCheck flags assets inside a safety zone whose type does
// not belong there.
type safetyZoneAssetCheck struct{}

func (safetyZoneAssetCheck) Code() string { return CodeSafetyZoneNonSafetyAsset }

func (safetyZoneAssetCheck) Run(p *model.Project) []Result {
	results := make([]Result, 0)
	for i := range p.Zones {
		zone := &p.Zones[i]
		if zone.Type != model.ZoneTypeSafety {
			continue
		}
		for ai := range zone.Assets {
			asset := &zone.Assets[ai]
			if !safetyAssetTypes[asset.Type] {
				results = append(results, Result{
					Severity: SeverityWarning,
					Code:     CodeSafetyZoneNonSafetyAsset,
					Message: fmt.Sprintf("safety zone %q contains non-safety asset %q (%s)",
						zone.ID, asset.Name, asset.Type),
					Location: "zone/" + zone.ID,
				})
			}
		}
	}
	return results
}

// zoneNoConduitsCheck reports zones that participate in no conduit at all.
// An unconnected zone is often a modeling gap rather than a real air gap.
type zoneNoConduitsCheck struct{}

func (zoneNoConduitsCheck) Code() string { return CodeZoneNoConduits }

func (zoneNoConduitsCheck) Run(p *model.Project) []Result {
	results := make([]Result, 0)
	for i := range p.Zones {
		zone := &p.Zones[i]
		if len(p.ConduitsFor(zone.ID)) == 0 {
			results = append(results, Result{
				Severity: SeverityInfo,
				Code:     CodeZoneNoConduits,
				Message:  fmt.Sprintf("zone %q is not connected to any conduit", zone.ID),
				Location: "zone/" + zone.ID,
			})
		}
	}
	return results
}
