package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CurrentSchemaVersion is the schema version written by this release
const CurrentSchemaVersion = 1

// DefaultCriticality is assumed for assets that do not declare one
const DefaultCriticality = 3

// ErrInvalidModel wraps every construction-time rejection so callers can
// distinguish model violations from I/O failures.
var ErrInvalidModel = errors.New("invalid project model")

// NewProject constructs a validated Project from raw input. Defaults are
// applied first (generated ids, criticality, direction, schema version),
// then structural and referential invariants are enforced. On any violation
// the project is rejected whole; there is no partial construction.
func NewProject(raw Project) (*Project, error) {
	p := raw
	applyDefaults(&p)

	if err := validateProject(&p); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidModel, err)
	}

	return &p, nil
}

// applyDefaults fills in generated ids and implicit field values
func applyDefaults(p *Project) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.SchemaVersion == 0 {
		p.SchemaVersion = CurrentSchemaVersion
	}

	for zi := range p.Zones {
		zone := &p.Zones[zi]
		for ai := range zone.Assets {
			asset := &zone.Assets[ai]
			if asset.ID == "" {
				asset.ID = uuid.NewString()
			}
			if asset.Criticality == 0 {
				asset.Criticality = DefaultCriticality
			}
		}
	}

	for ci := range p.Conduits {
		conduit := &p.Conduits[ci]
		if conduit.ID == "" {
			conduit.ID = uuid.NewString()
		}
		for fi := range conduit.Flows {
			if conduit.Flows[fi].Direction == "" {
				conduit.Flows[fi].Direction = DirectionBidirectional
			}
		}
	}
}

// Zone returns the zone with the given id, or nil if absent
func (p *Project) Zone(id string) *Zone {
	for i := range p.Zones {
		if p.Zones[i].ID == id {
			return &p.Zones[i]
		}
	}
	return nil
}

// Conduit returns the conduit with the given id, or nil if absent
func (p *Project) Conduit(id string) *Conduit {
	for i := range p.Conduits {
		if p.Conduits[i].ID == id {
			return &p.Conduits[i]
		}
	}
	return nil
}

// ConduitsFor returns every conduit that has the given zone as an endpoint,
// in project order
func (p *Project) ConduitsFor(zoneID string) []*Conduit {
	attached := make([]*Conduit, 0)
	for i := range p.Conduits {
		c := &p.Conduits[i]
		if c.FromZone == zoneID || c.ToZone == zoneID {
			attached = append(attached, c)
		}
	}
	return attached
}

// ZonesOfType returns every zone of the given type, in project order
func (p *Project) ZonesOfType(t ZoneType) []*Zone {
	matched := make([]*Zone, 0)
	for i := range p.Zones {
		if p.Zones[i].Type == t {
			matched = append(matched, &p.Zones[i])
		}
	}
	return matched
}

// HasZoneOfType reports whether any zone of the given type exists
func (p *Project) HasZoneOfType(t ZoneType) bool {
	for i := range p.Zones {
		if p.Zones[i].Type == t {
			return true
		}
	}
	return false
}

// MaxSecurityLevel returns the highest target security level across all
// zones. An empty project defaults to level 1.
func (p *Project) MaxSecurityLevel() int {
	max := 1
	for i := range p.Zones {
		if p.Zones[i].SecurityLevel > max {
			max = p.Zones[i].SecurityLevel
		}
	}
	return max
}

// AssetCount returns the total number of assets across all zones
func (p *Project) AssetCount() int {
	total := 0
	for i := range p.Zones {
		total += len(p.Zones[i].Assets)
	}
	return total
}

// AllowsProtocol reports whether the project's allowlist permits the given
// protocol. An empty allowlist permits nothing through this check; callers
// fall back to the built-in known-protocol list.
func (p *Project) AllowsProtocol(protocol string) bool {
	for _, allowed := range p.Metadata.AllowedProtocols {
		if allowed == protocol {
			return true
		}
	}
	return false
}
