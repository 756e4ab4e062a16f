package model

import (
	"errors"
	"testing"
)

func validProject() Project {
	return Project{
		Metadata: Metadata{
			Name:      "Test Plant",
			Standards: []Standard{StandardIEC62443},
		},
		Zones: []Zone{
			{ID: "ent", Name: "Enterprise", Type: ZoneTypeEnterprise, SecurityLevel: 1},
			{ID: "dmz", Name: "DMZ", Type: ZoneTypeDMZ, SecurityLevel: 2},
			{ID: "cell", Name: "Cell", Type: ZoneTypeCell, SecurityLevel: 3, ParentZone: "dmz",
				Assets: []Asset{
					{ID: "plc1", Name: "Main PLC", Type: AssetTypePLC, Criticality: 5},
				},
			},
		},
		Conduits: []Conduit{
			{ID: "c1", FromZone: "ent", ToZone: "dmz",
				Flows: []ProtocolFlow{{Protocol: "https", Port: 443}}},
			{ID: "c2", FromZone: "dmz", ToZone: "cell",
				Flows: []ProtocolFlow{{Protocol: "opc-ua", Port: 4840}}},
		},
	}
}

func TestNewProjectValid(t *testing.T) {
	p, err := NewProject(validProject())
	if err != nil {
		t.Fatalf("NewProject failed: %v", err)
	}

	if p.ID == "" {
		t.Error("expected generated project id")
	}
	if p.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", p.SchemaVersion, CurrentSchemaVersion)
	}
}

func TestNewProjectDefaults(t *testing.T) {
	raw := validProject()
	raw.Zones[2].Assets[0].Criticality = 0
	raw.Zones[2].Assets = append(raw.Zones[2].Assets, Asset{Name: "HMI", Type: AssetTypeHMI})
	raw.Conduits[0].Flows[0].Direction = ""

	p, err := NewProject(raw)
	if err != nil {
		t.Fatalf("NewProject failed: %v", err)
	}

	if got := p.Zones[2].Assets[0].Criticality; got != DefaultCriticality {
		t.Errorf("criticality default = %d, want %d", got, DefaultCriticality)
	}
	if p.Zones[2].Assets[1].ID == "" {
		t.Error("expected generated asset id")
	}
	if got := p.Conduits[0].Flows[0].Direction; got != DirectionBidirectional {
		t.Errorf("direction default = %q, want %q", got, DirectionBidirectional)
	}
}

func TestNewProjectRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Project)
	}{
		{"no standards", func(p *Project) { p.Metadata.Standards = nil }},
		{"unknown standard", func(p *Project) { p.Metadata.Standards = []Standard{"ISO9001"} }},
		{"security level out of range", func(p *Project) { p.Zones[0].SecurityLevel = 5 }},
		{"security level zero", func(p *Project) { p.Zones[0].SecurityLevel = 0 }},
		{"capability below target", func(p *Project) {
			p.Zones[2].SecurityLevel = 3
			p.Zones[2].CapabilityLevel = 2
		}},
		{"duplicate zone id", func(p *Project) { p.Zones[1].ID = "ent" }},
		{"duplicate asset id", func(p *Project) {
			p.Zones[2].Assets = append(p.Zones[2].Assets, Asset{ID: "plc1", Name: "Dup", Type: AssetTypePLC})
		}},
		{"dangling parent zone", func(p *Project) { p.Zones[0].ParentZone = "nope" }},
		{"dangling conduit from_zone", func(p *Project) { p.Conduits[0].FromZone = "nope" }},
		{"dangling conduit to_zone", func(p *Project) { p.Conduits[0].ToZone = "nope" }},
		{"self-loop conduit", func(p *Project) { p.Conduits[0].ToZone = p.Conduits[0].FromZone }},
		{"duplicate conduit id", func(p *Project) { p.Conduits[1].ID = "c1" }},
		{"bad asset type", func(p *Project) { p.Zones[2].Assets[0].Type = "toaster" }},
		{"bad zone type", func(p *Project) { p.Zones[0].Type = "perimeter" }},
		{"criticality out of range", func(p *Project) { p.Zones[2].Assets[0].Criticality = 6 }},
		{"port out of range", func(p *Project) { p.Conduits[0].Flows[0].Port = 70000 }},
		{"bad flow direction", func(p *Project) { p.Conduits[0].Flows[0].Direction = "sideways" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validProject()
			tt.mutate(&raw)
			_, err := NewProject(raw)
			if err == nil {
				t.Fatal("expected construction to fail")
			}
			if !errors.Is(err, ErrInvalidModel) {
				t.Errorf("error does not wrap ErrInvalidModel: %v", err)
			}
		})
	}
}

func TestCapabilityAtOrAboveTarget(t *testing.T) {
	raw := validProject()
	raw.Zones[2].CapabilityLevel = 4
	if _, err := NewProject(raw); err != nil {
		t.Fatalf("SL-C above SL-T should be accepted: %v", err)
	}

	raw = validProject()
	raw.Zones[2].CapabilityLevel = 3
	if _, err := NewProject(raw); err != nil {
		t.Fatalf("SL-C equal to SL-T should be accepted: %v", err)
	}
}

func TestProjectQueries(t *testing.T) {
	p, err := NewProject(validProject())
	if err != nil {
		t.Fatalf("NewProject failed: %v", err)
	}

	if z := p.Zone("dmz"); z == nil || z.Name != "DMZ" {
		t.Errorf("Zone(dmz) = %v", z)
	}
	if z := p.Zone("missing"); z != nil {
		t.Errorf("Zone(missing) = %v, want nil", z)
	}

	attached := p.ConduitsFor("dmz")
	if len(attached) != 2 {
		t.Errorf("ConduitsFor(dmz) = %d conduits, want 2", len(attached))
	}
	if len(p.ConduitsFor("cell")) != 1 {
		t.Error("ConduitsFor(cell) should find one conduit")
	}

	if !p.HasZoneOfType(ZoneTypeDMZ) {
		t.Error("HasZoneOfType(dmz) = false")
	}
	if p.HasZoneOfType(ZoneTypeSafety) {
		t.Error("HasZoneOfType(safety) = true")
	}

	if got := p.MaxSecurityLevel(); got != 3 {
		t.Errorf("MaxSecurityLevel = %d, want 3", got)
	}
	if got := p.AssetCount(); got != 1 {
		t.Errorf("AssetCount = %d, want 1", got)
	}
}

func TestMaxSecurityLevelEmptyProject(t *testing.T) {
	p, err := NewProject(Project{
		Metadata: Metadata{Name: "Empty", Standards: []Standard{StandardIEC62443}},
	})
	if err != nil {
		t.Fatalf("NewProject failed: %v", err)
	}
	if got := p.MaxSecurityLevel(); got != 1 {
		t.Errorf("MaxSecurityLevel on empty project = %d, want 1", got)
	}
}

func TestAllowsProtocol(t *testing.T) {
	raw := validProject()
	raw.Metadata.AllowedProtocols = []string{"opc-ua", "modbus-tcp"}
	p, err := NewProject(raw)
	if err != nil {
		t.Fatalf("NewProject failed: %v", err)
	}

	if !p.AllowsProtocol("opc-ua") {
		t.Error("opc-ua should be allowed")
	}
	if p.AllowsProtocol("telnet") {
		t.Error("telnet should not be allowed")
	}
}
