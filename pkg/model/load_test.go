package model

import (
	"path/filepath"
	"reflect"
	"testing"
)

const sampleYAML = `
metadata:
  name: Water Treatment
  description: Small water treatment plant
  standards: [IEC62443, NERC_CIP]
  allowed_protocols: [modbus-tcp, opc-ua]
zones:
  - id: scada
    name: SCADA
    type: area
    security_level: 3
    assets:
      - id: scada-1
        name: SCADA Server
        type: scada
        criticality: 5
  - id: intake
    name: Intake Pumps
    type: cell
    security_level: 3
    parent_zone: scada
    assets:
      - id: plc-intake
        name: Intake PLC
        type: plc
        ip_address: 10.10.1.5
conduits:
  - id: scada-intake
    from_zone: scada
    to_zone: intake
    flows:
      - protocol: modbus-tcp
        port: 502
        direction: outbound
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if p.Metadata.Name != "Water Treatment" {
		t.Errorf("name = %q", p.Metadata.Name)
	}
	if len(p.Zones) != 2 || len(p.Conduits) != 1 {
		t.Fatalf("got %d zones, %d conduits", len(p.Zones), len(p.Conduits))
	}
	if p.Zones[1].ParentZone != "scada" {
		t.Errorf("parent_zone = %q", p.Zones[1].ParentZone)
	}
	if got := p.Conduits[0].Flows[0].Direction; got != DirectionOutbound {
		t.Errorf("direction = %q, want outbound", got)
	}
	expected := []Standard{StandardIEC62443, StandardNERCCIP}
	if !reflect.DeepEqual(p.Metadata.Standards, expected) {
		t.Errorf("standards = %v, want %v", p.Metadata.Standards, expected)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	bad := `
metadata:
  name: Broken
  standards: [IEC62443]
zones:
  - id: a
    name: A
    type: cell
    security_level: 9
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected out-of-range security level to be rejected")
	}

	if _, err := Parse([]byte("{not yaml")); err == nil {
		t.Fatal("expected malformed yaml to be rejected")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(p, loaded) {
		t.Error("round-tripped project differs from original")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
