package e2e

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otsec/zonegraph/pkg/compliance"
	"github.com/otsec/zonegraph/pkg/model"
	"github.com/otsec/zonegraph/pkg/policy"
	"github.com/otsec/zonegraph/pkg/resolver"
	"github.com/otsec/zonegraph/pkg/risk"
	"github.com/otsec/zonegraph/pkg/validation"
)

// refineryProject builds a small but realistic refinery model: enterprise
// IT, a DMZ, a supervisory area, two control cells, and a safety zone.
func refineryProject(t *testing.T) *model.Project {
	t.Helper()
	p, err := model.NewProject(model.Project{
		Metadata: model.Metadata{
			Name:        "Refinery North",
			Description: "Crude unit segmentation model",
			Standards:   []model.Standard{model.StandardIEC62443, model.StandardPurdue},
		},
		Zones: []model.Zone{
			{ID: "enterprise", Name: "Enterprise IT", Type: model.ZoneTypeEnterprise, SecurityLevel: 1,
				Assets: []model.Asset{
					{ID: "erp", Name: "ERP Server", Type: model.AssetTypeServer, Criticality: 2},
				}},
			{ID: "dmz", Name: "Industrial DMZ", Type: model.ZoneTypeDMZ, SecurityLevel: 2,
				Assets: []model.Asset{
					{ID: "hist", Name: "Historian Mirror", Type: model.AssetTypeHistorian, Criticality: 3},
				}},
			{ID: "supervisory", Name: "Supervisory", Type: model.ZoneTypeArea, SecurityLevel: 2,
				Assets: []model.Asset{
					{ID: "scada1", Name: "SCADA Primary", Type: model.AssetTypeSCADA, Criticality: 4},
					{ID: "eng1", Name: "Engineering Workstation", Type: model.AssetTypeEngineeringWorkstation, Criticality: 3},
				}},
			{ID: "cdu-cell", Name: "Crude Unit Cell", Type: model.ZoneTypeCell, SecurityLevel: 3,
				ParentZone: "supervisory",
				Assets: []model.Asset{
					{ID: "plc1", Name: "CDU PLC", Type: model.AssetTypePLC, Criticality: 5},
				}},
			{ID: "sis", Name: "Safety Instrumented System", Type: model.ZoneTypeSafety, SecurityLevel: 4,
				Assets: []model.Asset{
					{ID: "sis1", Name: "SIS Logic Solver", Type: model.AssetTypePLC, Criticality: 5},
				}},
		},
		Conduits: []model.Conduit{
			{ID: "ent-dmz", FromZone: "enterprise", ToZone: "dmz",
				Flows: []model.ProtocolFlow{{Protocol: "https"}}},
			{ID: "dmz-sup", FromZone: "dmz", ToZone: "supervisory",
				Flows: []model.ProtocolFlow{{Protocol: "opc-ua"}}},
			{ID: "sup-cdu", FromZone: "supervisory", ToZone: "cdu-cell", RequiresInspection: true,
				Flows: []model.ProtocolFlow{{Protocol: "modbus-tcp"}}},
			{ID: "cdu-sis", FromZone: "cdu-cell", ToZone: "sis", RequiresInspection: true,
				Flows: []model.ProtocolFlow{{Protocol: "hart"}}},
		},
	})
	require.NoError(t, err)
	return p
}

// TestFullEnginePipeline runs every engine stage against one project and
// checks the outputs agree with each other.
func TestFullEnginePipeline(t *testing.T) {
	p := refineryProject(t)

	t.Log("Step 1: validating")
	report := validation.ValidateProject(p, false)
	require.NotNil(t, report)
	assert.True(t, report.Valid, "refinery model should carry no errors")
	assert.Zero(t, report.ErrorCount)

	t.Log("Step 2: risk assessment")
	assessment := risk.AssessProject(p)
	require.NotNil(t, assessment)
	assert.Len(t, assessment.Zones, len(p.Zones))
	assert.GreaterOrEqual(t, assessment.Score, 0.0)
	assert.LessOrEqual(t, assessment.Score, 100.0)
	assert.Equal(t, risk.ClassifyLevel(assessment.Score), assessment.Level)
	for _, zr := range assessment.Zones {
		assert.NotNil(t, p.Zone(zr.ZoneID), "zone risk references unknown zone %s", zr.ZoneID)
		assert.Equal(t, risk.ClassifyLevel(zr.Score), zr.Level)
	}

	t.Log("Step 3: policy evaluation")
	violations := policy.EvaluatePolicies(p)
	require.NotNil(t, violations)
	assert.Empty(t, violations, "refinery model should be policy clean")

	t.Log("Step 4: control resolution")
	res := resolver.ResolveSecurityControls(p)
	require.NotNil(t, res)
	assert.Equal(t, 4, res.MaxSecurityLevel)
	assert.Len(t, res.ZoneProfiles, len(p.Zones))
	assert.Len(t, res.ConduitProfiles, len(p.Conduits))
	assert.Contains(t, res.GlobalControls, "red team exercises")

	for _, cp := range res.ConduitProfiles {
		conduit := p.Conduit(cp.ConduitID)
		require.NotNil(t, conduit)
		if cp.RequiresInspection {
			assert.Contains(t, cp.RecommendedControls, resolver.ControlInspection)
		}
		if cp.RequiresEncryption {
			assert.Contains(t, cp.RecommendedControls, resolver.ControlEncryption)
		}
	}
}

// TestRoundTripDeterminism saves the project to YAML, loads it back, and
// verifies every engine produces byte-identical JSON output for the copy.
func TestRoundTripDeterminism(t *testing.T) {
	p := refineryProject(t)

	path := filepath.Join(t.TempDir(), "refinery.yaml")
	require.NoError(t, p.Save(path))

	reloaded, err := model.Load(path)
	require.NoError(t, err)
	require.Equal(t, p.ID, reloaded.ID)

	engines := []struct {
		name string
		run  func(*model.Project) any
	}{
		{"validation", func(p *model.Project) any { return validation.ValidateProject(p, false) }},
		{"risk", func(p *model.Project) any { return risk.AssessProject(p) }},
		{"policy", func(p *model.Project) any { return policy.EvaluatePolicies(p) }},
		{"resolver", func(p *model.Project) any { return resolver.ResolveSecurityControls(p) }},
	}

	for _, engine := range engines {
		t.Run(engine.name, func(t *testing.T) {
			original, err := json.Marshal(engine.run(p))
			require.NoError(t, err)
			roundTripped, err := json.Marshal(engine.run(reloaded))
			require.NoError(t, err)
			assert.Equal(t, string(original), string(roundTripped))
		})
	}
}

// TestBrokenPlantWorkflow walks the assess-fix-reassess loop an engineer
// would run against a deliberately flawed model.
func TestBrokenPlantWorkflow(t *testing.T) {
	build := func(withDMZ bool, sisLevel int) *model.Project {
		zones := []model.Zone{
			{ID: "enterprise", Name: "Enterprise", Type: model.ZoneTypeEnterprise, SecurityLevel: 1},
			{ID: "cell", Name: "Cell", Type: model.ZoneTypeCell, SecurityLevel: 3,
				Assets: []model.Asset{{ID: "plc", Name: "PLC", Type: model.AssetTypePLC, Criticality: 5}}},
			{ID: "sis", Name: "SIS", Type: model.ZoneTypeSafety, SecurityLevel: sisLevel},
		}
		conduits := []model.Conduit{
			{ID: "ent-cell", FromZone: "enterprise", ToZone: "cell", RequiresInspection: true,
				Flows: []model.ProtocolFlow{{Protocol: "opc-ua"}}},
		}
		if withDMZ {
			zones = append(zones, model.Zone{ID: "dmz", Name: "DMZ", Type: model.ZoneTypeDMZ, SecurityLevel: 2})
		}
		p, err := model.NewProject(model.Project{
			Metadata: model.Metadata{Name: "Broken", Standards: []model.Standard{model.StandardIEC62443}},
			Zones:    zones,
			Conduits: conduits,
		})
		require.NoError(t, err)
		return p
	}

	t.Log("Step 1: assess the flawed model")
	broken := build(false, 2)
	violations := policy.EvaluatePolicies(broken)
	ruleIDs := make(map[string]bool)
	for _, v := range violations {
		ruleIDs[v.RuleID] = true
	}
	assert.True(t, ruleIDs[policy.RuleDMZRequired])
	assert.True(t, ruleIDs[policy.RuleSafetySLFloor])

	t.Log("Step 2: compose the compliance report")
	full := compliance.BuildReport(broken, false)
	require.NotNil(t, full.Validation)
	assert.Len(t, full.Violations, len(violations))
	narrowed := full.ForStandard(model.StandardPurdue)
	for _, r := range narrowed.Validation.Results {
		assert.Contains(t, compliance.StandardsForCheck(r.Code), model.StandardPurdue)
	}

	t.Log("Step 3: reassess after adding the DMZ tier")
	// The policy gaps close, but the validator now flags the surviving
	// enterprise-to-cell conduit as a bypass of the new DMZ.
	fixed := build(true, 3)
	violations = policy.EvaluatePolicies(fixed)
	for _, v := range violations {
		assert.NotEqual(t, policy.RuleDMZRequired, v.RuleID)
		assert.NotEqual(t, policy.RuleSafetySLFloor, v.RuleID)
	}

	report := validation.ValidateProject(fixed, false)
	assert.False(t, report.Valid)
	codes := make(map[string]int)
	for _, r := range report.Results {
		codes[r.Code]++
	}
	assert.Equal(t, 1, codes[validation.CodeDMZBypass])
}
