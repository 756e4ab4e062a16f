package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// validateProject enforces construction-time invariants: field ranges via
// struct tags, then the referential checks struct tags cannot express.
// The first violation found is returned; construction is all-or-nothing.
func validateProject(p *Project) error {
	if err := validate.Struct(p); err != nil {
		return formatValidationError(err)
	}

	zoneIDs := make(map[string]bool, len(p.Zones))
	for i := range p.Zones {
		zone := &p.Zones[i]
		if zoneIDs[zone.ID] {
			return fmt.Errorf("duplicate zone id %q", zone.ID)
		}
		zoneIDs[zone.ID] = true

		if zone.CapabilityLevel != 0 && zone.CapabilityLevel < zone.SecurityLevel {
			return fmt.Errorf("zone %q: capability level SL-C %d is below target level SL-T %d",
				zone.ID, zone.CapabilityLevel, zone.SecurityLevel)
		}

		assetIDs := make(map[string]bool, len(zone.Assets))
		for ai := range zone.Assets {
			asset := &zone.Assets[ai]
			if assetIDs[asset.ID] {
				return fmt.Errorf("zone %q: duplicate asset id %q", zone.ID, asset.ID)
			}
			assetIDs[asset.ID] = true
		}
	}

	for i := range p.Zones {
		zone := &p.Zones[i]
		if zone.ParentZone == "" {
			continue
		}
		if !zoneIDs[zone.ParentZone] {
			return fmt.Errorf("zone %q: parent zone %q does not exist", zone.ID, zone.ParentZone)
		}
	}

	conduitIDs := make(map[string]bool, len(p.Conduits))
	for i := range p.Conduits {
		conduit := &p.Conduits[i]
		if conduitIDs[conduit.ID] {
			return fmt.Errorf("duplicate conduit id %q", conduit.ID)
		}
		conduitIDs[conduit.ID] = true

		if !zoneIDs[conduit.FromZone] {
			return fmt.Errorf("conduit %q: from_zone %q does not exist", conduit.ID, conduit.FromZone)
		}
		if !zoneIDs[conduit.ToZone] {
			return fmt.Errorf("conduit %q: to_zone %q does not exist", conduit.ID, conduit.ToZone)
		}
		if conduit.FromZone == conduit.ToZone {
			return fmt.Errorf("conduit %q: endpoints must differ, both are %q", conduit.ID, conduit.FromZone)
		}
	}

	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "ip":
			return fmt.Errorf("%s: must be a valid IP address", field)
		case "mac":
			return fmt.Errorf("%s: must be a valid MAC address", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
