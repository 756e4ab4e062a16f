// Package seclevel implements the pure security level arithmetic shared by
// the validator, policy evaluator, and control resolver. Every function is
// total over the IEC 62443 level domain 1-4 and has no failure modes.
package seclevel

// ConduitSecurityLevel returns the security level a conduit between two
// zones must defend to: the level of its more sensitive endpoint.
func ConduitSecurityLevel(fromSL, toSL int) int {
	if fromSL > toSL {
		return fromSL
	}
	return toSL
}

// RequiresInspection reports whether the trust gap between two zones is wide
// enough that traffic crossing the conduit needs deep inspection or proxying
// rather than simple filtering. The threshold is a gap of two levels.
func RequiresInspection(fromSL, toSL int) bool {
	gap := fromSL - toSL
	if gap < 0 {
		gap = -gap
	}
	return gap >= 2
}

// EffectiveConduitLevel returns a conduit's effective required level: the
// explicit override when set, otherwise the level derived from its
// endpoints.
func EffectiveConduitLevel(override, fromSL, toSL int) int {
	if override != 0 {
		return override
	}
	return ConduitSecurityLevel(fromSL, toSL)
}

// RequiresEncryption reports whether traffic on a conduit at the given
// required level must be encrypted. Levels 3 and 4 protect against
// intentional sophisticated attackers; cleartext flows are not acceptable
// there.
func RequiresEncryption(requiredSL int) bool {
	return requiredSL >= 3
}
