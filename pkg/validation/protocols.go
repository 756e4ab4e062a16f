package validation

import "strings"

// knownProtocols is the built-in list of protocols commonly found in
// industrial networks. It backs the allowlist check when a project does not
// declare its own allowed_protocols.
var knownProtocols = map[string]bool{
	"modbus":      true,
	"modbus-tcp":  true,
	"dnp3":        true,
	"ethernet-ip": true,
	"ethernet/ip": true,
	"opc-ua":      true,
	"opc-da":      true,
	"profinet":    true,
	"profibus":    true,
	"iec-104":     true,
	"iec-61850":   true,
	"s7":          true,
	"s7comm":      true,
	"bacnet":      true,
	"hart":        true,
	"cip":         true,
	"mqtt":        true,
	"http":        true,
	"https":       true,
	"ssh":         true,
	"rdp":         true,
	"vnc":         true,
	"ftp":         true,
	"sftp":        true,
	"smb":         true,
	"ntp":         true,
	"dns":         true,
	"snmp":        true,
	"syslog":      true,
	"ldap":        true,
	"sql":         true,
	"postgresql":  true,
	"mysql":       true,
}

// KnownProtocol reports whether the protocol is in the built-in list.
// Matching is case-insensitive.
func KnownProtocol(protocol string) bool {
	return knownProtocols[strings.ToLower(protocol)]
}
