package model

// ZoneType classifies a zone within the IEC 62443 reference architecture
type ZoneType string

const (
	ZoneTypeEnterprise ZoneType = "enterprise"
	ZoneTypeSite       ZoneType = "site"
	ZoneTypeArea       ZoneType = "area"
	ZoneTypeCell       ZoneType = "cell"
	ZoneTypeDMZ        ZoneType = "dmz"
	ZoneTypeSafety     ZoneType = "safety"
)

// AssetType classifies a device or system contained in a zone
type AssetType string

const (
	AssetTypePLC                    AssetType = "plc"
	AssetTypeHMI                    AssetType = "hmi"
	AssetTypeSCADA                  AssetType = "scada"
	AssetTypeEngineeringWorkstation AssetType = "engineering_workstation"
	AssetTypeHistorian              AssetType = "historian"
	AssetTypeJumpHost               AssetType = "jump_host"
	AssetTypeFirewall               AssetType = "firewall"
	AssetTypeSwitch                 AssetType = "switch"
	AssetTypeRouter                 AssetType = "router"
	AssetTypeServer                 AssetType = "server"
	AssetTypeRTU                    AssetType = "rtu"
	AssetTypeIED                    AssetType = "ied"
	AssetTypeDCS                    AssetType = "dcs"
	AssetTypeOther                  AssetType = "other"
)

// CriticalAssetTypes lists asset types that are inherently critical to the
// controlled process. A zone hosting one of these is expected to carry a
// target security level above the minimum.
var CriticalAssetTypes = map[AssetType]bool{
	AssetTypePLC:   true,
	AssetTypeRTU:   true,
	AssetTypeIED:   true,
	AssetTypeDCS:   true,
	AssetTypeSCADA: true,
}

// FlowDirection indicates the direction of a protocol flow relative to the
// conduit's from_zone endpoint
type FlowDirection string

const (
	DirectionInbound       FlowDirection = "inbound"
	DirectionOutbound      FlowDirection = "outbound"
	DirectionBidirectional FlowDirection = "bidirectional"
)

// Standard identifies a compliance standard a project can be evaluated under
type Standard string

const (
	StandardIEC62443 Standard = "IEC62443"
	StandardPurdue   Standard = "PURDUE"
	StandardNISTCSF  Standard = "NIST_CSF"
	StandardNERCCIP  Standard = "NERC_CIP"
)

// AllStandards returns every supported compliance standard
func AllStandards() []Standard {
	return []Standard{StandardIEC62443, StandardPurdue, StandardNISTCSF, StandardNERCCIP}
}

// Position holds 2D layout coordinates for diagram rendering. The engine
// never reads these; they ride along for presentation consumers.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// ProtocolFlow describes one protocol permitted on a conduit
type ProtocolFlow struct {
	Protocol    string        `yaml:"protocol" json:"protocol" validate:"required"`
	Port        int           `yaml:"port,omitempty" json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Direction   FlowDirection `yaml:"direction,omitempty" json:"direction,omitempty" validate:"omitempty,oneof=inbound outbound bidirectional"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
}

// Asset is a device or system owned by exactly one zone
type Asset struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name" validate:"required"`
	Type        AssetType `yaml:"type" json:"type" validate:"required,oneof=plc hmi scada engineering_workstation historian jump_host firewall switch router server rtu ied dcs other"`
	IPAddress   string    `yaml:"ip_address,omitempty" json:"ip_address,omitempty" validate:"omitempty,ip"`
	MACAddress  string    `yaml:"mac_address,omitempty" json:"mac_address,omitempty" validate:"omitempty,mac"`
	Vendor      string    `yaml:"vendor,omitempty" json:"vendor,omitempty"`
	Model       string    `yaml:"model,omitempty" json:"model,omitempty"`
	Firmware    string    `yaml:"firmware,omitempty" json:"firmware,omitempty"`
	Criticality int       `yaml:"criticality,omitempty" json:"criticality,omitempty" validate:"omitempty,min=1,max=5"`
}

// Zone is a bounded network segment with a uniform target security level
type Zone struct {
	ID              string    `yaml:"id" json:"id" validate:"required"`
	Name            string    `yaml:"name" json:"name" validate:"required"`
	Type            ZoneType  `yaml:"type" json:"type" validate:"required,oneof=enterprise site area cell dmz safety"`
	SecurityLevel   int       `yaml:"security_level" json:"security_level" validate:"required,min=1,max=4"`
	CapabilityLevel int       `yaml:"capability_level,omitempty" json:"capability_level,omitempty" validate:"omitempty,min=1,max=4"`
	ParentZone      string    `yaml:"parent_zone,omitempty" json:"parent_zone,omitempty"`
	Assets          []Asset   `yaml:"assets,omitempty" json:"assets,omitempty" validate:"dive"`
	NetworkSegment  string    `yaml:"network_segment,omitempty" json:"network_segment,omitempty"`
	Position        *Position `yaml:"position,omitempty" json:"position,omitempty"`
}

// Conduit is a permitted communication path between two zones. It references
// its endpoints by zone id only; it does not own them.
type Conduit struct {
	ID                    string         `yaml:"id" json:"id"`
	Name                  string         `yaml:"name,omitempty" json:"name,omitempty"`
	FromZone              string         `yaml:"from_zone" json:"from_zone" validate:"required"`
	ToZone                string         `yaml:"to_zone" json:"to_zone" validate:"required"`
	Flows                 []ProtocolFlow `yaml:"flows,omitempty" json:"flows,omitempty" validate:"dive"`
	RequiredSecurityLevel int            `yaml:"required_security_level,omitempty" json:"required_security_level,omitempty" validate:"omitempty,min=1,max=4"`
	RequiresInspection    bool           `yaml:"requires_inspection,omitempty" json:"requires_inspection,omitempty"`
	Description           string         `yaml:"description,omitempty" json:"description,omitempty"`
}

// Metadata carries project-level descriptive fields and evaluation settings
type Metadata struct {
	Name             string     `yaml:"name" json:"name" validate:"required"`
	Description      string     `yaml:"description,omitempty" json:"description,omitempty"`
	Standards        []Standard `yaml:"standards" json:"standards" validate:"required,min=1,dive,oneof=IEC62443 PURDUE NIST_CSF NERC_CIP"`
	AllowedProtocols []string   `yaml:"allowed_protocols,omitempty" json:"allowed_protocols,omitempty"`
}

// Project is the root aggregate: an ordered set of zones and the conduits
// connecting them. A Project is validated once at construction and treated
// as immutable afterwards; every engine component is a read-only consumer.
type Project struct {
	ID            string    `yaml:"id,omitempty" json:"id,omitempty"`
	SchemaVersion int       `yaml:"schema_version" json:"schema_version"`
	Metadata      Metadata  `yaml:"metadata" json:"metadata"`
	Zones         []Zone    `yaml:"zones,omitempty" json:"zones,omitempty" validate:"dive"`
	Conduits      []Conduit `yaml:"conduits,omitempty" json:"conduits,omitempty" validate:"dive"`
}
