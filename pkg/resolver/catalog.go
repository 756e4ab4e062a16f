package resolver

// FRCategory is one of IEC 62443's seven foundational requirement
// categories
type FRCategory string

const (
	FRIdentificationAuth  FRCategory = "identification_access_control"
	FRUseControl          FRCategory = "use_control"
	FRSystemIntegrity     FRCategory = "system_integrity"
	FRDataConfidentiality FRCategory = "data_confidentiality"
	FRRestrictedDataFlow  FRCategory = "restricted_data_flow"
	FRTimelyResponse      FRCategory = "timely_response"
	FRResourceAvail       FRCategory = "resource_availability"
)

// CatalogEntry is one system requirement from the IEC 62443-3-3 catalog.
// MinLevel is the lowest target security level at which the requirement
// applies; requirements are cumulative, so a zone picks up every entry at
// or below its SL-T.
type CatalogEntry struct {
	ID       string     `json:"id"`
	Category FRCategory `json:"category"`
	Title    string     `json:"title"`
	MinLevel int        `json:"min_level"`
}

// catalog is the static requirement catalog, in IEC 62443-3-3 numbering
// order.
var catalog = []CatalogEntry{
	{ID: "SR-1.1", Category: FRIdentificationAuth, Title: "Human user identification and authentication", MinLevel: 1},
	{ID: "SR-1.2", Category: FRIdentificationAuth, Title: "Software process and device identification", MinLevel: 2},
	{ID: "SR-1.5", Category: FRIdentificationAuth, Title: "Authenticator management", MinLevel: 2},
	{ID: "SR-1.13", Category: FRIdentificationAuth, Title: "Access via untrusted networks", MinLevel: 3},
	{ID: "SR-2.1", Category: FRUseControl, Title: "Authorization enforcement", MinLevel: 1},
	{ID: "SR-2.8", Category: FRUseControl, Title: "Auditable events", MinLevel: 2},
	{ID: "SR-2.11", Category: FRUseControl, Title: "Timestamps", MinLevel: 3},
	{ID: "SR-3.1", Category: FRSystemIntegrity, Title: "Communication integrity", MinLevel: 1},
	{ID: "SR-3.2", Category: FRSystemIntegrity, Title: "Malicious code protection", MinLevel: 2},
	{ID: "SR-3.4", Category: FRSystemIntegrity, Title: "Software and information integrity", MinLevel: 3},
	{ID: "SR-4.1", Category: FRDataConfidentiality, Title: "Information confidentiality", MinLevel: 2},
	{ID: "SR-4.3", Category: FRDataConfidentiality, Title: "Use of cryptography", MinLevel: 3},
	{ID: "SR-5.1", Category: FRRestrictedDataFlow, Title: "Network segmentation", MinLevel: 1},
	{ID: "SR-5.2", Category: FRRestrictedDataFlow, Title: "Zone boundary protection", MinLevel: 2},
	{ID: "SR-5.4", Category: FRRestrictedDataFlow, Title: "Application partitioning", MinLevel: 3},
	{ID: "SR-6.1", Category: FRTimelyResponse, Title: "Audit log accessibility", MinLevel: 2},
	{ID: "SR-6.2", Category: FRTimelyResponse, Title: "Continuous monitoring", MinLevel: 3},
	{ID: "SR-7.1", Category: FRResourceAvail, Title: "Denial of service protection", MinLevel: 2},
	{ID: "SR-7.3", Category: FRResourceAvail, Title: "Control system backup", MinLevel: 1},
	{ID: "SR-7.6", Category: FRResourceAvail, Title: "Network and security configuration settings", MinLevel: 2},
}

// Catalog returns the full requirement catalog in numbering order
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// categoryPriority fixes the implementation priority of a control by its
// foundational requirement category: restricting data flow comes before
// everything else, then knowing who does what, then keeping systems intact
// and responsive.
func categoryPriority(category FRCategory) int {
	switch category {
	case FRRestrictedDataFlow:
		return 1
	case FRIdentificationAuth, FRUseControl:
		return 2
	case FRSystemIntegrity, FRTimelyResponse:
		return 3
	default:
		return 4
	}
}
