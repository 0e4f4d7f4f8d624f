package models

// File formats of the read-only provider catalog.

// PrefixEntry maps a 4-digit mobile prefix to its operator and circle.
type PrefixEntry struct {
	Operator string `json:"operator"`
	Circle   string `json:"circle"`
}

// BillerEntry is one biller row of the catalog directory.
type BillerEntry struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Opcode        string           `json:"opcode"`
	Category      ProviderCategory `json:"category"`
	AuxFieldLabel string           `json:"auxFieldLabel,omitempty"`
}

// OperatorEntry is one mobile/DTH operator with its gateway code.
type OperatorEntry struct {
	Name     string           `json:"name"`
	Opcode   string           `json:"opcode"`
	Category ProviderCategory `json:"category"`
}

// Catalog is the parsed, immutable lookup data the resolver consults.
type Catalog struct {
	Prefixes  map[string]PrefixEntry `json:"prefixes"`
	Billers   []BillerEntry          `json:"billers"`
	Operators []OperatorEntry        `json:"operators"`
}

// Descriptor builds the canonical provider descriptor for a biller row.
func (b BillerEntry) Descriptor() ProviderDescriptor {
	opcode := NormalizeOpcode(b.Opcode)
	return ProviderDescriptor{
		ID:                  b.ID,
		DisplayName:         b.Name,
		OperatorCode:        opcode,
		Category:            b.Category,
		SupportsOnlineFetch: opcode != "",
		AuxFieldLabel:       b.AuxFieldLabel,
	}
}

// Descriptor builds the provider descriptor for an operator with the given
// circle. Operators are submit-only: recharges have no online bill fetch.
func (o OperatorEntry) Descriptor(circle string) ProviderDescriptor {
	return ProviderDescriptor{
		ID:                  string(o.Category) + ":" + o.Name,
		DisplayName:         o.Name,
		OperatorCode:        NormalizeOpcode(o.Opcode),
		Category:            o.Category,
		Circle:              circle,
		SupportsOnlineFetch: false,
	}
}
