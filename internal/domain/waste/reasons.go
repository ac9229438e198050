// Package waste holds the pure domain rules of the disposal workflow: the
// fixed reason catalog and the loss-cost calculation. No I/O, no dependencies
// on the persistence layer.
package waste

// Disposal reason keys. The catalog is fixed; unknown keys are rejected.
const (
	ReasonExpired         = "expired"
	ReasonDamaged         = "damaged"
	ReasonSpoiled         = "spoiled"
	ReasonContaminated    = "contaminated"
	ReasonTheft           = "theft"
	ReasonRecall          = "recall"
	ReasonTechnicalDefect = "technical_defect"
	ReasonOther           = "other"
)

// Severity levels for disposal reasons.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Reason carries the metadata of one disposal reason.
type Reason struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	TaxDeductible bool   `json:"tax_deductible"`
	RequiresPhoto bool   `json:"requires_photo"`
	Severity      string `json:"severity"`
}

// reasons is the fixed catalog. Photo evidence is mandatory where an insurer
// or the manufacturer will ask for it (damage, contamination, recalls).
var reasons = map[string]Reason{
	ReasonExpired:         {ReasonExpired, "Expired (past best-before date)", true, false, SeverityLow},
	ReasonDamaged:         {ReasonDamaged, "Damaged (transport or machine)", true, true, SeverityMedium},
	ReasonSpoiled:         {ReasonSpoiled, "Spoiled (cooling failure)", true, false, SeverityMedium},
	ReasonContaminated:    {ReasonContaminated, "Contaminated", true, true, SeverityCritical},
	ReasonTheft:           {ReasonTheft, "Theft / vandalism", false, false, SeverityHigh},
	ReasonRecall:          {ReasonRecall, "Manufacturer recall", true, true, SeverityHigh},
	ReasonTechnicalDefect: {ReasonTechnicalDefect, "Technical defect (dispensing fault)", true, false, SeverityLow},
	ReasonOther:           {ReasonOther, "Other", false, false, SeverityLow},
}

// LookupReason returns the catalog entry for key.
func LookupReason(key string) (Reason, bool) {
	r, ok := reasons[key]
	return r, ok
}

// Reasons returns the full catalog in stable key order.
func Reasons() []Reason {
	keys := []string{
		ReasonExpired, ReasonDamaged, ReasonSpoiled, ReasonContaminated,
		ReasonTheft, ReasonRecall, ReasonTechnicalDefect, ReasonOther,
	}
	out := make([]Reason, 0, len(keys))
	for _, k := range keys {
		out = append(out, reasons[k])
	}
	return out
}
