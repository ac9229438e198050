package dto

// Scanner actions dispatched after a barcode scan.
const (
	ScanActionSell      = "sell"
	ScanActionRestock   = "restock"
	ScanActionDispose   = "dispose"
	ScanActionCreateNew = "create-new"
)

// ScanActionRequest body for POST /api/scanner/action.
type ScanActionRequest struct {
	Action    string `json:"action" validate:"required"`
	Barcode   string `json:"barcode" validate:"required"`
	Quantity  int    `json:"quantity"`
	MachineID string `json:"machine_id,omitempty"` // required for sell
	Reason    string `json:"reason,omitempty"`     // required for dispose
	Name      string `json:"name,omitempty"`       // used by create-new
}

// ScanActionResponse outcome of a dispatched scan.
type ScanActionResponse struct {
	Action   string           `json:"action"`
	Product  *ProductResponse `json:"product,omitempty"`
	NewStock int              `json:"new_stock"`
	Detail   string           `json:"detail,omitempty"`
}
