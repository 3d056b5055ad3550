// Package model contains domain models passed between layers.
package model

// Contact holds how a supplier can be reached. The recommendation
// engine never reads it; it exists for catalog completeness.
type Contact struct {
	Email   string
	Phone   string
	Website string
}

// Supplier is a vendor profile considered for matching against an event.
// Price and Location are free text on purpose: suppliers enter values
// like "$85/person" or "Chicago, IL" and the engine normalizes them.
type Supplier struct {
	ID           string
	Name         string
	Category     string
	Description  string
	Rating       float64 // 0.0 to 5.0
	Reviews      int
	Location     string
	Price        string // flat, range "min-max", "/person" or "/hour"
	Availability string
	Tags         []string
	Services     []string
	Contact      Contact
	Verified     bool
}

// VerificationStatus tracks the review state of a verification request.
type VerificationStatus string

// Verification request states.
const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// VerificationRequest is a supplier's application to become a verified
// vendor. Approving it flips Supplier.Verified.
type VerificationRequest struct {
	ID             string
	SupplierID     string
	SupplierName   string
	BusinessName   string
	BusinessAddr   string
	TaxID          string
	LicenseNumber  string
	ContactPerson  string
	ContactEmail   string
	ContactPhone   string
	Documents      []string
	AdditionalInfo string
	Status         VerificationStatus
	SubmittedAt    string
	UpdatedAt      string
}
