package model

// OfferStatus tracks an offer through review and payment.
type OfferStatus string

// Offer states.
const (
	OfferPending  OfferStatus = "pending"
	OfferApproved OfferStatus = "approved"
	OfferRejected OfferStatus = "rejected"
	OfferPaid     OfferStatus = "paid"
)

// PlanType selects the payment plan for an approved offer.
type PlanType string

// Payment plans. Premium requires a 50% deposit up front, basic is
// settled after the service.
const (
	PlanBasic   PlanType = "basic"
	PlanPremium PlanType = "premium"
)

// premiumThreshold is the offer amount at which the premium plan applies.
const premiumThreshold = 5000

// PaymentMethod enumerates accepted payment channels.
type PaymentMethod string

// Accepted payment methods.
const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentPaypal       PaymentMethod = "paypal"
)

// Offer is a supplier's bid for servicing an event.
type Offer struct {
	ID           string
	SupplierID   string
	SupplierName string
	EventID      string
	EventName    string
	Services     []string
	Amount       float64
	Status       OfferStatus
	CreatedAt    string
	Description  string
}

// Plan returns the payment plan an offer amount falls under.
func (o *Offer) Plan() PlanType {
	if o.Amount >= premiumThreshold {
		return PlanPremium
	}
	return PlanBasic
}
