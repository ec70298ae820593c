package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/jaevor/go-nanoid"
)

type TransactionStatus string

const (
	StatusPending    TransactionStatus = "PENDING"
	StatusProcessing TransactionStatus = "PROCESSING"
	StatusApproved   TransactionStatus = "APPROVED"
	StatusDeclined   TransactionStatus = "DECLINED"
	StatusError      TransactionStatus = "ERROR"
	StatusCancelled  TransactionStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is expected from status.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusDeclined, StatusError, StatusCancelled:
		return true
	}
	return false
}

// TransactionItem is a priced order line. Items are created together with
// their transaction and never mutated afterwards.
type TransactionItem struct {
	ID           string
	ProductID    string
	ProductName  string
	Quantity     int
	UnitPrice    Money
	LineSubtotal Money
	CreatedAt    time.Time
}

// Transaction is the payment aggregate. It is created PENDING by checkout
// and afterwards mutated only by gateway-driven updates coming from the
// webhook handler or the polling reconciler.
type Transaction struct {
	ID                   string
	TransactionNumber    string
	Status               TransactionStatus
	CustomerID           string
	Subtotal             Money
	BaseFee              Money
	DeliveryFee          Money
	Total                Money
	Items                []TransactionItem
	GatewayTransactionID string
	GatewayStatus        string
	ErrorMessage         string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	ProcessedAt          *time.Time
}

const trxAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewTransactionNumber generates a globally unique client-side reference
// in the form TRX-<epochMillis>-<6 alnum>.
func NewTransactionNumber() string {
	gen, err := nanoid.CustomASCII(trxAlphabet, 6)
	if err != nil {
		// alphabet and length are compile-time constants; CustomASCII
		// only fails on invalid arguments
		panic(err)
	}
	return fmt.Sprintf("TRX-%d-%s", time.Now().UnixMilli(), gen())
}

// MapGatewayStatus folds a raw gateway status string into the internal
// state space. Every entry path into the state machine goes through this
// table so webhook and polled vocabularies cannot diverge. Unknown
// statuses (including the gateway's own PENDING) map to PENDING.
func MapGatewayStatus(raw string) TransactionStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "APPROVED":
		return StatusApproved
	case "DECLINED", "VOIDED":
		return StatusDeclined
	case "ERROR":
		return StatusError
	default:
		return StatusPending
	}
}

// UpdateFromGateway applies a gateway-observed status to the aggregate.
// The gateway transaction id is recorded once, first acknowledgment wins.
// ProcessedAt is stamped on the first gateway-driven update only.
//
// This method is called unconditionally by both reconciliation paths and
// is not itself a re-entry guard: callers must claim the transition with
// TransactionRepository.SaveGatewayResult before running side effects.
func (t *Transaction) UpdateFromGateway(gatewayTransactionID, rawStatus string) TransactionStatus {
	mapped := MapGatewayStatus(rawStatus)

	if t.GatewayTransactionID == "" {
		t.GatewayTransactionID = gatewayTransactionID
	}
	t.GatewayStatus = rawStatus
	t.Status = mapped

	now := time.Now()
	if t.ProcessedAt == nil {
		t.ProcessedAt = &now
	}
	t.UpdatedAt = now

	return mapped
}

// Approve is the direct-set variant used when the incoming status is
// already known to be an approval.
func (t *Transaction) Approve(gatewayTransactionID, gatewayStatus string) {
	t.UpdateFromGateway(gatewayTransactionID, gatewayStatus)
	t.Status = StatusApproved
}

// Decline marks the transaction declined with an optional gateway message.
func (t *Transaction) Decline(gatewayTransactionID, gatewayStatus, errorMessage string) {
	t.UpdateFromGateway(gatewayTransactionID, gatewayStatus)
	t.Status = StatusDeclined
	t.ErrorMessage = errorMessage
}

// SetError records a hard local failure, e.g. the gateway being
// unreachable during the initial submit.
func (t *Transaction) SetError(message string) {
	now := time.Now()
	t.Status = StatusError
	t.ErrorMessage = message
	if t.ProcessedAt == nil {
		t.ProcessedAt = &now
	}
	t.UpdatedAt = now
}
