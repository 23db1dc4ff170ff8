// Package subscription covers the /preapproval API: recurring payment
// agreements created with or without a subscription plan.
package subscription

import (
	"github.com/mpago/go-mpago/mercadopago"
)

// Status is the lifecycle state of a subscription.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAuthorized Status = "authorized"
	StatusPaused     Status = "paused"
	StatusCancelled  Status = "cancelled"
)

var knownStatuses = map[Status]bool{
	StatusPending: true, StatusAuthorized: true,
	StatusPaused: true, StatusCancelled: true,
}

// FrequencyType is the unit of the recurrence interval.
type FrequencyType string

const (
	FrequencyDays   FrequencyType = "days"
	FrequencyMonths FrequencyType = "months"
)

// FreeTrial grants an initial charge-free period.
type FreeTrial struct {
	Frequency     int           `json:"frequency"`
	FrequencyType FrequencyType `json:"frequency_type"`
}

// AutoRecurring describes the recurrence of a subscription created
// without a plan.
type AutoRecurring struct {
	Frequency         int                    `json:"frequency"`
	FrequencyType     FrequencyType          `json:"frequency_type"`
	StartDate         string                 `json:"start_date,omitempty"`
	EndDate           string                 `json:"end_date,omitempty"`
	CurrencyID        mercadopago.CurrencyID `json:"currency_id"`
	TransactionAmount mercadopago.Amount     `json:"transaction_amount"`
	FreeTrial         *FreeTrial             `json:"free_trial,omitempty"`
}

// Semaphore is MercadoPago's traffic-light health indicator for the
// subscription's charge history.
type Semaphore string

const (
	SemaphoreGreen  Semaphore = "green"
	SemaphoreYellow Semaphore = "yellow"
	SemaphoreRed    Semaphore = "red"
)

// Summarized aggregates the charge history of a subscription.
type Summarized struct {
	Quotas                int                 `json:"quotas,omitempty"`
	ChargeQuantity        int                 `json:"charge_quantity,omitempty"`
	PendingChargeQuantity int                 `json:"pending_charge_quantity,omitempty"`
	ChargedAmount         *mercadopago.Amount `json:"charged_amount,omitempty"`
	PendingChargeAmount   *mercadopago.Amount `json:"pending_charge_amount,omitempty"`
	Semaphore             Semaphore           `json:"semaphore,omitempty"`
	LastChargedDate       string              `json:"last_charged_date,omitempty"`
	LastChargedAmount     *mercadopago.Amount `json:"last_charged_amount,omitempty"`
}

// Subscription is the preapproval resource.
type Subscription struct {
	ID                string         `json:"id"`
	ApplicationID     int64          `json:"application_id"`
	CollectorID       int64          `json:"collector_id"`
	PreapprovalPlanID string         `json:"preapproval_plan_id,omitempty"`
	Reason            string         `json:"reason"`
	ExternalReference string         `json:"external_reference,omitempty"`
	BackURL           string         `json:"back_url"`
	InitPoint         string         `json:"init_point"`
	AutoRecurring     AutoRecurring  `json:"auto_recurring"`
	PayerID           int64          `json:"payer_id"`
	CardID            int64          `json:"card_id,omitempty"`
	PaymentMethodID   string         `json:"payment_method_id,omitempty"`
	NextPaymentDate   string         `json:"next_payment_date,omitempty"`
	DateCreated       string         `json:"date_created,omitempty"`
	LastModified      string         `json:"last_modified,omitempty"`
	Status            Status         `json:"status"`
	Summarized        *Summarized    `json:"summarized,omitempty"`
}

// SearchResult is one page of a subscription search.
type SearchResult = mercadopago.SearchResponse[Subscription]
