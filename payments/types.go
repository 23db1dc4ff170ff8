package payments

import (
	"github.com/mpago/go-mpago/mercadopago"
)

// Status is the lifecycle state of a payment.
type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusAuthorized  Status = "authorized"
	StatusInProcess   Status = "in_process"
	StatusInMediation Status = "in_mediation"
	StatusRejected    Status = "rejected"
	StatusCancelled   Status = "cancelled"
	StatusRefunded    Status = "refunded"
	StatusChargedBack Status = "charged_back"
)

var knownStatuses = map[Status]bool{
	StatusPending: true, StatusApproved: true, StatusAuthorized: true,
	StatusInProcess: true, StatusInMediation: true, StatusRejected: true,
	StatusCancelled: true, StatusRefunded: true, StatusChargedBack: true,
}

// MethodID identifies the payment method selected for a payment.
// See /v1/payment_methods for the per-country list.
type MethodID string

const (
	MethodPix          MethodID = "pix"
	MethodElo          MethodID = "elo"
	MethodVisa         MethodID = "visa"
	MethodMaster       MethodID = "master"
	MethodHipercard    MethodID = "hipercard"
	MethodAmex         MethodID = "amex"
	MethodCabal        MethodID = "cabal"
	MethodMeliplaces   MethodID = "meliplaces"
	MethodBoleto       MethodID = "bolbradesco"
	MethodDebVisa      MethodID = "debvisa"
	MethodDebElo       MethodID = "debelo"
	MethodDebMaster    MethodID = "debmaster"
	MethodDebCabal     MethodID = "debcabal"
	MethodMaestro      MethodID = "maestro"
	MethodAccountMoney MethodID = "account_money"
	MethodLoterica     MethodID = "pec"
)

var cardMethods = map[MethodID]bool{
	MethodElo: true, MethodVisa: true, MethodMaster: true,
	MethodHipercard: true, MethodAmex: true, MethodCabal: true,
	MethodDebVisa: true, MethodDebElo: true, MethodDebMaster: true,
	MethodDebCabal: true, MethodMaestro: true,
}

var knownMethods = map[MethodID]bool{
	MethodPix: true, MethodElo: true, MethodVisa: true, MethodMaster: true,
	MethodHipercard: true, MethodAmex: true, MethodCabal: true,
	MethodMeliplaces: true, MethodBoleto: true, MethodDebVisa: true,
	MethodDebElo: true, MethodDebMaster: true, MethodDebCabal: true,
	MethodMaestro: true, MethodAccountMoney: true, MethodLoterica: true,
}

// IsCard reports whether the method is a credit or debit card, which
// requires a card token on creation.
func (m MethodID) IsCard() bool { return cardMethods[m] }

// TypeID groups payment methods by kind (credit card, bank transfer,
// boleto, ATM, ...).
type TypeID string

const (
	TypeAccountMoney    TypeID = "account_money"
	TypeTicket          TypeID = "ticket"
	TypeBankTransfer    TypeID = "bank_transfer"
	TypeATM             TypeID = "atm"
	TypeCreditCard      TypeID = "credit_card"
	TypeDebitCard       TypeID = "debit_card"
	TypePrepaidCard     TypeID = "prepaid_card"
	TypeDigitalCurrency TypeID = "digital_currency"
	TypeDigitalWallet   TypeID = "digital_wallet"
	TypeVoucherCard     TypeID = "voucher_card"
	TypeCryptoTransfer  TypeID = "crypto_transfer"
)

// OperationType classifies the transaction.
type OperationType string

const (
	OperationRegularPayment   OperationType = "regular_payment"
	OperationMoneyTransfer    OperationType = "money_transfer"
	OperationRecurringPayment OperationType = "recurring_payment"
	OperationAccountFund      OperationType = "account_fund"
	OperationPaymentAddition  OperationType = "payment_addition"
	OperationCellphoneRecharge OperationType = "cellphone_recharge"
	OperationPosPayment       OperationType = "pos_payment"
	OperationMoneyExchange    OperationType = "money_exchange"
	OperationInvestment       OperationType = "investment"
)

// StatusDetail refines Status with the outcome of the collection.
type StatusDetail string

const (
	DetailAccredited             StatusDetail = "accredited"
	DetailPendingContingency     StatusDetail = "pending_contingency"
	DetailPendingWaitingTransfer StatusDetail = "pending_waiting_transfer"
	DetailPendingReviewManual    StatusDetail = "pending_review_manual"
	DetailRejectedHighRisk       StatusDetail = "cc_rejected_high_risk"
	DetailRejectedInsufficient   StatusDetail = "cc_rejected_insufficient_amount"
	DetailRejectedCallForAuth    StatusDetail = "cc_rejected_call_for_authorize"
	DetailRejectedBadSecurityCode StatusDetail = "cc_rejected_bad_filled_security_code"
	DetailRejectedMaxAttempts    StatusDetail = "cc_rejected_max_attempts"
	DetailRejectedDuplicated     StatusDetail = "cc_rejected_duplicated_payment"
)

// ProcessingMode distinguishes aggregator from gateway merchants.
type ProcessingMode string

const (
	ProcessingAggregator ProcessingMode = "aggregator"
	ProcessingGateway    ProcessingMode = "gateway"
)

// ProductItem is one purchased item listed under additional_info.
type ProductItem struct {
	ID          string              `json:"id,omitempty"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	PictureURL  string              `json:"picture_url,omitempty"`
	CategoryID  string              `json:"category_id,omitempty"`
	// Quantity travels as a string on the wire.
	Quantity  string              `json:"quantity,omitempty"`
	UnitPrice *mercadopago.Amount `json:"unit_price,omitempty"`
}

// ReceiverAddress is the shipping address of the purchase recipient.
type ReceiverAddress struct {
	ZipCode      string `json:"zip_code"`
	StateName    string `json:"state_name,omitempty"`
	CityName     string `json:"city_name,omitempty"`
	StreetName   string `json:"street_name,omitempty"`
	StreetNumber int    `json:"street_number,omitempty"`
	Floor        string `json:"floor,omitempty"`
	Apartment    string `json:"apartment,omitempty"`
}

// Shipments carries the shipping information of a purchase.
type Shipments struct {
	ReceiverAddress ReceiverAddress `json:"receiver_address"`
	Width           int             `json:"width,omitempty"`
	Height          int             `json:"height,omitempty"`
}

// AdditionalInfo is forwarded by MercadoPago to scoring and fraud
// prevention services.
type AdditionalInfo struct {
	IPAddress string              `json:"ip_address,omitempty"`
	Items     []ProductItem       `json:"items,omitempty"`
	Payer     *AdditionalInfoPayer `json:"payer,omitempty"`
	Shipments *Shipments          `json:"shipments,omitempty"`
}

// TransactionDetails breaks an approved payment into its money flows.
type TransactionDetails struct {
	PaymentMethodReferenceID string             `json:"payment_method_reference_id,omitempty"`
	NetReceivedAmount        mercadopago.Amount `json:"net_received_amount"`
	TotalPaidAmount          mercadopago.Amount `json:"total_paid_amount"`
	OverpaidAmount           mercadopago.Amount `json:"overpaid_amount"`
	ExternalResourceURL      string             `json:"external_resource_url,omitempty"`
	InstallmentAmount        mercadopago.Amount `json:"installment_amount"`
	FinancialInstitution     string             `json:"financial_institution,omitempty"`
	PayableDeferralPeriod    string             `json:"payable_deferral_period,omitempty"`
	AcquirerReference        string             `json:"acquirer_reference,omitempty"`
}

// FeePayer names who absorbs a commission.
type FeePayer string

const (
	FeePayerCollector FeePayer = "collector"
	FeePayerPayer     FeePayer = "payer"
)

// FeeDetail is one commission applied to the payment.
type FeeDetail struct {
	Type     string             `json:"type"`
	Amount   mercadopago.Amount `json:"amount"`
	FeePayer FeePayer           `json:"fee_payer"`
}

// Card is the card used on a card payment, PAN truncated.
type Card struct {
	ID              string      `json:"id,omitempty"`
	FirstSixDigits  string      `json:"first_six_digits,omitempty"`
	LastFourDigits  string      `json:"last_four_digits,omitempty"`
	ExpirationMonth int         `json:"expiration_month,omitempty"`
	ExpirationYear  int         `json:"expiration_year,omitempty"`
	DateCreated     string      `json:"date_created,omitempty"`
	DateLastUpdated string      `json:"date_last_updated,omitempty"`
	Cardholder      *Cardholder `json:"cardholder,omitempty"`
}

// Cardholder is the name/identification pair printed on the card.
type Cardholder struct {
	Name           string          `json:"name,omitempty"`
	Identification *Identification `json:"identification,omitempty"`
}

// TransactionData carries the pix QR code of a pending bank transfer.
type TransactionData struct {
	QRCode       string `json:"qr_code,omitempty"`
	QRCodeBase64 string `json:"qr_code_base64,omitempty"`
	TicketURL    string `json:"ticket_url,omitempty"`
}

// ApplicationData identifies the application that processed the payment.
type ApplicationData struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// PointOfInteraction describes where and how the payment was processed.
type PointOfInteraction struct {
	Type            TypeID           `json:"type"`
	SubType         string           `json:"sub_type,omitempty"`
	ApplicationData *ApplicationData `json:"application_data,omitempty"`
	TransactionData *TransactionData `json:"transaction_data,omitempty"`
}

// Payment is the full payment resource returned by create, get and
// update. Timestamps are ISO-8601 strings as sent by the API. Unknown
// response fields are ignored, tolerating additive API evolution.
type Payment struct {
	ID                        int64               `json:"id"`
	DateCreated               string              `json:"date_created"`
	DateApproved              string              `json:"date_approved,omitempty"`
	DateLastUpdated           string              `json:"date_last_updated,omitempty"`
	DateOfExpiration          string              `json:"date_of_expiration,omitempty"`
	MoneyReleaseDate          string              `json:"money_release_date,omitempty"`
	OperationType             OperationType       `json:"operation_type"`
	IssuerID                  string              `json:"issuer_id,omitempty"`
	PaymentMethodID           MethodID            `json:"payment_method_id"`
	PaymentTypeID             TypeID              `json:"payment_type_id"`
	Status                    Status              `json:"status"`
	StatusDetail              StatusDetail        `json:"status_detail,omitempty"`
	CurrencyID                mercadopago.CurrencyID `json:"currency_id,omitempty"`
	Description               string              `json:"description,omitempty"`
	LiveMode                  bool                `json:"live_mode"`
	AuthorizationCode         string              `json:"authorization_code,omitempty"`
	MoneyReleaseSchema        string              `json:"money_release_schema,omitempty"`
	TaxesAmount               mercadopago.Amount  `json:"taxes_amount"`
	CounterCurrency           string              `json:"counter_currency,omitempty"`
	ShippingAmount            mercadopago.Amount  `json:"shipping_amount"`
	PosID                     string              `json:"pos_id,omitempty"`
	StoreID                   string              `json:"store_id,omitempty"`
	CollectorID               int64               `json:"collector_id"`
	Payer                     Payer               `json:"payer"`
	AdditionalInfo            *AdditionalInfo     `json:"additional_info,omitempty"`
	ExternalReference         string              `json:"external_reference,omitempty"`
	TransactionAmount         mercadopago.Amount  `json:"transaction_amount"`
	TransactionAmountRefunded *mercadopago.Amount `json:"transaction_amount_refunded,omitempty"`
	CouponAmount              *mercadopago.Amount `json:"coupon_amount,omitempty"`
	DeductionSchema           string              `json:"deduction_schema,omitempty"`
	TransactionDetails        *TransactionDetails `json:"transaction_details,omitempty"`
	FeeDetails                []FeeDetail         `json:"fee_details,omitempty"`
	Captured                  bool                `json:"captured"`
	BinaryMode                bool                `json:"binary_mode"`
	CallForAuthorizeID        string              `json:"call_for_authorize_id,omitempty"`
	StatementDescriptor       string              `json:"statement_descriptor,omitempty"`
	Installments              int                 `json:"installments"`
	Card                      *Card               `json:"card,omitempty"`
	NotificationURL           string              `json:"notification_url,omitempty"`
	ProcessingMode            ProcessingMode      `json:"processing_mode,omitempty"`
	MerchantAccountID         string              `json:"merchant_account_id,omitempty"`
	Acquirer                  string              `json:"acquirer,omitempty"`
	MerchantNumber            string              `json:"merchant_number,omitempty"`
	PointOfInteraction        *PointOfInteraction `json:"point_of_interaction,omitempty"`
}

// PaymentSummary is the partial payment representation returned by
// search. FetchFull promotes it to a full Payment.
type PaymentSummary struct {
	ID                int64                  `json:"id"`
	DateCreated       string                 `json:"date_created"`
	DateApproved      string                 `json:"date_approved,omitempty"`
	DateLastUpdated   string                 `json:"date_last_updated,omitempty"`
	DateOfExpiration  string                 `json:"date_of_expiration,omitempty"`
	OperationType     OperationType          `json:"operation_type"`
	PaymentMethodID   MethodID               `json:"payment_method_id"`
	PaymentTypeID     TypeID                 `json:"payment_type_id"`
	Status            Status                 `json:"status"`
	StatusDetail      StatusDetail           `json:"status_detail,omitempty"`
	CurrencyID        mercadopago.CurrencyID `json:"currency_id,omitempty"`
	Description       string                 `json:"description,omitempty"`
	LiveMode          bool                   `json:"live_mode"`
	AuthorizationCode string                 `json:"authorization_code,omitempty"`
	Payer             Payer                  `json:"payer"`
	ExternalReference string                 `json:"external_reference,omitempty"`
	TransactionAmount mercadopago.Amount     `json:"transaction_amount"`
	Installments      int                    `json:"installments"`
	ProcessingMode    ProcessingMode         `json:"processing_mode,omitempty"`
}

// SearchResult is one page of a payment search.
type SearchResult = mercadopago.SearchResponse[PaymentSummary]
