// Package webhooks parses MercadoPago webhook notifications and
// verifies the x-signature header that proves they originate from
// MercadoPago.
package webhooks

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Type names the resource a notification refers to.
type Type string

const (
	TypePayment                       Type = "payment"
	TypeSubscriptionPreapproval       Type = "subscription_preapproval"
	TypeSubscriptionPreapprovalPlan   Type = "subscription_preapproval_plan"
	TypeSubscriptionAuthorizedPayment Type = "subscription_authorized_payment"
	TypePointIntegration              Type = "point_integration_wh"
	TypeTopicClaimsIntegration        Type = "topic_claims_integration_wh"
)

// ID is a numeric identifier that MercadoPago delivers either as a JSON
// number or as a quoted string depending on the notification type.
type ID uint64

func (i *ID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid webhook id %q: %w", data, err)
	}
	*i = ID(v)
	return nil
}

// Data carries the identifier of the resource that changed.
type Data struct {
	ID ID `json:"id"`
}

// Notification is the body MercadoPago POSTs to the configured webhook
// URL.
type Notification struct {
	ID          ID     `json:"id"`
	LiveMode    bool   `json:"live_mode"`
	Type        Type   `json:"type"`
	DateCreated string `json:"date_created"`
	UserID      ID     `json:"user_id"`
	APIVersion  string `json:"api_version"`
	Action      string `json:"action"`
	Data        *Data  `json:"data,omitempty"`
}

// Parse decodes a notification body.
func Parse(body []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("parsing webhook body: %w", err)
	}
	return &n, nil
}

// SignatureHeader is the parsed x-signature header, of the form
// "ts=<millis>,v1=<hex hmac>".
type SignatureHeader struct {
	TS uint64
	V1 string
}

// ParseSignature splits the x-signature header into its parts.
func ParseSignature(header string) (SignatureHeader, error) {
	var sig SignatureHeader
	for _, pair := range strings.Split(header, ",") {
		key, value, _ := strings.Cut(pair, "=")
		switch strings.TrimSpace(key) {
		case "ts":
			ts, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return SignatureHeader{}, fmt.Errorf("invalid ts in x-signature: %w", err)
			}
			sig.TS = ts
		case "v1":
			sig.V1 = value
		}
	}
	return sig, nil
}

// ValidOrigin reports whether the x-signature header proves the
// notification was produced by MercadoPago. The manifest signed is
// "id:{id};[request-id:{rid};]ts:{ts};" keyed with the application's
// webhook secret; requestID is the x-request-id header when present.
func (n *Notification) ValidOrigin(key []byte, xSignature string, requestID string) bool {
	sig, err := ParseSignature(xSignature)
	if err != nil || sig.V1 == "" {
		return false
	}

	var manifest strings.Builder
	fmt.Fprintf(&manifest, "id:%d;", n.ID)
	if requestID != "" {
		fmt.Fprintf(&manifest, "request-id:%s;", requestID)
	}
	fmt.Fprintf(&manifest, "ts:%d;", sig.TS)

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(manifest.String()))

	want, err := hex.DecodeString(sig.V1)
	if err != nil {
		return false
	}
	return hmac.Equal(mac.Sum(nil), want)
}
