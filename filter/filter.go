// Package filter compiles expr expressions and matches them against
// payment search results, e.g.
//
//	Status == "approved" && Amount > 100 && daysSince(created) < 30
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mpago/go-mpago/payments"
)

// Filter is a compiled payment filter expression.
type Filter struct {
	program *vm.Program
	expr    string
}

// Compile compiles an expr filter expression.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(staticEnv()),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{program: program, expr: expression}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Match evaluates the filter against one payment summary. Expressions
// that do not evaluate to a boolean do not match.
func (f *Filter) Match(p payments.PaymentSummary) (bool, error) {
	out, err := expr.Run(f.program, paymentEnv(p))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression must return a boolean, got %T", out)
	}
	return matched, nil
}

// Apply returns the summaries the filter matches, preserving order.
func (f *Filter) Apply(list []payments.PaymentSummary) ([]payments.PaymentSummary, error) {
	var matched []payments.PaymentSummary
	for _, p := range list {
		ok, err := f.Match(p)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func staticEnv() map[string]interface{} {
	return map[string]interface{}{
		// Date helpers
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"monthsAgo": func(months int) time.Time {
			return time.Now().AddDate(0, -months, 0)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},
		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		// Current time
		"now": time.Now,
	}
}

// parseWireDate accepts the timestamp formats MercadoPago emits. Zero
// time when the field is absent or unparseable.
func parseWireDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000-07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func paymentEnv(p payments.PaymentSummary) map[string]interface{} {
	env := staticEnv()

	env["Payment"] = p

	// Direct properties for convenience
	env["ID"] = p.ID
	env["Status"] = string(p.Status)
	env["StatusDetail"] = string(p.StatusDetail)
	env["Method"] = string(p.PaymentMethodID)
	env["Type"] = string(p.PaymentTypeID)
	env["Currency"] = string(p.CurrencyID)
	env["Description"] = p.Description
	env["ExternalReference"] = p.ExternalReference
	env["Email"] = p.Payer.Email
	env["Amount"] = p.TransactionAmount.InexactFloat64()
	env["Installments"] = p.Installments
	env["LiveMode"] = p.LiveMode

	created := parseWireDate(p.DateCreated)
	approved := parseWireDate(p.DateApproved)
	env["created"] = created
	env["approved"] = approved

	// Payment helpers
	env["isApproved"] = func() bool { return p.Status == payments.StatusApproved }
	env["isPending"] = func() bool {
		return p.Status == payments.StatusPending || p.Status == payments.StatusInProcess
	}
	env["isRejected"] = func() bool { return p.Status == payments.StatusRejected }
	env["isCancelled"] = func() bool { return p.Status == payments.StatusCancelled }
	env["isRefunded"] = func() bool { return p.Status == payments.StatusRefunded }
	env["isCard"] = func() bool { return p.PaymentMethodID.IsCard() }
	env["isPix"] = func() bool { return p.PaymentMethodID == payments.MethodPix }
	env["createdAfter"] = func(t time.Time) bool { return created.After(t) }
	env["createdBefore"] = func(t time.Time) bool { return !created.IsZero() && created.Before(t) }

	return env
}
