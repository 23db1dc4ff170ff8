// Package payments covers the /v1/payments API: creating, fetching,
// searching, updating and cancelling payments.
//
// Each operation is a builder over a typed options struct. Builders are
// value types meant for a single Send:
//
//	payment, err := payments.NewCreateBuilder(payments.CreateOptions{
//		TransactionAmount: mercadopago.NewAmount(2500, -2),
//		PaymentMethodID:   payments.MethodPix,
//		Payer:             payments.Payer{Email: "buyer@example.com"},
//		Description:       "Some product",
//	}).Send(ctx, client)
package payments
