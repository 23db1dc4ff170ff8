// Package mercadopago implements the authenticated HTTP transport shared by
// every MercadoPago operation: the client builder, the validated request
// envelope, and the resolver that turns raw responses into typed results
// or typed errors.
//
// Operation packages (payments, subscription, oauth, walletconnect) build
// requests against this package and never talk to the network themselves.
package mercadopago
