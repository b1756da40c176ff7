package payment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Method identifies how a payment is collected. PIX is the only method with
// an external charge artifact (QR code); the card and boleto methods settle
// asynchronously on the acquirer side.
type Method int

const (
	// MethodUnknown represents an invalid or undefined method.
	MethodUnknown Method = iota

	// MethodCardCredit is a credit card payment.
	MethodCardCredit

	// MethodCardDebit is a debit card payment.
	MethodCardDebit

	// MethodPix is an instant payment requiring a gateway-generated QR charge.
	MethodPix

	// MethodBoleto is a bank slip payment.
	MethodBoleto
)

func getMethodStrings() map[Method]string {
	return map[Method]string{
		MethodUnknown:    "UNKNOWN",
		MethodCardCredit: "CARD_CREDIT",
		MethodCardDebit:  "CARD_DEBIT",
		MethodPix:        "PIX",
		MethodBoleto:     "BOLETO",
	}
}

// MethodFromString parses the wire representation of a method.
func MethodFromString(s string) (Method, error) {
	for method, str := range getMethodStrings() {
		if str == s && method != MethodUnknown {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("method",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks that the Method is one of the defined payment methods.
func (m Method) Validate() error {
	if m == MethodUnknown {
		return errs.NewValueIsInvalidErrorWithCause("method",
			fmt.Errorf("%d is not a valid method", int(m)))
	}
	if _, ok := getMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("method",
			fmt.Errorf("%d is not a valid method", int(m)))
	}
	return nil
}

// String returns the wire representation of the method.
func (m Method) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsPix reports whether the method requires a gateway QR charge.
func (m Method) IsPix() bool {
	return m == MethodPix
}
