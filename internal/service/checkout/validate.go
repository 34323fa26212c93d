package checkout

import (
	"regexp"
	"strings"
	"unicode"

	"iotshop/internal/domain"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

const msgRequired = "This field is required"

func validateShipping(info domain.ShippingInfo) error {
	fields := map[string]string{}
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			fields[name] = msgRequired
		}
	}
	check("fullName", info.FullName)
	check("address", info.Address)
	check("city", info.City)
	check("state", info.State)
	check("zipCode", info.ZipCode)
	check("country", info.Country)
	check("phone", info.Phone)

	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

func validatePayment(info domain.PaymentInfo) error {
	fields := map[string]string{}

	switch {
	case strings.TrimSpace(info.CardNumber) == "":
		fields["cardNumber"] = "Card number is required"
	case !cardNumberRe.MatchString(stripSpaces(info.CardNumber)):
		fields["cardNumber"] = "Invalid card number"
	}

	if strings.TrimSpace(info.CardHolder) == "" {
		fields["cardHolder"] = "Cardholder name is required"
	}

	switch {
	case strings.TrimSpace(info.ExpiryDate) == "":
		fields["expiryDate"] = "Expiry date is required"
	case !expiryRe.MatchString(info.ExpiryDate):
		fields["expiryDate"] = "Invalid format (MM/YY)"
	}

	switch {
	case strings.TrimSpace(info.CVV) == "":
		fields["cvv"] = "CVV is required"
	case !cvvRe.MatchString(info.CVV):
		fields["cvv"] = "Invalid CVV"
	}

	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
