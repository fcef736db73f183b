package taxonomy

import (
	"strings"
)

var regionCurrencies = map[string]string{
	"united states":        "USD",
	"usa":                  "USD",
	"canada":               "CAD",
	"mexico":               "MXN",
	"brazil":               "BRL",
	"argentina":            "ARS",
	"united kingdom":       "GBP",
	"uk":                   "GBP",
	"ireland":              "EUR",
	"france":               "EUR",
	"germany":              "EUR",
	"spain":                "EUR",
	"portugal":             "EUR",
	"italy":                "EUR",
	"netherlands":          "EUR",
	"belgium":              "EUR",
	"austria":              "EUR",
	"finland":              "EUR",
	"europe":               "EUR",
	"switzerland":          "CHF",
	"sweden":               "SEK",
	"norway":               "NOK",
	"denmark":              "DKK",
	"poland":               "PLN",
	"czech republic":       "CZK",
	"romania":              "RON",
	"hungary":              "HUF",
	"turkey":               "TRY",
	"israel":               "ILS",
	"united arab emirates": "AED",
	"saudi arabia":         "SAR",
	"india":                "INR",
	"pakistan":             "PKR",
	"singapore":            "SGD",
	"indonesia":            "IDR",
	"malaysia":             "MYR",
	"philippines":          "PHP",
	"vietnam":              "VND",
	"thailand":             "THB",
	"japan":                "JPY",
	"south korea":          "KRW",
	"china":                "CNY",
	"hong kong":            "HKD",
	"australia":            "AUD",
	"new zealand":          "NZD",
	"south africa":         "ZAR",
	"nigeria":              "NGN",
	"kenya":                "KES",
	"egypt":                "EGP",
}

var knownCurrencies = func() map[string]struct{} {
	m := map[string]struct{}{}
	for _, c := range regionCurrencies {
		m[c] = struct{}{}
	}
	return m
}()

// CurrencyForRegion looks a region name up in the static region table.
func CurrencyForRegion(name string) (string, bool) {
	c, ok := regionCurrencies[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

func IsValidCurrency(code string) bool {
	_, ok := knownCurrencies[code]
	return ok
}

func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
