package domain

import "strings"

const (
	DefaultCurrency = "COP"

	// Flat fee charged on every checkout.
	BaseFeeAmount = 5000

	// Delivery fee tiers. Cities in the capital metro area ship at the
	// local rate, everything else at the national rate.
	DeliveryFeeLocalAmount    = 5000
	DeliveryFeeNationalAmount = 10000
)

var localCities = map[string]bool{
	"bogota":    true,
	"soacha":    true,
	"chia":      true,
	"cajica":    true,
	"mosquera":  true,
	"funza":     true,
	"la calera": true,
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// NormalizeCity folds a city name to its canonical lookup form:
// trimmed, lower-cased and accent-insensitive.
func NormalizeCity(city string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(city)))
}

func IsLocalCity(city string) bool {
	return localCities[NormalizeCity(city)]
}

// GetDeliveryFee returns the delivery fee for a destination city.
// Pure function of the normalized city name; returns exactly one of the
// two tier constants.
func GetDeliveryFee(city string) Money {
	if IsLocalCity(city) {
		return Money{Amount: DeliveryFeeLocalAmount, Currency: DefaultCurrency}
	}
	return Money{Amount: DeliveryFeeNationalAmount, Currency: DefaultCurrency}
}

func GetBaseFee() Money {
	return Money{Amount: BaseFeeAmount, Currency: DefaultCurrency}
}
