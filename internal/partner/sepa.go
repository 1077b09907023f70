package partner

import "strings"

// sepaCountries lists the ISO country prefixes reachable by SEPA credit
// transfer. A creditor beneficiary whose IBAN falls outside this set is
// rejected locally before any partner call.
var sepaCountries = map[string]struct{}{
	"AD": {}, "AT": {}, "BE": {}, "BG": {}, "CH": {}, "CY": {}, "CZ": {},
	"DE": {}, "DK": {}, "EE": {}, "ES": {}, "FI": {}, "FR": {}, "GB": {},
	"GI": {}, "GR": {}, "HR": {}, "HU": {}, "IE": {}, "IS": {}, "IT": {},
	"LI": {}, "LT": {}, "LU": {}, "LV": {}, "MC": {}, "MT": {}, "NL": {},
	"NO": {}, "PL": {}, "PT": {}, "RO": {}, "SE": {}, "SI": {}, "SK": {},
	"SM": {}, "VA": {},
}

// inSepaZone reports whether the IBAN's country prefix belongs to the SEPA
// credit transfer reachability zone.
func inSepaZone(iban string) bool {
	iban = strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	if len(iban) < 2 {
		return false
	}
	_, ok := sepaCountries[iban[:2]]
	return ok
}
