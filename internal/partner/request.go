package partner

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Request builders are pure: domain objects in, a partner payload out. They
// rename domain vocabulary to partner vocabulary, translate enums, format
// dates, and omit optional fields entirely when the source value is unset —
// an omitted field is never sent as null.

// body is a partner request payload under construction.
type body map[string]any

// setOpt includes a string field only when non-empty.
func (b body) setOpt(key, value string) {
	if value != "" {
		b[key] = value
	}
}

// subsetBody intersects a built payload down to only the requested keys,
// preserving the original value types. An empty field list means the whole
// payload.
func subsetBody(b map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		return b
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := b[f]; ok {
			out[f] = v
		}
	}
	return out
}

// diffBody returns the entries of desired whose rendered value differs from
// current. Comparison is by string rendering because the partner echoes
// numbers back as strings.
func diffBody(desired map[string]any, current map[string]any) map[string]any {
	diff := make(map[string]any)
	for key, want := range desired {
		have, ok := current[key]
		if !ok || fmt.Sprint(want) != fmt.Sprint(have) {
			diff[key] = want
		}
	}
	return diff
}

// amountString renders a money amount the partner way: fixed two decimals.
func amountString(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// userBody builds the physical-person payload for a stakeholder attached to
// a corporate record.
func userBody(u UserProfile) map[string]any {
	parentType := partnerParentShareholder
	employeeType := partnerEmployeeNone
	if u.Director {
		parentType = partnerParentLeader
		employeeType = partnerEmployeeLeader
	}
	controlling := partnerControllingDirector
	if u.EffectiveBeneficiary {
		controlling = partnerControllingShareholder
	}

	b := body{
		"userTypeId":            partnerUserTypePhysical,
		"email":                 u.Email,
		"firstname":             u.FirstName,
		"lastname":              u.LastName,
		"birthday":              formatDate(u.BirthDate),
		"address1":              u.Street,
		"postcode":              u.Postcode,
		"city":                  u.City,
		"country":               u.Country,
		"nationality":           u.Nationality,
		"placeOfBirth":          u.BirthPlace,
		"birthCountry":          u.BirthCountry,
		"phone":                 u.Phone,
		"parentUserId":          u.ParentPartnerID,
		"parentType":            parentType,
		"employeeType":          employeeType,
		"controllingPersonType": controlling,
		"specifiedUSPerson":     partnerSpecifiedUSPersonNo,
		"effectiveBeneficiary":  u.BeneficiaryPercentage,
	}
	b.setOpt("title", partnerCivility(u.Civility))
	return b
}

// companyBody builds the corporate payload, routing individual companies to
// the sole-proprietor composition.
func companyBody(c CompanyProfile) (map[string]any, error) {
	if c.Individual {
		return individualCompanyBody(c)
	}

	legalForm, err := partnerLegalForm(c.LegalForm)
	if err != nil {
		return nil, err
	}

	return body{
		"userTypeId":                 partnerUserTypeCorporate,
		"email":                      c.Email,
		"legalName":                  c.LegalName,
		"legalForm":                  legalForm,
		"legalSector":                c.LegalSector,
		"legalRegistrationNumber":    c.RegistrationNumber,
		"legalRegistrationDate":      formatDate(c.RegistrationDate),
		"legalAnnualTurnOver":        c.AnnualTurnover,
		"legalNumberOfEmployeeRange": c.EmployeesRange,
		"legalNetIncomeRange":        c.NetIncomeRange,
		"address1":                   c.Street,
		"postcode":                   c.Postcode,
		"city":                       c.City,
		"country":                    c.Country,
		"phone":                      c.Phone,
		"entityType":                 partnerEntityTypeActiveNonFinancial,
		"specifiedUSPerson":          partnerSpecifiedUSPersonNo,
		"activityOutsideEu":          c.ActivityOutsideEU,
		"economicSanctions":          c.EconomicSanctions,
		"residentCountriesSanctions": c.ResidentCountriesSanctions,
		"involvedSanctions":          c.InvolvedSanctions,
	}, nil
}

// individualCompanyBody composes a sole proprietorship: the company-level
// base overlaid with the single associated user's personal fields, the
// person's values taking precedence on conflicts (notably email). The
// declared ranges are fixed for this legal form.
func individualCompanyBody(c CompanyProfile) (map[string]any, error) {
	legalForm, err := partnerLegalForm(c.LegalForm)
	if err != nil {
		return nil, err
	}

	merged := body{
		"email":                      c.Email,
		"userTypeId":                 partnerUserTypePhysical,
		"specifiedUSPerson":          partnerSpecifiedUSPersonNo,
		"legalName":                  c.LegalName,
		"legalForm":                  legalForm,
		"legalSector":                c.LegalSector,
		"legalRegistrationNumber":    c.RegistrationNumber,
		"legalRegistrationDate":      formatDate(c.RegistrationDate),
		"legalAnnualTurnOver":        "0-39",
		"legalNumberOfEmployeeRange": c.EmployeesRange,
		"legalNetIncomeRange":        "0-4",
		"entityType":                 partnerEntityTypeActiveNonFinancial,
		"activityOutsideEu":          c.ActivityOutsideEU,
		"economicSanctions":          c.EconomicSanctions,
		"residentCountriesSanctions": c.ResidentCountriesSanctions,
		"involvedSanctions":          c.InvolvedSanctions,
	}

	if u := c.SoleProprietor; u != nil {
		parentType := partnerParentShareholder
		employeeType := partnerEmployeeNone
		if u.Director {
			parentType = partnerParentLeader
			employeeType = partnerEmployeeLeader
		}
		controlling := partnerControllingDirector
		if u.EffectiveBeneficiary {
			controlling = partnerControllingShareholder
		}

		person := body{
			"email":                 u.Email,
			"firstname":             u.FirstName,
			"lastname":              u.LastName,
			"birthday":              formatDate(u.BirthDate),
			"address1":              u.Street,
			"postcode":              u.Postcode,
			"city":                  u.City,
			"country":               u.Country,
			"nationality":           u.Nationality,
			"placeOfBirth":          u.BirthPlace,
			"birthCountry":          u.BirthCountry,
			"phone":                 u.Phone,
			"parentUserId":          c.PartnerID,
			"parentType":            parentType,
			"employeeType":          employeeType,
			"controllingPersonType": controlling,
		}
		person.setOpt("title", partnerCivility(u.Civility))
		person.setOpt("incomeRange", u.IncomeRange)
		person.setOpt("personalAssets", u.PersonalAssets)

		for key, value := range person {
			merged[key] = value
		}
	}

	return merged, nil
}

// walletBody builds the payment-account creation payload. The tariff comes
// from adapter configuration, never the process environment.
func walletBody(partnerUserID int64, currency, tariffID, eventName, tag string) map[string]any {
	return body{
		"accessTag":    tag,
		"walletTypeId": partnerWalletTypePayment,
		"tariffId":     tariffID,
		"userId":       partnerUserID,
		"currency":     currency,
		"eventName":    eventName,
	}
}

// payoutBody builds the outbound credit transfer payload. Wallet and
// beneficiary ids travel as strings on this endpoint.
func payoutBody(req PayoutRequest, tag string) map[string]any {
	b := body{
		"accessTag":     tag,
		"walletId":      fmt.Sprintf("%d", req.PartnerWalletID),
		"beneficiaryId": fmt.Sprintf("%d", req.PartnerBeneficiaryID),
		"amount":        amountString(req.Amount),
		"currency":      req.Currency,
	}
	if req.Label != nil {
		b["label"] = *req.Label
	}
	if req.SupportingFileLink != nil {
		b["supportingFileLink"] = *req.SupportingFileLink
	}
	return b
}

// beneficiaryBody builds a credit-transfer creditor.
func beneficiaryBody(partnerUserID int64, name, iban, bic, tag string) map[string]any {
	return body{
		"accessTag":    tag,
		"userId":       fmt.Sprintf("%d", partnerUserID),
		"name":         name,
		"iban":         iban,
		"bic":          bic,
		"usableForSct": true,
	}
}

// debtorBody builds a SEPA B2B direct-debit debtor with its whitelisted
// mandate.
func debtorBody(m DebtorMandate) map[string]any {
	return body{
		"userId":  m.PartnerUserID,
		"name":    m.Name,
		"address": m.Address,
		"sddB2bWhitelist": []map[string]any{{
			"uniqueMandateReference": m.UniqueMandateReference,
			"isRecurrent":            m.Recurrent,
		}},
		"sepaCreditorIdentifier": m.SepaCreditorIdentifier,
		"usableForSct":           false,
	}
}

// chequePayinBody builds a cheque collection payload: the packed serial line
// split into its three segments plus the drawer identity. Company drawers
// carry the company name in the lastName slot with an empty firstName.
func chequePayinBody(d ChequeDeposit) (map[string]any, error) {
	a, bSeg, c, err := splitCMC7(d.CMC7)
	if err != nil {
		return nil, err
	}

	firstName, lastName := "", d.DrawerCompany
	if d.DrawerType == DrawerPerson {
		firstName, lastName = d.DrawerFirstName, d.DrawerLastName
	}

	return body{
		"walletId":        d.PartnerWalletID,
		"paymentMethodId": partnerMethodCheque,
		"amount":          amountString(d.Amount),
		"currency":        d.Currency,
		"additionalData": map[string]any{
			"cheque": map[string]any{
				"cmc7": map[string]any{
					"a": a,
					"b": bSeg,
					"c": c,
				},
				"RLMCKey": d.RLMCKey,
				"drawerData": map[string]any{
					"firstName":       firstName,
					"lastName":        lastName,
					"isNaturalPerson": drawerIsNaturalPerson(d.DrawerType),
				},
			},
		},
	}, nil
}

// virtualCardBody builds the card issuance payload. Product codes come from
// adapter configuration; delivery title and extra address lines are included
// only when set.
func virtualCardBody(req CardRequest, permsGroup, cardPrint, tag string) map[string]any {
	b := body{
		"accessTag":         tag,
		"userId":            req.PartnerUserID,
		"walletId":          req.PartnerWalletID,
		"permsGroup":        permsGroup,
		"cardPrint":         cardPrint,
		"pin":               req.PIN,
		"deliveryLastname":  req.Delivery.LastName,
		"deliveryFirstname": req.Delivery.FirstName,
		"deliveryAddress1":  req.Delivery.Street,
		"deliveryCity":      req.Delivery.City,
		"deliveryPostcode":  req.Delivery.Postcode,
		"deliveryCountry":   req.Delivery.Country,
		"limitAtmWeek":      req.LimitATMWeek,
		"limitPaymentDay":   0,
		"limitPaymentWeek":  req.LimitPaymentWeek,
	}
	b.setOpt("deliveryTitle", partnerCivility(req.Delivery.Civility))
	b.setOpt("deliveryAddress2", req.Delivery.Additional1)
	b.setOpt("deliveryAddress3", req.Delivery.Additional2)
	return b
}

// convertCardBody builds the virtual-to-physical conversion payload.
func convertCardBody(addr DeliveryAddress, tag string) map[string]any {
	b := body{
		"accessTag":         tag,
		"deliveryLastname":  addr.LastName,
		"deliveryFirstname": addr.FirstName,
		"deliveryAddress1":  addr.Street,
		"deliveryCity":      addr.City,
		"deliveryPostcode":  addr.Postcode,
		"deliveryCountry":   addr.Country,
	}
	b.setOpt("deliveryTitle", partnerCivility(addr.Civility))
	b.setOpt("deliveryAddress2", addr.Additional1)
	b.setOpt("deliveryAddress3", addr.Additional2)
	return b
}

// feeTransferBody builds the wallet-to-wallet fee debit for an internal
// invoice. The transfer tag doubles as the reconciliation key.
func feeTransferBody(clientWalletID, feeWalletID int64, amount decimal.Decimal, currency, invoiceRef, tag string) map[string]any {
	return body{
		"accessTag":           tag,
		"walletId":            fmt.Sprintf("%d", clientWalletID),
		"beneficiaryWalletId": fmt.Sprintf("%d", feeWalletID),
		"amount":              amountString(amount),
		"label":               "Service fees",
		"currency":            currency,
		"transferTypeId":      transferTypeClientFees,
		"transferTag":         invoiceRef,
	}
}
