package classify

import (
	"rdalreport/internal/reporting/domain/code"
)

// Transaction types recognised by the default rule table.
const (
	TxDeposit    = "DEPOSIT"
	TxLoan       = "LOAN"
	TxPlacement  = "PLACEMENT"
	TxCommitment = "COMMITMENT"
	TxGuarantee  = "GUARANTEE"
	TxFXPosition = "FXPOS"
)

// Product families of the default rule table.
const (
	familyDepositResident    = "42"
	familyDepositNonResident = "43"
	familyLoan               = "58"
	familyPlacement          = "31"
	familyCommitment         = "91"
	familyGuarantee          = "92"
	familyFXMemo             = "40"
)

// rolledUpMaturity marks a maturity rollup summary code.
const rolledUpMaturity = "00"

// DefaultRuleset returns the production rule table: an exclusive group for
// base position codes, an exclusive group for off-balance codes, and two
// non-exclusive groups deriving additional codes from the same observation.
func DefaultRuleset() []Group {
	return []Group{
		{
			Name:      "base-positions",
			Exclusive: true,
			Rules: []Rule{
				{
					Name: "resident-deposit",
					Match: func(a Attributes) bool {
						return a.TransactionType == TxDeposit && a.Residency == "R"
					},
					Emit: emitFamily(familyDepositResident),
				},
				{
					Name: "non-resident-deposit",
					Match: func(a Attributes) bool {
						return a.TransactionType == TxDeposit && a.Residency != "R"
					},
					Emit: emitFamily(familyDepositNonResident),
				},
				{
					Name:  "loan",
					Match: func(a Attributes) bool { return a.TransactionType == TxLoan },
					Emit:  emitFamily(familyLoan),
				},
				{
					Name:  "interbank-placement",
					Match: func(a Attributes) bool { return a.TransactionType == TxPlacement },
					Emit:  emitFamily(familyPlacement),
					// Placement adapters zero out amounts but must keep the
					// code membership visible downstream.
					AllowZero: true,
				},
			},
		},
		{
			Name:      "off-balance",
			Exclusive: true,
			Rules: []Rule{
				{
					Name:  "commitment",
					Match: func(a Attributes) bool { return a.TransactionType == TxCommitment },
					Emit:  emitFamily(familyCommitment),
				},
				{
					Name:  "guarantee",
					Match: func(a Attributes) bool { return a.TransactionType == TxGuarantee },
					Emit:  emitFamily(familyGuarantee),
				},
			},
		},
		{
			Name:      "maturity-rollups",
			Exclusive: false,
			Rules: []Rule{
				{
					Name: "deposit-maturity-rollup",
					Match: func(a Attributes) bool {
						return a.TransactionType == TxDeposit && a.MaturityBucket != rolledUpMaturity
					},
					Emit: func(a Attributes) (code.Observation, error) {
						family := familyDepositResident
						if a.Residency != "R" {
							family = familyDepositNonResident
						}
						return emitCode(a, family, a.ProductSubType, a.CustomerType, rolledUpMaturity, a.Indicator)
					},
				},
				{
					Name: "loan-maturity-rollup",
					Match: func(a Attributes) bool {
						return a.TransactionType == TxLoan && a.MaturityBucket != rolledUpMaturity
					},
					Emit: func(a Attributes) (code.Observation, error) {
						return emitCode(a, familyLoan, a.ProductSubType, a.CustomerType, rolledUpMaturity, a.Indicator)
					},
				},
			},
		},
		{
			Name:      "special-memo",
			Exclusive: false,
			Rules: []Rule{
				{
					Name:  "fx-position-memo",
					Match: func(a Attributes) bool { return a.TransactionType == TxFXPosition },
					Emit: func(a Attributes) (code.Observation, error) {
						// Memo rows carry no debit/credit split.
						return emitCode(a, familyFXMemo, a.ProductSubType, a.CustomerType, a.MaturityBucket, code.IndicatorBlank)
					},
					AllowZero: true,
				},
			},
		},
	}
}

func emitFamily(family string) func(Attributes) (code.Observation, error) {
	return func(a Attributes) (code.Observation, error) {
		return emitCode(a, family, a.ProductSubType, a.CustomerType, a.MaturityBucket, a.Indicator)
	}
}

func emitCode(a Attributes, family, subType, customer, maturity string, ind code.Indicator) (code.Observation, error) {
	c, err := code.Build(family, subType, customer, maturity)
	if err != nil {
		return code.Observation{}, err
	}
	return code.Observation{Code: c, Indicator: ind, Amount: a.Amount}, nil
}
