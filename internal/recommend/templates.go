package recommend

import "medfin-engine/internal/model"

// Template is the static part of a recommendation: the playbook text,
// effort profile, and base success odds. Dollar amounts, priorities,
// and targets come from the generating rule.
type Template struct {
	Category      string
	Title         string
	Description   string
	Difficulty    string
	BaseMinutes   int
	SuccessProb   float64
	RiskReduction float64
	Steps         []string
	PhoneScript   string
	Documents     []string
	Tips          []string
}

const (
	tplDisputeDuplicate  = "dispute_duplicate"
	tplDisputeUnbundling = "dispute_unbundling"
	tplRecodePreventive  = "recode_preventive"
	tplVerifyClaim       = "verify_claim"
	tplAppealGap         = "appeal_gap"
	tplApplyMedicaid     = "apply_medicaid"
	tplApplyCharity      = "apply_charity"
	tplPromptPay         = "negotiate_prompt_pay"
	tplHardship          = "negotiate_hardship"
	tplCashRate          = "negotiate_cash_rate"
	tplPaymentPlan       = "setup_payment_plan"
	tplUseHSA            = "use_hsa"
	tplUseFSA            = "use_fsa"
	tplScheduleCare      = "schedule_before_reset"
	tplItemizedBill      = "request_itemized_bill"
)

var templates = map[string]Template{
	tplDisputeDuplicate: {
		Category:      model.CategoryBillDispute,
		Title:         "Dispute duplicate charge",
		Description:   "The itemized bill charges the same service twice. Duplicate charges are routinely removed once flagged.",
		Difficulty:    model.DifficultyEasy,
		BaseMinutes:   45,
		SuccessProb:   0.85,
		RiskReduction: 50,
		Steps: []string{
			"Highlight both occurrences of the duplicated charge on the itemized bill",
			"Call the provider's billing department and reference the duplicate line items",
			"Request a corrected bill in writing and confirm the removal",
		},
		PhoneScript: "I'm reviewing my itemized bill and the same procedure code appears twice on the same date for the same amount. I'd like the duplicate removed and a corrected statement sent.",
		Documents:   []string{"Itemized bill", "Explanation of benefits"},
		Tips:        []string{"Do not pay the disputed portion while the review is open"},
	},
	tplDisputeUnbundling: {
		Category:      model.CategoryBillDispute,
		Title:         "Dispute unbundled charges",
		Description:   "A procedure was billed alongside a component service its payment already includes.",
		Difficulty:    model.DifficultyModerate,
		BaseMinutes:   60,
		SuccessProb:   0.70,
		RiskReduction: 50,
		Steps: []string{
			"Identify the parent procedure code and the component code billed separately",
			"Ask the billing department why the component was not bundled",
			"Escalate to your insurer's fraud line if the provider refuses to correct it",
		},
		Documents: []string{"Itemized bill", "Explanation of benefits"},
	},
	tplRecodePreventive: {
		Category:      model.CategoryBillDispute,
		Title:         "Request preventive recoding",
		Description:   "A preventive service was billed with patient cost share. Preventive care must be covered in full by ACA-compliant plans.",
		Difficulty:    model.DifficultyEasy,
		BaseMinutes:   30,
		SuccessProb:   0.65,
		RiskReduction: 40,
		Steps: []string{
			"Confirm the visit was scheduled as preventive care",
			"Ask the provider to resubmit the claim with the preventive diagnosis code",
			"Ask the insurer to reprocess the claim at 100% coverage",
		},
		Documents: []string{"Itemized bill", "Visit summary"},
		Tips:      []string{"Preventive coverage applies only when the visit was purely preventive; discussing new problems can change the coding"},
	},
	tplVerifyClaim: {
		Category:      model.CategoryVerification,
		Title:         "Verify insurance claim was submitted",
		Description:   "Insurance paid nothing on this bill. The claim may never have been filed or may have been misprocessed.",
		Difficulty:    model.DifficultyEasy,
		BaseMinutes:   25,
		SuccessProb:   0.55,
		RiskReduction: 30,
		Steps: []string{
			"Check your insurer's portal for a claim matching the service date",
			"If no claim exists, ask the provider to submit it",
			"If a claim was denied, request the denial reason in writing",
		},
		Documents: []string{"Insurance card", "Bill"},
	},
	tplAppealGap: {
		Category:      model.CategoryInsuranceAppeal,
		Title:         "Appeal coverage decision",
		Description:   "A denied or out-of-network claim can be appealed. Roughly half of first-level appeals succeed at least partially.",
		Difficulty:    model.DifficultyChallenging,
		BaseMinutes:   120,
		SuccessProb:   0.50,
		RiskReduction: 50,
		Steps: []string{
			"Request the full denial letter and the plan language it cites",
			"Ask the treating physician for a letter of medical necessity",
			"File a first-level internal appeal before the plan's deadline",
			"If denied again, request an external review",
		},
		Documents: []string{"Denial letter", "Letter of medical necessity", "Medical records"},
		Tips:      []string{"Appeal deadlines are strict; note the date on the denial letter"},
	},
	tplApplyMedicaid: {
		Category:      model.CategoryAssistanceApplication,
		Title:         "Apply for Medicaid",
		Description:   "Household income appears to qualify for Medicaid in an expansion state. Coverage can be retroactive up to three months.",
		Difficulty:    model.DifficultyModerate,
		BaseMinutes:   90,
		SuccessProb:   0.80,
		RiskReduction: 80,
		Steps: []string{
			"Gather proof of income, residency, and household size",
			"Apply through the state Medicaid portal or healthcare.gov",
			"Ask about retroactive coverage for existing bills",
		},
		Documents: []string{"Pay stubs or tax return", "Proof of residency", "Identification"},
		Tips:      []string{"Ask providers to place bills on hold while the application is pending"},
	},
	tplApplyCharity: {
		Category:      model.CategoryAssistanceApplication,
		Title:         "Apply for hospital charity care",
		Description:   "Nonprofit hospitals are required to offer financial assistance. Discounts are tiered by income relative to the poverty line.",
		Difficulty:    model.DifficultyModerate,
		BaseMinutes:   60,
		SuccessProb:   0.70,
		RiskReduction: 70,
		Steps: []string{
			"Request the hospital's financial assistance policy and application",
			"Submit proof of income with the application",
			"Request that collection activity pause while the application is reviewed",
		},
		Documents: []string{"Pay stubs or tax return", "Bank statements", "Hospital bills"},
		Tips:      []string{"Charity care can often be applied retroactively to bills already in collections"},
	},
	tplPromptPay: {
		Category:      model.CategoryNegotiation,
		Title:         "Negotiate a prompt-pay discount",
		Description:   "Providers routinely discount 10-30% for immediate payment because it avoids collection costs.",
		Difficulty:    model.DifficultyEasy,
		BaseMinutes:   30,
		SuccessProb:   0.70,
		RiskReduction: 40,
		Steps: []string{
			"Call the billing department and ask for the prompt-pay or self-pay discount",
			"Get the agreed amount in writing before paying",
			"Pay by the agreed date and keep the receipt",
		},
		PhoneScript: "I'd like to resolve this bill today. What discount can you offer for payment in full right now?",
	},
	tplHardship: {
		Category:      model.CategoryNegotiation,
		Title:         "Request a hardship discount",
		Description:   "Providers grant income-based discounts on request, separate from formal charity-care programs.",
		Difficulty:    model.DifficultyModerate,
		BaseMinutes:   45,
		SuccessProb:   0.55,
		RiskReduction: 40,
		Steps: []string{
			"Explain the household's financial situation to the billing department",
			"Reference your income relative to the federal poverty line",
			"Ask what hardship reduction is available and get it in writing",
		},
		Documents: []string{"Proof of income"},
	},
	tplCashRate: {
		Category:      model.CategoryNegotiation,
		Title:         "Ask for the cash-pay rate",
		Description:   "Uninsured patients are often billed the full chargemaster rate; the cash rate is typically 40-60% lower.",
		Difficulty:    model.DifficultyEasy,
		BaseMinutes:   30,
		SuccessProb:   0.65,
		RiskReduction: 40,
		Steps: []string{
			"Ask the billing department for the self-pay or cash price for each service",
			"Compare against the billed amount and request the difference be written off",
		},
		PhoneScript: "I'm uninsured and paying out of pocket. What is your self-pay rate for these services?",
	},
	tplPaymentPlan: {
		Category:      model.CategoryPaymentOptimization,
		Title:         "Set up an interest-free payment plan",
		Description:   "The balance exceeds what current income can absorb. Providers nearly always offer interest-free installment plans on request.",
		Difficulty:    model.DifficultyTrivial,
		BaseMinutes:   20,
		SuccessProb:   0.95,
		RiskReduction: 60,
		Steps: []string{
			"Decide the monthly amount the budget can sustain",
			"Call the billing department and request an interest-free plan at that amount",
			"Confirm the plan terms in writing and that the account is excluded from collections",
		},
		Tips: []string{"Never agree to a monthly amount above what the budget can sustain long term"},
	},
	tplUseHSA: {
		Category:      model.CategoryPaymentOptimization,
		Title:         "Pay with HSA funds",
		Description:   "Paying medical bills with pre-tax HSA dollars effectively discounts them by your marginal tax rate.",
		Difficulty:    model.DifficultyTrivial,
		BaseMinutes:   15,
		SuccessProb:   0.99,
		RiskReduction: 30,
		Steps: []string{
			"Confirm the expense is HSA-qualified",
			"Pay directly from the HSA or reimburse yourself",
			"Keep the receipt for tax records",
		},
	},
	tplUseFSA: {
		Category:      model.CategoryPaymentOptimization,
		Title:         "Use FSA funds before they expire",
		Description:   "FSA balances are forfeited at plan-year end. Applying them to outstanding bills captures the pre-tax discount before it disappears.",
		Difficulty:    model.DifficultyTrivial,
		BaseMinutes:   15,
		SuccessProb:   0.99,
		RiskReduction: 30,
		Steps: []string{
			"Check the FSA plan's deadline and grace period",
			"Submit outstanding medical bills for reimbursement",
		},
		Tips: []string{"Unused FSA funds are lost at year end; this deadline is real"},
	},
	tplScheduleCare: {
		Category:      model.CategoryInsuranceOptimization,
		Title:         "Schedule needed care before the plan year resets",
		Description:   "The deductible is mostly met and the plan year ends soon. Care received now costs a fraction of the same care next year.",
		Difficulty:    model.DifficultyModerate,
		BaseMinutes:   30,
		SuccessProb:   0.60,
		RiskReduction: 30,
		Steps: []string{
			"List any postponed procedures, imaging, or specialist visits",
			"Book appointments before the plan-year end date",
			"Confirm each provider is in network",
		},
	},
	tplItemizedBill: {
		Category:      model.CategoryDocumentRequest,
		Title:         "Request an itemized bill",
		Description:   "A summary bill hides line-item errors. Itemized bills frequently surface charges that can be disputed.",
		Difficulty:    model.DifficultyTrivial,
		BaseMinutes:   10,
		SuccessProb:   0.70,
		RiskReduction: 20,
		Steps: []string{
			"Call the billing department and request a fully itemized statement with CPT codes",
			"Review every line for services not received, duplicates, and quantity errors",
		},
		PhoneScript: "Please send me a fully itemized bill including all CPT codes for this account.",
	},
}
