package domain

// UseCase names a prompt-template variant tailored to a specific output style.
// The set is closed; an unknown key never falls through to a default.
type UseCase string

const (
	UseCaseGeneralComplianceQA  UseCase = "general_compliance_qa"
	UseCaseCoverLetterDrafting  UseCase = "cover_letter_drafting"
	UseCaseComplianceChecklist  UseCase = "compliance_checklist"
	UseCaseRiskBreachAssessment UseCase = "risk_breach_assessment"
)

// DefaultUseCase is applied when a request does not select a use case.
const DefaultUseCase = UseCaseCoverLetterDrafting

// AllUseCases lists the supported use cases in a stable order.
func AllUseCases() []UseCase {
	return []UseCase{
		UseCaseGeneralComplianceQA,
		UseCaseCoverLetterDrafting,
		UseCaseComplianceChecklist,
		UseCaseRiskBreachAssessment,
	}
}

// IsValidUseCase checks membership in the closed use-case set.
func IsValidUseCase(u UseCase) bool {
	switch u {
	case UseCaseGeneralComplianceQA, UseCaseCoverLetterDrafting,
		UseCaseComplianceChecklist, UseCaseRiskBreachAssessment:
		return true
	}
	return false
}
