package coachapp

import (
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/wizard"
)

// Wizard field keys. The client posts these names; FromFields maps them
// onto the Application (note hourlyRate becomes IndividualRate).
const (
	FieldName                   = "name"
	FieldEmail                  = "email"
	FieldBio                    = "bio"
	FieldYearsExperience        = "yearsExperience"
	FieldTeachingPhilosophy     = "teachingPhilosophy"
	FieldSpecializations        = "specializations"
	FieldCertifications         = "certifications"
	FieldHourlyRate             = "hourlyRate"
	FieldGroupRate              = "groupRate"
	FieldUnderstandsLevel1      = "understandsLevel1"
	FieldCommitsToCertification = "commitsToCertification"
	FieldAgreesToTerms          = "agreesToTerms"
)

// Steps returns the five-step coach application wizard definition.
// Backward navigation is always allowed by the engine; these gates only
// control moving forward and the final submission.
func Steps() []wizard.StepDefinition {
	return []wizard.StepDefinition{
		{
			Name: "profile",
			Valid: wizard.All(
				wizard.NonEmpty(FieldName),
				wizard.NonEmpty(FieldEmail),
			),
		},
		{
			Name:  "experience",
			Valid: wizard.Positive(FieldYearsExperience),
		},
		{
			Name: "philosophy",
			Valid: wizard.All(
				wizard.MinLength(FieldTeachingPhilosophy, MinPhilosophyLength),
				wizard.NonEmptyList(FieldSpecializations),
			),
		},
		{
			Name:  "rates",
			Valid: wizard.Positive(FieldHourlyRate),
		},
		{
			Name: "consents",
			Valid: wizard.AllTrue(
				FieldUnderstandsLevel1,
				FieldCommitsToCertification,
				FieldAgreesToTerms,
			),
		},
	}
}

// FromFields maps a completed wizard snapshot onto an Application.
// Identity, timestamps, and status are the caller's responsibility.
// POST: Returns an Application carrying every collected field
func FromFields(f wizard.Fields) Application {
	return Application{
		Name:                   wizard.StringField(f, FieldName),
		Email:                  wizard.StringField(f, FieldEmail),
		Bio:                    wizard.StringField(f, FieldBio),
		YearsExperience:        int(wizard.NumberField(f, FieldYearsExperience)),
		TeachingPhilosophy:     wizard.StringField(f, FieldTeachingPhilosophy),
		Specializations:        wizard.ListField(f, FieldSpecializations),
		Certifications:         wizard.ListField(f, FieldCertifications),
		IndividualRate:         int(wizard.NumberField(f, FieldHourlyRate)),
		GroupRate:              int(wizard.NumberField(f, FieldGroupRate)),
		UnderstandsLevel1:      wizard.BoolField(f, FieldUnderstandsLevel1),
		CommitsToCertification: wizard.BoolField(f, FieldCommitsToCertification),
		AgreesToTerms:          wizard.BoolField(f, FieldAgreesToTerms),
		Status:                 StatusPending,
	}
}
