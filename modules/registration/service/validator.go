package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"spendenlauf-api/core/constants"
	"spendenlauf-api/modules/participant/entity"
	"spendenlauf-api/modules/registration/dto"

	validatorlib "github.com/go-playground/validator/v10"
)

// Structural validation: pure shape checks on the bound form values,
// returning a field-keyed error map the form renders inline. No I/O.
//
// The semantic pass below runs once per submission and re-checks content
// (charset, email, phone) independently of the structural rules.

var validate = validatorlib.New()

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// ValidateIndividual checks the single-runner form.
func ValidateIndividual(req *dto.IndividualRegistrationRequest) map[string]string {
	errs := make(map[string]string)

	if len(strings.TrimSpace(req.FirstName)) < constants.NameMinLength {
		errs["first_name"] = "Der Vorname muss mindestens 2 Zeichen lang sein."
	}
	if len(strings.TrimSpace(req.LastName)) < constants.NameMinLength {
		errs["last_name"] = "Der Nachname muss mindestens 2 Zeichen lang sein."
	}
	if !validEmail(req.Email) {
		errs["email"] = "Bitte gib eine gültige E-Mail-Adresse an."
	}
	if req.Age < constants.IndividualAgeMin || req.Age > constants.IndividualAgeMax {
		errs["age"] = fmt.Sprintf("Das Alter muss zwischen %d und %d liegen.", constants.IndividualAgeMin, constants.IndividualAgeMax)
	}
	if _, ok := entity.ParseGender(req.Gender); !ok {
		errs["gender"] = "Bitte wähle ein Geschlecht aus."
	}
	if req.JoinTeam && strings.TrimSpace(req.TeamIdentifier) == "" {
		errs["team_identifier"] = "Bitte gib den Team-Code oder Teamnamen an."
	}

	if req.Age >= constants.ChildAgeThreshold {
		if strings.TrimSpace(req.TimeslotID) == "" {
			errs["timeslot_id"] = "Bitte wähle eine Startzeit aus."
		}
	} else if strings.TrimSpace(req.TimeslotID) != "" {
		// Children run in the Kinderlauf and are assigned automatically; an
		// explicit selection is rejected rather than silently dropped.
		errs["timeslot_id"] = "Kinder unter 10 Jahren starten automatisch beim Kinderlauf."
	}

	return errs
}

// ValidateTeam checks the team form.
func ValidateTeam(req *dto.TeamRegistrationRequest) map[string]string {
	errs := make(map[string]string)

	if len(strings.TrimSpace(req.TeamName)) < constants.NameMinLength {
		errs["team_name"] = "Der Teamname muss mindestens 2 Zeichen lang sein."
	}
	if len(req.Members) == 0 {
		errs["members"] = "Ein Team braucht mindestens ein Mitglied."
	}
	if req.SharedEmail && !validEmail(req.TeamEmail) {
		errs["team_email"] = "Bitte gib eine gültige Team-E-Mail-Adresse an."
	}
	if strings.TrimSpace(req.TimeslotID) == "" {
		errs["timeslot_id"] = "Bitte wähle eine Startzeit für das Team aus."
	}

	for i, m := range req.Members {
		prefix := fmt.Sprintf("members[%d].", i)
		if len(strings.TrimSpace(m.FirstName)) < constants.NameMinLength {
			errs[prefix+"first_name"] = "Der Vorname muss mindestens 2 Zeichen lang sein."
		}
		if len(strings.TrimSpace(m.LastName)) < constants.NameMinLength {
			errs[prefix+"last_name"] = "Der Nachname muss mindestens 2 Zeichen lang sein."
		}
		// With a shared team email the member email is overridden anyway.
		if !req.SharedEmail && !validEmail(m.Email) {
			errs[prefix+"email"] = "Bitte gib eine gültige E-Mail-Adresse an."
		}
		if m.Age < constants.TeamMemberAgeMin || m.Age > constants.TeamMemberAgeMax {
			errs[prefix+"age"] = fmt.Sprintf("Das Alter muss zwischen %d und %d liegen.", constants.TeamMemberAgeMin, constants.TeamMemberAgeMax)
		}
		if _, ok := entity.ParseGender(m.Gender); !ok {
			errs[prefix+"gender"] = "Bitte wähle ein Geschlecht aus."
		}
	}

	return errs
}

// ValidateChildren checks the children's-run form.
func ValidateChildren(req *dto.ChildrenRegistrationRequest) map[string]string {
	errs := make(map[string]string)

	if len(req.Children) == 0 {
		errs["children"] = "Bitte melde mindestens ein Kind an."
	}
	if len(strings.TrimSpace(req.GuardianName)) < constants.NameMinLength {
		errs["guardian_name"] = "Der Name muss mindestens 2 Zeichen lang sein."
	}
	if !validEmail(req.GuardianEmail) {
		errs["guardian_email"] = "Bitte gib eine gültige E-Mail-Adresse an."
	}
	if len(strings.TrimSpace(req.GuardianPhone)) < constants.PhoneMinLength {
		errs["guardian_phone"] = "Bitte gib eine gültige Telefonnummer an."
	}

	for i, c := range req.Children {
		prefix := fmt.Sprintf("children[%d].", i)
		if len(strings.TrimSpace(c.FirstName)) < constants.NameMinLength {
			errs[prefix+"first_name"] = "Der Vorname muss mindestens 2 Zeichen lang sein."
		}
		if len(strings.TrimSpace(c.LastName)) < constants.NameMinLength {
			errs[prefix+"last_name"] = "Der Nachname muss mindestens 2 Zeichen lang sein."
		}
		if c.Age < constants.ChildAgeMin || c.Age > constants.ChildAgeMax {
			errs[prefix+"age"] = fmt.Sprintf("Das Alter muss zwischen %d und %d liegen.", constants.ChildAgeMin, constants.ChildAgeMax)
		}
		if _, ok := entity.ParseGender(c.Gender); !ok {
			errs[prefix+"gender"] = "Bitte wähle ein Geschlecht aus."
		}
	}

	if len(req.Children) > 1 && !req.JoinTeam && strings.TrimSpace(req.TeamName) == "" {
		errs["team_name"] = "Bei mehreren Kindern gib bitte einen Teamnamen an oder tritt einem Team bei."
	}
	if req.JoinTeam && strings.TrimSpace(req.TeamIdentifier) == "" {
		errs["team_identifier"] = "Bitte gib den Team-Code oder Teamnamen an."
	}

	return errs
}

// Semantic validation: content safety checks that run once at submit time.

// nameCharset allows letters (any script), hyphens and spaces; markup
// characters like <>"'& never pass.
var nameCharset = regexp.MustCompile(`^[\p{L}\- ]+$`)

// germanMobile matches German mobile numbers with or without country prefix.
var germanMobile = regexp.MustCompile(`^(\+49|0049|0)1[5-7][0-9]{7,10}$`)

func ValidName(name string) bool {
	return nameCharset.MatchString(strings.TrimSpace(name))
}

func ValidGermanMobile(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "/", "").Replace(phone)
	return germanMobile.MatchString(cleaned)
}

func ValidEmailAddress(email string) bool {
	return validEmail(email)
}

// ValidateCaptcha accepts only a strict integer answer: "7" passes for 7,
// "7.0" and non-numeric input do not.
func ValidateCaptcha(answer string, expected int) bool {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return false
	}
	return n == expected
}
