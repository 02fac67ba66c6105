package user

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/roster"
	"github.com/trezcool/mentorhub/core/session"
)

var (
	loginEmailTag  = "loginemail"
	loginEmailText = "please enter a valid email address"

	regRoleTag  = "regrole"
	regRoleText = "role must be STUDENT or MENTOR"

	classRequiredTag  = "classrequired"
	classRequiredText = "please select a class (A, B or C) for the student"

	pwdMismatchText = "passwords do not match"

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to your name or email"
)

// InitValidators registers the auth form validators on v.
func InitValidators(v *core.Validator) {
	_ = v.Validate.RegisterValidation(loginEmailTag, loginEmailValidation)
	core.RegisterCustomTranslation(v.Validate, v.Translator, loginEmailTag, loginEmailText)

	_ = v.Validate.RegisterValidation(regRoleTag, regRoleValidation)
	core.RegisterCustomTranslation(v.Validate, v.Translator, regRoleTag, regRoleText)

	v.Validate.RegisterStructValidation(registrationStructValidation, Registration{})
	core.RegisterCustomTranslation(v.Validate, v.Translator, classRequiredTag, classRequiredText)
	core.RegisterCustomTranslation(v.Validate, v.Translator, pwdAttrSimTag, pwdAttrSimText)
	core.RegisterCustomTranslation(v.Validate, v.Translator, "eqfield", pwdMismatchText, true)
}

// Custom Validators

func loginEmailValidation(fl validator.FieldLevel) bool {
	return core.IsEmail(fl.Field().String())
}

func regRoleValidation(fl validator.FieldLevel) bool {
	role := session.Role(fl.Field().String())
	for _, r := range RegistrationRoles {
		if role == r {
			return true
		}
	}
	return false
}

// registrationStructValidation checks the cross-field rules of a Registration.
func registrationStructValidation(sl validator.StructLevel) {
	reg, ok := sl.Current().Interface().(Registration)
	if !ok {
		return
	}
	if reg.Role == session.RoleStudent && !roster.IsClass(reg.ClassName) {
		sl.ReportError(reg.ClassName, "className", "ClassName", classRequiredTag, "")
	}
	if core.IsStrongPassword(reg.Password) && tooSimilar(reg.Password, reg.Name, reg.Email) {
		sl.ReportError(reg.Password, "password", "Password", pwdAttrSimTag, "")
	}
}

// tooSimilar compares the password with each user attribute, character-wise.
func tooSimilar(pwd string, attrs ...string) bool {
	lpwd := strings.ToLower(pwd)
	for _, attr := range attrs {
		if attr == "" {
			continue
		}
		attr = strings.ToLower(attr)
		if at := strings.IndexByte(attr, '@'); at > 0 {
			attr = attr[:at]
		}
		ratio := difflib.NewMatcher(strings.Split(lpwd, ""), strings.Split(attr, "")).QuickRatio()
		if ratio >= pwdMaxSim {
			return true
		}
	}
	return false
}
