package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"

	emailOrPhoneTag  = "email_or_phone"
	emailOrPhoneText = "enter a valid email address or a 10-digit phone number"
	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex       = regexp.MustCompile(`^\d{10}$`)

	// password policy
	PasswordSymbols = "@$!%*?&"
	pwdMinLen       = 8
	pwdPolicyTag    = "pwdpolicy"
	pwdPolicyText   = "password must be 8+ characters, with at least one uppercase letter, one number, and one special character (" + PasswordSymbols + ")"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// Validator bundles a validator.Validate with its english translator.
type Validator struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewValidator instantiates the validator with the global custom tags registered.
func NewValidator() *Validator {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	InitValidators(validate, translator)
	return &Validator{Validate: validate, Translator: translator}
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)

	_ = validate.RegisterValidation(emailOrPhoneTag, emailOrPhoneValidation)
	RegisterCustomTranslation(validate, translator, emailOrPhoneTag, emailOrPhoneText)

	_ = validate.RegisterValidation(pwdPolicyTag, passwordPolicyValidation)
	RegisterCustomTranslation(validate, translator, pwdPolicyTag, pwdPolicyText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates s and converts failures into a *ValidationError with translated field messages.
func (v *Validator) Struct(s interface{}) error {
	err := v.Validate.Struct(s)
	if err == nil {
		return nil
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, "validating")
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(v.Translator)})
	}
	return NewValidationError(nil, flds...)
}

// Custom Global Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func emailOrPhoneValidation(fl validator.FieldLevel) bool {
	return IsEmailOrPhone(fl.Field().String())
}

func passwordPolicyValidation(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsEmail checks s against the login form's email pattern.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsEmailOrPhone accepts a standard email address or exactly 10 digits.
func IsEmailOrPhone(s string) bool {
	return emailRegex.MatchString(s) || phoneRegex.MatchString(s)
}

// IsStrongPassword applies the registration password policy:
// - minLen: 8
// - only letters, digits and PasswordSymbols
// - complexity: 1 upper, 1 digit, 1 of PasswordSymbols
func IsStrongPassword(pwd string) bool {
	if len(pwd) < pwdMinLen {
		return false
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, char := range pwd {
		switch {
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= 'a' && char <= 'z':
		case char >= '0' && char <= '9':
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, char):
			hasSymbol = true
		default:
			return false
		}
	}
	return hasUpper && hasDigit && hasSymbol
}
