package roster

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mentorhub/core"
)

var (
	classLabelTag  = "classlabel"
	classLabelText = "{0} must be one of A, B or C"
)

// InitValidators registers the roster validation tags on v.
func InitValidators(v *core.Validator) {
	_ = v.Validate.RegisterValidation(classLabelTag, classLabelValidation)
	core.RegisterCustomTranslation(v.Validate, v.Translator, classLabelTag, classLabelText)
}

func classLabelValidation(fl validator.FieldLevel) bool {
	return IsClass(fl.Field().String())
}

// ClassSelection is the set of classes picked for a batch assignment.
type ClassSelection struct {
	Classes []string `json:"classes" validate:"required,min=1"`
}
