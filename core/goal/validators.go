package goal

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mentorhub/core"
)

var (
	goalStatusTag  = "goalstatus"
	goalStatusText = "{0} must be one of PENDING, IN_PROGRESS or COMPLETED"
)

func InitValidators(v *core.Validator) {
	_ = v.Validate.RegisterValidation(goalStatusTag, goalStatusValidation)
	core.RegisterCustomTranslation(v.Validate, v.Translator, goalStatusTag, goalStatusText)
}

func goalStatusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).Valid()
}

type (
	// SaveGoal is the payload to add or edit a personal goal.
	SaveGoal struct {
		Title              string `json:"title" validate:"notblank"`
		Description        string `json:"description"`
		DueDate            string `json:"dueDate,omitempty"`
		Status             Status `json:"status" validate:"omitempty,goalstatus"`
		ProgressPercentage int    `json:"progressPercentage" validate:"min=0,max=100"`
	}

	// UpdateTask is the payload a student sends to move a mentor task along.
	UpdateTask struct {
		Status             Status `json:"status" validate:"omitempty,goalstatus"`
		ProgressPercentage int    `json:"progressPercentage" validate:"min=0,max=100"`
	}

	// NewTask is a task a mentor assigns to a student or a whole class.
	NewTask struct {
		Title       string `json:"title" validate:"notblank"`
		Description string `json:"description"`
		DueDate     string `json:"dueDate,omitempty"`
	}
)

// Normalize trims the text fields and applies the status/progress sync.
// Call it after validation. Without a status, progress decides.
func (sg *SaveGoal) Normalize() {
	sg.Title = core.CleanString(sg.Title)
	sg.Description = core.CleanString(sg.Description)
	sg.DueDate = core.CleanString(sg.DueDate)
	if sg.Status == "" {
		sg.ProgressPercentage, sg.Status = SyncFromProgress(sg.ProgressPercentage)
		return
	}
	sg.Status, sg.ProgressPercentage = SyncFromStatus(sg.Status, sg.ProgressPercentage)
}

func (ut *UpdateTask) Normalize() {
	if ut.Status == "" {
		ut.ProgressPercentage, ut.Status = SyncFromProgress(ut.ProgressPercentage)
		return
	}
	ut.Status, ut.ProgressPercentage = SyncFromStatus(ut.Status, ut.ProgressPercentage)
}

func (nt *NewTask) Normalize() {
	nt.Title = core.CleanString(nt.Title)
	nt.Description = core.CleanString(nt.Description)
	nt.DueDate = core.CleanString(nt.DueDate)
}
