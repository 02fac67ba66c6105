package user

import (
	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/session"
)

// RegistrationRoles are the roles a visitor may sign up for.
var RegistrationRoles = []session.Role{session.RoleStudent, session.RoleMentor}

// Credentials are posted to the login endpoint.
type Credentials struct {
	Email    string `json:"email" validate:"required,loginemail"`
	Password string `json:"password" validate:"required,min=6"`
}

func (c *Credentials) Validate(v *core.Validator) error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	c.Password = core.CleanString(c.Password)
	return v.Struct(c)
}

// LoginResponse is the backend's answer to a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

func (lr LoginResponse) Session() session.Session {
	return session.Session{Token: lr.Token, User: lr.User}
}

// Registration is a sign-up request; it waits for admin approval once accepted.
// Email holds either an email address or a 10-digit phone number.
type Registration struct {
	Name            string       `json:"name" validate:"notblank"`
	Email           string       `json:"email" validate:"required,email_or_phone"`
	Role            session.Role `json:"role" validate:"required,regrole"`
	Password        string       `json:"password" validate:"required,pwdpolicy"`
	PasswordConfirm string       `json:"-" validate:"required,eqfield=Password"`
	ClassName       string       `json:"className,omitempty"`
}

func (r *Registration) Validate(v *core.Validator) error {
	r.Name = core.CleanString(r.Name)
	r.Email = core.CleanString(r.Email, true /* lower */)
	r.ClassName = core.CleanString(r.ClassName)
	if r.Role != session.RoleStudent {
		r.ClassName = ""
	}
	return v.Struct(r)
}
