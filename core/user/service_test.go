package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/storage/session/inmem"
)

type gatewayMock struct {
	resp     LoginResponse
	err      error
	logins   int
	register []Registration
}

func (gw *gatewayMock) Login(context.Context, Credentials) (LoginResponse, error) {
	gw.logins++
	return gw.resp, gw.err
}

func (gw *gatewayMock) Register(_ context.Context, reg Registration) error {
	gw.register = append(gw.register, reg)
	return gw.err
}

func newValidator() *core.Validator {
	v := core.NewValidator()
	InitValidators(v)
	return v
}

func TestService_Login(t *testing.T) {
	tests := []struct {
		name        string
		creds       Credentials
		role        session.Role
		wantLanding string
		wantErr     bool
		wantCalls   int
	}{
		{name: "mentor", creds: Credentials{"ada@test.cd", "secret1"}, role: session.RoleMentor, wantLanding: session.MentorLandingPath, wantCalls: 1},
		{name: "student", creds: Credentials{"ada@test.cd", "secret1"}, role: session.RoleStudent, wantLanding: session.StudentLandingPath, wantCalls: 1},
		{name: "admin", creds: Credentials{" ADA@test.cd ", "secret1"}, role: session.RoleAdmin, wantLanding: session.AdminLandingPath, wantCalls: 1},
		{name: "unknown role", creds: Credentials{"ada@test.cd", "secret1"}, role: "JANITOR", wantErr: true, wantCalls: 1},
		{name: "invalid email", creds: Credentials{"ada", "secret1"}, role: session.RoleMentor, wantErr: true},
		{name: "short password", creds: Credentials{"ada@test.cd", "12345"}, role: session.RoleMentor, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := inmem.NewStore()
			gw := &gatewayMock{resp: LoginResponse{Token: "tkn", User: session.User{UserID: 1, Name: "Ada", Role: tt.role}}}
			svc := NewService(gw, session.NewService(store), newValidator())

			_, landing, err := svc.Login(ctx, tt.creds)
			if (err != nil) != tt.wantErr {
				t.Fatalf("svc.Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.wantCalls, gw.logins)
			assert.Equal(t, tt.wantLanding, landing)

			stored, loadErr := store.Load(ctx)
			if tt.wantErr {
				assert.Equal(t, session.ErrNoSession, loadErr, "nothing stored on failure")
				return
			}
			require.NoError(t, loadErr)
			assert.Equal(t, "tkn", stored.Token)
			assert.Equal(t, "ada@test.cd", stored.User.Email)
		})
	}
}

func TestService_LoginUnknownRoleIsFlagged(t *testing.T) {
	gw := &gatewayMock{resp: LoginResponse{Token: "tkn", User: session.User{UserID: 1}}}
	svc := NewService(gw, session.NewService(inmem.NewStore()), newValidator())

	_, _, err := svc.Login(context.Background(), Credentials{"ada@test.cd", "secret1"})
	assert.ErrorIs(t, err, session.ErrUnknownRole)
}

func TestService_Register(t *testing.T) {
	valid := Registration{Name: "Ada", Email: "ada@test.cd", Role: session.RoleStudent, Password: "Abcdef1!", PasswordConfirm: "Abcdef1!", ClassName: "A"}

	tests := []struct {
		name      string
		mutate    func(r *Registration)
		wantField string
	}{
		{name: "valid student", mutate: func(r *Registration) {}},
		{name: "valid mentor drops class", mutate: func(r *Registration) { r.Role = session.RoleMentor; r.ClassName = "" }},
		{name: "phone number", mutate: func(r *Registration) { r.Email = "1234567890" }},
		{name: "bad contact", mutate: func(r *Registration) { r.Email = "12345" }, wantField: "email"},
		{name: "blank name", mutate: func(r *Registration) { r.Name = "  " }, wantField: "name"},
		{name: "weak password", mutate: func(r *Registration) { r.Password = "abcdef1"; r.PasswordConfirm = "abcdef1" }, wantField: "password"},
		{name: "mismatched confirm", mutate: func(r *Registration) { r.PasswordConfirm = "Abcdef1?" }, wantField: "PasswordConfirm"},
		{name: "student without class", mutate: func(r *Registration) { r.ClassName = "" }, wantField: "className"},
		{name: "student unknown class", mutate: func(r *Registration) { r.ClassName = "Z" }, wantField: "className"},
		{name: "admin cannot sign up", mutate: func(r *Registration) { r.Role = session.RoleAdmin }, wantField: "role"},
		{
			name: "password similar to email",
			mutate: func(r *Registration) {
				r.Email = "johnny@test.cd"
				r.Password, r.PasswordConfirm = "Johnny1!", "Johnny1!"
			},
			wantField: "password",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(gatewayMock)
			svc := NewService(gw, session.NewService(inmem.NewStore()), newValidator())
			reg := valid
			tt.mutate(&reg)

			err := svc.Register(context.Background(), reg)
			if tt.wantField == "" {
				require.NoError(t, err)
				require.Len(t, gw.register, 1)
				if reg.Role != session.RoleStudent {
					assert.Empty(t, gw.register[0].ClassName)
				}
				return
			}
			if !core.IsValidationError(err) {
				t.Fatalf("svc.Register() error = %v, want *ValidationError", err)
			}
			assert.Empty(t, gw.register, "no network call on invalid input")
			var fields []string
			for _, fe := range err.(*core.ValidationError).Fields {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore(session.Session{Token: "tkn", User: session.User{UserID: 1, Role: session.RoleStudent}})
	svc := NewService(new(gatewayMock), session.NewService(store), newValidator())

	next, err := svc.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.HomePath, next)
	_, err = store.Load(ctx)
	assert.Equal(t, session.ErrNoSession, err)
}
