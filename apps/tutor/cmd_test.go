package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mentorhub/apps/console"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/notify"
	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/user"
	apisvc "github.com/trezcool/mentorhub/services/api"
	notifysvc "github.com/trezcool/mentorhub/services/notify"
	"github.com/trezcool/mentorhub/storage/session/inmem"
	"github.com/trezcool/mentorhub/tests"
)

type cliFixture struct {
	backend *testutil.Backend
	cli     *commandLine
	out     *bytes.Buffer
	notes   *bytes.Buffer
}

func (fx *cliFixture) run(args ...string) error {
	return fx.cli.run(append([]string{"tutor"}, args...))
}

func newCLI(t *testing.T, userID int64) *cliFixture {
	t.Helper()
	backend := testutil.NewBackend(t)
	conf := backend.Config(t)

	store := inmem.NewStore()
	if userID != 0 {
		store = inmem.NewStore(backend.Session(t, userID))
	}
	sessions := session.NewService(store)
	validate := testutil.NewValidator()
	client := apisvc.NewClient(conf, nil)

	var out, notes bytes.Buffer
	center := notify.NewCenter(notifysvc.NewConsoleSink(&notes), notifysvc.NewTermPrompter(strings.NewReader(""), &notes, true), conf.Notify.Lifetime)
	t.Cleanup(center.Close)

	env := console.NewEnv(conf, client, sessions, validate, center, nil)
	app := console.NewApp(env, user.NewService(client, sessions, validate))
	return &cliFixture{
		backend: backend,
		cli:     &commandLine{conf: conf, app: app, sessions: sessions, out: &out},
		out:     &out,
		notes:   &notes,
	}
}

func mockPassword(t *testing.T, pwd string) {
	t.Helper()
	orig := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = orig })
}

func TestCommandLine_Usage(t *testing.T) {
	type cliTest struct {
		name    string
		args    []string
		wantErr error
	}
	tests := []cliTest{
		{name: "no command", args: nil, wantErr: errHelp},
		{name: "unknown command", args: []string{"dance"}, wantErr: errHelp},
		{name: "bad flag", args: []string{"login", "-nope"}, wantErr: errHelp},
		{name: "login without email", args: []string{"login"}, wantErr: errHelp},
		{name: "approve without id", args: []string{"approve"}, wantErr: errHelp},
		{name: "assign-task needs one target", args: []string{"assign-task", "-title", "x", "-student", "10", "-class", "A"}, wantErr: errHelp},
		{name: "update-task needs a change", args: []string{"update-task", "-id", "101"}, wantErr: errHelp},
		{name: "watch unknown page", args: []string{"watch", "-page", "nowhere"}, wantErr: errHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newCLI(t, 0)
			if err := fx.run(tt.args...); err != tt.wantErr {
				t.Errorf("run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if fx.out.Len() == 0 {
				t.Errorf("run() printed no usage")
			}
		})
	}
}

func TestCommandLine_Auth(t *testing.T) {
	t.Run("login then whoami", func(t *testing.T) {
		fx := newCLI(t, 0)
		mockPassword(t, testutil.Password)

		require.NoError(t, fx.run("login", "-email", "bob@test.cd"))
		assert.Contains(t, fx.out.String(), "Logged in as Bob Student (STUDENT). Landing page: "+session.StudentLandingPath)
		assert.Contains(t, fx.notes.String(), "Welcome, Bob Student!")

		fx.out.Reset()
		require.NoError(t, fx.run("whoami"))
		assert.Equal(t, "Bob Student <bob@test.cd> STUDENT #10\n", fx.out.String())
	})

	t.Run("whoami without a session", func(t *testing.T) {
		fx := newCLI(t, 0)
		err := fx.run("whoami")
		require.Error(t, err)
		assert.Contains(t, describe(err), "run `tutor login` first")
	})

	t.Run("logout", func(t *testing.T) {
		fx := newCLI(t, testutil.StudentID)
		require.NoError(t, fx.run("logout"))
		assert.Contains(t, fx.out.String(), "Back to")
		_, err := fx.cli.sessions.Require(context.Background())
		assert.Error(t, err)
	})
}

func TestCommandLine_Admin(t *testing.T) {
	fx := newCLI(t, testutil.AdminID)

	require.NoError(t, fx.run("pending"))
	assert.Contains(t, fx.out.String(), "Eve Pending")
	assert.Contains(t, fx.out.String(), "Finn Pending")

	fx.out.Reset()
	require.NoError(t, fx.run("approve", "-id", "20"))
	approved, _ := fx.backend.IsApproved(testutil.PendingStudent)
	assert.True(t, approved)
	assert.NotContains(t, fx.out.String(), "Eve Pending")

	require.NoError(t, fx.run("assign", "-mentor", "3", "-batches", "a, b"))
	assert.ElementsMatch(t, []string{"A", "B", "C"}, fx.backend.MentorClasses(testutil.OtherMentorID))

	fx.out.Reset()
	require.NoError(t, fx.run("mentors", "-batch", "C"))
	assert.Contains(t, fx.out.String(), "Linus Mentor")
	assert.NotContains(t, fx.out.String(), "Ada Mentor")

	fx.out.Reset()
	require.NoError(t, fx.run("roster", "-class", "a"))
	assert.Contains(t, fx.out.String(), "Bob Student")
	assert.NotContains(t, fx.out.String(), "Dee Student")

	require.NoError(t, fx.run("promote"))
	assert.Equal(t, 1, fx.backend.Promotions())
}

func TestCommandLine_Mentor(t *testing.T) {
	fx := newCLI(t, testutil.MentorID)

	require.NoError(t, fx.run("students", "-class", "B"))
	assert.Contains(t, fx.out.String(), "Dee Student")

	fx.out.Reset()
	require.NoError(t, fx.run("feedback", "-student", "10"))
	assert.Contains(t, fx.out.String(), "Great start")

	fx.out.Reset()
	require.NoError(t, fx.run("feedback", "-student", "10", "-choice", "improve", "-text", "Cite sources"))
	assert.Contains(t, fx.out.String(), "Cite sources")

	err := fx.run("feedback", "-student", "10", "-choice", "improve")
	assert.Error(t, err, "blank feedback text is rejected")

	require.NoError(t, fx.run("assign-task", "-title", "Quiz prep", "-student", "10"))
	require.NoError(t, fx.run("class-reports", "-class", "A"))

	fx.out.Reset()
	require.NoError(t, fx.run("class-reports", "-class", "A", "-search", "cy"))
	assert.Contains(t, fx.out.String(), "Cy Student")
	assert.NotContains(t, fx.out.String(), "Bob Student")

	fx.out.Reset()
	require.NoError(t, fx.run("class-reports", "-class", "A", "-search", "zed"))
	assert.Contains(t, fx.out.String(), `No reports match your search for "zed"`)

	fx.out.Reset()
	require.NoError(t, fx.run("student-goals", "-student", "10", "-status", "pending"))
	assert.Contains(t, fx.out.String(), "Essay draft")
	assert.NotContains(t, fx.out.String(), "Read two chapters")

	err = fx.run("student-goals", "-student", "10", "-status", "done")
	assert.Error(t, err)
	assert.Contains(t, describe(err), "status")

	assert.Equal(t, errHelp, fx.run("student-goals"))
}

func TestCommandLine_Student(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantErrStr string
		check      func(t *testing.T, fx *cliFixture)
	}{
		{
			name: "goals",
			args: []string{"goals"},
			check: func(t *testing.T, fx *cliFixture) {
				assert.Contains(t, fx.out.String(), "Read two chapters")
				assert.Contains(t, fx.out.String(), "Task by Ada Mentor")
			},
		},
		{
			name: "edit-goal progress decides the status",
			args: []string{"edit-goal", "-id", "100", "-progress", "100"},
			check: func(t *testing.T, fx *cliFixture) {
				g, ok := fx.backend.Goal(testutil.PersonalGoalID)
				require.True(t, ok)
				assert.Equal(t, goal.StatusCompleted, g.Status)
				assert.Equal(t, "Read two chapters", g.Title, "unset flags keep the stored values")
			},
		},
		{
			name:       "edit-goal unknown id",
			args:       []string{"edit-goal", "-id", "999", "-title", "x"},
			wantErr:    true,
			wantErrStr: "goal 999 not found",
		},
		{
			name: "update-task status",
			args: []string{"update-task", "-id", "101", "-status", "completed"},
			check: func(t *testing.T, fx *cliFixture) {
				g, ok := fx.backend.Goal(testutil.MentorTaskID)
				require.True(t, ok)
				assert.Equal(t, goal.StatusCompleted, g.Status)
				assert.Equal(t, 100, g.ProgressPercentage)
			},
		},
		{
			name: "delete-goal",
			args: []string{"delete-goal", "-id", "100"},
			check: func(t *testing.T, fx *cliFixture) {
				_, ok := fx.backend.Goal(testutil.PersonalGoalID)
				assert.False(t, ok)
			},
		},
		{
			name: "my-reports",
			args: []string{"my-reports"},
			check: func(t *testing.T, fx *cliFixture) {
				assert.Contains(t, fx.out.String(), "2024-W18")
			},
		},
		{
			name:    "mentor-only command",
			args:    []string{"students"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newCLI(t, testutil.StudentID)
			err := fx.run(tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErrStr != "" && err.Error() != tt.wantErrStr {
				t.Errorf("run() error = %q, want %q", err.Error(), tt.wantErrStr)
			}
			if tt.check != nil {
				tt.check(t, fx)
			}
		})
	}
}
