package apisvc_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/user"
	apisvc "github.com/trezcool/mentorhub/services/api"
	"github.com/trezcool/mentorhub/tests"
)

func setup(t *testing.T) (*testutil.Backend, *apisvc.Client) {
	backend := testutil.NewBackend(t)
	return backend, apisvc.NewClient(backend.Config(t), nil)
}

func TestClient_Auth(t *testing.T) {
	backend, client := setup(t)
	ctx := context.Background()

	resp, err := client.Login(ctx, user.Credentials{Email: "ada@test.cd", Password: testutil.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, session.User{UserID: testutil.MentorID, Name: "Ada Mentor", Role: session.RoleMentor}, resp.User)

	_, err = client.Login(ctx, user.Credentials{Email: "ada@test.cd", Password: "wrong"})
	assert.True(t, core.IsStatus(err, http.StatusUnauthorized))

	_, err = client.Login(ctx, user.Credentials{Email: "eve@test.cd", Password: testutil.Password})
	assert.True(t, core.IsStatus(err, http.StatusForbidden), "pending accounts cannot log in")

	reg := user.Registration{Name: "Gus", Email: "gus@test.cd", Role: session.RoleStudent, Password: "Abcdef1!", ClassName: "B"}
	require.NoError(t, client.Register(ctx, reg))
	err = client.Register(ctx, reg)
	apiErr, ok := core.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Email already registered", apiErr.Message)

	assert.Equal(t, 2, backend.Calls(http.MethodPost, "/auth/register"))
}

func TestClient_Admin(t *testing.T) {
	backend, client := setup(t)
	ctx := context.Background()
	sess := backend.Session(t, testutil.AdminID)

	students, err := client.PendingRegistrations(ctx, sess, apisvc.PendingStudents)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, testutil.PendingStudent, students[0].UserID)

	require.NoError(t, client.Approve(ctx, sess, testutil.PendingStudent))
	approved, _ := backend.IsApproved(testutil.PendingStudent)
	assert.True(t, approved)
	assert.True(t, core.IsStatus(client.Approve(ctx, sess, testutil.PendingStudent), http.StatusNotFound))

	require.NoError(t, client.Reject(ctx, sess, testutil.PendingMentor))
	_, exists := backend.IsApproved(testutil.PendingMentor)
	assert.False(t, exists)

	rows, err := client.Mentors(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, rows, 3) // Ada: A, B; Linus: C

	require.NoError(t, client.AssignMentor(ctx, sess, 3, testutil.MentorID))
	require.NoError(t, client.RemoveMentor(ctx, sess, 1, testutil.MentorID))
	assert.Equal(t, []string{"B", "C"}, backend.MentorClasses(testutil.MentorID))

	classA, err := client.ClassStudents(ctx, sess, 1)
	require.NoError(t, err)
	assert.Len(t, classA, 2)

	require.NoError(t, client.PromoteClasses(ctx, sess))
	assert.Equal(t, 1, backend.Promotions())

	// admin endpoints are off limits to other roles
	_, err = client.Mentors(ctx, backend.Session(t, testutil.MentorID))
	assert.True(t, core.IsStatus(err, http.StatusForbidden))
}

func TestClient_Mentor(t *testing.T) {
	backend, client := setup(t)
	ctx := context.Background()
	sess := backend.Session(t, testutil.MentorID)

	all, err := client.MentorStudents(ctx, sess, testutil.MentorID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	classB, err := client.MentorStudents(ctx, sess, testutil.MentorID, "B")
	require.NoError(t, err)
	assert.Len(t, classB, 1)

	task := goal.NewTask{Title: "Worksheet", DueDate: "2024-06-10"}
	msg, err := client.AssignTaskToStudent(ctx, sess, testutil.MentorID, testutil.ClassBStudent, task)
	require.NoError(t, err)
	assert.Equal(t, "Task assigned successfully", msg)
	msg, err = client.AssignTaskToClass(ctx, sess, testutil.MentorID, "A", task)
	require.NoError(t, err)
	assert.Equal(t, "Task assigned to 2 students", msg)

	require.NoError(t, client.SubmitFeedback(ctx, sess, testutil.MentorID, testutil.StudentID,
		feedback.NewFeedback{FeedbackChoice: feedback.ChoiceNeutral, FeedbackText: "Keep going"}))
	history, err := client.FeedbackHistory(ctx, sess, testutil.MentorID, testutil.StudentID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, err = client.FeedbackHistory(ctx, sess, testutil.MentorID, 999)
	assert.True(t, core.IsStatus(err, http.StatusNotFound))
}

func TestClient_Student(t *testing.T) {
	backend, client := setup(t)
	ctx := context.Background()
	sess := backend.Session(t, testutil.StudentID)

	items, err := client.Dashboard(ctx, sess, testutil.StudentID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.False(t, items[0].IsTask())
	assert.True(t, items[1].IsTask())

	created, err := client.CreateGoal(ctx, sess, testutil.StudentID, goal.SaveGoal{Title: "Practice", Status: goal.StatusPending})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := client.UpdateGoal(ctx, sess, created.ID, goal.SaveGoal{Title: "Practice more", Status: goal.StatusCompleted, ProgressPercentage: 100})
	require.NoError(t, err)
	assert.Equal(t, "Practice more", updated.Title)

	goals, err := client.StudentGoals(ctx, sess, testutil.StudentID)
	require.NoError(t, err)
	assert.Len(t, goals, 2)

	require.NoError(t, client.DeleteGoal(ctx, sess, created.ID))
	_, ok := backend.Goal(created.ID)
	assert.False(t, ok)

	require.NoError(t, client.UpdateTask(ctx, sess, testutil.StudentID, testutil.MentorTaskID,
		goal.UpdateTask{Status: goal.StatusInProgress, ProgressPercentage: 30}))
	task, _ := backend.Goal(testutil.MentorTaskID)
	assert.Equal(t, 30, task.ProgressPercentage)

	fbs, err := client.StudentFeedback(ctx, sess, testutil.StudentID)
	require.NoError(t, err)
	assert.Len(t, fbs, 1)

	cur, err := client.CurrentReport(ctx, sess, testutil.StudentID)
	require.NoError(t, err)
	assert.Equal(t, 2, cur.CompletedCount)
	_, err = client.CurrentReport(ctx, sess, testutil.OtherStudentID)
	assert.True(t, core.IsStatus(err, http.StatusNotFound))

	weeks, err := client.ReportHistory(ctx, sess, testutil.StudentID)
	require.NoError(t, err)
	assert.Len(t, weeks, 2)
}

func TestClient_Unauthenticated(t *testing.T) {
	_, client := setup(t)
	_, err := client.Dashboard(context.Background(), session.Session{}, testutil.StudentID)
	assert.True(t, core.IsStatus(err, http.StatusUnauthorized))
}
