package console

import "github.com/trezcool/mentorhub/core/user"

// App groups every page of the console.
type App struct {
	Auth *Auth

	// admin
	Approvals *Approvals
	Mentors   *Mentors
	Classes   *Classes

	// mentor
	Students     *Students
	StudentGoals *StudentGoals
	Reports      *Reports
	Feedback     *FeedbackPanel

	// student
	Goals      *Goals
	MyFeedback *MyFeedback
	MyReports  *MyReports
}

func NewApp(env *Env, users *user.Service) *App {
	return &App{
		Auth:         NewAuth(env, users),
		Approvals:    NewApprovals(env),
		Mentors:      NewMentors(env),
		Classes:      NewClasses(env),
		Students:     NewStudents(env),
		StudentGoals: NewStudentGoals(env),
		Reports:      NewReports(env),
		Feedback:     NewFeedbackPanel(env),
		Goals:        NewGoals(env),
		MyFeedback:   NewMyFeedback(env),
		MyReports:    NewMyReports(env),
	}
}
