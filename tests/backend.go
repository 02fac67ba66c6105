package testutil

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/report"
	"github.com/trezcool/mentorhub/core/roster"
	"github.com/trezcool/mentorhub/core/session"
)

// Seeded ids
const (
	AdminID        int64 = 1
	MentorID       int64 = 2 // classes A & B
	OtherMentorID  int64 = 3 // class C
	StudentID      int64 = 10
	OtherStudentID int64 = 11 // class A, no current report
	ClassBStudent  int64 = 12
	PendingStudent int64 = 20
	PendingMentor  int64 = 21

	PersonalGoalID int64 = 100
	MentorTaskID   int64 = 101

	// Password of every seeded user.
	Password = "Secret123!"
)

var classLabels = map[int]string{1: roster.ClassA, 2: roster.ClassB, 3: roster.ClassC}

type fakeUser struct {
	session.User
	Password  string
	Approved  bool
	ClassName string   // students
	Classes   []string // mentors
}

type ownedGoal struct {
	goal.Goal
	StudentID int64
}

// Backend is an in-memory rendition of the tutoring REST API served over httptest.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	users    map[int64]*fakeUser
	goals    map[int64]*ownedGoal
	feedback []feedback.Feedback
	current  map[int64]report.Current
	history  map[int64][]report.WeeklyReport
	nextID   int64
	promoted int
	failures map[string]int
	blocks   map[string]chan struct{}
	calls    map[string]int
}

// NewBackend starts a seeded fake backend, closed at the end of the test.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		users:    make(map[int64]*fakeUser),
		goals:    make(map[int64]*ownedGoal),
		current:  make(map[int64]report.Current),
		history:  make(map[int64][]report.WeeklyReport),
		nextID:   1000,
		failures: make(map[string]int),
		blocks:   make(map[string]chan struct{}),
		calls:    make(map[string]int),
	}
	b.seed()
	b.Server = httptest.NewServer(b.router())
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) seed() {
	add := func(id int64, name, email string, role session.Role, approved bool, class string, classes ...string) {
		b.users[id] = &fakeUser{
			User:      session.User{UserID: id, Name: name, Email: email, Role: role},
			Password:  Password,
			Approved:  approved,
			ClassName: class,
			Classes:   classes,
		}
	}
	add(AdminID, "Grace Admin", "admin@test.cd", session.RoleAdmin, true, "")
	add(MentorID, "Ada Mentor", "ada@test.cd", session.RoleMentor, true, "", roster.ClassA, roster.ClassB)
	add(OtherMentorID, "Linus Mentor", "linus@test.cd", session.RoleMentor, true, "", roster.ClassC)
	add(StudentID, "Bob Student", "bob@test.cd", session.RoleStudent, true, roster.ClassA)
	add(OtherStudentID, "Cy Student", "cy@test.cd", session.RoleStudent, true, roster.ClassA)
	add(ClassBStudent, "Dee Student", "dee@test.cd", session.RoleStudent, true, roster.ClassB)
	add(PendingStudent, "Eve Pending", "eve@test.cd", session.RoleStudent, false, roster.ClassC)
	add(PendingMentor, "Finn Pending", "finn@test.cd", session.RoleMentor, false, "")

	mentor := "Ada Mentor"
	b.goals[PersonalGoalID] = &ownedGoal{StudentID: StudentID, Goal: goal.Goal{
		ID: PersonalGoalID, Title: "Read two chapters", Status: goal.StatusInProgress, ProgressPercentage: 40, DueDate: "2024-06-01",
	}}
	b.goals[MentorTaskID] = &ownedGoal{StudentID: StudentID, Goal: goal.Goal{
		ID: MentorTaskID, Title: "Essay draft", Status: goal.StatusPending, MentorName: &mentor,
	}}

	b.feedback = append(b.feedback, feedback.Feedback{
		MentorID: MentorID, StudentID: StudentID, MentorName: "Ada Mentor",
		FeedbackChoice: feedback.ChoicePositive, FeedbackText: "Great start",
		CreatedAt: time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC),
	})

	b.current[StudentID] = report.Current{WeekStartDate: "2024-05-06", WeekEndDate: "2024-05-12", CompletedCount: 2, TotalCount: 4, CompletionPercentage: 50}
	b.current[ClassBStudent] = report.Current{WeekStartDate: "2024-05-06", WeekEndDate: "2024-05-12", CompletedCount: 1, TotalCount: 1, CompletionPercentage: 100}
	b.history[StudentID] = []report.WeeklyReport{
		{WeekID: "2024-W18", StartDate: "2024-04-29", EndDate: "2024-05-05", CompletedCount: 3, TotalCount: 4, CompletionPercentage: 75},
		{WeekID: "2024-W19", StartDate: "2024-05-06", EndDate: "2024-05-12", CompletedCount: 2, TotalCount: 4, CompletionPercentage: 50},
	}
}

// URL is the API base URL (with the /api prefix).
func (b *Backend) URL() string {
	return b.Server.URL + "/api"
}

// Config returns a configuration pointing at the fake backend.
func (b *Backend) Config(t *testing.T) *core.Config {
	t.Helper()
	return &core.Config{
		AppName: "mentorhub-test",
		Env:     "TEST",
		Build:   "test",
		Debug:   true,
		API: core.APIConfig{
			BaseURL:        b.URL(),
			Timeout:        5 * time.Second,
			MaxConcurrency: 2,
		},
		Session:  core.SessionConfig{Path: filepath.Join(t.TempDir(), "session.json")},
		Notify:   core.NotifyConfig{Lifetime: 50 * time.Millisecond},
		Watch:    core.WatchConfig{Schedule: "@every 1s"},
		TestMode: true,
	}
}

// Session issues a valid session for a seeded user.
func (b *Backend) Session(t *testing.T, userID int64) session.Session {
	t.Helper()
	b.mu.Lock()
	usr, ok := b.users[userID]
	b.mu.Unlock()
	if !ok {
		t.Fatalf("Session(): no user %d", userID)
	}
	return session.Session{Token: NewToken(t, usr.User, time.Hour), User: usr.User}
}

// Fail makes every `method path` call (path without the /api prefix) answer with status.
func (b *Backend) Fail(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" /api"+path] = status
}

// Block holds every `method path` call until the returned release func runs
// or the caller gives up. Blocked calls are released at the end of the test.
func (b *Backend) Block(t *testing.T, method, path string) (release func()) {
	t.Helper()
	gate := make(chan struct{})
	b.mu.Lock()
	b.blocks[method+" /api"+path] = gate
	b.mu.Unlock()

	var once sync.Once
	release = func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.blocks, method+" /api"+path)
			b.mu.Unlock()
			close(gate)
		})
	}
	t.Cleanup(release)
	return release
}

// Calls counts the `method path` calls received (path without the /api prefix).
func (b *Backend) Calls(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method+" /api"+path]
}

func (b *Backend) Promotions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.promoted
}

// MentorClasses returns the classes currently assigned to a mentor.
func (b *Backend) MentorClasses(mentorID int64) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if usr, ok := b.users[mentorID]; ok {
		out := append([]string(nil), usr.Classes...)
		sort.Strings(out)
		return out
	}
	return nil
}

// Goal returns a stored goal or task.
func (b *Backend) Goal(id int64) (goal.Goal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if g, ok := b.goals[id]; ok {
		return g.Goal, true
	}
	return goal.Goal{}, false
}

// IsApproved reports whether a user exists and was approved.
func (b *Backend) IsApproved(id int64) (approved, exists bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	usr, ok := b.users[id]
	if !ok {
		return false, false
	}
	return usr.Approved, true
}

func (b *Backend) router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	api := e.Group("/api", b.recordCalls, b.holdBlocked, b.injectFailures)
	api.POST("/auth/login", b.login)
	api.POST("/auth/register", b.register)

	authed := api.Group("", b.authenticate)

	admin := authed.Group("/admin", requireRole(session.RoleAdmin))
	admin.GET("/requests/:kind", b.pendingRequests)
	admin.POST("/approve/:id", b.approve)
	admin.POST("/reject/:id", b.reject)
	admin.GET("/mentors", b.mentors)
	admin.POST("/classes/:classId/assign-mentor/:id", b.assignMentor)
	admin.DELETE("/classes/:classId/remove-mentor/:id", b.removeMentor)
	admin.GET("/classes/:classId/students", b.classStudents)
	admin.POST("/classes/promote", b.promote)

	authed.GET("/mentors/:id/students", b.mentorStudents)
	authed.GET("/mentors/:id/students/class/:className", b.mentorStudents)
	authed.POST("/tasks/mentors/:id/student/:studentId", b.assignTaskToStudent)
	authed.POST("/tasks/mentors/:id/class/:className", b.assignTaskToClass)
	authed.GET("/mentors/:id/feedback/student/:studentId", b.feedbackHistory)
	authed.POST("/mentors/:id/feedback/student/:studentId", b.submitFeedback)

	authed.GET("/dashboard/student/:id", b.dashboard)
	authed.GET("/goals/student/:id", b.studentGoals)
	authed.POST("/goals/student/:id", b.createGoal)
	authed.PATCH("/goals/:goalId", b.updateGoal)
	authed.DELETE("/goals/:goalId", b.deleteGoal)
	authed.PATCH("/tasks/student/:id/task/:taskId", b.updateTask)
	authed.GET("/students/:id/feedback", b.studentFeedback)
	authed.GET("/reports/student/:id/current", b.currentReport)
	authed.GET("/reports/student/:id/history", b.reportHistory)
	return e
}

// Middleware

func (b *Backend) recordCalls(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.mu.Lock()
		b.calls[c.Request().Method+" "+c.Request().URL.Path]++
		b.mu.Unlock()
		return next(c)
	}
}

func (b *Backend) holdBlocked(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.mu.Lock()
		gate, ok := b.blocks[c.Request().Method+" "+c.Request().URL.Path]
		b.mu.Unlock()
		if ok {
			select {
			case <-gate:
			case <-c.Request().Context().Done():
				return c.Request().Context().Err()
			}
		}
		return next(c)
	}
}

func (b *Backend) injectFailures(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.mu.Lock()
		status, ok := b.failures[c.Request().Method+" "+c.Request().URL.Path]
		b.mu.Unlock()
		if ok {
			return c.JSON(status, echo.Map{"message": "injected failure"})
		}
		return next(c)
	}
}

const contextUserKey = "user"

func (b *Backend) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing or malformed jwt"})
		}
		claims, err := parseToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired jwt"})
		}
		id, _ := strconv.ParseInt(claims.Subject, 10, 64)
		b.mu.Lock()
		usr, ok := b.users[id]
		b.mu.Unlock()
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unknown user"})
		}
		c.Set(contextUserKey, usr.User)
		return next(c)
	}
}

func requireRole(role session.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if usr, _ := c.Get(contextUserKey).(session.User); usr.Role != role {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

func idParam(c echo.Context, name string) int64 {
	id, _ := strconv.ParseInt(c.Param(name), 10, 64)
	return id
}

func notFound(c echo.Context, what string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"message": what + " not found"})
}

// Auth

func (b *Backend) login(c echo.Context) error {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, usr := range b.users {
		if usr.Email == creds.Email && usr.Password == creds.Password {
			if !usr.Approved {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Account pending approval"})
			}
			token, err := signToken(usr.User, time.Hour)
			if err != nil {
				return err
			}
			return c.JSON(http.StatusOK, echo.Map{
				"token": token,
				"user":  echo.Map{"userId": usr.UserID, "name": usr.Name, "role": usr.Role},
			})
		}
	}
	return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password"})
}

func (b *Backend) register(c echo.Context) error {
	var reg struct {
		Name      string       `json:"name"`
		Email     string       `json:"email"`
		Role      session.Role `json:"role"`
		Password  string       `json:"password"`
		ClassName string       `json:"className"`
	}
	if err := c.Bind(&reg); err != nil {
		return c.String(http.StatusBadRequest, "invalid body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, usr := range b.users {
		if usr.Email == reg.Email {
			return c.String(http.StatusConflict, "Email already registered")
		}
	}
	b.nextID++
	b.users[b.nextID] = &fakeUser{
		User:      session.User{UserID: b.nextID, Name: reg.Name, Email: reg.Email, Role: reg.Role},
		Password:  reg.Password,
		ClassName: reg.ClassName,
	}
	return c.String(http.StatusOK, "Registration successful. Awaiting admin approval.")
}

// Admin

func (b *Backend) pendingRequests(c echo.Context) error {
	var role session.Role
	switch c.Param("kind") {
	case "students":
		role = session.RoleStudent
	case "mentors":
		role = session.RoleMentor
	default:
		return notFound(c, "request kind")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]roster.PendingRegistration, 0)
	for _, usr := range b.sortedUsers() {
		if usr.Role == role && !usr.Approved {
			out = append(out, roster.PendingRegistration{UserID: usr.UserID, Name: usr.Name, Email: usr.Email, ClassName: usr.ClassName})
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) approve(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	usr, ok := b.users[idParam(c, "id")]
	if !ok || usr.Approved {
		return notFound(c, "request")
	}
	usr.Approved = true
	return c.String(http.StatusOK, "User approved")
}

func (b *Backend) reject(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := idParam(c, "id")
	usr, ok := b.users[id]
	if !ok || usr.Approved {
		return notFound(c, "request")
	}
	delete(b.users, id)
	return c.String(http.StatusOK, "User rejected")
}

func (b *Backend) mentors(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := make([]roster.Member, 0)
	for _, usr := range b.sortedUsers() {
		if usr.Role != session.RoleMentor || !usr.Approved {
			continue
		}
		if len(usr.Classes) == 0 {
			rows = append(rows, roster.Member{UserID: usr.UserID, Name: usr.Name, Email: usr.Email})
		}
		for _, cls := range usr.Classes {
			rows = append(rows, roster.Member{UserID: usr.UserID, Name: usr.Name, Email: usr.Email, ClassName: cls})
		}
	}
	return c.JSON(http.StatusOK, rows)
}

func (b *Backend) mentorWithClass(c echo.Context) (*fakeUser, string, bool) {
	label, ok := classLabels[int(idParam(c, "classId"))]
	if !ok {
		return nil, "", false
	}
	usr, ok := b.users[idParam(c, "id")]
	if !ok || usr.Role != session.RoleMentor {
		return nil, "", false
	}
	return usr, label, true
}

func (b *Backend) assignMentor(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	usr, label, ok := b.mentorWithClass(c)
	if !ok {
		return notFound(c, "class or mentor")
	}
	for _, cls := range usr.Classes {
		if cls == label {
			return c.JSON(http.StatusConflict, echo.Map{"message": "already assigned"})
		}
	}
	usr.Classes = append(usr.Classes, label)
	return c.String(http.StatusOK, "Mentor assigned")
}

func (b *Backend) removeMentor(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	usr, label, ok := b.mentorWithClass(c)
	if !ok {
		return notFound(c, "class or mentor")
	}
	kept := usr.Classes[:0]
	for _, cls := range usr.Classes {
		if cls != label {
			kept = append(kept, cls)
		}
	}
	usr.Classes = kept
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) classStudents(c echo.Context) error {
	label, ok := classLabels[int(idParam(c, "classId"))]
	if !ok {
		return notFound(c, "class")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.studentsIn(label))
}

func (b *Backend) promote(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.promoted++
	return c.String(http.StatusOK, "Classes promoted")
}

// Mentor

func (b *Backend) mentorStudents(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	mentor, ok := b.users[idParam(c, "id")]
	if !ok || mentor.Role != session.RoleMentor {
		return notFound(c, "mentor")
	}
	rows := make([]roster.Member, 0)
	for _, cls := range mentor.Classes {
		if want := c.Param("className"); want != "" && want != cls {
			continue
		}
		rows = append(rows, b.studentsIn(cls)...)
	}
	return c.JSON(http.StatusOK, rows)
}

func (b *Backend) assignTaskToStudent(c echo.Context) error {
	var task goal.NewTask
	if err := c.Bind(&task); err != nil {
		return c.String(http.StatusBadRequest, "invalid body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	mentor, ok := b.users[idParam(c, "id")]
	student, ok2 := b.users[idParam(c, "studentId")]
	if !ok || !ok2 || student.Role != session.RoleStudent {
		return notFound(c, "mentor or student")
	}
	b.addTask(mentor.Name, student.UserID, task)
	return c.String(http.StatusOK, "Task assigned successfully")
}

func (b *Backend) assignTaskToClass(c echo.Context) error {
	var task goal.NewTask
	if err := c.Bind(&task); err != nil {
		return c.String(http.StatusBadRequest, "invalid body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	mentor, ok := b.users[idParam(c, "id")]
	if !ok {
		return notFound(c, "mentor")
	}
	students := b.studentsIn(c.Param("className"))
	for _, s := range students {
		b.addTask(mentor.Name, s.UserID, task)
	}
	return c.String(http.StatusOK, "Task assigned to "+strconv.Itoa(len(students))+" students")
}

func (b *Backend) feedbackHistory(c echo.Context) error {
	mentorID, studentID := idParam(c, "id"), idParam(c, "studentId")
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[studentID]; !ok {
		return notFound(c, "student")
	}
	out := make([]feedback.Feedback, 0)
	for _, fb := range b.feedback {
		if fb.MentorID == mentorID && fb.StudentID == studentID {
			out = append(out, fb)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) submitFeedback(c echo.Context) error {
	var nf feedback.NewFeedback
	if err := c.Bind(&nf); err != nil || !nf.FeedbackChoice.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid feedback"})
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	mentor, ok := b.users[idParam(c, "id")]
	if !ok {
		return notFound(c, "mentor")
	}
	fb := feedback.Feedback{
		MentorID: mentor.UserID, StudentID: idParam(c, "studentId"), MentorName: mentor.Name,
		FeedbackChoice: nf.FeedbackChoice, FeedbackText: nf.FeedbackText, CreatedAt: time.Now().UTC(),
	}
	b.feedback = append(b.feedback, fb)
	return c.JSON(http.StatusCreated, fb)
}

// Student

func (b *Backend) dashboard(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.goalsOf(idParam(c, "id"), true))
}

func (b *Backend) studentGoals(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.goalsOf(idParam(c, "id"), false))
}

func (b *Backend) createGoal(c echo.Context) error {
	var sg goal.SaveGoal
	if err := c.Bind(&sg); err != nil || sg.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title is required"})
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	g := &ownedGoal{StudentID: idParam(c, "id"), Goal: goal.Goal{
		ID: b.nextID, Title: sg.Title, Description: sg.Description, DueDate: sg.DueDate,
		Status: sg.Status, ProgressPercentage: sg.ProgressPercentage,
	}}
	b.goals[g.ID] = g
	return c.JSON(http.StatusCreated, g.Goal)
}

func (b *Backend) updateGoal(c echo.Context) error {
	var sg goal.SaveGoal
	if err := c.Bind(&sg); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	g, ok := b.goals[idParam(c, "goalId")]
	if !ok || g.IsTask() {
		return notFound(c, "goal")
	}
	g.Title, g.Description, g.DueDate = sg.Title, sg.Description, sg.DueDate
	g.Status, g.ProgressPercentage = sg.Status, sg.ProgressPercentage
	return c.JSON(http.StatusOK, g.Goal)
}

func (b *Backend) deleteGoal(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := idParam(c, "goalId")
	if _, ok := b.goals[id]; !ok {
		return notFound(c, "goal")
	}
	delete(b.goals, id)
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) updateTask(c echo.Context) error {
	var ut goal.UpdateTask
	if err := c.Bind(&ut); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	g, ok := b.goals[idParam(c, "taskId")]
	if !ok || !g.IsTask() || g.StudentID != idParam(c, "id") {
		return notFound(c, "task")
	}
	g.Status, g.ProgressPercentage = ut.Status, ut.ProgressPercentage
	return c.JSON(http.StatusOK, g.Goal)
}

func (b *Backend) studentFeedback(c echo.Context) error {
	studentID := idParam(c, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]feedback.Feedback, 0)
	for _, fb := range b.feedback {
		if fb.StudentID == studentID {
			out = append(out, fb)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) currentReport(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, ok := b.current[idParam(c, "id")]
	if !ok {
		return notFound(c, "report")
	}
	return c.JSON(http.StatusOK, cur)
}

func (b *Backend) reportHistory(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	weeks := b.history[idParam(c, "id")]
	if weeks == nil {
		weeks = []report.WeeklyReport{}
	}
	return c.JSON(http.StatusOK, weeks)
}

// helpers; callers hold b.mu

func (b *Backend) sortedUsers() []*fakeUser {
	out := make([]*fakeUser, 0, len(b.users))
	for _, usr := range b.users {
		out = append(out, usr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func (b *Backend) studentsIn(label string) []roster.Member {
	rows := make([]roster.Member, 0)
	for _, usr := range b.sortedUsers() {
		if usr.Role == session.RoleStudent && usr.Approved && usr.ClassName == label {
			rows = append(rows, roster.Member{UserID: usr.UserID, Name: usr.Name, Email: usr.Email, ClassName: label})
		}
	}
	return rows
}

func (b *Backend) goalsOf(studentID int64, withTasks bool) []goal.Goal {
	ids := make([]int64, 0, len(b.goals))
	for id, g := range b.goals {
		if g.StudentID == studentID && (withTasks || !g.IsTask()) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]goal.Goal, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.goals[id].Goal)
	}
	return out
}

func (b *Backend) addTask(mentorName string, studentID int64, task goal.NewTask) {
	b.nextID++
	name := mentorName
	b.goals[b.nextID] = &ownedGoal{StudentID: studentID, Goal: goal.Goal{
		ID: b.nextID, Title: task.Title, Description: task.Description, DueDate: task.DueDate,
		Status: goal.StatusPending, MentorName: &name,
	}}
}
