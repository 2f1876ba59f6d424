package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/assignment"
	"github.com/gradia/gradia/core/school"
	"github.com/gradia/gradia/core/student"
	"github.com/gradia/gradia/core/submission"
	"github.com/gradia/gradia/core/teacher"
	logsvc "github.com/gradia/gradia/services/logger"
	dummydb "github.com/gradia/gradia/storage/database/dummy"
	"github.com/gradia/gradia/storage/files"
)

var testPrincipal = core.Principal{
	ID:    primitive.NewObjectID(),
	Name:  "Test Teacher",
	Roles: []string{core.RoleTeacher},
}

type testApp struct {
	server Server

	assignmentRepo assignment.Repository
	submissionRepo submission.Repository
	studentRepo    student.Repository
	teacherRepo    teacher.Repository
	classRepo      school.ClassRepository
	examRepo       school.ExamRepository
	libraryRepo    school.LibraryRepository
	annRepo        school.AnnouncementRepository
	attendanceRepo school.AttendanceRepository
	eventRepo      school.EventRepository
	ratingRepo     school.RatingRepository

	uploadDir string
}

func initTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("initTestApp() failed: %v", err)
	}

	conf := &core.Config{
		AppName:        "Gradia",
		Env:            "TEST",
		Debug:          true,
		TestMode:       true,
		FrontendOrigin: "*",
		UploadDir:      t.TempDir(),
	}
	conf.RateLimit.Requests = 100
	conf.RateLimit.Window = 15 * time.Minute

	// mirror the production layout: files land under <dir>/assignments so
	// the returned URLs resolve through the /uploads static route
	uploadDir := filepath.Join(conf.UploadDir, "assignments")
	fileStore, err := files.NewStore(uploadDir, "/uploads/assignments")
	if err != nil {
		t.Fatalf("initTestApp() failed: %v", err)
	}

	app := &testApp{
		assignmentRepo: dummydb.NewAssignmentRepository(db),
		submissionRepo: dummydb.NewSubmissionRepository(db),
		studentRepo:    dummydb.NewStudentRepository(db),
		teacherRepo:    dummydb.NewTeacherRepository(db),
		classRepo:      dummydb.NewClassRepository(db),
		examRepo:       dummydb.NewExamRepository(db),
		libraryRepo:    dummydb.NewLibraryRepository(db),
		annRepo:        dummydb.NewAnnouncementRepository(db),
		attendanceRepo: dummydb.NewAttendanceRepository(db),
		eventRepo:      dummydb.NewEventRepository(db),
		ratingRepo:     dummydb.NewRatingRepository(db),
		uploadDir:      uploadDir,
	}

	app.server = NewServer(&Options{
		Conf:           conf,
		Logger:         logsvc.NewConsoleLogger(log.New(io.Discard, "", 0)),
		Principal:      testPrincipal,
		SignalShutdown: func() {},

		AssignmentSvc:   assignment.NewService(app.assignmentRepo),
		SubmissionSvc:   submission.NewService(app.submissionRepo, app.assignmentRepo, app.studentRepo, fileStore),
		StudentSvc:      student.NewService(app.studentRepo),
		TeacherSvc:      teacher.NewService(app.teacherRepo),
		ClassSvc:        school.NewClassService(app.classRepo),
		ExamSvc:         school.NewExamService(app.examRepo),
		LibrarySvc:      school.NewLibraryService(app.libraryRepo),
		AnnouncementSvc: school.NewAnnouncementService(app.annRepo),
		AttendanceSvc:   school.NewAttendanceService(app.attendanceRepo),
		EventSvc:        school.NewEventService(app.eventRepo),
		RatingSvc:       school.NewRatingService(app.ratingRepo),
	})
	return app
}

func (app *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func newRequest(method, path string, data ...[]byte) *http.Request {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// newUploadRequest builds a multipart request with the given form fields and,
// when fileName is not empty, an attachment under the submissionFile field.
func newUploadRequest(t *testing.T, method, path string, fields map[string]string, fileName string, fileContent []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("newUploadRequest() failed: %v", err)
		}
	}
	if fileName != "" {
		fw, err := w.CreateFormFile(uploadFieldName, fileName)
		if err != nil {
			t.Fatalf("newUploadRequest() failed: %v", err)
		}
		if _, err := fw.Write(fileContent); err != nil {
			t.Fatalf("newUploadRequest() failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	t.Helper()
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func createStudent(t *testing.T, repo student.Repository, name, regNum, email string) student.Student {
	t.Helper()
	std, err := repo.CreateStudent(context.Background(), student.Student{
		Name:               name,
		RegistrationNumber: regNum,
		Grade:              "10",
		Age:                16,
		Gender:             "Male",
		Email:              email,
		ProfileImage:       student.DefaultProfileImage,
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}

func createAssignment(t *testing.T, repo assignment.Repository, title string, grade float64) assignment.Assignment {
	t.Helper()
	now := time.Now().UTC()
	asgmt, err := repo.CreateAssignment(context.Background(), assignment.Assignment{
		Title:       title,
		Details:     "details for " + title,
		Grade:       grade,
		TeacherID:   testPrincipal.ID,
		Submissions: []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return asgmt
}
