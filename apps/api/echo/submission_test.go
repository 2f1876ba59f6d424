package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/submission"
)

type submissionEnvelope struct {
	Success    bool                  `json:"success"`
	Submission submission.Submission `json:"submission"`
	Message    string                `json:"message"`
	Errors     map[string]string     `json:"errors"`
}

func decodeSubmissionEnvelope(t *testing.T, body *bytes.Buffer) submissionEnvelope {
	t.Helper()
	var env submissionEnvelope
	if err := json.Unmarshal(body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return env
}

func Test_submissionApi_submit(t *testing.T) {
	app := initTestApp(t)
	std := createStudent(t, app.studentRepo, "Jane Roe", "REG-001", "jane@school.test")
	asgmt := createAssignment(t, app.assignmentRepo, "Essay", 100)

	submitPath := func(id string) string {
		return "/api/v1/submissions/assignments/" + id + "/submit"
	}
	fields := map[string]string{
		"student":   std.Name,
		"content":   "my answer",
		"studentId": std.ID.Hex(),
	}

	t.Run("valid submission with attachment", func(t *testing.T) {
		req := newUploadRequest(t, http.MethodPost, submitPath(asgmt.ID.Hex()), fields, "answer.txt", []byte("plain text answer"))
		rec := app.do(req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := decodeSubmissionEnvelope(t, rec.Body)
		assert.True(t, env.Success)
		assert.Equal(t, "Assignment submitted successfully", env.Message)
		assert.Equal(t, submission.StatusPending, env.Submission.Status)
		assert.Equal(t, "answer.txt", env.Submission.FileName)
		assert.True(t, strings.HasPrefix(env.Submission.FileURL, "/uploads/assignments/submission-"), env.Submission.FileURL)
		assert.Nil(t, env.Submission.Grade)

		// stored file exists under a generated name, extension preserved
		stored := filepath.Join(app.uploadDir, filepath.Base(env.Submission.FileURL))
		if _, err := os.Stat(stored); err != nil {
			t.Errorf("stored file missing: %v", err)
		}
		assert.True(t, strings.HasSuffix(stored, ".txt"))

		// and is served back through the static uploads route
		fileRec := app.do(newRequest(http.MethodGet, env.Submission.FileURL))
		assert.Equal(t, http.StatusOK, fileRec.Code)
		assert.Equal(t, "plain text answer", fileRec.Body.String())

		// the parent assignment references the new submission
		got, err := app.assignmentRepo.GetAssignmentByID(context.Background(), asgmt.ID)
		if err != nil {
			t.Fatalf("getting assignment: %v", err)
		}
		assert.Contains(t, got.Submissions, env.Submission.ID)
	})

	t.Run("valid submission without attachment", func(t *testing.T) {
		req := newUploadRequest(t, http.MethodPost, submitPath(asgmt.ID.Hex()), fields, "", nil)
		rec := app.do(req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := decodeSubmissionEnvelope(t, rec.Body)
		assert.True(t, env.Success)
		assert.Empty(t, env.Submission.FileURL)
		assert.Empty(t, env.Submission.FileName)
	})

	t.Run("oversized file is rejected", func(t *testing.T) {
		big := bytes.Repeat([]byte("a"), int(submission.DefaultUploadPolicy.MaxSize)+1)
		req := newUploadRequest(t, http.MethodPost, submitPath(asgmt.ID.Hex()), fields, "big.txt", big)
		rec := app.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeSubmissionEnvelope(t, rec.Body)
		assert.False(t, env.Success)
		assert.Equal(t, "File is too large. Maximum size is 5MB", env.Message)
	})

	t.Run("disallowed extension is rejected", func(t *testing.T) {
		req := newUploadRequest(t, http.MethodPost, submitPath(asgmt.ID.Hex()), fields, "virus.exe", []byte("plain text"))
		rec := app.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeSubmissionEnvelope(t, rec.Body)
		assert.False(t, env.Success)
		assert.Equal(t, "Only PDF, DOC, DOCX, TXT, JPG, JPEG, and PNG files are allowed", env.Message)
	})

	t.Run("disallowed content behind an allowed extension is rejected", func(t *testing.T) {
		binary := []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe, 0x00, 0x00}
		req := newUploadRequest(t, http.MethodPost, submitPath(asgmt.ID.Hex()), fields, "sneaky.txt", binary)
		rec := app.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeSubmissionEnvelope(t, rec.Body)
		assert.False(t, env.Success)
		assert.Equal(t, "Only PDF, DOC, DOCX, TXT, JPG, JPEG, and PNG files are allowed", env.Message)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		req := newUploadRequest(t, http.MethodPost, submitPath(asgmt.ID.Hex()), map[string]string{"student": std.Name}, "", nil)
		rec := app.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeSubmissionEnvelope(t, rec.Body)
		assert.False(t, env.Success)
		assert.Contains(t, env.Errors, "content")
		assert.Contains(t, env.Errors, "studentId")
	})

	t.Run("missing assignment leaves no trace", func(t *testing.T) {
		req := newUploadRequest(t, http.MethodPost, submitPath(primitive.NewObjectID().Hex()), fields, "answer.txt", []byte("plain text"))
		rec := app.do(req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeSubmissionEnvelope(t, rec.Body)
		assert.False(t, env.Success)
		assert.Equal(t, "Assignment not found", env.Message)

		subs, err := app.submissionRepo.QueryAllSubmissions(context.Background(), core.ListOptions{})
		if err != nil {
			t.Fatalf("querying submissions: %v", err)
		}
		for _, sub := range subs {
			assert.NotEqual(t, "plain text", sub.Content)
		}
	})
}

func Test_submissionApi_grade(t *testing.T) {
	app := initTestApp(t)
	std := createStudent(t, app.studentRepo, "Jane Roe", "REG-001", "jane@school.test")
	asgmt := createAssignment(t, app.assignmentRepo, "Essay", 100)

	sub, err := app.submissionRepo.CreateSubmission(context.Background(), submission.Submission{
		AssignmentID: asgmt.ID,
		StudentID:    &std.ID,
		Student:      std.Name,
		Content:      "my answer",
		Status:       submission.StatusPending,
	})
	if err != nil {
		t.Fatalf("seeding submission: %v", err)
	}

	gradePath := func(id string) string { return "/api/v1/submissions/grade/" + id }

	t.Run("grade out of bounds is rejected", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, gradePath(sub.ID.Hex()), []byte(`{"grade":101}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		got, _ := app.submissionRepo.GetSubmissionByID(context.Background(), sub.ID)
		assert.Equal(t, submission.StatusPending, got.Status)
	})

	t.Run("missing grade is rejected", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, gradePath(sub.ID.Hex()), []byte(`{}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("grading marks the submission graded", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, gradePath(sub.ID.Hex()), []byte(`{"grade":85}`)))
		assert.Equal(t, http.StatusOK, rec.Code)

		env := decodeSubmissionEnvelope(t, rec.Body)
		assert.True(t, env.Success)
		assert.Equal(t, "Submission graded successfully", env.Message)
		assert.Equal(t, submission.StatusGraded, env.Submission.Status)
		if assert.NotNil(t, env.Submission.Grade) {
			assert.Equal(t, float64(85), *env.Submission.Grade)
		}
	})

	t.Run("re-grading overwrites the prior grade", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, gradePath(sub.ID.Hex()), []byte(`{"grade":0}`)))
		assert.Equal(t, http.StatusOK, rec.Code)

		env := decodeSubmissionEnvelope(t, rec.Body)
		assert.Equal(t, submission.StatusGraded, env.Submission.Status)
		if assert.NotNil(t, env.Submission.Grade) {
			assert.Equal(t, float64(0), *env.Submission.Grade)
		}
	})

	t.Run("unknown submission is not found", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, gradePath(primitive.NewObjectID().Hex()), []byte(`{"grade":50}`)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_submissionApi_query(t *testing.T) {
	app := initTestApp(t)
	std := createStudent(t, app.studentRepo, "Jane Roe", "REG-001", "jane@school.test")
	asgmt := createAssignment(t, app.assignmentRepo, "Essay", 100)

	sub, err := app.submissionRepo.CreateSubmission(context.Background(), submission.Submission{
		AssignmentID: asgmt.ID,
		StudentID:    &std.ID,
		Student:      std.Name,
		Content:      "my answer",
		Status:       submission.StatusPending,
	})
	if err != nil {
		t.Fatalf("seeding submission: %v", err)
	}

	t.Run("by assignment resolves the student reference", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, echo.Map{
				"success": true,
				"submissions": []submission.Resolved{
					{Submission: sub, StudentName: std.Name, StudentEmail: std.Email},
				},
			}),
		}
		rec := app.do(newRequest(http.MethodGet, "/api/v1/submissions/assignment/"+asgmt.ID.Hex()))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("getall inlines the assignment title", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, echo.Map{
				"success": true,
				"submissions": []submission.WithAssignment{
					{Submission: sub, AssignmentTitle: asgmt.Title},
				},
			}),
		}
		rec := app.do(newRequest(http.MethodGet, "/api/v1/submissions/getall"))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("unknown assignment has no submissions", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, echo.Map{"success": true, "submissions": []submission.Resolved{}}),
		}
		rec := app.do(newRequest(http.MethodGet, "/api/v1/submissions/assignment/"+primitive.NewObjectID().Hex()))
		checkCodeAndData(t, tt, rec)
	})
}
