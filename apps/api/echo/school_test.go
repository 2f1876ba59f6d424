package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/school"
)

func Test_health(t *testing.T) {
	app := initTestApp(t)

	rec := app.do(newRequest(http.MethodGet, "/health"))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	assert.Equal(t, "healthy", body.Status)
	assert.False(t, body.Timestamp.IsZero())
}

func Test_testCORS(t *testing.T) {
	app := initTestApp(t)

	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, echo.Map{"message": "CORS is working!"}),
	}
	rec := app.do(newRequest(http.MethodGet, "/test-cors"))
	checkCodeAndData(t, tt, rec)
}

func Test_classApi(t *testing.T) {
	app := initTestApp(t)

	t.Run("create rejects missing fields", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, "/api/v1/class", []byte(`{"name":"Maths"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	var created school.Class
	t.Run("create", func(t *testing.T) {
		body := []byte(`{"name":"Maths","teacher":"Alan Grant","grade":"10","schedule":"Mon 09:00"}`)
		rec := app.do(newRequest(http.MethodPost, "/api/v1/class", body))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var env struct {
			Success bool         `json:"success"`
			Class   school.Class `json:"class"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.True(t, env.Success)
		assert.False(t, env.Class.ID.IsZero())
		created = env.Class
	})

	t.Run("getall and retrieve", func(t *testing.T) {
		tests := []httpTest{
			{
				name:     "getall",
				path:     "/api/v1/class/getall",
				wantCode: http.StatusOK,
				wantData: marchallObj(t, echo.Map{"success": true, "classes": []school.Class{created}}),
			},
			{
				name:     "retrieve",
				path:     "/api/v1/class/" + created.ID.Hex(),
				wantCode: http.StatusOK,
				wantData: marchallObj(t, echo.Map{"success": true, "class": created}),
			},
			{
				name:     "unknown id is not found",
				path:     "/api/v1/class/" + primitive.NewObjectID().Hex(),
				wantCode: http.StatusNotFound,
				wantData: marchallObj(t, echo.Map{"success": false, "message": "Class not found"}),
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := app.do(newRequest(http.MethodGet, tt.path))
				checkCodeAndData(t, tt, rec)
			})
		}
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPut, "/api/v1/class/"+created.ID.Hex(), []byte(`{"schedule":"Tue 10:00"}`)))
		assert.Equal(t, http.StatusOK, rec.Code)

		var env struct {
			Class school.Class `json:"class"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Equal(t, "Tue 10:00", env.Class.Schedule)
		assert.Equal(t, created.Name, env.Class.Name)
	})

	t.Run("delete", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodDelete, "/api/v1/class/"+created.ID.Hex()))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = app.do(newRequest(http.MethodDelete, "/api/v1/class/"+created.ID.Hex()))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_examApi(t *testing.T) {
	app := initTestApp(t)

	t.Run("create rejects non-positive duration", func(t *testing.T) {
		body := []byte(`{"title":"Midterm","subject":"Maths","date":"2026-10-01T09:00:00Z","duration":0,"teacher":"Alan Grant","grade":"10"}`)
		rec := app.do(newRequest(http.MethodPost, "/api/v1/exams", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	var created school.Exam
	t.Run("create", func(t *testing.T) {
		body := []byte(`{"title":"Midterm","subject":"Maths","date":"2026-10-01T09:00:00Z","duration":90,"teacher":"Alan Grant","grade":"10"}`)
		rec := app.do(newRequest(http.MethodPost, "/api/v1/exams", body))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var env struct {
			Exam school.Exam `json:"exam"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Equal(t, 90, env.Exam.Duration)
		created = env.Exam
	})

	t.Run("update duration", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPut, "/api/v1/exams/"+created.ID.Hex(), []byte(`{"duration":120}`)))
		assert.Equal(t, http.StatusOK, rec.Code)

		var env struct {
			Exam school.Exam `json:"exam"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Equal(t, 120, env.Exam.Duration)
		assert.Equal(t, created.Title, env.Exam.Title)
	})

	t.Run("delete", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodDelete, "/api/v1/exams/"+created.ID.Hex()))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = app.do(newRequest(http.MethodGet, "/api/v1/exams/"+created.ID.Hex()))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_libraryApi(t *testing.T) {
	app := initTestApp(t)

	var created school.Book
	t.Run("create defaults status to available", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, "/api/v1/library", []byte(`{"name":"SICP","author":"Abelson","category":"CS"}`)))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var env struct {
			Book school.Book `json:"book"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Equal(t, school.BookAvailable, env.Book.Status)
		created = env.Book
	})

	t.Run("create rejects unknown status", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, "/api/v1/library", []byte(`{"name":"X","author":"Y","category":"Z","status":"lost"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update normalizes status casing", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPut, "/api/v1/library/"+created.ID.Hex(), []byte(`{"status":"Borrowed"}`)))
		assert.Equal(t, http.StatusOK, rec.Code)

		var env struct {
			Book school.Book `json:"book"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Equal(t, school.BookBorrowed, env.Book.Status)
	})

	t.Run("getall", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodGet, "/api/v1/library/getall"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodDelete, "/api/v1/library/"+created.ID.Hex()))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_announcementApi(t *testing.T) {
	app := initTestApp(t)

	var created school.Announcement
	t.Run("create", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, "/api/v1/announcements", []byte(`{"title":"Holiday","description":"School closed Friday","author":"Admin"}`)))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var env struct {
			Announcement school.Announcement `json:"announcement"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.False(t, env.Announcement.IsRead)
		assert.Nil(t, env.Announcement.ExpirationDate)
		created = env.Announcement
	})

	t.Run("mark as read", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPatch, "/api/v1/announcements/markasread/"+created.ID.Hex()))
		assert.Equal(t, http.StatusOK, rec.Code)

		var env struct {
			Announcement school.Announcement `json:"announcement"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.True(t, env.Announcement.IsRead)
	})

	t.Run("update keeps read flag", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPut, "/api/v1/announcements/"+created.ID.Hex(), []byte(`{"title":"Holiday moved"}`)))
		assert.Equal(t, http.StatusOK, rec.Code)

		var env struct {
			Announcement school.Announcement `json:"announcement"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Equal(t, "Holiday moved", env.Announcement.Title)
		assert.True(t, env.Announcement.IsRead)
	})

	t.Run("delete", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodDelete, "/api/v1/announcements/"+created.ID.Hex()))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = app.do(newRequest(http.MethodPatch, "/api/v1/announcements/markasread/"+created.ID.Hex()))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_attendanceApi(t *testing.T) {
	app := initTestApp(t)

	t.Run("empty batch is rejected", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, "/api/v1/attendance", []byte(`{"attendanceData":[]}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var env struct {
			Errors map[string]string `json:"errors"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Contains(t, env.Errors, "attendanceData")
	})

	t.Run("one bad record fails the whole batch", func(t *testing.T) {
		body := []byte(`{"attendanceData":[
			{"date":"2026-09-01T00:00:00Z","course":"Maths","month":"September","status":"Present","student":"Jane Roe"},
			{"date":"2026-09-01T00:00:00Z","course":"Maths","month":"September","status":"Late","student":"John Doe"}
		]}`)
		rec := app.do(newRequest(http.MethodPost, "/api/v1/attendance", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		recs, err := app.attendanceRepo.QueryAllAttendances(context.Background(), core.ListOptions{})
		if err != nil {
			t.Fatalf("querying attendance: %v", err)
		}
		assert.Empty(t, recs)
	})

	t.Run("valid batch is recorded", func(t *testing.T) {
		body := []byte(`{"attendanceData":[
			{"date":"2026-09-01T00:00:00Z","course":"Maths","month":"September","status":"Present","student":"Jane Roe"},
			{"date":"2026-09-01T00:00:00Z","course":"Maths","month":"September","status":"Absent with apology","student":"John Doe"}
		]}`)
		rec := app.do(newRequest(http.MethodPost, "/api/v1/attendance", body))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var env struct {
			Success    bool                `json:"success"`
			Attendance []school.Attendance `json:"attendance"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.True(t, env.Success)
		assert.Len(t, env.Attendance, 2)
		assert.Equal(t, school.AttendanceExcused, env.Attendance[1].Status)
	})

	t.Run("getall", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodGet, "/api/v1/attendance/getall"))
		assert.Equal(t, http.StatusOK, rec.Code)

		var env struct {
			Attendance []school.Attendance `json:"attendance"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Len(t, env.Attendance, 2)
	})
}

func Test_eventApi(t *testing.T) {
	app := initTestApp(t)

	t.Run("create rejects missing fields", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, "/api/v1/events", []byte(`{"name":"Sports day"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create and list", func(t *testing.T) {
		body := []byte(`{"name":"Sports day","date":"2026-10-10T08:00:00Z","location":"Main field","description":"Annual sports day"}`)
		rec := app.do(newRequest(http.MethodPost, "/api/v1/events", body))
		assert.Equal(t, http.StatusCreated, rec.Code)

		rec = app.do(newRequest(http.MethodGet, "/api/v1/events/getall"))
		assert.Equal(t, http.StatusOK, rec.Code)

		var env struct {
			Events []school.Event `json:"events"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Len(t, env.Events, 1)
		assert.Equal(t, "Sports day", env.Events[0].Name)
	})
}

func Test_ratingApi(t *testing.T) {
	app := initTestApp(t)

	t.Run("create rejects missing rating", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, "/api/v1/ratings", []byte(`{"teacher":"Alan Grant","comment":"great","studentName":"Jane Roe"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("newest rating is listed first", func(t *testing.T) {
		now := time.Now().UTC()
		older, err := app.ratingRepo.CreateRating(context.Background(), school.Rating{
			Teacher: "Alan Grant", Rating: 3, Comment: "ok", StudentName: "Jane Roe", CreatedAt: now.Add(-time.Hour),
		})
		if err != nil {
			t.Fatalf("seeding rating: %v", err)
		}
		newer, err := app.ratingRepo.CreateRating(context.Background(), school.Rating{
			Teacher: "Alan Grant", Rating: 5, Comment: "great", StudentName: "John Doe", CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("seeding rating: %v", err)
		}

		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, echo.Map{"success": true, "ratings": []school.Rating{newer, older}}),
		}
		rec := app.do(newRequest(http.MethodGet, "/api/v1/ratings/getall"))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("create", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPost, "/api/v1/ratings", []byte(`{"teacher":"Alan Grant","rating":4,"comment":"solid","studentName":"Jane Roe"}`)))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var env struct {
			Rating school.Rating `json:"rating"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Equal(t, float64(4), env.Rating.Rating)
		assert.False(t, env.Rating.CreatedAt.IsZero())
	})
}
