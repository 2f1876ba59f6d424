package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core/student"
)

type studentEnvelope struct {
	Success bool              `json:"success"`
	Student student.Student   `json:"student"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func Test_studentApi_create(t *testing.T) {
	app := initTestApp(t)

	valid := `{"name":"Jane Roe","registrationNumber":"REG-001","grade":"10","age":16,"gender":"Female","email":"jane@school.test"}`

	tests := []httpTest{
		{
			name:     "empty body fails validation",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad gender is rejected",
			body:     []byte(`{"name":"Jane","registrationNumber":"REG-002","grade":"10","age":16,"gender":"Other","email":"j2@school.test"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "valid payload creates student",
			body:     []byte(valid),
			wantCode: http.StatusCreated,
		},
		{
			name:     "duplicate email conflicts",
			body:     []byte(`{"name":"Jane Two","registrationNumber":"REG-XXX","grade":"10","age":16,"gender":"Female","email":"jane@school.test"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "duplicate registration number conflicts",
			body:     []byte(`{"name":"Jane Two","registrationNumber":"REG-001","grade":"10","age":16,"gender":"Female","email":"other@school.test"}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(newRequest(http.MethodPost, "/api/v1/students", tt.body))
			checkCodeAndData(t, tt, rec)

			var env studentEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			switch tt.name {
			case "valid payload creates student":
				assert.True(t, env.Success)
				assert.Equal(t, "Student created successfully", env.Message)
				assert.Equal(t, "Jane Roe", env.Student.Name)
				// default avatar applied
				assert.Equal(t, student.DefaultProfileImage, env.Student.ProfileImage)
			case "duplicate email conflicts":
				assert.False(t, env.Success)
				assert.Contains(t, env.Errors, "email")
			case "duplicate registration number conflicts":
				assert.False(t, env.Success)
				assert.Contains(t, env.Errors, "registrationNumber")
			default:
				assert.False(t, env.Success)
			}
		})
	}
}

func Test_studentApi_query(t *testing.T) {
	app := initTestApp(t)

	t.Run("empty store returns empty list", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, echo.Map{"success": true, "students": []student.Student{}}),
		}
		rec := app.do(newRequest(http.MethodGet, "/api/v1/students/getall"))
		checkCodeAndData(t, tt, rec)
	})

	s1 := createStudent(t, app.studentRepo, "Jane Roe", "REG-001", "jane@school.test")
	s2 := createStudent(t, app.studentRepo, "John Doe", "REG-002", "john@school.test")

	t.Run("all students", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodGet, "/api/v1/students/getall"))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Success  bool              `json:"success"`
			Students []student.Student `json:"students"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.True(t, body.Success)
		assert.ElementsMatch(t, []student.Student{s1, s2}, body.Students)
	})

	t.Run("limit bounds the page", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodGet, "/api/v1/students/getall?limit=1"))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Students []student.Student `json:"students"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Len(t, body.Students, 1)
	})
}

func Test_studentApi_retrieveByEmail(t *testing.T) {
	app := initTestApp(t)
	std := createStudent(t, app.studentRepo, "Jane Roe", "REG-001", "jane@school.test")

	tests := []httpTest{
		{
			name:     "found",
			path:     "/api/v1/students/jane@school.test",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, echo.Map{"success": true, "student": std}),
		},
		{
			name:     "unknown email is not found",
			path:     "/api/v1/students/nobody@school.test",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, echo.Map{"success": false, "message": "Student not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(newRequest(http.MethodGet, tt.path))
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_update(t *testing.T) {
	app := initTestApp(t)
	std := createStudent(t, app.studentRepo, "Jane Roe", "REG-001", "jane@school.test")
	other := createStudent(t, app.studentRepo, "John Doe", "REG-002", "john@school.test")

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPut, "/api/v1/students/"+std.ID.Hex(), []byte(`{"grade":"11"}`)))
		assert.Equal(t, http.StatusOK, rec.Code)

		var env studentEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.True(t, env.Success)
		assert.Equal(t, "11", env.Student.Grade)
		assert.Equal(t, std.Name, env.Student.Name)
		assert.Equal(t, std.Email, env.Student.Email)
	})

	t.Run("taking another student's email conflicts", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPut, "/api/v1/students/"+std.ID.Hex(), marchallObj(t, echo.Map{"email": other.Email})))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("keeping own email is allowed", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPut, "/api/v1/students/"+std.ID.Hex(), marchallObj(t, echo.Map{"email": std.Email})))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown student is not found", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodPut, "/api/v1/students/"+primitive.NewObjectID().Hex(), []byte(`{"grade":"11"}`)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
