package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asset-registry-api/internal/model"
	apperrors "asset-registry-api/pkg/errors"
	"asset-registry-api/pkg/form"
	"asset-registry-api/pkg/upload"
	"asset-registry-api/pkg/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, env map[string]interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(env))
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return New(server.URL, append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
}

func TestListSystems(t *testing.T) {
	id := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/systems", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    []map[string]interface{}{{"_id": id.String(), "systemNumber": "SYS-1"}},
		})
	})

	systems, err := c.ListSystems(context.Background())

	require.NoError(t, err)
	require.Len(t, systems, 1)
	assert.Equal(t, id, systems[0].ID)
	assert.Equal(t, "SYS-1", systems[0].SystemNumber)
}

func TestCreateEmployee_SendsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var sent map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &sent))
		assert.Equal(t, "Asha Rao", sent["name"])
		assert.Equal(t, true, sent["isUsingCompanySystem"])
		assert.Equal(t, "SYS-7", sent["systemNumber"])

		sent["_id"] = uuid.New().String()
		writeEnvelope(t, w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"data":    sent,
			"message": "Employee created successfully",
		})
	})

	created, err := c.CreateEmployee(context.Background(), model.Employee{
		Name:   "Asha Rao",
		System: model.AssignedTo("SYS-7"),
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	num, ok := created.System.SystemNumber()
	assert.True(t, ok)
	assert.Equal(t, "SYS-7", num)
}

func TestFailures_UseServerMessageOrFallback(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		env         map[string]interface{}
		call        func(c *Client) error
		wantMessage string
		wantStatus  int
	}{
		{
			name:   "not found message from server",
			status: http.StatusNotFound,
			env:    map[string]interface{}{"success": false, "message": "System not found"},
			call: func(c *Client) error {
				_, err := c.UpdateSystem(context.Background(), uuid.New(), model.System{SystemNumber: "X"})
				return err
			},
			wantMessage: "System not found",
			wantStatus:  http.StatusNotFound,
		},
		{
			name:   "fallback for list employees",
			status: http.StatusInternalServerError,
			env:    map[string]interface{}{"success": false, "error": "connection refused"},
			call: func(c *Client) error {
				_, err := c.ListEmployees(context.Background())
				return err
			},
			wantMessage: "Error fetching employee data. Please try again.",
			wantStatus:  http.StatusInternalServerError,
		},
		{
			name:   "fallback for delete employee",
			status: http.StatusInternalServerError,
			env:    map[string]interface{}{"success": false},
			call: func(c *Client) error {
				return c.DeleteEmployee(context.Background(), uuid.New())
			},
			wantMessage: "Something went wrong while deleting the employee.",
			wantStatus:  http.StatusInternalServerError,
		},
		{
			name:   "success false with 200",
			status: http.StatusOK,
			env:    map[string]interface{}{"success": false},
			call: func(c *Client) error {
				_, err := c.CreateSystem(context.Background(), model.System{})
				return err
			},
			wantMessage: "Failed to save system",
			wantStatus:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, tt.status, tt.env)
			})

			err := tt.call(c)

			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.wantMessage, cerr.Message)
			assert.Equal(t, tt.wantStatus, cerr.StatusCode)
		})
	}
}

func TestGetEmployee_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "Employee not found"})
	})

	_, err := c.GetEmployee(context.Background(), uuid.New())

	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "Employee not found")
}

func TestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := New(url, WithHTTPClient(&http.Client{Timeout: time.Second}))
	_, err := c.GetSystem(context.Background(), uuid.New())

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Failed to fetch system", cerr.Message)
	assert.Zero(t, cerr.StatusCode)
	assert.NotNil(t, cerr.Err)
}

func TestNonEnvelopeResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := c.GetEmployee(context.Background(), uuid.New())

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Something went wrong while fetching employee data.", cerr.Message)
	assert.Equal(t, http.StatusBadGateway, cerr.StatusCode)
}

type fakeUploader struct {
	calls []string
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, file upload.File) (string, error) {
	f.calls = append(f.calls, file.Name)
	if f.err != nil {
		return "", f.err
	}
	return "https://img.example/" + file.Name, nil
}

func validEmployeeForm() form.Form {
	f := form.NewEmployee()
	for path, value := range map[string]string{
		"name":                         "Asha Rao",
		"uniqueId":                     "EMP-001",
		"age":                          "29",
		"email":                        "asha@example.com",
		"qualification":                "B.Tech",
		"role":                         "Engineer",
		"department":                   "IT",
		"joiningDate":                  "2023-04-01",
		"phoneNumber":                  "9876543210",
		"salary":                       "45000",
		"emergencyContact.phoneNumber": "9123456780",
	} {
		f = f.MustSet(path, value)
	}
	return f
}

func TestSubmitNewEmployee_UploadsThenCreates(t *testing.T) {
	uploader := &fakeUploader{}
	var received map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		received["_id"] = uuid.New().String()
		writeEnvelope(t, w, http.StatusCreated, map[string]interface{}{"success": true, "data": received})
	}, WithUploader(uploader))

	created, err := c.SubmitNewEmployee(context.Background(), validEmployeeForm(), Attachments{
		ProfilePicture: &upload.File{Name: "me.png", Content: []byte("x")},
		ResumeImage:    &upload.File{Name: "cv.png", Content: []byte("y")},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"me.png", "cv.png"}, uploader.calls)
	assert.Equal(t, "https://img.example/me.png", received["profilePicture"])
	assert.Equal(t, "https://img.example/cv.png", received["resumeImage"])
	assert.Equal(t, "", received["certificateImage"])
	assert.Equal(t, "https://img.example/me.png", created.ProfilePicture)
}

func TestSubmitNewEmployee_InvalidFormSendsNothing(t *testing.T) {
	uploader := &fakeUploader{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}, WithUploader(uploader))

	f := validEmployeeForm().MustSet("age", "15")
	_, err := c.SubmitNewEmployee(context.Background(), f, Attachments{
		ProfilePicture: &upload.File{Name: "me.png", Content: []byte("x")},
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Minimum age is 18", verrs["age"])
	assert.Empty(t, uploader.calls)
}

func TestSubmitEmployeeUpdate_UploadFailure(t *testing.T) {
	uploader := &fakeUploader{err: apperrors.UploadError(errors.New("503 from image host"))}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}, WithUploader(uploader))

	_, err := c.SubmitEmployeeUpdate(context.Background(), uuid.New(), validEmployeeForm(), Attachments{
		CertificateImage: &upload.File{Name: "cert.png", Content: []byte("x")},
	})

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, OpUpdateEmployee, cerr.Op)
	assert.Equal(t, "Image upload failed. Please try again.", cerr.Message)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCodeUpload))
}

func TestSubmitNewEmployee_NoUploader(t *testing.T) {
	c := New("http://unused")

	_, err := c.SubmitNewEmployee(context.Background(), validEmployeeForm(), Attachments{
		ProfilePicture: &upload.File{Name: "me.png", Content: []byte("x")},
	})

	assert.EqualError(t, err, "Image upload failed. Please try again.")
}

func TestSubmitSystem(t *testing.T) {
	id := uuid.New()
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		body["_id"] = id.String()
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{"success": true, "data": body})
	})

	_, err := c.SubmitSystem(context.Background(), id, form.NewSystem())
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "System number is required", verrs["systemNumber"])

	s, err := c.SubmitSystem(context.Background(), id, form.NewSystem().MustSet("systemNumber", "SYS-9"))
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/api/systems/"+id.String(), path)
	assert.Equal(t, "SYS-9", s.SystemNumber)

	_, err = c.SubmitSystem(context.Background(), uuid.Nil, form.NewSystem().MustSet("systemNumber", "SYS-9"))
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/systems", path)
}
