package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pto-tracker/internal/employee"
	employeeerrors "pto-tracker/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeEmployeeService struct {
	createFn  func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getAllFn  func(ctx context.Context) ([]employee.EmployeeResponse, error)
	getByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	updateFn  func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestEmployeeHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Dana", req.Name)
				if assert.NotNil(t, req.TotalPtoDays) {
					assert.Equal(t, 25, *req.TotalPtoDays)
				}
				return employee.EmployeeResponse{
					ID:           uuid.New().String(),
					Name:         req.Name,
					TotalPtoDays: 25,
					PtoRemaining: 25,
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Dana","team":"Platform","total_pto_days":25}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative missing name", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				t.Fatal("service must not be called")
				return employee.EmployeeResponse{}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"team":"Platform"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative duplicate name maps to conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNameTaken
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"name":"Dana"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		if assert.NotNil(t, env.Error) {
			assert.Equal(t, "CONFLICT", env.Error.Code)
		}
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success paginates the full listing", func(t *testing.T) {
		all := make([]employee.EmployeeResponse, 3)
		for i := range all {
			all[i] = employee.EmployeeResponse{ID: uuid.New().String()}
		}
		svc := &fakeEmployeeService{
			getAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return all, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employees?page=2&page_size=2", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got []employee.EmployeeResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 1)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("negative unknown employee", func(t *testing.T) {
		svc := &fakeEmployeeService{
			deleteFn: func(ctx context.Context, id string) error {
				return employeeerrors.ErrEmployeeNotFound
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/employees/"+uuid.New().String(), nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Delete(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
