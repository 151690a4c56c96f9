package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/eyrie/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handlerFn gin.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("request_id", "test-request")
	handlerFn(c)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleError(t *testing.T) {
	h := &BaseHandler{}

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"installment already paid", shared.ErrInstallmentPaid, http.StatusConflict, "INSTALLMENT_ALREADY_PAID"},
		{"installment locked", shared.ErrInstallmentLocked, http.StatusUnprocessableEntity, "INSTALLMENT_LOCKED"},
		{"allotment not paid", shared.ErrAllotmentNotPaid, http.StatusUnprocessableEntity, "ALLOTMENT_NOT_PAID"},
		{"unit not available", shared.ErrUnitNotAvailable, http.StatusConflict, "UNIT_NOT_AVAILABLE"},
		{"no units resolved", shared.ErrNoUnitsResolved, http.StatusBadRequest, "NO_UNITS_RESOLVED"},
		{"invalid input", shared.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performRequest(func(c *gin.Context) {
				h.HandleError(c, tc.err)
			}, http.MethodGet, "")

			assert.Equal(t, tc.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
			assert.Equal(t, "test-request", resp.RequestID)
		})
	}

	t.Run("unknown errors become internal", func(t *testing.T) {
		w := performRequest(func(c *gin.Context) {
			h.HandleError(c, assert.AnError)
		}, http.MethodGet, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	})
}

func TestBindJSON(t *testing.T) {
	h := &BaseHandler{}

	type payload struct {
		Name string `json:"name" binding:"required"`
	}

	t.Run("valid body binds", func(t *testing.T) {
		w := performRequest(func(c *gin.Context) {
			var p payload
			if h.BindJSON(c, &p) {
				h.Success(c, p)
			}
		}, http.MethodPost, `{"name":"Ayesha"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing required field reports the field", func(t *testing.T) {
		w := performRequest(func(c *gin.Context) {
			var p payload
			if h.BindJSON(c, &p) {
				h.Success(c, p)
			}
		}, http.MethodPost, `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "Name", resp.Error.Details[0].Field)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		w := performRequest(func(c *gin.Context) {
			var p payload
			if h.BindJSON(c, &p) {
				h.Success(c, p)
			}
		}, http.MethodPost, `{not json`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}

	w := performRequest(func(c *gin.Context) {
		h.SuccessWithMeta(c, []string{"a", "b"}, 45, 2, 20)
	}, http.MethodGet, "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
