// internal/interfaces/http/handlers/binding_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c
}

type optionalLanguageBody struct {
	Language string `json:"language" binding:"omitempty,oneof=en es"`
}

func TestBindOptionalJSON(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantErr      bool
		wantLanguage string
	}{
		{name: "absent body is fine", body: "", wantErr: false},
		{name: "valid body binds", body: `{"language":"es"}`, wantErr: false, wantLanguage: "es"},
		{name: "empty object is fine", body: `{}`, wantErr: false},
		{name: "malformed body is rejected", body: `{"language":`, wantErr: true},
		{name: "invalid value is rejected", body: `{"language":"fr"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newJSONContext(t, tt.body)

			var req optionalLanguageBody
			err := bindOptionalJSON(c, &req)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLanguage, req.Language)
		})
	}
}
