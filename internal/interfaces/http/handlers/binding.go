// internal/interfaces/http/handlers/binding.go
package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// bindOptionalJSON binds a JSON body that the endpoint accepts but does not
// require. An absent body leaves obj at its zero value; a body that is
// present but malformed or failing validation is still an error.
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
