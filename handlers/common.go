package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// validate covers checks that can only run after the handler has normalized
// the input, e.g. email syntax on a trimmed value.
var validate = validator.New()

// fieldError writes a single-field 400 in the same structured shape bindError
// produces for binding-level violations.
func fieldError(c *gin.Context, field, rule string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"field": field, "rule": rule}}})
}

// bindError writes a 400 for a failed ShouldBindJSON. Validator failures get
// the structured per-field list, everything else (type mismatches, bad JSON)
// a plain message.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, gin.H{
				"field": fe.Field(),
				"rule":  fe.Tag(),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": details})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}

// parseID reads a numeric path parameter. A non-numeric value responds 400
// with the given message and returns ok=false.
func parseID(c *gin.Context, param, badMsg string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": badMsg})
		return 0, false
	}
	return uint(id), true
}
