package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName reports validation failures under the JSON key the client sent.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// respondBindError turns a ShouldBindJSON failure into a 400 with per-field details.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			details[fe.Field()] = describeFieldError(fe)
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Code: CodeValidation, Details: details})
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request body",
			Code:    CodeBadRequest,
			Details: map[string]string{typeErr.Field: "must be a " + typeErr.Type.String()},
		})
		return
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: CodeBadRequest, Details: err.Error()})
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
