package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/marioapg/cipher-test/internal/apperrors"
	"github.com/marioapg/cipher-test/internal/dto"
	"github.com/marioapg/cipher-test/internal/middleware"
)

var registerTagNamesOnce sync.Once

// registerJSONTagNames makes validator report fields by their JSON names, so a nested
// error reads "prices[0].currency_id" instead of "Prices[0].CurrencyID".
func registerJSONTagNames() {
	registerTagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return fld.Name
			}
			return name
		})
	})
}

// bindJSON decodes the body into obj. Malformed JSON is answered with 400 and failed
// binding rules with 422; in both cases false is returned and the handler must stop.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		respondError(c, apperrors.NewValidationError(fieldErrorsFromValidator(verrs)), "")
		return false
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
	return false
}

func fieldErrorsFromValidator(verrs validator.ValidationErrors) apperrors.FieldErrors {
	fields := apperrors.FieldErrors{}
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		fields.Add(field, validationMessage(field, fe))
	}
	return fields
}

// fieldPath turns "ProductRequest.prices[0].currency_id" into "prices.0.currency_id".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

func validationMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
