package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/storefront/storefront-backend/models"
)

// RegisterValidators adds the custom binding tags used by the request bodies and
// reports field errors with their json or query name.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}

	v.RegisterTagNameFunc(fieldNameFromTag)
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return models.UsernamePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return models.PersonNamePattern.MatchString(fl.Field().String())
	})
}

func fieldNameFromTag(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func adaptFieldValidationError(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.Join(strings.Split(fe.Param(), " "), ", "))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "username":
		return "must be 1 to 16 letters, digits or underscores"
	case "personname":
		return "must be 1 to 100 letters, spaces, hyphens or apostrophes"
	}
	return "is invalid"
}

// presentBindingError answers 400 with one message per invalid field.
func presentBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		for _, fe := range validationErrors {
			fields[fe.Field()] = adaptFieldValidationError(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request", "fields": fields})
		return
	}

	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed json body"})
	case errors.As(err, &typeError):
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("field %s must be of type %s", typeError.Field, typeError.Type)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	}
}
