package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/isdelr/medapi/internal/models"
)

var (
	validate      = newValidator()
	timestampType = reflect.TypeOf(models.Timestamp{})
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldError describes one rejected field in a 422 response.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// payload is implemented by request bodies that need checks beyond struct tags.
type payload interface {
	check() []fieldError
}

// decodeAndValidate reads a JSON body into dst and validates it. On failure it
// writes the 422 response itself and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			msg := fmt.Sprintf("must be of type %s", typeErr.Type)
			if typeErr.Type == timestampType {
				msg = "must be an ISO 8601 datetime"
			}
			respondError(w, http.StatusUnprocessableEntity, []fieldError{{Field: typeErr.Field, Message: msg}})
			return false
		}
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return false
	}

	var problems []fieldError
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return false
		}
		for _, fe := range verrs {
			problems = append(problems, fieldError{Field: fe.Field(), Message: describe(fe)})
		}
	}
	if p, ok := dst.(payload); ok {
		problems = append(problems, p.check()...)
	}

	if len(problems) > 0 {
		respondError(w, http.StatusUnprocessableEntity, problems)
		return false
	}
	return true
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}
