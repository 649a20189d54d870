package validators

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/angelmondragon/teastore-backend/internal/rules"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("countrycode", func(fl validator.FieldLevel) bool {
		return rules.CountryCode(fl.Field().String())
	})
	_ = v.RegisterValidation("capitalized", func(fl validator.FieldLevel) bool {
		return rules.Capitalized(fl.Field().String())
	})
	return v
}

// DecodeJSONBody decodes a JSON request body into dest and runs its validate tags.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
			WithDetails(map[string]string{"body": err.Error()})
	}
	return Struct(dest)
}

// Struct runs validate tags on an already populated value.
func Struct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, i18n.MsgValidationFailed).WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, i18n.MsgValidationFailed)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return i18n.MsgFieldRequired
	case "max":
		return i18n.MsgFieldTooLong
	case "email":
		return i18n.MsgEmailInvalid
	case "countrycode":
		return i18n.MsgCountryCode
	case "capitalized":
		return i18n.MsgTeaNameCapitalized
	case "gt":
		if fe.Field() == "quantity" {
			return i18n.MsgQuantityPositive
		}
	case "gte":
		if fe.Field() == "stock_qty" {
			return i18n.MsgStockNonNegative
		}
	case "lte":
		return i18n.MsgValueTooLarge
	}
	return i18n.MsgFieldInvalid
}
