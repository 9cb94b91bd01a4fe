// Package bind provides JSON bind and validation helpers for handlers
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "linguabot/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and json tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		// langcode: two lowercase ASCII letters (ISO 639-1 shape).
		// Membership in the supported set is checked downstream against the pack
		_ = v.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if len(s) != 2 {
				return false
			}
			return s[0] >= 'a' && s[0] <= 'z' && s[1] >= 'a' && s[1] <= 'z'
		})
		_ = v.RegisterTranslation("langcode", trans,
			func(ut ut.Translator) error {
				return ut.Add("langcode", "{0} must be a two-letter lowercase language code", true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, err := ut.T("langcode", fe.Field())
				if err != nil {
					return fe.Field() + " must be a two-letter lowercase language code"
				}
				return msg
			},
		)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// ParseJSON decodes the request body into T (unknown fields rejected) and validates it.
// Decode failures map to ErrorCodeJSON, validation failures to ErrorCodeValidation
// with the first offending field attached
func ParseJSON[T any](r *http.Request) (T, error) {
	var in T

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return in, perr.JSONErrf("request body is required")
		}
		return in, perr.Wrapf(err, perr.ErrorCodeJSON, "invalid JSON body")
	}
	// trailing garbage after the object is also a bind error
	if dec.More() {
		return in, perr.JSONErrf("unexpected trailing data after JSON body")
	}

	svc := Get()
	if err := svc.Validator.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return in, perr.WithField(
				perr.Newf(perr.ErrorCodeValidation, "%s", fe.Translate(svc.Translator)),
				fe.Field(),
			)
		}
		return in, perr.Wrapf(err, perr.ErrorCodeValidation, "validation failed")
	}
	return in, nil
}
