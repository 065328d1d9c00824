package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/alxsaunders/FutureMove-sub003/models"
)

// Minimal internal validator to avoid external dependency. Supports:
// - required
// - emailok (basic RFC-ish email shape)
// - nameok (letters, numbers, space, hyphen, apostrophe, 1-100 chars)
// - usernameok (letters, numbers, underscore, dot, 3-50 chars)
// - pwdmin (min length 6)
// - category (one of the six goal categories)

var (
	reEmailOK    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	reNameOK     = regexp.MustCompile(`^[A-Za-z0-9 \-']{1,100}$`)
	reUsernameOK = regexp.MustCompile(`^[A-Za-z0-9_.]{3,50}$`)
)

// ValidateStruct inspects struct tags `validate:"..."` and returns the first error encountered.
func ValidateStruct(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.New("ValidateStruct expects a struct or pointer to struct")
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		parts := strings.Split(tag, ",")
		fv := v.Field(i)
		var sval string
		if fv.IsValid() && fv.Kind() == reflect.String {
			sval = fv.String()
		}
		for _, p := range parts {
			p = strings.TrimSpace(p)
			switch {
			case p == "required":
				if sval == "" {
					return errors.New(field.Name + " is required")
				}
			case p == "emailok":
				if sval != "" && !reEmailOK.MatchString(sval) {
					return errors.New(field.Name + " must be a valid email address")
				}
			case p == "nameok":
				if sval != "" && !reNameOK.MatchString(sval) {
					return errors.New(field.Name + " contains invalid characters")
				}
			case p == "usernameok":
				if sval != "" && !reUsernameOK.MatchString(sval) {
					return errors.New(field.Name + " must be 3-50 letters, numbers, dots or underscores")
				}
			case p == "pwdmin":
				if len(sval) < 6 {
					return errors.New(field.Name + " must be at least 6 characters")
				}
			case p == "category":
				if sval != "" && !models.IsValidCategory(sval) {
					return errors.New(field.Name + " must be a valid category")
				}
			}
		}
	}
	return nil
}
