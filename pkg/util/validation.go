package util

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	trans        ut.Translator
)

func validatorInstance() (*validator.Validate, ut.Translator) {
	validateOnce.Do(func() {
		validate = validator.New()
		english := en.New()
		uni := ut.New(english, english)
		trans, _ = uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	})
	return validate, trans
}

// ValidateStruct. run the struct's `validate` tags, returns the english messages of every failed field.
func ValidateStruct(s interface{}) []string {
	v, tr := validatorInstance()
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	return TranslateError(err, tr)
}

func TranslateError(err error, tr ut.Translator) []string {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		msgs = append(msgs, e.Translate(tr))
	}
	return msgs
}

func JoinMessages(msgs []string) string {
	return strings.Join(msgs, "; ")
}
