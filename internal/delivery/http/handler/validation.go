package handler

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/studybuds/studybuds-backend/internal/domain"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the questionnaire tags (studyhours,
// environment, sessiontype, technique) on gin's validator engine. Safe to
// call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		validators := map[string]validator.Func{
			"studyhours":  scaleValidator(domain.StudyHoursScale),
			"environment": scaleValidator(domain.EnvironmentScale),
			"sessiontype": scaleValidator(domain.SessionTypeScale),
			"technique": func(fl validator.FieldLevel) bool {
				return domain.IsKnownTechnique(fl.Field().String())
			},
		}
		for tag, fn := range validators {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = fmt.Errorf("failed to register %s validator: %w", tag, err)
				return
			}
		}
	})
	return registerErr
}

func scaleValidator(scale []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return domain.ScaleIndex(scale, fl.Field().String()) >= 0
	}
}
