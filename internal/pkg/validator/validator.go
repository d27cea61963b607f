package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/map-service/internal/pkg/errors"
	"github.com/map-service/internal/pkg/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("map_zoom", func(fl validator.FieldLevel) bool {
		return utils.ValidateZoom(int(fl.Field().Int()))
	})
}

// Validate - валидация структуры; ошибки возвращаются как AppError с перечнем полей
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()})
	}

	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fmt.Sprintf("failed on '%s'", fe.Tag())
	}
	return apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{"fields": fields})
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
