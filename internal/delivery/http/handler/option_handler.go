package handler

import (
	"github.com/gofiber/fiber/v2"
	apperrors "github.com/map-service/internal/pkg/errors"
	"github.com/map-service/internal/pkg/utils"
	"github.com/map-service/internal/pkg/validator"
	"github.com/map-service/internal/usecase"
	"github.com/map-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// OptionHandler - обработчик настроек карт
type OptionHandler struct {
	optionUC *usecase.OptionUseCase
	logger   *zap.Logger
}

// NewOptionHandler - создание нового OptionHandler
func NewOptionHandler(optionUC *usecase.OptionUseCase, logger *zap.Logger) *OptionHandler {
	return &OptionHandler{
		optionUC: optionUC,
		logger:   logger,
	}
}

// ListOptions godoc
// @Summary Сохраненные настройки карт
// @Tags Options
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.OptionsResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/maps/options [get]
func (h *OptionHandler) ListOptions(c *fiber.Ctx) error {
	result, err := h.optionUC.List(c.Context())
	if err != nil {
		h.logger.Error("Failed to list options", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Options)})
}

// SetOption godoc
// @Summary Сохранить настройку карт
// @Tags Options
// @Accept json
// @Produce json
// @Param name path string true "Имя настройки (sloc_*)"
// @Param request body dto.OptionRequest true "Значение"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/maps/options/{name} [put]
func (h *OptionHandler) SetOption(c *fiber.Ctx) error {
	var req dto.OptionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "invalid request body",
		}))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.optionUC.Set(c.Context(), c.Params("name"), req.Value); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteOption godoc
// @Summary Удалить настройку карт
// @Tags Options
// @Param name path string true "Имя настройки (sloc_*)"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/maps/options/{name} [delete]
func (h *OptionHandler) DeleteOption(c *fiber.Ctx) error {
	if err := h.optionUC.Delete(c.Context(), c.Params("name")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
