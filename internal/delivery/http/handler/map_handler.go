package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	apperrors "github.com/map-service/internal/pkg/errors"
	"github.com/map-service/internal/pkg/utils"
	"github.com/map-service/internal/pkg/validator"
	"github.com/map-service/internal/usecase"
	"github.com/map-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// MapHandler - обработчик запросов карт
type MapHandler struct {
	mapUC           *usecase.MapUseCase
	defaultProvider string
	logger          *zap.Logger
}

// NewMapHandler - создание нового MapHandler
func NewMapHandler(mapUC *usecase.MapUseCase, defaultProvider string, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		mapUC:           mapUC,
		defaultProvider: defaultProvider,
		logger:          logger,
	}
}

// GetProviders godoc
// @Summary Список провайдеров карт
// @Description Возвращает зарегистрированных провайдеров и провайдера по умолчанию
// @Tags Maps
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ProvidersResponse}
// @Router /api/v1/maps/providers [get]
func (h *MapHandler) GetProviders(c *fiber.Ctx) error {
	providers := h.mapUC.Providers()
	return utils.SendSuccess(c, dto.ProvidersResponse{
		Providers: providers,
		Default:   h.defaultProvider,
	}, &utils.Meta{Total: len(providers)})
}

// GetStyles godoc
// @Summary Каталог стилей провайдера
// @Description Стандартные стили провайдера, дополненные стилями аккаунта. Результат кешируется в Redis.
// @Tags Maps
// @Produce json
// @Param provider path string true "Провайдер" default(mapbox)
// @Param user query string false "Аккаунт вендора: настроенный или публичный"
// @Success 200 {object} utils.SuccessResponse{data=dto.StylesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/maps/{provider}/styles [get]
func (h *MapHandler) GetStyles(c *fiber.Ctx) error {
	slug := c.Params("provider")

	result, err := h.mapUC.Styles(c.Context(), slug, c.Query("user"))
	if err != nil {
		h.logger.Error("Failed to get styles", zap.String("provider", slug), zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     len(result.Styles),
		Cached:    result.Cached,
		RequestID: requestID(c),
	})
}

// GetStaticMap godoc
// @Summary Статичная карта для точки
// @Description Возвращает URL статичного изображения, ссылку на интерактивную карту и HTML-фрагмент. Пустой static_url означает, что провайдер не настроен.
// @Tags Maps
// @Produce json
// @Param provider path string true "Провайдер" default(mapbox)
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param alt query number false "Высота, м"
// @Param width query int false "Ширина, px"
// @Param height query int false "Высота, px"
// @Param zoom query int false "Масштаб (0-22)"
// @Param style query string false "Стиль"
// @Param user query string false "Аккаунт вендора"
// @Success 200 {object} utils.SuccessResponse{data=dto.MapResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/maps/{provider}/static [get]
func (h *MapHandler) GetStaticMap(c *fiber.Ctx) error {
	req, err := parseMapRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.mapUC.Render(c.Context(), c.Params("provider"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{RequestID: requestID(c)})
}

// GetMapHTML godoc
// @Summary HTML-фрагмент карты
// @Description Статичная карта, обернутая в ссылку. Динамическая карта не поддерживается и возвращает пустой ответ.
// @Tags Maps
// @Produce html
// @Param provider path string true "Провайдер" default(mapbox)
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param static query bool false "Статичная карта" default(true)
// @Success 200 {string} string "HTML"
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/maps/{provider}/html [get]
func (h *MapHandler) GetMapHTML(c *fiber.Ctx) error {
	req, err := parseMapRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	static := c.QueryBool("static", true)
	html, err := h.mapUC.HTML(c.Context(), c.Params("provider"), req, static)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// CreateArchiveMap godoc
// @Summary Карта с несколькими точками
// @Description Одна статичная карта с меткой на каждую точку; область просмотра подбирается автоматически
// @Tags Maps
// @Accept json
// @Produce json
// @Param provider path string true "Провайдер" default(mapbox)
// @Param request body dto.ArchiveRequest true "Точки и размер"
// @Success 200 {object} utils.SuccessResponse{data=dto.ArchiveResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/maps/{provider}/archive [post]
func (h *MapHandler) CreateArchiveMap(c *fiber.Ctx) error {
	var req dto.ArchiveRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "invalid request body",
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.mapUC.Archive(c.Context(), c.Params("provider"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     result.Locations,
		RequestID: requestID(c),
	})
}

// parseMapRequest читает параметры точки из query и валидирует их
func parseMapRequest(c *fiber.Ctx) (dto.MapRequest, error) {
	var req dto.MapRequest
	var err error

	if req.Lat, err = queryFloat(c, "lat"); err != nil {
		return req, err
	}
	if req.Lon, err = queryFloat(c, "lon"); err != nil {
		return req, err
	}
	if req.Alt, err = queryFloat(c, "alt"); err != nil {
		return req, err
	}
	if req.Width, err = queryInt(c, "width"); err != nil {
		return req, err
	}
	if req.Height, err = queryInt(c, "height"); err != nil {
		return req, err
	}
	if req.Zoom, err = queryInt(c, "zoom"); err != nil {
		return req, err
	}
	req.Style = c.Query("style")
	req.User = c.Query("user")

	if err := validator.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, badParam(key)
	}
	return &v, nil
}

func queryInt(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, badParam(key)
	}
	return &v, nil
}

func badParam(key string) error {
	return apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"fields": map[string]interface{}{key: "must be a number"},
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
