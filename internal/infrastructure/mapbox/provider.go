package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/map-service/internal/domain"
	"github.com/map-service/internal/domain/repository"
	apperrors "github.com/map-service/internal/pkg/errors"
	"github.com/map-service/internal/provider"
)

const (
	Slug = "mapbox"

	// PublicUser - общий аккаунт, под которым опубликованы стандартные стили
	PublicUser = "mapbox"

	DefaultBaseURL = "https://api.mapbox.com"
	MapLinkBaseURL = "https://www.openstreetmap.org/"

	OptionAPI   = "sloc_mapbox_api"
	OptionUser  = "sloc_mapbox_user"
	OptionStyle = "sloc_mapbox_style"
)

// Identity описывает провайдера Mapbox
func Identity() domain.ProviderIdentity {
	return domain.ProviderIdentity{
		Slug:        Slug,
		Name:        "Mapbox",
		Description: "Static maps rendered from Mapbox styles",
	}
}

// Provider строит статичные карты Mapbox для одной координаты
type Provider struct {
	provider.MapBase

	baseURL string
}

// Option настраивает Provider
type Option func(*Provider)

// WithBaseURL переопределяет адрес Mapbox API (используется в тестах)
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithFetcher подменяет HTTP-транспорт
func WithFetcher(f *provider.Fetcher) Option {
	return func(p *Provider) {
		p.SetFetcher(f)
	}
}

// New создает провайдера; api, user и style без явных значений берутся из настроек
func New(args provider.Args, options provider.Options, opts ...Option) *Provider {
	if args.API == nil {
		if v, ok := provider.OptionString(options, OptionAPI); ok {
			args.API = &v
		}
	}
	if args.User == nil {
		if v, ok := provider.OptionString(options, OptionUser); ok {
			args.User = &v
		}
	}
	if args.Style == nil {
		if v, ok := provider.OptionString(options, OptionStyle); ok {
			args.Style = &v
		}
	}

	p := &Provider{
		MapBase: provider.NewMapBase(Identity(), args, options),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Factory возвращает фабрику для provider.Registry
func Factory(opts ...Option) provider.Factory {
	return func(args provider.Args, options provider.Options) repository.MapProvider {
		return New(args, options, opts...)
	}
}

// Styles возвращает стандартные стили, дополненные стилями аккаунта.
// Стили аккаунта перекрывают стандартные с тем же id, но не удаляют их.
func (p *Provider) Styles(ctx context.Context) (domain.StyleCatalog, error) {
	user := p.User()
	if user == "" {
		return domain.StyleCatalog{}, nil
	}

	catalog := DefaultStyles()
	if user == PublicUser {
		return catalog, nil
	}

	endpoint := fmt.Sprintf("%s/styles/v1/%s", p.baseURL, url.PathEscape(user))
	resp, err := p.FetchJSONResponse(ctx, endpoint, url.Values{"access_token": {p.APIKey()}})
	if err != nil {
		switch {
		case apperrors.HasCode(err, apperrors.CodeHTTP):
			return nil, vendorError(err)
		case isEmptyListing(err):
			// у аккаунта нет собственных стилей
			return catalog, nil
		}
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewProviderError(Slug, vendorMessage(resp.Data, http.StatusText(resp.StatusCode)), nil)
	}

	list, ok := resp.Data.([]interface{})
	if !ok {
		return nil, apperrors.NewProviderError(Slug, "unexpected style listing format", nil)
	}
	for _, item := range list {
		style, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := style["id"].(string)
		if id == "" {
			// без id стиль нельзя выбрать
			continue
		}
		name, _ := style["name"].(string)
		catalog[id] = name
	}

	return catalog, nil
}

// IsPublicAccount сообщает, что каталог аккаунта состоит из стандартных стилей
func (p *Provider) IsPublicAccount(user string) bool {
	return user == PublicUser
}

// StaticMapURL возвращает URL статичного изображения с меткой в центре.
// Mapbox ожидает порядок долгота,широта.
func (p *Provider) StaticMapURL() string {
	lat, lng, ok := p.Position()
	if p.APIKey() == "" || p.Style() == "" || !ok {
		return ""
	}

	lon := provider.FormatFloat(lng)
	la := provider.FormatFloat(lat)
	return fmt.Sprintf("%s/styles/v1/%s/%s/static/pin-s(%s,%s)/%s,%s,%d,0,0/%dx%d?access_token=%s",
		p.baseURL,
		p.qualifier(),
		p.Style(),
		lon, la,
		lon, la, p.Zoom(),
		p.Width(), p.Height(),
		url.QueryEscape(p.APIKey()),
	)
}

// ArchiveMapURL возвращает URL изображения с меткой на каждую точку;
// область просмотра подбирается автоматически
func (p *Provider) ArchiveMapURL(locations []domain.Coordinate) string {
	if p.APIKey() == "" || p.Style() == "" {
		return ""
	}

	markers := make([]string, 0, len(locations))
	for _, loc := range locations {
		if !loc.HasPosition() {
			continue
		}
		markers = append(markers, fmt.Sprintf("pin-s(%s,%s)",
			provider.FormatFloat(*loc.Longitude),
			provider.FormatFloat(*loc.Latitude),
		))
	}
	if len(markers) == 0 {
		return ""
	}

	return fmt.Sprintf("%s/styles/v1/%s/%s/static/%s/auto/%dx%d?access_token=%s",
		p.baseURL,
		p.qualifier(),
		p.Style(),
		strings.Join(markers, ","),
		p.Width(), p.Height(),
		url.QueryEscape(p.APIKey()),
	)
}

// MapLinkURL возвращает ссылку на карту OpenStreetMap с меткой
func (p *Provider) MapLinkURL() string {
	lat, lng, ok := p.Position()
	if !ok {
		return ""
	}
	la := provider.FormatFloat(lat)
	lon := provider.FormatFloat(lng)
	return fmt.Sprintf("%s?mlat=%s&mlon=%s#map=%d/%s/%s", MapLinkBaseURL, la, lon, p.Zoom(), la, lon)
}

// MapHTML оборачивает статичное изображение в ссылку на интерактивную карту.
// Динамическая карта не поддерживается.
func (p *Provider) MapHTML(static bool) string {
	if !static {
		return p.MapBase.MapHTML(static)
	}
	src := p.StaticMapURL()
	if src == "" {
		return ""
	}
	return fmt.Sprintf(`<a target="_blank" href="%s"><img src="%s"></a>`,
		html.EscapeString(p.MapLinkURL()),
		html.EscapeString(src),
	)
}

// qualifier - аккаунт в пути URL: стандартные стили лежат под общим аккаунтом
func (p *Provider) qualifier() string {
	if IsDefaultStyle(p.Style()) {
		return PublicUser
	}
	return p.User()
}

func vendorError(err error) error {
	appErr, _ := apperrors.As(err)
	body, _ := appErr.Details[apperrors.DetailBody].(string)
	status, _ := appErr.Details[apperrors.DetailStatus].(int)

	message := http.StatusText(status)
	var data interface{}
	if jsonErr := json.Unmarshal([]byte(body), &data); jsonErr == nil {
		message = vendorMessage(data, message)
	}

	e := apperrors.NewProviderError(Slug, message, err)
	e.Details[apperrors.DetailStatus] = status
	return e
}

func vendorMessage(data interface{}, fallback string) string {
	if obj, ok := data.(map[string]interface{}); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return fallback
}

func isEmptyListing(err error) bool {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Code != apperrors.CodeInvalidResponse {
		return false
	}
	body, _ := appErr.Details[apperrors.DetailBody].(string)
	return strings.TrimSpace(body) == "[]"
}
