// Package docs Map Service API.
//
// Сервис построения карт для координат через сменяемых провайдеров
// (эталонный провайдер - Mapbox).
//
// Основные возможности:
// - URL статичной карты с меткой и ссылка на интерактивную карту
// - HTML-фрагмент статичной карты
// - Карта с несколькими точками (архив)
// - Каталог стилей аккаунта с кешированием в Redis
// - Хранение настроек карт в PostgreSQL
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- text/html
//
// swagger:meta
package docs
