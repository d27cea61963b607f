package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/maps/providers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Maps"],
                "summary": "Список провайдеров карт",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/maps/{provider}/styles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Maps"],
                "summary": "Каталог стилей провайдера",
                "parameters": [
                    {"type": "string", "default": "mapbox", "name": "provider", "in": "path", "required": true},
                    {"type": "string", "name": "user", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/api/v1/maps/{provider}/static": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Maps"],
                "summary": "Статичная карта для точки",
                "parameters": [
                    {"type": "string", "default": "mapbox", "name": "provider", "in": "path", "required": true},
                    {"type": "number", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "name": "lon", "in": "query", "required": true},
                    {"type": "number", "name": "alt", "in": "query"},
                    {"type": "integer", "name": "width", "in": "query"},
                    {"type": "integer", "name": "height", "in": "query"},
                    {"type": "integer", "name": "zoom", "in": "query"},
                    {"type": "string", "name": "style", "in": "query"},
                    {"type": "string", "name": "user", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/maps/{provider}/html": {
            "get": {
                "produces": ["text/html"],
                "tags": ["Maps"],
                "summary": "HTML-фрагмент карты",
                "parameters": [
                    {"type": "string", "default": "mapbox", "name": "provider", "in": "path", "required": true},
                    {"type": "number", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "name": "lon", "in": "query", "required": true},
                    {"type": "boolean", "default": true, "name": "static", "in": "query"}
                ],
                "responses": {"200": {"description": "HTML"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/maps/{provider}/archive": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Maps"],
                "summary": "Карта с несколькими точками",
                "parameters": [
                    {"type": "string", "default": "mapbox", "name": "provider", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ArchiveRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/maps/options": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Options"],
                "summary": "Сохраненные настройки карт",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/api/v1/maps/options/{name}": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["Options"],
                "summary": "Сохранить настройку карт",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.OptionRequest"}}
                ],
                "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}}
            },
            "delete": {
                "tags": ["Options"],
                "summary": "Удалить настройку карт",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "definitions": {
        "dto.Point": {
            "type": "object",
            "required": ["lat", "lon"],
            "properties": {
                "lat": {"type": "number", "maximum": 90, "minimum": -90},
                "lon": {"type": "number", "maximum": 180, "minimum": -180},
                "alt": {"type": "number"}
            }
        },
        "dto.ArchiveRequest": {
            "type": "object",
            "required": ["locations"],
            "properties": {
                "locations": {"type": "array", "maxItems": 100, "minItems": 1, "items": {"$ref": "#/definitions/dto.Point"}},
                "width": {"type": "integer"},
                "height": {"type": "integer"},
                "style": {"type": "string"},
                "user": {"type": "string"}
            }
        },
        "dto.OptionRequest": {
            "type": "object",
            "required": ["value"],
            "properties": {
                "value": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Map Service API",
	Description:      "Static map URLs, map links and style catalogs from pluggable map providers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
