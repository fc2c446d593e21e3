// Package docs holds the OpenAPI description served at /swagger/*any.
// It is maintained by hand; keep it in step with the @Router annotations in
// internal/handlers (docs_test checks the CGI and device paths are present).
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/cgi-bin/toggle_led": {
            "get": {
                "description": "Flips the LED and answers with the new state.",
                "produces": ["text/plain"],
                "tags": ["cgi"],
                "summary": "Toggle the LED",
                "responses": {
                    "200": {"description": "ON or OFF", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "string"}}
                }
            }
        },
        "/cgi-bin/set_speed": {
            "get": {
                "description": "Leading digits of percent are used; values above 100 are ignored. Answers with the speed in effect.",
                "produces": ["text/plain"],
                "tags": ["cgi"],
                "summary": "Set the fan speed",
                "parameters": [
                    {"type": "string", "description": "Speed percent", "name": "percent", "in": "query", "required": true},
                    {"type": "integer", "description": "Cache buster", "name": "id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "speed", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "string"}}
                }
            }
        },
        "/ledstate": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["cgi"],
                "summary": "Read the LED state",
                "parameters": [{"type": "integer", "description": "Cache buster", "name": "id", "in": "query"}],
                "responses": {"200": {"description": "ON or OFF", "schema": {"type": "string"}}}
            }
        },
        "/get_speed": {
            "get": {
                "description": "Manual speed, or the measured speed in automatic mode.",
                "produces": ["text/plain"],
                "tags": ["cgi"],
                "summary": "Read the fan speed",
                "parameters": [{"type": "integer", "description": "Cache buster", "name": "id", "in": "query"}],
                "responses": {"200": {"description": "speed", "schema": {"type": "string"}}}
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register an operator",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Obtain a bearer token",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/device/state": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["device"],
                "summary": "Get device state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeviceState"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/device/mode": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "automatic=true reports the tachometer reading as the speed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["device"],
                "summary": "Set speed mode",
                "parameters": [{"description": "Mode payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.modeRequest"}}],
                "responses": {
                    "200": {"description": "status, state", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Filter events by date. A date-only 'to' covers the whole day.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List device events",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"enum": ["LED_TOGGLE", "SPEED_CHANGE", "SPEED_REJECTED", "MODE_CHANGE"], "type": "string", "name": "type", "in": "query"}
                ],
                "responses": {"200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/ws": {
            "get": {
                "description": "Upgrades to a WebSocket and pushes state messages every interval.",
                "tags": ["device"],
                "summary": "Stream device state",
                "parameters": [
                    {"type": "string", "name": "interval", "in": "query"},
                    {"type": "integer", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "handlers.modeRequest": {
            "type": "object",
            "required": ["automatic"],
            "properties": {"automatic": {"type": "boolean", "example": true}}
        },
        "models.DeviceState": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "led_on": {"type": "boolean"},
                "automatic": {"type": "boolean"},
                "manual_speed": {"type": "integer"},
                "measured_speed": {"type": "integer"},
                "updated_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ENET I/O device API",
	Description:      "Simulated LED/fan controller: CGI endpoints used by the control panel plus an authenticated JSON API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
