// Package docs serves the OpenAPI description of the habit-garden API.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create a local profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/habits": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "List the habits of the profile",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Add a custom habit",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/habits/{key}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Rename a habit or change its emoji",
                "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Remove a habit with its history",
                "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/completions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["completions"],
                "summary": "Raw completion store and notes of the profile",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["completions"],
                "summary": "Clear every completion, note and reminder of the profile",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/completions/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["completions"],
                "summary": "Flip the completion of a habit on a day (today by default)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/completions/note": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["completions"],
                "summary": "Attach a note to a day, an empty note removes it",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/progress": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["progress"],
                "summary": "Garden streak, growth stage, points, level and achievements",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/progress/habits/{key}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["progress"],
                "summary": "Streak and success rate of one habit",
                "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/growth/journey": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["progress"],
                "summary": "Every growth stage with unlocked and current flags for a streak",
                "parameters": [{"type": "integer", "name": "streak", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/weekly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Completion report over a date range, the current week by default",
                "parameters": [
                    {"type": "string", "name": "start_date", "in": "query"},
                    {"type": "string", "name": "end_date", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/monthly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Calendar month summary, the current month by default",
                "parameters": [{"type": "string", "name": "month", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Per-habit completion history as JSON or CSV",
                "produces": ["application/json", "text/csv"],
                "parameters": [{"type": "string", "name": "format", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reminders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reminders"],
                "summary": "Stored reminder settings and pending reminders",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reminders/{key}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["reminders"],
                "summary": "Enable, disable or move the daily reminder of a habit",
                "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["reminders"],
                "summary": "Remove the reminder of a habit",
                "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Habit Garden API",
	Description:      "Habit streaks, growth stages and achievements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
