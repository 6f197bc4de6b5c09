// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
        "/players/": {
            "get": {"tags": ["players"], "summary": "List players", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["players"], "summary": "Create a player", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/players/{id}": {
            "get": {"tags": ["players"], "summary": "Get a player", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["players"], "summary": "Partially update a player", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["players"], "summary": "Delete a player", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/players/{id}/avatar": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["players"], "summary": "Upload a player avatar", "consumes": ["multipart/form-data"], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "file", "name": "avatar", "in": "formData", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "503": {"description": "Service Unavailable"}}}
        },
        "/groupes/": {
            "get": {"tags": ["groupes"], "summary": "List groups", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["groupes"], "summary": "Create a group", "responses": {"201": {"description": "Created"}}}
        },
        "/groupes/{id}/players": {
            "get": {"tags": ["groupes"], "summary": "List group members", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["groupes"], "summary": "Add a player to a group", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "201": {"description": "Created"}}}
        },
        "/teams/": {
            "get": {"tags": ["teams"], "summary": "List teams", "parameters": [{"type": "integer", "name": "tournament_id", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["teams"], "summary": "Create a team", "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}}
        },
        "/matches/{id}/score/{side}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["matches"], "summary": "Update the score of one side", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "side", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/tournaments/": {
            "get": {"tags": ["tournaments"], "summary": "List tournaments", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["tournaments"], "summary": "Create a tournament with its players, teams, sessions and matches", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/tournaments/{id}": {
            "get": {"tags": ["tournaments"], "summary": "Get a tournament with its players, teams, sessions and matches", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/tournaments/{id}/ranking": {
            "get": {"tags": ["tournaments"], "summary": "Tournament ranking", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/tournaments/{id}/sessions": {
            "get": {"tags": ["tournaments"], "summary": "Sessions of a tournament with their matches", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["tournaments"], "summary": "Add a session with its matches", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}}
        },
        "/games/organize_teams": {
            "post": {"tags": ["games"], "summary": "Organize players into two-player teams", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PlayerZ API",
	Description:      "Tournament management backend: players, groups, teams, tournaments, sessions and matches.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
