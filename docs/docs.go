// Package docs registers the swagger document of the survey analysis API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "summary": "Log in as the host",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "token"}, "401": {"description": "invalid credentials"}}
            }
        },
        "/surveys": {
            "get": {
                "summary": "List surveys of the host",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "surveys"}}
            },
            "post": {
                "summary": "Store a SurveyJS definition",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSurveyRequest"}}],
                "responses": {"201": {"description": "created"}, "409": {"description": "duplicate question name"}, "422": {"description": "unsupported or malformed definition"}}
            }
        },
        "/surveys/{surveyId}": {
            "get": {
                "summary": "Get a stored survey",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "surveyId", "type": "string", "required": true}],
                "responses": {"200": {"description": "survey"}, "404": {"description": "not found"}}
            },
            "delete": {
                "summary": "Delete a survey with its results",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "surveyId", "type": "string", "required": true}],
                "responses": {"204": {"description": "deleted"}, "404": {"description": "not found"}}
            }
        },
        "/surveys/{surveyId}/results": {
            "post": {
                "summary": "Append serialized results",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "surveyId", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/AddResultsRequest"}}
                ],
                "responses": {"201": {"description": "stored"}, "413": {"description": "too many results"}, "422": {"description": "invalid answer"}}
            }
        },
        "/surveys/{surveyId}/summary": {
            "get": {
                "summary": "Summarize every question",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "surveyId", "type": "string", "required": true},
                    {"in": "query", "name": "lang", "type": "string"}
                ],
                "responses": {"200": {"description": "summary"}}
            }
        },
        "/surveys/{surveyId}/table": {
            "get": {
                "summary": "Export the survey as a table",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json", "text/csv"],
                "parameters": [
                    {"in": "path", "name": "surveyId", "type": "string", "required": true},
                    {"in": "query", "name": "labels", "type": "boolean"},
                    {"in": "query", "name": "dummies", "type": "boolean"},
                    {"in": "query", "name": "optimize", "type": "boolean"},
                    {"in": "query", "name": "format", "type": "string", "enum": ["json", "csv"]}
                ],
                "responses": {"200": {"description": "table"}}
            }
        },
        "/surveys/{surveyId}/metadata": {
            "get": {
                "summary": "Describe the table variables",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "surveyId", "type": "string", "required": true},
                    {"in": "query", "name": "dummies", "type": "boolean"},
                    {"in": "query", "name": "optimize", "type": "boolean"}
                ],
                "responses": {"200": {"description": "variables"}}
            }
        },
        "/analyze": {
            "post": {
                "summary": "Analyze a definition and results without storing them",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/AnalyzeRequest"}}],
                "responses": {"200": {"description": "summary, table and metadata"}, "422": {"description": "invalid definition or answer"}}
            }
        },
        "/ws/surveys/{surveyId}": {
            "get": {
                "summary": "Stream ingestion progress over a WebSocket",
                "parameters": [
                    {"in": "path", "name": "surveyId", "type": "string", "required": true},
                    {"in": "query", "name": "token", "type": "string", "required": true}
                ],
                "responses": {"101": {"description": "switching protocols"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "CreateSurveyRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "definition": {"type": "object"}}
        },
        "AddResultsRequest": {
            "type": "object",
            "properties": {"results": {"type": "array", "items": {"type": "object"}}}
        },
        "AnalyzeRequest": {
            "type": "object",
            "properties": {
                "definition": {"type": "object"},
                "results": {"type": "array", "items": {"type": "object"}},
                "language": {"type": "string"},
                "table": {
                    "type": "object",
                    "properties": {"toLabels": {"type": "boolean"}, "toDummies": {"type": "boolean"}, "optimize": {"type": "boolean"}}
                },
                "cleanHtml": {"type": "boolean"},
                "cleanPattern": {"type": "string"},
                "otherText": {"type": "string"},
                "noneText": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Survey Toolkit API",
	Description:      "Stores SurveyJS definitions and results and derives summaries, tables and variable metadata.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
