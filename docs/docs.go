// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/cv/parse": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data", "application/json"],
                "produces": ["application/json"],
                "tags": ["CV"],
                "summary": "Распознать резюме",
                "parameters": [{"type": "file", "description": "Файл резюме", "name": "file", "in": "formData"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ParseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/cv/prefill": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["CV"],
                "summary": "Предзаполнить форму",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cvparse.Record"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/cv/improve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["CV"],
                "summary": "Улучшить формулировки",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cvparse.Record"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/cv/pdf": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/pdf"],
                "tags": ["CV"],
                "summary": "Скачать PDF",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/resumes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Резюме"],
                "summary": "Список резюме",
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/resume.Resume"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Резюме"],
                "summary": "Загрузить резюме",
                "parameters": [{"type": "file", "description": "Файл резюме (PDF/DOCX/TXT)", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/resume.Stored"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/resumes/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Резюме"],
                "summary": "Получить резюме",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resume.Stored"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Резюме"],
                "summary": "Удалить резюме",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/resumes/{id}/file": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/octet-stream"],
                "tags": ["Резюме"],
                "summary": "Скачать файл резюме",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/resumes/{id}/reparse": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Резюме"],
                "summary": "Распознать заново",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/resume.Stored"}}}
            }
        }
    },
    "definitions": {
        "presenter.ErrorResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "requestId": {"type": "string"}}
        },
        "cvparse.PersonalInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "linkedin": {"type": "string"},
                "website": {"type": "string"}
            }
        },
        "cvparse.Experience": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "position": {"type": "string"},
                "company": {"type": "string"},
                "location": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "description": {"type": "string"},
                "isCurrentPosition": {"type": "boolean"}
            }
        },
        "cvparse.Education": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "degree": {"type": "string"},
                "institution": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "cvparse.Skill": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "category": {"type": "string"}}
        },
        "cvparse.Language": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "level": {"type": "string"}}
        },
        "cvparse.Record": {
            "type": "object",
            "properties": {
                "personalInfo": {"$ref": "#/definitions/cvparse.PersonalInfo"},
                "experiences": {"type": "array", "items": {"$ref": "#/definitions/cvparse.Experience"}},
                "education": {"type": "array", "items": {"$ref": "#/definitions/cvparse.Education"}},
                "skills": {"type": "array", "items": {"$ref": "#/definitions/cvparse.Skill"}},
                "languages": {"type": "array", "items": {"$ref": "#/definitions/cvparse.Language"}}
            }
        },
        "handlers.ParseResponse": {
            "type": "object",
            "properties": {
                "record": {"$ref": "#/definitions/cvparse.Record"},
                "manualEntry": {"type": "boolean"}
            }
        },
        "resume.Resume": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "ownerId": {"type": "string"},
                "filename": {"type": "string"},
                "mimeType": {"type": "string"},
                "size": {"type": "integer"},
                "contentHash": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "resume.Stored": {
            "type": "object",
            "properties": {
                "meta": {"$ref": "#/definitions/resume.Resume"},
                "record": {"$ref": "#/definitions/cvparse.Record"},
                "manualEntry": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Токен внешнего провайдера идентификации: \"Bearer <JWT>\" или \"<JWT>\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "cvpolish API",
	Description:      "Распознавание, предзаполнение и улучшение резюме.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
