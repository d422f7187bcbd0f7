package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ASN Monitor API",
        "description": "Civil servant milestone monitoring (KGB & Kenaikan Pangkat)",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "ASN", "description": "Personnel record management"},
        {"name": "Notifications", "description": "Due and overdue milestone feed"},
        {"name": "Dashboard", "description": "Overview counters"},
        {"name": "Auth", "description": "Administrator login"}
    ],
    "paths": {
        "/asns": {
            "get": {
                "tags": ["ASN"],
                "summary": "List personnel records",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["ASN"],
                "summary": "Create a personnel record",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/asns/{id}": {
            "get": {
                "tags": ["ASN"],
                "summary": "Get one personnel record",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "patch": {
                "tags": ["ASN"],
                "summary": "Patch a personnel record",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["ASN"],
                "summary": "Delete a personnel record",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/asns/export": {
            "get": {
                "tags": ["ASN"],
                "summary": "Export all personnel records as CSV",
                "responses": {"200": {"description": "CSV attachment"}}
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List due and overdue milestones, nearest first",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/notifications/export": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Export the milestone feed",
                "parameters": [{"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}],
                "responses": {"200": {"description": "Attachment"}}
            }
        },
        "/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard summary counters",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Administrator login",
                "responses": {
                    "200": {"description": "Token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        }
    },
    "definitions": {
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
