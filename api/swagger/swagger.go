package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Eventra Admin API",
        "description": "Administration backend for the Eventra event platform",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Authentication", "description": "Admin login and session management"},
        {"name": "Events", "description": "Event lifecycle and gallery"},
        {"name": "Registrations", "description": "Attendee registrations"},
        {"name": "BannerRates", "description": "Banner ad pricing tiers"},
        {"name": "PhotoCategories", "description": "Gallery categories"},
        {"name": "Regions", "description": "Geographic regions"},
        {"name": "Complaints", "description": "Complaint triage"},
        {"name": "Feedback", "description": "Member feedback"},
        {"name": "UPISettings", "description": "Payment collection identities"},
        {"name": "Users", "description": "Account administration"},
        {"name": "Dashboard", "description": "Console landing page counters"},
        {"name": "Exports", "description": "Background registration exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid refresh token"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Revoke refresh token",
                "responses": {
                    "204": {"description": "Revoked"}
                }
            }
        },
        "/events/list": {
            "post": {
                "tags": ["Events"],
                "summary": "List events",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ListRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PagedDocument"}}
                }
            }
        },
        "/events": {
            "post": {
                "tags": ["Events"],
                "summary": "Create event",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get event",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Events"],
                "summary": "Update event",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete event",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "412": {"description": "Event has registrations"}
                }
            }
        },
        "/events/{id}/gallery": {
            "get": {
                "tags": ["Events"],
                "summary": "Event gallery",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registrations/list": {
            "post": {
                "tags": ["Registrations"],
                "summary": "List registrations",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ListRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PagedDocument"}}
                }
            }
        },
        "/registrations/{id}/payment-status": {
            "patch": {
                "tags": ["Registrations"],
                "summary": "Update payment status",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown status"}
                }
            }
        },
        "/banner-rates/list": {
            "post": {
                "tags": ["BannerRates"],
                "summary": "List banner rates",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ListRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PagedDocument"}}
                }
            }
        },
        "/banner-rates/{id}": {
            "delete": {
                "tags": ["BannerRates"],
                "summary": "Delete banner rate",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "412": {"description": "Rate used by running ads"}
                }
            }
        },
        "/upi-settings/{id}/activate": {
            "patch": {
                "tags": ["UPISettings"],
                "summary": "Activate UPI setting",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}/toggle": {
            "patch": {
                "tags": ["Users"],
                "summary": "Toggle account",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Insufficient privileges"}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue registration export",
                "responses": {
                    "202": {"description": "Queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download finished export",
                "parameters": [{"name": "token", "in": "query", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "File stream"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ListRequest": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "search": {"type": "string"},
                "sortBy": {"type": "string"},
                "sortOrder": {"type": "string"}
            }
        },
        "PagedDocument": {
            "type": "object",
            "properties": {
                "docs": {"type": "array", "items": {"type": "object"}},
                "totalDocs": {"type": "integer"},
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "pagingCounter": {"type": "integer"},
                "hasPrevPage": {"type": "boolean"},
                "hasNextPage": {"type": "boolean"},
                "prevPage": {"type": "integer"},
                "nextPage": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
