// Package docs holds the OpenAPI description of the HTTP API, built from the
// swag annotations on internal/handlers. Regenerate it after changing them.
package docs

//go:generate swag init -d ../../ -g cmd/ledger_backend/main.go -o . --outputTypes go --parseInternal

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
        "/audit-logs": {
            "get": {
                "parameters": [
                    {
                        "description": "CREATE, UPDATE, DELETE, UNDO or EXPORT",
                        "name": "action",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Entity kind, e.g. TRANSACTION",
                        "name": "entity",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Page size; defaults to the configured audit limit",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Token from the previous page",
                        "name": "nextToken",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListAuditLogsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "List audit entries",
                "description": "Newest first. Entries are never edited or removed.",
                "tags": [
                    "audit"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/auth/register": {
            "post": {
                "parameters": [
                    {
                        "description": "Registration details",
                        "name": "register",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.RegisterRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email already registered",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Register a new editor",
                "description": "Creates an editor account and seeds its default categories.",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/auth/login": {
            "post": {
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "login",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LoginResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Password login",
                "description": "Authenticates a user and returns an access token and a refresh token.",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/auth/refresh": {
            "post": {
                "parameters": [
                    {
                        "description": "Refresh token",
                        "name": "refresh",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.RefreshTokenRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.RefreshTokenResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unknown, revoked or expired refresh token",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Refresh the access token",
                "description": "Exchanges a stored refresh token for a new access token. The refresh token is rotated.",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/auth/logout": {
            "post": {
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Log out",
                "description": "Revokes the caller's refresh token.",
                "tags": [
                    "auth"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/categories": {
            "get": {
                "parameters": [
                    {
                        "description": "INCOME or EXPENSE",
                        "name": "flow",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListCategoriesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "List categories",
                "description": "Lists income and expense categories in display order.",
                "tags": [
                    "categories"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "parameters": [
                    {
                        "description": "Category details",
                        "name": "category",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateCategoryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.CategoryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Create a category",
                "tags": [
                    "categories"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/categories/{categoryID}": {
            "get": {
                "parameters": [
                    {
                        "description": "Category ID",
                        "name": "categoryID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CategoryResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Get a category",
                "tags": [
                    "categories"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "parameters": [
                    {
                        "description": "Category ID",
                        "name": "categoryID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "category",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateCategoryRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CategoryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Update a category",
                "tags": [
                    "categories"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "parameters": [
                    {
                        "description": "Category ID",
                        "name": "categoryID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Expected version",
                        "name": "version",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Delete a category",
                "description": "Transactions keep their category ID and are reported under \"Other\".",
                "tags": [
                    "categories"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/custom-fields": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListCustomFieldsResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "List custom fields",
                "tags": [
                    "custom-fields"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "parameters": [
                    {
                        "description": "Field definition",
                        "name": "field",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateCustomFieldRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.CustomFieldResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Field key already used",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Define a custom field",
                "description": "Adds an attribute to income and expense transactions. Select types need options.",
                "tags": [
                    "custom-fields"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/custom-fields/{fieldID}": {
            "get": {
                "parameters": [
                    {
                        "description": "Field ID",
                        "name": "fieldID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CustomFieldResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Get a custom field",
                "tags": [
                    "custom-fields"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "parameters": [
                    {
                        "description": "Field ID",
                        "name": "fieldID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "field",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateCustomFieldRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CustomFieldResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Update a custom field",
                "description": "The key and type of a field never change.",
                "tags": [
                    "custom-fields"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "parameters": [
                    {
                        "description": "Field ID",
                        "name": "fieldID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Expected version",
                        "name": "version",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Delete a custom field",
                "tags": [
                    "custom-fields"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/exports/finance": {
            "post": {
                "parameters": [
                    {
                        "description": "Export range and filter",
                        "name": "export",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.FinanceExportRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.ExportResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown wallet",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Export the ledger to a spreadsheet",
                "description": "Writes README, GIAO_DICH, THEO_DANH_MUC and optionally NHAT_KY sheets for an inclusive date range.",
                "tags": [
                    "exports"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/exports/journal": {
            "post": {
                "parameters": [
                    {
                        "description": "Export range",
                        "name": "export",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.JournalExportRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.ExportResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Export the feed journal to a spreadsheet",
                "tags": [
                    "exports"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/feed-journals": {
            "get": {
                "parameters": [
                    {
                        "description": "First day (YYYY-MM-DD)",
                        "name": "from",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Last day (YYYY-MM-DD)",
                        "name": "to",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Only entries carrying this tag",
                        "name": "tag",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Page size",
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "default": 30
                    },
                    {
                        "description": "Token from the previous page",
                        "name": "nextToken",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListFeedJournalsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "List feed journal entries",
                "tags": [
                    "feed-journals"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "parameters": [
                    {
                        "description": "Journal entry",
                        "name": "entry",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateFeedJournalRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.FeedJournalResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Add a feed journal entry",
                "tags": [
                    "feed-journals"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/feed-journals/{journalID}": {
            "get": {
                "parameters": [
                    {
                        "description": "Journal entry ID",
                        "name": "journalID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.FeedJournalResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Get a feed journal entry",
                "tags": [
                    "feed-journals"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "parameters": [
                    {
                        "description": "Journal entry ID",
                        "name": "journalID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Delete a feed journal entry",
                "tags": [
                    "feed-journals"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/reports/balances": {
            "get": {
                "parameters": [
                    {
                        "description": "Include inactive wallets",
                        "name": "includeInactive",
                        "in": "query",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BalancesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Current wallet balances",
                "description": "Opening balance plus every visible transaction touching each wallet.",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/reports/range-balances": {
            "get": {
                "parameters": [
                    {
                        "description": "First day (YYYY-MM-DD)",
                        "name": "from",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Last day (YYYY-MM-DD)",
                        "name": "to",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.RangeBalancesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Wallet balances over a range",
                "description": "Opening, inflow, outflow and closing per wallet for an inclusive date range.",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/reports/summary": {
            "get": {
                "parameters": [
                    {
                        "description": "First day (YYYY-MM-DD)",
                        "name": "from",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Last day (YYYY-MM-DD)",
                        "name": "to",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SummaryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Income and expense summary",
                "description": "Totals, profit and the per-category breakdown. Transfers are excluded.",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/reports/cashflow": {
            "get": {
                "parameters": [
                    {
                        "description": "First day (YYYY-MM-DD)",
                        "name": "from",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Last day (YYYY-MM-DD)",
                        "name": "to",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CashflowResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Daily cashflow",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/reports/overview": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Overview"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Dashboard overview",
                "description": "Summary, top expense categories, total balance and transaction count of the last 30 days.",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/transactions": {
            "get": {
                "parameters": [
                    {
                        "description": "First day (YYYY-MM-DD)",
                        "name": "from",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Last day (YYYY-MM-DD)",
                        "name": "to",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Source or destination wallet",
                        "name": "walletID",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "INCOME, EXPENSE or TRANSFER",
                        "name": "flow",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Include soft-deleted rows",
                        "name": "includeDeleted",
                        "in": "query",
                        "type": "boolean"
                    },
                    {
                        "description": "Page size",
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "default": 50
                    },
                    {
                        "description": "Token from the previous page",
                        "name": "nextToken",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListTransactionsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "List transactions",
                "description": "Lists transactions newest first (txn_date, then creation time).",
                "tags": [
                    "transactions"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "parameters": [
                    {
                        "description": "Transaction",
                        "name": "transaction",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateTransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.TransactionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Record a transaction",
                "description": "Records income, expense or a transfer between two wallets. Amounts are whole đồng.",
                "tags": [
                    "transactions"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/transactions/{transactionID}": {
            "get": {
                "parameters": [
                    {
                        "description": "Transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TransactionResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Get a transaction",
                "tags": [
                    "transactions"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "parameters": [
                    {
                        "description": "Transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Transaction",
                        "name": "transaction",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateTransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TransactionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Replace a transaction",
                "description": "Replaces the editable fields. Deleted transactions must be restored first.",
                "tags": [
                    "transactions"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "parameters": [
                    {
                        "description": "Transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Expected version",
                        "name": "version",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Delete a transaction",
                "description": "Soft-deletes the transaction; it no longer counts in any balance or report.",
                "tags": [
                    "transactions"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/transactions/{transactionID}/restore": {
            "post": {
                "parameters": [
                    {
                        "description": "Transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Expected version",
                        "name": "version",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TransactionResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Not deleted, or version mismatch",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Restore a deleted transaction",
                "description": "Undoes a soft delete and records an UNDO audit entry.",
                "tags": [
                    "transactions"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/me": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.UserResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Current user",
                "description": "Returns the logged-in user and the owner whose data it sees.",
                "tags": [
                    "users"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/viewers": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListUsersResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "List viewers",
                "description": "Lists the read-only users bound to the caller's data.",
                "tags": [
                    "users"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "parameters": [
                    {
                        "description": "Viewer details",
                        "name": "viewer",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateViewerRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email already registered",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Create a viewer",
                "description": "Creates a read-only login that sees the caller's data. Editors only.",
                "tags": [
                    "users"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/wallets": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListWalletsResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "List wallets",
                "tags": [
                    "wallets"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "parameters": [
                    {
                        "description": "Wallet details",
                        "name": "wallet",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateWalletRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.WalletResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Create a wallet",
                "description": "Creates a cash or bank wallet with an opening balance in whole đồng.",
                "tags": [
                    "wallets"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/wallets/{walletID}": {
            "get": {
                "parameters": [
                    {
                        "description": "Wallet ID",
                        "name": "walletID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.WalletResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Get a wallet",
                "tags": [
                    "wallets"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "parameters": [
                    {
                        "description": "Wallet ID",
                        "name": "walletID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "wallet",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateWalletRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.WalletResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Update a wallet",
                "description": "Applies the provided fields. A version that no longer matches returns 409.",
                "tags": [
                    "wallets"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "parameters": [
                    {
                        "description": "Wallet ID",
                        "name": "walletID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Expected version",
                        "name": "version",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Delete a wallet",
                "description": "Transactions that reference the wallet are kept.",
                "tags": [
                    "wallets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "dto.ListAuditLogsResponse": {
            "type": "object",
            "properties": {
                "auditLogs": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.AuditLog"
                    }
                },
                "nextToken": {
                    "type": "string"
                }
            }
        },
        "domain.AuditLog": {
            "type": "object",
            "properties": {
                "auditID": {
                    "type": "string"
                },
                "ownerID": {
                    "type": "string"
                },
                "actor": {
                    "type": "string"
                },
                "action": {
                    "$ref": "#/definitions/domain.AuditAction"
                },
                "entity": {
                    "$ref": "#/definitions/domain.AuditEntity"
                },
                "entityID": {
                    "type": "string",
                    "description": "Null for bulk events such as exports"
                },
                "beforeData": {
                    "type": "object",
                    "description": "Null for CREATE"
                },
                "afterData": {
                    "type": "object",
                    "description": "Null for hard DELETE"
                },
                "createdAt": {
                    "type": "string"
                }
            }
        },
        "domain.AuditAction": {
            "type": "string",
            "enum": [
                "CREATE",
                "UPDATE",
                "DELETE",
                "UNDO",
                "EXPORT"
            ],
            "x-enum-varnames": [
                "ActionCreate",
                "ActionUpdate",
                "ActionDelete",
                "ActionUndo",
                "ActionExport"
            ]
        },
        "domain.AuditEntity": {
            "type": "string",
            "enum": [
                "TRANSACTION",
                "WALLET",
                "CATEGORY",
                "CUSTOM_FIELD",
                "FEED_JOURNAL",
                "EXPORT_FINANCE",
                "EXPORT_JOURNAL"
            ],
            "x-enum-varnames": [
                "EntityTransaction",
                "EntityWallet",
                "EntityCategory",
                "EntityCustomField",
                "EntityFeedJournal",
                "EntityExportFinance",
                "EntityExportJournal"
            ]
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "dto.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "fullName": {
                    "type": "string"
                }
            },
            "required": [
                "email",
                "password"
            ]
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "userID": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "fullName": {
                    "type": "string"
                },
                "role": {
                    "$ref": "#/definitions/domain.UserRole"
                },
                "ownerID": {
                    "type": "string"
                }
            }
        },
        "domain.UserRole": {
            "type": "string",
            "enum": [
                "EDITOR",
                "VIEWER"
            ],
            "x-enum-varnames": [
                "RoleEditor",
                "RoleViewer"
            ]
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "email",
                "password"
            ]
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "expiresAt": {
                    "type": "string"
                },
                "refreshToken": {
                    "type": "string"
                },
                "refreshTokenExpiresAt": {
                    "type": "string"
                },
                "user": {
                    "$ref": "#/definitions/dto.UserResponse"
                }
            }
        },
        "dto.RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "userID": {
                    "type": "string"
                },
                "refreshToken": {
                    "type": "string"
                }
            },
            "required": [
                "refreshToken",
                "userID"
            ]
        },
        "dto.RefreshTokenResponse": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "expiresAt": {
                    "type": "string"
                },
                "refreshToken": {
                    "type": "string"
                },
                "refreshTokenExpiresAt": {
                    "type": "string"
                }
            }
        },
        "dto.ListCategoriesResponse": {
            "type": "object",
            "properties": {
                "categories": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.CategoryResponse"
                    }
                }
            }
        },
        "dto.CategoryResponse": {
            "type": "object",
            "properties": {
                "categoryID": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "flow": {
                    "$ref": "#/definitions/domain.Flow"
                },
                "parentID": {
                    "type": "string"
                },
                "sortOrder": {
                    "type": "integer"
                },
                "isActive": {
                    "type": "boolean"
                },
                "version": {
                    "type": "integer"
                }
            }
        },
        "domain.Flow": {
            "type": "string",
            "enum": [
                "INCOME",
                "EXPENSE",
                "TRANSFER"
            ],
            "x-enum-varnames": [
                "FlowIncome",
                "FlowExpense",
                "FlowTransfer"
            ]
        },
        "dto.CreateCategoryRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "flow": {
                    "$ref": "#/definitions/domain.Flow"
                },
                "parentID": {
                    "type": "string"
                },
                "sortOrder": {
                    "type": "integer"
                }
            },
            "required": [
                "flow",
                "name"
            ]
        },
        "dto.UpdateCategoryRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "sortOrder": {
                    "type": "integer"
                },
                "isActive": {
                    "type": "boolean"
                },
                "version": {
                    "type": "integer"
                }
            }
        },
        "dto.ListCustomFieldsResponse": {
            "type": "object",
            "properties": {
                "customFields": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.CustomFieldResponse"
                    }
                }
            }
        },
        "dto.CustomFieldResponse": {
            "type": "object",
            "properties": {
                "fieldID": {
                    "type": "string"
                },
                "fieldKey": {
                    "type": "string"
                },
                "fieldName": {
                    "type": "string"
                },
                "fieldType": {
                    "$ref": "#/definitions/domain.CustomFieldType"
                },
                "options": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "isActive": {
                    "type": "boolean"
                },
                "sortOrder": {
                    "type": "integer"
                },
                "version": {
                    "type": "integer"
                }
            }
        },
        "domain.CustomFieldType": {
            "type": "string",
            "enum": [
                "text",
                "number",
                "date",
                "single_select",
                "multi_select"
            ],
            "x-enum-varnames": [
                "FieldText",
                "FieldNumber",
                "FieldDate",
                "FieldSingleSelect",
                "FieldMultiSelect"
            ]
        },
        "dto.CreateCustomFieldRequest": {
            "type": "object",
            "properties": {
                "fieldKey": {
                    "type": "string"
                },
                "fieldName": {
                    "type": "string"
                },
                "fieldType": {
                    "$ref": "#/definitions/domain.CustomFieldType"
                },
                "options": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "description": "Required for select types"
                },
                "sortOrder": {
                    "type": "integer"
                }
            },
            "required": [
                "fieldKey",
                "fieldName",
                "fieldType"
            ]
        },
        "dto.UpdateCustomFieldRequest": {
            "type": "object",
            "properties": {
                "fieldName": {
                    "type": "string"
                },
                "options": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "description": "Replaces the options when non-nil"
                },
                "sortOrder": {
                    "type": "integer"
                },
                "isActive": {
                    "type": "boolean"
                },
                "version": {
                    "type": "integer"
                }
            }
        },
        "dto.FinanceExportRequest": {
            "type": "object",
            "properties": {
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "walletID": {
                    "type": "string",
                    "description": "Matches source or destination wallet"
                },
                "includeAuditLog": {
                    "type": "boolean",
                    "description": "Adds the NHAT_KY sheet"
                }
            },
            "required": [
                "from",
                "to"
            ]
        },
        "dto.ExportResponse": {
            "type": "object",
            "properties": {
                "fileName": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "rowCount": {
                    "type": "integer"
                },
                "sheets": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.SheetSummary"
                    }
                },
                "auditID": {
                    "type": "string"
                }
            }
        },
        "dto.SheetSummary": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "rows": {
                    "type": "integer"
                }
            }
        },
        "dto.JournalExportRequest": {
            "type": "object",
            "properties": {
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                }
            },
            "required": [
                "from",
                "to"
            ]
        },
        "dto.ListFeedJournalsResponse": {
            "type": "object",
            "properties": {
                "feedJournals": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.FeedJournalResponse"
                    }
                },
                "nextToken": {
                    "type": "string"
                }
            }
        },
        "dto.FeedJournalResponse": {
            "type": "object",
            "properties": {
                "journalID": {
                    "type": "string"
                },
                "journalDate": {
                    "type": "string"
                },
                "imageURL": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                }
            }
        },
        "dto.CreateFeedJournalRequest": {
            "type": "object",
            "properties": {
                "journalDate": {
                    "type": "string"
                },
                "imageURL": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            },
            "required": [
                "journalDate"
            ]
        },
        "dto.BalancesResponse": {
            "type": "object",
            "properties": {
                "wallets": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.WalletBalance"
                    }
                },
                "total": {
                    "type": "string",
                    "example": "0"
                }
            }
        },
        "domain.WalletBalance": {
            "type": "object",
            "properties": {
                "walletID": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "type": {
                    "$ref": "#/definitions/domain.WalletType"
                },
                "isActive": {
                    "type": "boolean"
                },
                "openingBalance": {
                    "type": "string",
                    "example": "0"
                },
                "balance": {
                    "type": "string",
                    "example": "0"
                }
            }
        },
        "domain.WalletType": {
            "type": "string",
            "enum": [
                "CASH",
                "BANK"
            ],
            "x-enum-varnames": [
                "WalletCash",
                "WalletBank"
            ]
        },
        "dto.RangeBalancesResponse": {
            "type": "object",
            "properties": {
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "wallets": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.RangeBalance"
                    }
                }
            }
        },
        "domain.RangeBalance": {
            "type": "object",
            "properties": {
                "walletID": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "opening": {
                    "type": "string",
                    "example": "0"
                },
                "inflow": {
                    "type": "string",
                    "example": "0"
                },
                "outflow": {
                    "type": "string",
                    "example": "0"
                },
                "closing": {
                    "type": "string",
                    "example": "0"
                }
            }
        },
        "dto.SummaryResponse": {
            "type": "object",
            "properties": {
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "income": {
                    "type": "string",
                    "example": "0"
                },
                "expense": {
                    "type": "string",
                    "example": "0"
                },
                "profit": {
                    "type": "string",
                    "example": "0"
                },
                "breakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.CategoryTotal"
                    }
                }
            }
        },
        "domain.CategoryTotal": {
            "type": "object",
            "properties": {
                "flow": {
                    "$ref": "#/definitions/domain.Flow"
                },
                "categoryID": {
                    "type": "string"
                },
                "categoryName": {
                    "type": "string"
                },
                "total": {
                    "type": "string",
                    "example": "0"
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "dto.CashflowResponse": {
            "type": "object",
            "properties": {
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "days": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.DailyCashflow"
                    }
                }
            }
        },
        "domain.DailyCashflow": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "cashIn": {
                    "type": "string",
                    "example": "0"
                },
                "cashOut": {
                    "type": "string",
                    "example": "0"
                },
                "net": {
                    "type": "string",
                    "example": "0"
                }
            }
        },
        "domain.Overview": {
            "type": "object",
            "properties": {
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "summary": {
                    "$ref": "#/definitions/domain.Summary"
                },
                "topExpenses": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.CategoryTotal"
                    }
                },
                "totalBalance": {
                    "type": "string",
                    "example": "0"
                },
                "transactionCount": {
                    "type": "integer"
                }
            }
        },
        "domain.Summary": {
            "type": "object",
            "properties": {
                "income": {
                    "type": "string",
                    "example": "0"
                },
                "expense": {
                    "type": "string",
                    "example": "0"
                },
                "profit": {
                    "type": "string",
                    "example": "0"
                },
                "breakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.CategoryTotal"
                    }
                }
            }
        },
        "dto.ListTransactionsResponse": {
            "type": "object",
            "properties": {
                "transactions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.TransactionResponse"
                    }
                },
                "nextToken": {
                    "type": "string"
                }
            }
        },
        "dto.TransactionResponse": {
            "type": "object",
            "properties": {
                "transactionID": {
                    "type": "string"
                },
                "txnDate": {
                    "type": "string"
                },
                "flow": {
                    "$ref": "#/definitions/domain.Flow"
                },
                "amount": {
                    "type": "string",
                    "example": "0"
                },
                "walletID": {
                    "type": "string"
                },
                "toWalletID": {
                    "type": "string"
                },
                "categoryID": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                },
                "customFields": {
                    "type": "object",
                    "additionalProperties": {}
                },
                "isDeleted": {
                    "type": "boolean"
                },
                "version": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string"
                },
                "lastUpdatedBy": {
                    "type": "string"
                }
            }
        },
        "dto.CreateTransactionRequest": {
            "type": "object",
            "properties": {
                "txnDate": {
                    "type": "string"
                },
                "flow": {
                    "$ref": "#/definitions/domain.Flow"
                },
                "amount": {
                    "type": "string",
                    "example": "0"
                },
                "walletID": {
                    "type": "string"
                },
                "toWalletID": {
                    "type": "string",
                    "description": "TRANSFER only"
                },
                "categoryID": {
                    "type": "string",
                    "description": "INCOME/EXPENSE only"
                },
                "note": {
                    "type": "string"
                },
                "customFields": {
                    "type": "object",
                    "additionalProperties": {}
                }
            },
            "required": [
                "flow",
                "txnDate",
                "walletID"
            ]
        },
        "dto.UpdateTransactionRequest": {
            "type": "object",
            "properties": {
                "txnDate": {
                    "type": "string"
                },
                "flow": {
                    "$ref": "#/definitions/domain.Flow"
                },
                "amount": {
                    "type": "string",
                    "example": "0"
                },
                "walletID": {
                    "type": "string"
                },
                "toWalletID": {
                    "type": "string",
                    "description": "TRANSFER only"
                },
                "categoryID": {
                    "type": "string",
                    "description": "INCOME/EXPENSE only"
                },
                "note": {
                    "type": "string"
                },
                "customFields": {
                    "type": "object",
                    "additionalProperties": {}
                },
                "version": {
                    "type": "integer",
                    "description": "Expected version; omit for last-write-wins"
                }
            },
            "required": [
                "flow",
                "txnDate",
                "walletID"
            ]
        },
        "dto.ListUsersResponse": {
            "type": "object",
            "properties": {
                "users": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.UserResponse"
                    }
                }
            }
        },
        "dto.CreateViewerRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "fullName": {
                    "type": "string"
                }
            },
            "required": [
                "email",
                "password"
            ]
        },
        "dto.ListWalletsResponse": {
            "type": "object",
            "properties": {
                "wallets": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.WalletResponse"
                    }
                }
            }
        },
        "dto.WalletResponse": {
            "type": "object",
            "properties": {
                "walletID": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "type": {
                    "$ref": "#/definitions/domain.WalletType"
                },
                "openingBalance": {
                    "type": "string",
                    "example": "0"
                },
                "isActive": {
                    "type": "boolean"
                },
                "version": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string"
                }
            }
        },
        "dto.CreateWalletRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "type": {
                    "$ref": "#/definitions/domain.WalletType"
                },
                "openingBalance": {
                    "type": "string",
                    "example": "0",
                    "description": "May be negative"
                }
            },
            "required": [
                "name",
                "type"
            ]
        },
        "dto.UpdateWalletRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "type": {
                    "$ref": "#/definitions/domain.WalletType"
                },
                "openingBalance": {
                    "type": "string",
                    "example": "0"
                },
                "isActive": {
                    "type": "boolean"
                },
                "version": {
                    "type": "integer",
                    "description": "Expected version; omit for last-write-wins"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [
        {
            "BearerAuth": []
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Farm Ledger API",
	Description:      "Cash book, reports and exports for a small fish farm.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
