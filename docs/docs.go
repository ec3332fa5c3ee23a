// Package docs регистрирует OpenAPI-описание сервиса для swagger UI на /docs/.
// Описание соответствует аннотациям обработчиков в internal/http/handlers.
package docs

import "github.com/swaggo/swag"

const doc = `{
    "swagger": "2.0",
    "info": {
        "title": "Readiness Entitlements API",
        "description": "Статус подписки и доступ к премиум-функциям.",
        "version": "1.0"
    },
    "basePath": "/api/v1",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/subscription/status": {
            "get": {
                "tags": ["Entitlements"],
                "summary": "Статус подписки текущего пользователя",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Статус подписки", "schema": {"$ref": "#/definitions/models.SubscriptionStatus"}},
                    "401": {"description": "Пользователь не авторизован", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Запрос отменён", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/subscription/access": {
            "get": {
                "tags": ["Entitlements"],
                "summary": "Решение о доступе к премиум-функциям",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Решение о доступе", "schema": {"$ref": "#/definitions/models.EntitlementDecision"}},
                    "401": {"description": "Пользователь не авторизован", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/premium/ping": {
            "get": {
                "tags": ["Premium"],
                "summary": "Пример премиум-маршрута",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Доступ открыт", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Пользователь не авторизован", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Нужна премиум-подписка", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/admin/entitlements/{userID}": {
            "get": {
                "tags": ["Admin"],
                "summary": "Статус подписки произвольного пользователя",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userID", "in": "path", "required": true, "description": "Идентификатор пользователя"}
                ],
                "responses": {
                    "200": {"description": "Статус подписки", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Некорректный идентификатор", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Нет роли admin", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Запрос отменён", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "models.SubscriptionStatus": {
            "type": "object",
            "properties": {
                "isVerified": {"type": "boolean"},
                "hasActiveSubscription": {"type": "boolean"},
                "tier": {"type": "string"},
                "subscriptionStatus": {"type": "string"},
                "subscriptionTier": {"type": "string", "x-nullable": true},
                "trialEndsAt": {"type": "string", "format": "date-time", "x-nullable": true}
            }
        },
        "models.EntitlementDecision": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["loading", "active", "trial", "free"]},
                "isActive": {"type": "boolean"},
                "tier": {"type": "string"},
                "isTrialUser": {"type": "boolean"},
                "daysLeftInTrial": {"type": "integer"},
                "canAccessPremiumFeatures": {"type": "boolean"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"},
                "data": {"type": "object"}
            }
        }
    }
}`

type spec struct{}

// ReadDoc возвращает OpenAPI-описание в JSON.
func (spec) ReadDoc() string {
	return doc
}

func init() {
	swag.Register(swag.Name, spec{})
}
