// Package docs registers the OpenAPI document served by gin-swagger.
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
        "/api/wallet-data": {
            "post": {
                "description": "Balance, enriched tokens, recent transfers and either token price history or a synthesized portfolio curve.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Wallet snapshot",
                "parameters": [
                    {
                        "description": "Wallet and optional token",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/restapi.WalletDataRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.WalletSnapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/restapi.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/restapi.ErrorResponse"}}
                }
            }
        },
        "/api/solana-price": {
            "get": {
                "description": "Spot price and 24h change from the first healthy price source. Never fails.",
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "SOL/USD price",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.NativePrice"}}
                }
            }
        },
        "/api/solana-supply": {
            "get": {
                "description": "Total, circulating and non-circulating supply in lamports.",
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "SOL supply",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.Supply"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/restapi.ErrorResponse"}}
                }
            }
        },
        "/api/chat": {
            "post": {
                "description": "One advisor turn. Prior messages and the dashboard's wallet snapshot are sent as context.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Portfolio advisor",
                "parameters": [
                    {
                        "description": "Conversation and wallet context",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/restapi.ChatRequestBody"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/restapi.ChatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/restapi.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/restapi.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/restapi.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entity.ChatMessage": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "entity.ChatToken": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "symbol": {"type": "string"},
                "amount": {"type": "string"},
                "usdValue": {"type": "string"}
            }
        },
        "entity.ChatTransaction": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "amount": {"type": "string"},
                "symbol": {"type": "string"},
                "blockTime": {"type": "integer"}
            }
        },
        "entity.ChatWalletData": {
            "type": "object",
            "properties": {
                "balance": {"type": "string"},
                "solPrice": {"type": "number"},
                "tokens": {"type": "array", "items": {"$ref": "#/definitions/entity.ChatToken"}},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/entity.ChatTransaction"}}
            }
        },
        "entity.HistoricalPrice": {
            "type": "object",
            "properties": {
                "date": {"type": "integer", "description": "epoch milliseconds"},
                "price": {"type": "number"}
            }
        },
        "entity.NativePrice": {
            "type": "object",
            "properties": {
                "price": {"type": "number", "example": 142.5},
                "change24h": {"type": "number", "example": -3.25}
            }
        },
        "entity.PortfolioPoint": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2024-03-31"},
                "value": {"type": "number"}
            }
        },
        "entity.Supply": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "circulating": {"type": "integer"},
                "nonCirculating": {"type": "integer"}
            }
        },
        "entity.TokenHolding": {
            "type": "object",
            "properties": {
                "associatedTokenAddress": {"type": "string"},
                "mint": {"type": "string"},
                "amountRaw": {"type": "string"},
                "amount": {"type": "string"},
                "name": {"type": "string"},
                "symbol": {"type": "string"},
                "decimals": {"type": "integer"},
                "tokenPrice": {"type": "string", "example": "1.0000"},
                "usdValue": {"type": "string", "example": "12.50"},
                "solValue": {"type": "string", "example": "0.0880"},
                "logoUrl": {"type": "string"},
                "website": {"type": "string"},
                "isVerifiedContract": {"type": "boolean"},
                "possibleSpam": {"type": "boolean"}
            }
        },
        "entity.WalletSnapshot": {
            "type": "object",
            "properties": {
                "balance": {"type": "string", "example": "1.5"},
                "solPrice": {"type": "number"},
                "tokens": {"type": "array", "items": {"$ref": "#/definitions/entity.TokenHolding"}},
                "transactions": {"type": "array", "items": {"type": "object"}},
                "historicalPrices": {"type": "array", "items": {"$ref": "#/definitions/entity.HistoricalPrice"}},
                "portfolioHistory": {"type": "array", "items": {"$ref": "#/definitions/entity.PortfolioPoint"}},
                "totalValue": {"type": "number"}
            }
        },
        "restapi.ChatRequestBody": {
            "type": "object",
            "properties": {
                "messages": {"type": "array", "items": {"$ref": "#/definitions/entity.ChatMessage"}},
                "walletData": {"$ref": "#/definitions/entity.ChatWalletData"},
                "walletAddress": {"type": "string"}
            }
        },
        "restapi.ChatResponse": {
            "type": "object",
            "properties": {
                "message": {"$ref": "#/definitions/entity.ChatMessage"}
            }
        },
        "restapi.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Failed to fetch wallet data"}
            }
        },
        "restapi.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "restapi.WalletDataRequest": {
            "type": "object",
            "properties": {
                "walletAddress": {"type": "string", "example": "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"},
                "tokenAddress": {"type": "string", "example": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Solana Analyst API",
	Description:      "Wallet snapshots, SOL market data and the portfolio advisor behind the analyst dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
