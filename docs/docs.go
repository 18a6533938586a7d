// Package docs holds the swagger document served at /swagger.
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
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "system"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/lotteries": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "List lotteries",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.LotteryListResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "CallerSignature": []
                    }
                ],
                "description": "Creates an unconfigured lottery owned by the caller. Policy fields left empty use the server defaults.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "Create a lottery",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Caller address",
                        "name": "X-Caller",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Unix seconds covered by the signature",
                        "name": "X-Timestamp",
                        "in": "header"
                    },
                    {
                        "description": "Policy overrides",
                        "name": "input",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/models.CreateLotteryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/models.LotteryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lotteries/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "Get a lottery",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lottery ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.LotteryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lotteries/{id}/balances/{account}": {
            "get": {
                "description": "Returns the account's ledger balance: its deposits while live, its refund once cancelled, its share once ended.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "Get an account balance",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lottery ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Account address",
                        "name": "account",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.BalanceResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lotteries/{id}/start": {
            "post": {
                "security": [
                    {
                        "CallerSignature": []
                    }
                ],
                "description": "Owner only. Fixes the charity, the split, the entry price and the three deadlines, and opens the round.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "Start a lottery",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lottery ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Caller address",
                        "name": "X-Caller",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Unix seconds covered by the signature",
                        "name": "X-Timestamp",
                        "in": "header"
                    },
                    {
                        "description": "Round configuration",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.StartLotteryRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.LotteryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lotteries/{id}/seed": {
            "post": {
                "security": [
                    {
                        "CallerSignature": []
                    }
                ],
                "description": "Charity only, once, during the commit window.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "Seed the charity commitment",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lottery ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Caller address",
                        "name": "X-Caller",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Unix seconds covered by the signature",
                        "name": "X-Timestamp",
                        "in": "header"
                    },
                    {
                        "description": "keccak256(random ‖ charity)",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CommitmentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.LotteryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lotteries/{id}/participate": {
            "post": {
                "security": [
                    {
                        "CallerSignature": []
                    }
                ],
                "description": "Records the caller's commitment during the commit window. Requires the charity to have seeded.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "Participate",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lottery ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Caller address",
                        "name": "X-Caller",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Unix seconds covered by the signature",
                        "name": "X-Timestamp",
                        "in": "header"
                    },
                    {
                        "description": "keccak256(random ‖ caller)",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CommitmentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.LotteryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lotteries/{id}/reveal": {
            "post": {
                "security": [
                    {
                        "CallerSignature": []
                    }
                ],
                "description": "Discloses the caller's random value during the reveal window.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "Reveal",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lottery ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Caller address",
                        "name": "X-Caller",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Unix seconds covered by the signature",
                        "name": "X-Timestamp",
                        "in": "header"
                    },
                    {
                        "description": "Random value",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.RevealRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.LotteryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lotteries/{id}/end": {
            "post": {
                "security": [
                    {
                        "CallerSignature": []
                    }
                ],
                "description": "Discloses the charity's random value after the end time, selects the winner and splits the pot.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "End a lottery",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lottery ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Caller address",
                        "name": "X-Caller",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Unix seconds covered by the signature",
                        "name": "X-Timestamp",
                        "in": "header"
                    },
                    {
                        "description": "Charity random value",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.EndLotteryRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.LotteryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lotteries/{id}/cancel": {
            "post": {
                "security": [
                    {
                        "CallerSignature": []
                    }
                ],
                "description": "Owner or charity. Makes every deposit refundable.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "Cancel a lottery",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lottery ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Caller address",
                        "name": "X-Caller",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Unix seconds covered by the signature",
                        "name": "X-Timestamp",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.LotteryResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lotteries/{id}/deposit": {
            "post": {
                "security": [
                    {
                        "CallerSignature": []
                    }
                ],
                "description": "Payment relay only. Credits the payer named in the body. A payment id is credited once per lottery; repeats get 409.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "Record a deposit",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lottery ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Relay address",
                        "name": "X-Caller",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Unix seconds covered by the signature",
                        "name": "X-Timestamp",
                        "in": "header"
                    },
                    {
                        "description": "Payment id, payer and amount",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.DepositRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.LotteryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lotteries/{id}/withdraw": {
            "post": {
                "security": [
                    {
                        "CallerSignature": []
                    }
                ],
                "description": "Releases the caller's whole balance once the lottery is cancelled or ended.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lotteries"
                ],
                "summary": "Withdraw",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lottery ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Caller address",
                        "name": "X-Caller",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Unix seconds covered by the signature",
                        "name": "X-Timestamp",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.WithdrawResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "errors.AppError": {
            "type": "object",
            "properties": {
                "caller": {
                    "type": "string"
                },
                "code": {
                    "type": "string",
                    "example": "LOTTERY_PHASE"
                },
                "context": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "details": {
                    "type": "object",
                    "additionalProperties": true
                },
                "message": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "$ref": "#/definitions/errors.AppError"
                },
                "method": {
                    "type": "string"
                },
                "path": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                },
                "success": {
                    "type": "boolean"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "models.BalanceResponse": {
            "type": "object",
            "properties": {
                "account": {
                    "type": "string"
                },
                "balance": {
                    "type": "string"
                },
                "lottery_id": {
                    "type": "string"
                }
            }
        },
        "models.CommitmentRequest": {
            "type": "object",
            "required": [
                "hashed_random"
            ],
            "properties": {
                "hashed_random": {
                    "type": "string",
                    "example": "0x5f16f4c7f149ac4f9510d9cf8cf384038ad348b3bcdc01915f95de12df9d1b02"
                }
            }
        },
        "models.CreateLotteryRequest": {
            "type": "object",
            "properties": {
                "end_authority": {
                    "type": "string",
                    "example": "charity"
                },
                "no_revealers": {
                    "type": "string",
                    "example": "reject"
                }
            }
        },
        "models.DepositRequest": {
            "type": "object",
            "required": [
                "amount",
                "from",
                "payment_id"
            ],
            "properties": {
                "amount": {
                    "type": "string",
                    "example": "10000"
                },
                "from": {
                    "type": "string",
                    "example": "0x0000000000000000000000000000000000000101"
                },
                "payment_id": {
                    "type": "string",
                    "example": "0x9c1e5f0a7d3b2e64c4a1f8b7d2e3c5a6b7c8d9e0f1a2b3c4d5e6f708192a3b4c"
                }
            }
        },
        "models.EndLotteryRequest": {
            "type": "object",
            "required": [
                "charity_random"
            ],
            "properties": {
                "charity_random": {
                    "type": "string",
                    "example": "0x1234567890abcdef1234567890abcdef"
                }
            }
        },
        "models.LotteryListResponse": {
            "type": "object",
            "properties": {
                "lotteries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.LotteryResponse"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "models.LotteryResponse": {
            "type": "object",
            "properties": {
                "cancelled": {
                    "type": "boolean"
                },
                "charity": {
                    "type": "string"
                },
                "charity_seeded": {
                    "type": "boolean"
                },
                "charity_split": {
                    "type": "integer"
                },
                "end_time": {
                    "type": "integer"
                },
                "id": {
                    "type": "string"
                },
                "owner": {
                    "type": "string"
                },
                "owner_split": {
                    "type": "integer"
                },
                "phase": {
                    "type": "string"
                },
                "policy": {
                    "$ref": "#/definitions/models.PolicyResponse"
                },
                "pot": {
                    "type": "string"
                },
                "reveal_time": {
                    "type": "integer"
                },
                "revealers": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "start_time": {
                    "type": "integer"
                },
                "total_entries": {
                    "type": "integer"
                },
                "total_participants": {
                    "type": "integer"
                },
                "total_revealed": {
                    "type": "string"
                },
                "total_revealers": {
                    "type": "integer"
                },
                "value_per_entry": {
                    "type": "string"
                },
                "winner": {
                    "type": "string"
                },
                "winner_split": {
                    "type": "integer"
                }
            }
        },
        "models.PolicyResponse": {
            "type": "object",
            "properties": {
                "end_authority": {
                    "type": "string"
                },
                "no_revealers": {
                    "type": "string"
                }
            }
        },
        "models.RevealRequest": {
            "type": "object",
            "required": [
                "random"
            ],
            "properties": {
                "random": {
                    "type": "string",
                    "example": "4294967297"
                }
            }
        },
        "models.StartLotteryRequest": {
            "type": "object",
            "required": [
                "charity",
                "value_per_entry"
            ],
            "properties": {
                "charity": {
                    "type": "string",
                    "example": "0x00000000000000000000000000000000000000c1"
                },
                "charity_split": {
                    "type": "integer",
                    "example": 49
                },
                "end_time": {
                    "type": "integer",
                    "example": 1700000180
                },
                "owner_split": {
                    "type": "integer",
                    "example": 2
                },
                "reveal_time": {
                    "type": "integer",
                    "example": 1700000120
                },
                "start_time": {
                    "type": "integer",
                    "example": 1700000060
                },
                "value_per_entry": {
                    "type": "string",
                    "example": "1000"
                },
                "winner_split": {
                    "type": "integer",
                    "example": 49
                }
            }
        },
        "models.WithdrawResponse": {
            "type": "object",
            "properties": {
                "account": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                },
                "lottery_id": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "CallerSignature": {
            "description": "EIP-191 signature of \"METHOD\\nPATH\\nX-Timestamp\\nBODY\" by the X-Caller account",
            "type": "apiKey",
            "name": "X-Signature",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Charity Lottery API",
	Description:      "Commit-reveal charity lottery rounds",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
