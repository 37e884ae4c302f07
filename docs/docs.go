// Package docs holds the OpenAPI document served at /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Elecciones Aragón"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Returns API name, version, status and the chamber being tracked.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "meta"
                ],
                "summary": "API root info",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns basic health status and timestamp.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/health/cache": {
            "get": {
                "description": "Returns response cache statistics for the current snapshot.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Cache health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/health/poller": {
            "get": {
                "description": "Reports whether a snapshot has been published and the outcome of the latest refresh. Unhealthy until the first successful load.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Poller health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/snapshot": {
            "get": {
                "description": "Returns every collection of the latest successful load.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "results"
                ],
                "summary": "Current snapshot",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/results.Snapshot"
                        }
                    },
                    "503": {
                        "description": "Not Ready",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/seats": {
            "get": {
                "description": "All parties with 2023 and 2025 seats, change and bloc, ordered by 2025 seats descending.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "results"
                ],
                "summary": "Seat results",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/results.PartySeatResult"
                            }
                        }
                    },
                    "503": {
                        "description": "Not Ready",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/seats/display": {
            "get": {
                "description": "Seat results without parties that hold no seats in either election.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "results"
                ],
                "summary": "Displayed seat results",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/results.PartySeatResult"
                            }
                        }
                    },
                    "503": {
                        "description": "Not Ready",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/votes": {
            "get": {
                "description": "Vote percentage per party, ordered descending.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "results"
                ],
                "summary": "Vote shares",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/results.PartyVoteShare"
                            }
                        }
                    },
                    "503": {
                        "description": "Not Ready",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/status": {
            "get": {
                "description": "Percentage of the vote counted and the formatted time of the last update.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "results"
                ],
                "summary": "Count status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/results.CountStatus"
                        }
                    },
                    "503": {
                        "description": "Not Ready",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/hemicycle": {
            "get": {
                "description": "Segment angles, label positions and SVG paths for the seat chart plus the majority marker.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "results"
                ],
                "summary": "Hemicycle layout",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/views.HemicycleLayout"
                        }
                    },
                    "503": {
                        "description": "Not Ready",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/municipalities": {
            "get": {
                "description": "Leading forces and map fill per municipality, sorted by province and name.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "municipalities"
                ],
                "summary": "Municipalities",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/views.MunicipalityMeta"
                            }
                        }
                    },
                    "503": {
                        "description": "Not Ready",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Province name",
                        "name": "province",
                        "in": "query"
                    }
                ]
            }
        },
        "/municipalities/{province}/{name}": {
            "get": {
                "description": "Leading forces and map fill for one municipality, ignoring case and accents.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "municipalities"
                ],
                "summary": "Municipality",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/views.MunicipalityMeta"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Not Ready",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Province name",
                        "name": "province",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Municipality name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/turnout": {
            "get": {
                "description": "Turnout per territory in source order.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "turnout"
                ],
                "summary": "Turnout records",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/results.TurnoutRecord"
                            }
                        }
                    },
                    "503": {
                        "description": "Not Ready",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/participation": {
            "get": {
                "description": "Turnout for Aragón and its three provinces compared with 2023.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "turnout"
                ],
                "summary": "Participation panel",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/views.ParticipationRow"
                            }
                        }
                    },
                    "503": {
                        "description": "Not Ready",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/refresh": {
            "post": {
                "description": "Signals the poller that a client became visible or focused, or that a manual refresh was requested.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "results"
                ],
                "summary": "Request a refresh",
                "responses": {
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "enum": [
                            "visibility",
                            "focus",
                            "manual"
                        ],
                        "type": "string",
                        "default": "manual",
                        "description": "Refresh trigger",
                        "name": "trigger",
                        "in": "query"
                    }
                ]
            }
        }
    },
    "definitions": {
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {
                            "type": "string"
                        },
                        "message": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "results.PartySeatResult": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string"
                },
                "escanos2023": {
                    "type": "integer"
                },
                "escanos2025": {
                    "type": "integer"
                },
                "cambio": {
                    "type": "integer"
                },
                "lado": {
                    "type": "integer",
                    "enum": [
                        0,
                        1,
                        2
                    ]
                },
                "color": {
                    "type": "string"
                }
            }
        },
        "results.PartyVoteShare": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string"
                },
                "porcentaje": {
                    "type": "number"
                },
                "color": {
                    "type": "string"
                }
            }
        },
        "results.CountStatus": {
            "type": "object",
            "properties": {
                "escrutinio": {
                    "type": "number"
                },
                "lastUpdate": {
                    "type": "string"
                }
            }
        },
        "results.TurnoutRecord": {
            "type": "object",
            "properties": {
                "hora_minuto": {
                    "type": "string"
                },
                "ambito": {
                    "type": "string",
                    "enum": [
                        "Comunidad",
                        "Provincia"
                    ]
                },
                "nombre_ambito": {
                    "type": "string"
                },
                "mesas_totales": {
                    "type": "integer"
                },
                "censo_total": {
                    "type": "integer"
                },
                "participacion": {
                    "type": "number"
                }
            }
        },
        "results.Snapshot": {
            "type": "object",
            "properties": {
                "load_id": {
                    "type": "integer"
                },
                "fetched_at": {
                    "type": "string"
                },
                "partidos": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/results.PartySeatResult"
                    }
                },
                "votos": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/results.PartyVoteShare"
                    }
                },
                "estado": {
                    "$ref": "#/definitions/results.CountStatus"
                },
                "municipios": {
                    "type": "object",
                    "additionalProperties": true
                },
                "participacion": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/results.TurnoutRecord"
                    }
                }
            }
        },
        "results.Force": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string"
                },
                "porcentaje": {
                    "type": "string"
                }
            }
        },
        "views.MunicipalityMeta": {
            "type": "object",
            "properties": {
                "nombre_municipio": {
                    "type": "string"
                },
                "PROVINCIA": {
                    "type": "string"
                },
                "found": {
                    "type": "boolean"
                },
                "fuerzas": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/results.Force"
                    }
                },
                "fill": {
                    "type": "string"
                }
            }
        },
        "views.Point": {
            "type": "object",
            "properties": {
                "x": {
                    "type": "number"
                },
                "y": {
                    "type": "number"
                }
            }
        },
        "views.Segment": {
            "type": "object",
            "properties": {
                "party": {
                    "$ref": "#/definitions/results.PartySeatResult"
                },
                "start_angle": {
                    "type": "number"
                },
                "end_angle": {
                    "type": "number"
                },
                "mid_angle": {
                    "type": "number"
                },
                "label": {
                    "$ref": "#/definitions/views.Point"
                },
                "show_label": {
                    "type": "boolean"
                },
                "path": {
                    "type": "string"
                }
            }
        },
        "views.Line": {
            "type": "object",
            "properties": {
                "angle": {
                    "type": "number"
                },
                "from": {
                    "$ref": "#/definitions/views.Point"
                },
                "to": {
                    "$ref": "#/definitions/views.Point"
                }
            }
        },
        "views.HemicycleLayout": {
            "type": "object",
            "properties": {
                "total_seats": {
                    "type": "integer"
                },
                "majority": {
                    "type": "integer"
                },
                "allocated_seats": {
                    "type": "integer"
                },
                "segments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/views.Segment"
                    }
                },
                "majority_line": {
                    "$ref": "#/definitions/views.Line"
                }
            }
        },
        "views.ParticipationRow": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string"
                },
                "is_main": {
                    "type": "boolean"
                },
                "found": {
                    "type": "boolean"
                },
                "porcentaje": {
                    "type": "number"
                },
                "porcentaje2023": {
                    "type": "number"
                },
                "diferencia": {
                    "type": "number"
                },
                "censo": {
                    "type": "integer"
                },
                "mesas": {
                    "type": "integer"
                },
                "hora_minuto": {
                    "type": "string"
                },
                "porcentaje_fmt": {
                    "type": "string"
                },
                "porcentaje2023_fmt": {
                    "type": "string"
                },
                "censo_fmt": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Elecciones Aragón API",
	Description:      "Live results of the Aragón regional election: seats, vote shares, count progress, turnout and per-municipality leaders, refreshed from the published spreadsheets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
