package httpapi

import (
	"net/http"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/httpjson"
)

// handleOpenAPI décrit l'API de navigation (document minimal, écrit à la main).
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	jsonOK := func(schemaRef string) map[string]any {
		return map[string]any{
			"description": "OK",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}

	jsonErr := func(description string) map[string]any {
		return map[string]any{
			"description": description,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/Error"},
				},
			},
		}
	}

	navErrors := map[string]any{
		"400": jsonErr("Invalid parameters"),
		"502": jsonErr("Catalog returned an error (remote_error, network_error)"),
		"503": jsonErr("Navigation canceled"),
		"504": jsonErr("A catalog call timed out"),
	}

	withErrors := func(ok map[string]any, extra ...map[string]any) map[string]any {
		out := map[string]any{"200": ok}
		for k, v := range navErrors {
			out[k] = v
		}
		for _, e := range extra {
			for k, v := range e {
				out[k] = v
			}
		}
		return out
	}

	queryParam := func(name, description string, required bool) map[string]any {
		return map[string]any{
			"name":        name,
			"in":          "query",
			"required":    required,
			"description": description,
			"schema":      map[string]any{"type": "string"},
		}
	}

	navParams := []any{
		queryParam("token", "Navigation token; empty means root.", false),
		queryParam("locale", "Catalog locale (default en_US).", false),
		queryParam("region", "Region code (default US).", false),
		map[string]any{
			"name": "limit", "in": "query", "required": false,
			"schema": map[string]any{"type": "integer", "minimum": 1, "maximum": maxLimit},
		},
	}

	str := map[string]any{"type": "string"}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "tubebrowse API",
			"version": "v1",
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"OpenAPIDocument": map[string]any{
					"type":                 "object",
					"additionalProperties": true,
				},
				"Error": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"error": str,
						"code": map[string]any{
							"type": "string",
							"enum": []any{"timeout", "remote_error", "network_error", "canceled", "not_found", "internal"},
						},
					},
					"required": []any{"error"},
				},
				"Card": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": str, "id": str, "title": str, "art": str,
						"subtitle": str, "description": str, "link": str,
						"uri":              map[string]any{"type": "string", "description": "Video id to play."},
						"token":            map[string]any{"type": "string", "description": "Navigation token to drill down."},
						"favoritePlaylist": str, "watchLaterPlaylist": str,
					},
				},
				"Department": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"token":    str,
						"title":    str,
						"children": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Department"}},
					},
				},
				"Bucket": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":    str,
						"title": str,
						"cards": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Card"}},
					},
				},
				"ResultView": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"token":         str,
						"intent":        map[string]any{"type": "object", "additionalProperties": true},
						"header":        map[string]any{"type": "object", "additionalProperties": true},
						"popular":       map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Card"}},
						"buckets":       map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Bucket"}},
						"departments":   map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Department"}},
						"loginRequired": map[string]any{"type": "boolean"},
						"notice":        str,
						"totalResults":  map[string]any{"type": "integer"},
					},
				},
				"VideoView": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"video":       map[string]any{"$ref": "#/components/schemas/Card"},
						"channelId":   str,
						"publishedAt": str,
						"statistics":  map[string]any{"type": "object", "additionalProperties": true},
						"comments":    map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Card"}},
					},
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/health": map[string]any{
				"get": map[string]any{"summary": "Health check", "responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/version": map[string]any{
				"get": map[string]any{"summary": "Build info", "responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/openapi.json": map[string]any{
				"get": map[string]any{"summary": "This document", "responses": map[string]any{"200": jsonOK("#/components/schemas/OpenAPIDocument")}},
			},
			"/api/v1/events": map[string]any{
				"get": map[string]any{
					"summary": "Server-sent events: navigation.completed, navigation.failed",
					"responses": map[string]any{"200": map[string]any{
						"description": "SSE stream",
						"content":     map[string]any{"text/event-stream": map[string]any{}},
					}},
				},
			},
			"/api/v1/browse": map[string]any{
				"get": map[string]any{
					"summary":    "Resolve a navigation token",
					"parameters": navParams,
					"responses":  withErrors(jsonOK("#/components/schemas/ResultView")),
				},
			},
			"/api/v1/search": map[string]any{
				"get": map[string]any{
					"summary":    "Free-text search; ChannelId::<id> opens a channel",
					"parameters": append([]any{queryParam("q", "Search query.", true)}, navParams...),
					"responses":  withErrors(jsonOK("#/components/schemas/ResultView")),
				},
			},
			"/api/v1/videos/{id}": map[string]any{
				"get": map[string]any{
					"summary": "Video details and comment threads",
					"parameters": []any{map[string]any{
						"name": "id", "in": "path", "required": true, "schema": str,
					}},
					"responses": withErrors(jsonOK("#/components/schemas/VideoView"), map[string]any{"404": jsonErr("Unknown video")}),
				},
			},
		},
	}

	httpjson.Write(w, http.StatusOK, spec)
}
