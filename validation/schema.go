// Copyright (C) 2025 Mono Technologies Inc.
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

package validation

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

// DocumentSchema is the structural JSON Schema for config.json. Every section
// is optional so older documents are accepted and upgraded by addition.
const DocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "definitions": {
    "action": {
      "type": "string",
      "enum": ["", "none", "start-process", "stop-process", "toggle-hotkeys",
               "enter-game-mode", "exit-game-mode", "pause-wallpaper", "play-wallpaper",
               "start-vtube-studio", "stop-vtube-studio",
               "set-discord-gaming-mode", "restore-discord-normal"]
    },
    "order": { "type": "array", "items": { "type": "string" } },
    "stringList": { "type": "array", "items": { "type": "string" } },
    "websocket": {
      "type": "object",
      "properties": {
        "host": { "type": "string" },
        "port": { "type": "integer", "minimum": 1, "maximum": 65535 },
        "password": { "type": "string" },
        "enabled": { "type": "boolean" }
      }
    },
    "game": {
      "type": "object",
      "required": ["platform"],
      "properties": {
        "name": { "type": "string" },
        "platform": { "type": "string", "enum": ["steam", "epic", "ea", "riot", "direct"] },
        "steamAppId": { "type": "string" },
        "epicGameId": { "type": "string" },
        "riotGameId": { "type": "string" },
        "executablePath": { "type": "string" },
        "processName": { "type": "string" },
        "comment": { "type": "string" },
        "appsToManage": { "$ref": "#/definitions/stringList" },
        "integrations": {
          "type": "object",
          "properties": {
            "useOBS": { "type": "boolean" },
            "useDiscord": { "type": "boolean" },
            "useVTubeStudio": { "type": "boolean" },
            "obsSettings": { "type": "object" },
            "vtubeStudioSettings": {
              "type": "object",
              "properties": {
                "modelId": { "type": "string" },
                "onLaunchHotkeys": { "$ref": "#/definitions/stringList" },
                "onExitHotkeys": { "$ref": "#/definitions/stringList" }
              }
            }
          }
        }
      }
    },
    "app": {
      "type": "object",
      "properties": {
        "name": { "type": "string" },
        "path": { "type": "string" },
        "workingDirectory": { "type": "string" },
        "processName": {
          "oneOf": [ { "type": "string" }, { "$ref": "#/definitions/stringList" } ]
        },
        "arguments": { "type": "string" },
        "gameStartAction": { "$ref": "#/definitions/action" },
        "gameEndAction": { "$ref": "#/definitions/action" },
        "terminationMethod": { "type": "string", "enum": ["", "auto", "graceful", "force"] },
        "gracefulTimeoutMs": { "type": "integer", "minimum": 0 }
      }
    }
  },
  "properties": {
    "language": { "type": "string" },
    "games": {
      "type": "object",
      "properties": { "_order": { "$ref": "#/definitions/order" } },
      "patternProperties": { "^[^_]": { "$ref": "#/definitions/game" } }
    },
    "managedApps": {
      "type": "object",
      "properties": { "_order": { "$ref": "#/definitions/order" } },
      "patternProperties": { "^[^_]": { "$ref": "#/definitions/app" } }
    },
    "integrations": {
      "type": "object",
      "properties": {
        "obs": {
          "type": "object",
          "properties": { "websocket": { "$ref": "#/definitions/websocket" } }
        },
        "discord": { "type": "object" },
        "vtubeStudio": {
          "type": "object",
          "properties": { "websocket": { "$ref": "#/definitions/websocket" } }
        }
      }
    },
    "paths": {
      "type": "object",
      "additionalProperties": { "type": "string" }
    },
    "logging": {
      "type": "object",
      "properties": {
        "level": { "type": "string" },
        "logRetentionDays": { "type": "integer", "minimum": 0 },
        "enableNotarization": { "type": "boolean" }
      }
    }
  }
}`

var documentSchema = gojsonschema.NewStringLoader(DocumentSchema)

// ValidateDocumentSchema checks raw config.json bytes against DocumentSchema.
// It returns the structural issues found, sorted for stable output. The error
// is non-nil only when the input is not parseable JSON.
func ValidateDocumentSchema(data []byte) ([]string, error) {
	result, err := gojsonschema.Validate(documentSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		issues = append(issues, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	sort.Strings(issues)
	return issues, nil
}
