package models

import "encoding/json"

// WSMessage is the envelope of every websocket frame
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// WSErrorMessage is the payload of an error frame
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
