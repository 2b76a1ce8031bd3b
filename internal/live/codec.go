// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package live

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coder/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// WebSocket subprotocols, in server preference order.
const (
	SubprotocolMsgPack = "counsel.msgpack"
	SubprotocolJSON    = "counsel.json"
)

// ErrInvalidMessage is returned for frames that do not decode to an event.
var ErrInvalidMessage = errors.New("invalid message format")

// Codec handles event decoding and reply encoding on the wire.
type Codec interface {
	// Name returns the codec name.
	Name() string

	// MessageType is the WebSocket frame type used for replies.
	MessageType() websocket.MessageType

	// DecodeEvent deserializes one client frame.
	DecodeEvent(data []byte) (Event, error)

	// EncodeReply serializes one reply frame.
	EncodeReply(r Reply) ([]byte, error)
}

// CodecFor returns the codec for a negotiated subprotocol. Clients that
// negotiated nothing get JSON.
func CodecFor(subprotocol string) Codec {
	if subprotocol == SubprotocolMsgPack {
		return MsgPackCodec{}
	}
	return JSONCodec{}
}

// JSONCodec implements Codec using JSON text frames. The browser client uses it.
type JSONCodec struct{}

// Name returns "json".
func (JSONCodec) Name() string { return "json" }

// MessageType returns text frames.
func (JSONCodec) MessageType() websocket.MessageType { return websocket.MessageText }

// DecodeEvent decodes a JSON event.
func (JSONCodec) DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return ev, validateEvent(ev)
}

// EncodeReply encodes a reply to JSON.
func (JSONCodec) EncodeReply(r Reply) ([]byte, error) {
	return json.Marshal(r)
}

// MsgPackCodec implements Codec using MessagePack binary frames.
type MsgPackCodec struct{}

// Name returns "msgpack".
func (MsgPackCodec) Name() string { return "msgpack" }

// MessageType returns binary frames.
func (MsgPackCodec) MessageType() websocket.MessageType { return websocket.MessageBinary }

// DecodeEvent decodes a MessagePack event.
func (MsgPackCodec) DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := msgpack.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return ev, validateEvent(ev)
}

// EncodeReply encodes a reply to MessagePack.
func (MsgPackCodec) EncodeReply(r Reply) ([]byte, error) {
	return msgpack.Marshal(r)
}

func validateEvent(ev Event) error {
	if ev.Target == "" || ev.Name == "" {
		return fmt.Errorf("%w: target and name are required", ErrInvalidMessage)
	}
	return nil
}
