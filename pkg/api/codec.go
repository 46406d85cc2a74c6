package api

import "encoding/json"

// Codec marshals plain Go messages as JSON for connect handlers and clients.
// Its name replaces connect's protojson codec, so requests use the standard
// "application/json" content type.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (Codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }
