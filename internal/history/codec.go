package history

import (
	"encoding/json"

	"github.com/petrijr/trilho/pkg/api"
)

// EncodeContext serializes a Context as JSON. Context is string-keyed
// by construction, so JSON is a natural wire form; callers enabling a
// durable store must keep run values JSON-encodable.
func EncodeContext(c api.Context) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// DecodeContext deserializes a Context previously produced by
// EncodeContext. Empty input yields a nil Context.
func DecodeContext(data []byte) (api.Context, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var c api.Context
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return c, nil
}
