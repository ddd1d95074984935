package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns an event payload as T.
// In-process events carry T or *T directly. Events that crossed a wire
// (dead-letter replay, Kafka, SSE) arrive as raw JSON or a generic map and
// are re-encoded into T.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, fmt.Errorf("decode %T: nil payload", result)
		}
		return *v, nil
	case nil:
		return result, fmt.Errorf("decode %T: nil payload", result)
	case json.RawMessage:
		return decodeJSON[T](v)
	case []byte:
		return decodeJSON[T](v)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("decode %T: %w", result, err)
	}
	return decodeJSON[T](data)
}

func decodeJSON[T any](data []byte) (T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode %T: %w", result, err)
	}
	return result, nil
}
