package client

import "encoding/json"

// listOf decodes a list endpoint response. The service returns either a
// bare JSON array or a paginated-style {"results": [...]} envelope; both
// shapes are accepted. There is no further pagination handling.
type listOf[T any] struct {
	items []T
}

func (l *listOf[T]) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &l.items); err == nil {
		return nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	l.items = envelope.Results
	return nil
}
