package model

import (
	"encoding/json"
	"fmt"
)

// TermCount is a term with its frequency. It is serialized as a
// two-element JSON array: ["term", 3].
type TermCount struct {
	Term  string
	Count int
}

// MarshalJSON implements json.Marshaler.
func (t TermCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{t.Term, t.Count})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TermCount) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("term count: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &t.Term); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &t.Count)
}

// TermScore is a term with a score, serialized as ["term", 0.25].
type TermScore struct {
	Term  string
	Score float64
}

// MarshalJSON implements json.Marshaler.
func (t TermScore) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{t.Term, t.Score})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TermScore) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("term score: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &t.Term); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &t.Score)
}
