// Package lockstatsv1 holds the messages of the lockstats.v1 API.
package lockstatsv1

import (
	"bytes"
	"encoding/json"

	"lockstats/pkg/table"
)

// GetLockHistoryRequest asks for one page of a task's lock history.
type GetLockHistoryRequest struct {
	TaskId   uint32 `json:"task_id"`
	Page     int32  `json:"page,omitempty"`
	PageSize int32  `json:"page_size,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Desc     bool   `json:"desc,omitempty"`
	// All returns every row with raw export values.
	All      bool   `json:"all,omitempty"`
	Language string `json:"language,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

type GetLockHistoryResponse struct {
	Table *table.Page `json:"table"`
}

// ListLocksRequest asks for one page of the lock overview.
type ListLocksRequest struct {
	Page     int32  `json:"page,omitempty"`
	PageSize int32  `json:"page_size,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Desc     bool   `json:"desc,omitempty"`
	All      bool   `json:"all,omitempty"`
	Language string `json:"language,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

type ListLocksResponse struct {
	Table *table.Page `json:"table"`
}

// Codec is the JSON codec of the lockstats.v1 service. Numbers decode as
// json.Number so epochs and counts survive unchanged.
type Codec struct{}

func (Codec) Name() string {
	return "json"
}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
