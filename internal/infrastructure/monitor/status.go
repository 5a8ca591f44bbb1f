package monitor

import "time"

type Status struct {
	PostgreSQL    bool           `json:"postgresql"`
	Redis         bool           `json:"redis"`
	Buffer        bool           `json:"buffer"`
	BufferSize    int            `json:"buffer_size"`
	BufferPending map[string]int `json:"buffer_pending,omitempty"`
	LastCheck     time.Time      `json:"last_check"`
}
