package allocator

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entry is one planned batch: its number and the per-foil funding amount in
// minor units, inclusive of the per-transfer fee.
type Entry struct {
	Batch  int
	Amount int64
}

// MarshalJSON encodes the entry as a [batch, amount] pair, the wire format of
// the plan file.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{int64(e.Batch), e.Amount})
}

// UnmarshalJSON decodes a [batch, amount] pair.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair [2]int64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("plan entry must be a [batch, amount] pair: %w", err)
	}
	e.Batch = int(pair[0])
	e.Amount = pair[1]
	return nil
}

// Plan is the ordered list of planned batches produced by the allocator and
// consumed by the funding handler.
type Plan []Entry

// Save writes the plan file.
func (p Plan) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a plan file.
func Load(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid plan file %s: %w", path, err)
	}
	return p, nil
}
