package ports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RuleValue holds a rule value that arrives as either a JSON string or number.
type RuleValue string

func (v *RuleValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RuleValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("rule value must be a string or number: %w", err)
	}
	*v = RuleValue(n.String())
	return nil
}

// Float parses the value as a number.
func (v RuleValue) Float() (float64, error) {
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return 0, fmt.Errorf("rule value %q is not numeric", string(v))
	}
	return f, nil
}

func (v RuleValue) String() string {
	return string(v)
}
