package ports

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleValueAcceptsStringAndNumber(t *testing.T) {
	var rules []Rule
	raw := `[
		{"name":"vaccine_end_day_complete_IT","type":"GENERIC","value":"270"},
		{"name":"rapid_test_end_hours","type":"GENERIC","value":48},
		{"name":"black_list_uvci","type":"black_list_uvci","value":"a;b;"}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &rules))

	f, err := rules[0].Value.Float()
	require.NoError(t, err)
	assert.Equal(t, 270.0, f)

	f, err = rules[1].Value.Float()
	require.NoError(t, err)
	assert.Equal(t, 48.0, f)

	_, err = rules[2].Value.Float()
	assert.Error(t, err)
	assert.Equal(t, "a;b;", rules[2].Value.String())
}

func TestRuleValueRejectsObjects(t *testing.T) {
	var v RuleValue
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &v))
}
