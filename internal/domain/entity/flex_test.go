package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString_AcceptsStringsAndNumbers(t *testing.T) {
	var got struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1.50","b":2.25,"c":null}`), &got))

	assert.Equal(t, "1.50", got.A.String())
	assert.Equal(t, "2.25", got.B.String())
	assert.Empty(t, got.C)
}

func TestFlexInt_QuotedUnquotedAndInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  FlexInt
	}{
		{name: "number", input: `1700000000`, want: FlexInt{Value: 1700000000, Valid: true}},
		{name: "quoted", input: `"9"`, want: FlexInt{Value: 9, Valid: true}},
		{name: "null", input: `null`, want: FlexInt{}},
		{name: "garbage", input: `"soon"`, want: FlexInt{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexInt
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalletSnapshot_AbsentSeriesMarshalAsNull(t *testing.T) {
	snap := WalletSnapshot{
		Balance:      "0",
		Tokens:       []TokenHolding{},
		Transactions: []json.RawMessage{json.RawMessage(`{"signature":"abc","amount":"1"}`)},
	}
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"historicalPrices":null`)
	assert.Contains(t, string(data), `"portfolioHistory":null`)
	assert.Contains(t, string(data), `"tokens":[]`)
	assert.Contains(t, string(data), `{"signature":"abc","amount":"1"}`)
}
