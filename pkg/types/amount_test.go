package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount(t *testing.T) {
	t.Run("zero value is unavailable", func(t *testing.T) {
		var a Amount
		assert.False(t, a.Available())
		assert.Equal(t, NotAvailable, a.String())
	})

	t.Run("arithmetic", func(t *testing.T) {
		assert.Equal(t, Value(3), Value(1).Add(Value(2)))
		assert.Equal(t, Value(-1), Value(1).Sub(Value(2)))
		assert.Equal(t, Value(6), Value(2).Scale(3))
	})

	t.Run("unavailable propagates", func(t *testing.T) {
		assert.False(t, Value(1).Add(Unavailable()).Available())
		assert.False(t, Unavailable().Add(Value(1)).Available())
		assert.False(t, Unavailable().Sub(Value(1)).Available())
		assert.False(t, Unavailable().Scale(2).Available())
		assert.False(t, Sum(Value(1), Value(2), Unavailable()).Available())
	})

	t.Run("sum", func(t *testing.T) {
		assert.Equal(t, Value(0), Sum())
		assert.Equal(t, Value(6), Sum(Value(1), Value(2), Value(3)))
	})

	t.Run("or", func(t *testing.T) {
		assert.Equal(t, 5.0, Value(5).Or(0))
		assert.Equal(t, -1.0, Unavailable().Or(-1))
	})
}

func TestAmountJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}{Value(12.5), Unavailable()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":12.5,"b":"N/A"}`, string(b))

	tests := []struct {
		in   string
		want Amount
	}{
		{`12.5`, Value(12.5)},
		{`"12.5"`, Value(12.5)},
		{`"N/A"`, Unavailable()},
		{`null`, Unavailable()},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.in), &a))
			assert.Equal(t, tt.want, a)
		})
	}

	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
}
