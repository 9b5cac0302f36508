package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"two digits", "12.99", "12.99", false},
		{"pads missing digits", "12.5", "12.50", false},
		{"integer", "7", "7.00", false},
		{"rounds extra digits", "3.14159", "3.14", false},
		{"rounds half up", "0.125", "0.13", false},
		{"not a number", "abc", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPrice(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.String())
		})
	}
}

func TestPrice_JSON(t *testing.T) {
	t.Run("marshals as fixed string", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Price Price `json:"price"`
		}{Price: MustPrice("12.5")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"price":"12.50"}`, string(data))
	})

	t.Run("accepts bare numbers", func(t *testing.T) {
		var p Price
		require.NoError(t, json.Unmarshal([]byte(`12.99`), &p))
		assert.Equal(t, "12.99", p.String())
	})

	t.Run("accepts quoted strings", func(t *testing.T) {
		var p Price
		require.NoError(t, json.Unmarshal([]byte(`"4.1"`), &p))
		assert.Equal(t, "4.10", p.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var p Price
		assert.Error(t, json.Unmarshal([]byte(`"twelve"`), &p))
	})
}

func TestPrice_ValueScan(t *testing.T) {
	v, err := MustPrice("9.9").Value()
	require.NoError(t, err)
	assert.Equal(t, "9.90", v)

	var p Price
	require.NoError(t, p.Scan(float64(12.99)))
	assert.Equal(t, "12.99", p.String())

	require.NoError(t, p.Scan([]byte("100.10")))
	assert.Equal(t, "100.10", p.String())
}
