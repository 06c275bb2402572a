package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProductID(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"42", 42, true},
		{" 7 ", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		got, err := ParseProductID(c.in)
		if c.ok {
			assert.NoError(t, err, c.in)
			assert.Equal(t, c.want, got, c.in)
		} else {
			assert.Error(t, err, c.in)
		}
	}
}

func TestProductIDFromFilename(t *testing.T) {
	id, err := ProductIDFromFilename("models/rf_model_42.json")
	assert.NoError(t, err)
	assert.Equal(t, 42, id)

	id, err = ProductIDFromFilename("17.json")
	assert.NoError(t, err)
	assert.Equal(t, 17, id)

	_, err = ProductIDFromFilename("generic_model.json")
	assert.Error(t, err)
}

func TestStringOrDefault(t *testing.T) {
	name := "Espresso Beans"
	empty := ""
	assert.Equal(t, "Espresso Beans", StringOrDefault(&name, "x"))
	assert.Equal(t, "x", StringOrDefault(&empty, "x"))
	assert.Equal(t, "Product 5", StringOrDefault(nil, DefaultProductName(5)))
}
