package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintJSON(&out, map[string]int{"total": 3}))
	assert.Equal(t, "{\n  \"total\": 3\n}\n", out.String())
}

func TestPrintJSON_Unsupported(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, PrintJSON(&out, make(chan int)))
	assert.Empty(t, out.String())
}
