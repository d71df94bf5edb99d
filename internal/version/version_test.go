package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintIncludesNameAndVersion(t *testing.T) {
	out := Print("lit")
	assert.Contains(t, out, "lit")
	assert.Contains(t, out, Version)
}
