package synth

import (
	"testing"

	"codemasti/internal/gen/schema"
	"codemasti/internal/gen/target"

	"github.com/stretchr/testify/require"
)

func mapperFor(t *testing.T, tgt schema.Target) target.Mapper {
	t.Helper()
	m, ok := target.Lookup(tgt)
	require.True(t, ok, "no mapper for %s", tgt)
	return m
}
