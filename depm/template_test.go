package depm

import (
	"bytes"
	"testing"

	"actorc/genname"

	"github.com/stretchr/testify/require"
)

func TestUnitTemplateLoads(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteUnitTemplate(buf, "starter"))

	u, err := ParseUnit("/starter.unit.toml", buf.Bytes())
	require.NoError(t, err)

	require.Equal(t, "starter", u.Name)
	require.Equal(t, Options{MaxNameLen: genname.DefaultMaxLen, Descriptors: true, Verify: true}, u.Options)
	require.Len(t, u.Defs, 1)
	require.Len(t, u.Defs[0].Fields(), 2)
	require.Len(t, u.Uses, 2)
}
