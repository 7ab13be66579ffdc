package macro_test

import (
	"strings"
	"testing"

	"github.com/kbfw/corekbd/keyaction"
	"github.com/kbfw/corekbd/macro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLTableAssemblesStream(t *testing.T) {
	doc := `
macros:
  - id: 0
    ops: ["DOWN:LGUI", "DOWN:C", "END"]
`
	table, err := macro.LoadYAMLTable(strings.NewReader(doc))
	require.NoError(t, err)

	stream, ok := table[0]
	require.True(t, ok)
	assert.Equal(t, []byte{
		byte(macro.MacroKeyDown), keyaction.UsageLeftGUI,
		byte(macro.MacroKeyDown), keyaction.KeyC,
		byte(macro.MacroEnd),
	}, stream)
}

func TestTableLookupAdapter(t *testing.T) {
	table := macro.Table{5: {byte(macro.MacroEnd)}}
	assert.Equal(t, []byte{byte(macro.MacroEnd)}, table.Lookup(5))
	assert.Nil(t, table.Lookup(99))
}
