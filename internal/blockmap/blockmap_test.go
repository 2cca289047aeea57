// File: internal/blockmap/blockmap_test.go
package blockmap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `// Controller export
Header = [Block Diagram].[Ignored] ;

//Model uuids
uuid_1 = [Block Diagram] ;
uuid_2 = [Block Diagram].[OSACA2__St?ubli__TX2-40-HB__1_0] ;
uuid_3 = [Block Diagram].[OSACA2__St?ubli__TX2-40-HB__1_0].[RobotController] ;
  uuid_4 =   [Block Diagram].[Conveyor v1.2]   ;
garbage line without assignment
uuid_5 = [Block Diagram].[Unterminated]
//Port uuids
uuid_6 = [Block Diagram].[PortBlock] ;
`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(export))
	require.NoError(t, err)

	assert.Equal(t, []string{"Block Diagram", "OSACA2__St?ubli__TX2-40-HB__1_0", "RobotController", "Conveyor v1.2"}, m.Names())
	assert.Equal(t, 4, m.Len())

	tests := []struct {
		name string
		want string
	}{
		{"RobotController", "[Block Diagram].[OSACA2__St?ubli__TX2-40-HB__1_0].[RobotController]"},
		{"[RobotController]", "[Block Diagram].[OSACA2__St?ubli__TX2-40-HB__1_0].[RobotController]"},
		{"  RobotController ", "[Block Diagram].[OSACA2__St?ubli__TX2-40-HB__1_0].[RobotController]"},
		{"Conveyor v1.2", "[Block Diagram].[Conveyor v1.2]"},
		{"Block Diagram", "[Block Diagram]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_NotFound(t *testing.T) {
	m, err := Parse(strings.NewReader(export))
	require.NoError(t, err)

	for _, name := range []string{"Ignored", "PortBlock", "Unterminated", ""} {
		_, err := m.Lookup(name)
		assert.ErrorIs(t, err, ErrNotFound, name)
	}
}

func TestParse_LaterBlockWins(t *testing.T) {
	m, err := Parse(strings.NewReader("//Model uuids\na = [Block Diagram].[A].[Ctrl] ;\nb = [Block Diagram].[B].[Ctrl] ;\n"))
	require.NoError(t, err)

	got, err := m.Lookup("Ctrl")
	require.NoError(t, err)
	assert.Equal(t, "[Block Diagram].[B].[Ctrl]", got)
	assert.Equal(t, 1, m.Len())
}

func TestParse_NoModelSection(t *testing.T) {
	m, err := Parse(strings.NewReader("x = [Block Diagram].[A] ;\n"))
	require.NoError(t, err)
	assert.Zero(t, m.Len())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controller.txt")
	require.NoError(t, os.WriteFile(path, []byte(export), 0o644))

	m, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
