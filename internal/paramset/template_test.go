package paramset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplatePath(t *testing.T) {
	tpl := NewTemplate("")

	assert.Equal(t,
		"[Block Diagram].[OSACA2__St?ubli__TX2-40-HB__1_0].[RobotController].[par_6]",
		tpl.Path("par_6"))
	assert.Equal(t,
		"[Block Diagram].[OSACA2__St?ubli__TX2-40-HB__1_0].[RobotController].[Axis_3.s_init]",
		tpl.Path("Axis_3.s_init"))

	var zero Template
	assert.Equal(t, tpl.Path("par_1"), zero.Path("par_1"), "zero template uses the default controller")

	custom := NewTemplate("  [Block Diagram].[RobotController] ")
	assert.Equal(t, "[Block Diagram].[RobotController].[KinID]", custom.Path("KinID"))
}

func TestTemplatePathsAreUnique(t *testing.T) {
	tpl := NewTemplate("")
	seen := make(map[string]string)
	for _, name := range Default().Names() {
		p := tpl.Path(name)
		if prev, dup := seen[p]; dup {
			t.Fatalf("path %q produced by both %q and %q", p, prev, name)
		}
		seen[p] = name
	}
}

func TestTemplateName(t *testing.T) {
	tpl := NewTemplate("")
	for _, name := range []string{"par_0", "Axis_2.v_max", "KinID"} {
		got, ok := tpl.Name(tpl.Path(name))
		assert.True(t, ok)
		assert.Equal(t, name, got)
	}

	_, ok := tpl.Name("[Block Diagram].[Other].[par_0]")
	assert.False(t, ok)
	_, ok = tpl.Name(tpl.Controller() + ".[]")
	assert.False(t, ok)
}
