package paramset

import (
	"fmt"
	"strconv"
	"strings"
)

// KinematicID is the name of the controller's kinematic model identifier.
const KinematicID = "KinID"

// AxisFields lists the per-axis fields in their canonical order.
var AxisFields = []string{"ratio", "s_min", "s_max", "s_init", "v_max", "a_max"}

// AxisGroups lists the dotted key prefixes that scope an axis.
var AxisGroups = []string{"Axis", "Ext"}

// ParName returns the bare transformation parameter name "par_<i>".
func ParName(i int) string { return "par_" + strconv.Itoa(i) }

// AxisName returns "<group>_<index>.<field>".
func AxisName(group string, index int, field string) string {
	return fmt.Sprintf("%s_%d.%s", group, index, field)
}

// AxisKey is a parsed "<group>_<index>.<field>" name.
type AxisKey struct {
	Group string
	Index int
	Field string
}

// ParseAxisName splits an axis-scoped name. It reports false for bare names
// and for fields outside AxisFields.
func ParseAxisName(name string) (AxisKey, bool) {
	head, field, ok := strings.Cut(name, ".")
	if !ok || !isAxisField(field) {
		return AxisKey{}, false
	}
	group, idx, ok := strings.Cut(head, "_")
	if !ok || !isAxisGroup(group) {
		return AxisKey{}, false
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 1 {
		return AxisKey{}, false
	}
	return AxisKey{Group: group, Index: n, Field: field}, true
}

// ParseParName returns the index of a "par_<i>" name.
func ParseParName(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "par_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// CanonicalName converts transformation-style names to the controller's own
// naming: "trafo[0].id" becomes "KinID" and "trafo[0].param[5]" becomes
// "par_5". Other names are returned unchanged.
func CanonicalName(name string) string {
	if name == "trafo[0].id" {
		return KinematicID
	}
	if rest, ok := strings.CutPrefix(name, "trafo[0].param["); ok {
		if idx, ok := strings.CutSuffix(rest, "]"); ok {
			return "par_" + idx
		}
	}
	return name
}

func isAxisField(f string) bool {
	for _, af := range AxisFields {
		if af == f {
			return true
		}
	}
	return false
}

func isAxisGroup(g string) bool {
	for _, ag := range AxisGroups {
		if ag == g {
			return true
		}
	}
	return false
}
