package paramset

import "strings"

// DefaultController is the hierarchical path of the TX2-40 HB robot controller
// block inside the simulation model.
const DefaultController = "[Block Diagram].[OSACA2__St?ubli__TX2-40-HB__1_0].[RobotController]"

// Template derives full hierarchical parameter paths for one controller node.
type Template struct {
	controller string
}

// NewTemplate returns a template rooted at controller. An empty controller
// selects DefaultController.
func NewTemplate(controller string) Template {
	controller = strings.TrimSpace(controller)
	if controller == "" {
		controller = DefaultController
	}
	return Template{controller: controller}
}

// Controller returns the controller prefix.
func (t Template) Controller() string {
	if t.controller == "" {
		return DefaultController
	}
	return t.controller
}

// Path returns "<controller>.[<name>]".
func (t Template) Path(name string) string {
	return t.Controller() + ".[" + name + "]"
}

// Name extracts the parameter name from a path produced by Path.
func (t Template) Name(path string) (string, bool) {
	prefix := t.Controller() + ".["
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, "]") {
		return "", false
	}
	name := path[len(prefix) : len(path)-1]
	if name == "" {
		return "", false
	}
	return name, true
}
