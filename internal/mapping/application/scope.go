package application

import (
	"strings"

	"cim-mapping/internal/observability/metrics"
	scl "cim-mapping/internal/scl/domain"
)

// PathSeparator joins node names into a path name.
const PathSeparator = "/"

// PushScope enters node. Every push must be paired with PopScope.
func (c *Context) PushScope(node scl.Named) {
	c.scope = append(c.scope, node)
}

// PopScope leaves the innermost node and returns it. Popping an empty
// stack is a programming error and panics.
func (c *Context) PopScope() scl.Named {
	if len(c.scope) == 0 {
		panic("mapping context: pop on empty scope stack")
	}
	last := len(c.scope) - 1
	node := c.scope[last]
	c.scope[last] = nil
	c.scope = c.scope[:last]
	return node
}

// WithScope runs fn with node pushed and pops it on every exit path.
func (c *Context) WithScope(node scl.Named, fn func() error) error {
	c.PushScope(node)
	defer c.PopScope()
	return fn()
}

// ScopeDepth returns the number of nodes on the stack.
func (c *Context) ScopeDepth() int {
	return len(c.scope)
}

// PathName joins the names of the current scope, outermost first. It is
// computed from the stack on every call.
func (c *Context) PathName() string {
	return strings.Join(c.scopeNames(), PathSeparator)
}

func (c *Context) scopeNames() []string {
	names := make([]string, len(c.scope))
	for i, node := range c.scope {
		names[i] = node.NodeName()
	}
	return names
}

// SaveConnectivityNode records the path and name for a connectivity node
// id, replacing any earlier entry. The names of the current scope are kept
// as the node's containers.
func (c *Context) SaveConnectivityNode(id, pathName, name string) {
	c.nodes[id] = connectivityNodeRef{pathName: pathName, name: name, containers: c.scopeNames()}
}

// HasConnectivityNode reports whether id has been recorded.
func (c *Context) HasConnectivityNode(id string) bool {
	_, ok := c.nodes[id]
	return ok
}

// ConnectivityNodePathName returns the recorded path name of id.
func (c *Context) ConnectivityNodePathName(id string) (string, bool) {
	ref, ok := c.nodes[id]
	metrics.IncConnectivityNodeLookup(ok)
	return ref.pathName, ok
}

// ConnectivityNodeName returns the recorded name of id.
func (c *Context) ConnectivityNodeName(id string) (string, bool) {
	ref, ok := c.nodes[id]
	return ref.name, ok
}

// ConnectivityNodeContainers returns the scope names, outermost first, that
// were current when id was recorded.
func (c *Context) ConnectivityNodeContainers(id string) ([]string, bool) {
	ref, ok := c.nodes[id]
	return ref.containers, ok
}

// ConnectivityNodeCount returns the number of recorded nodes.
func (c *Context) ConnectivityNodeCount() int {
	return len(c.nodes)
}

// ResetConnectivityNodes forgets every recorded connectivity node.
func (c *Context) ResetConnectivityNodes() {
	clear(c.nodes)
}
