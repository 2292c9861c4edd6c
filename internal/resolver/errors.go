package resolver

import (
	"fmt"
	"strings"

	"appi/pkg/apperror"
)

// ErrorVariant is the apperror variant name of every resolver error.
const ErrorVariant = "GraphError"

// ErrorKind enumerates the resolver failure families.
type ErrorKind int

const (
	// KindInvalidGraph means the input is not a sequence of items.
	KindInvalidGraph ErrorKind = iota
	// KindInvalidItem means an item has a bad "node" or "deps" property.
	KindInvalidItem
	// KindDuplicateNode means a node is declared by more than one item.
	KindDuplicateNode
	// KindUndeclaredDependency means a dependency is not declared as a node.
	KindUndeclaredDependency
	// KindCycle means the graph has a dependency cycle.
	KindCycle
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidGraph:
		return "InvalidGraph"
	case KindInvalidItem:
		return "InvalidItem"
	case KindDuplicateNode:
		return "DuplicateNode"
	case KindUndeclaredDependency:
		return "UndeclaredDependency"
	case KindCycle:
		return "Cycle"
	default:
		return "Unknown"
	}
}

// Error codes carried by GraphError.
const (
	CodeInvalidGraph         apperror.Code = "INVALID_GRAPH"
	CodeDuplicateNode        apperror.Code = "DUPLICATE_NODE"
	CodeUndeclaredDependency apperror.Code = "UNDECLARED_DEPENDENCY"
	CodeCycle                apperror.Code = "DEPENDENCY_CYCLE"
)

// GraphError reports malformed graphs and dependency cycles.
type GraphError struct {
	// Kind tells which check failed.
	Kind ErrorKind
	// Node is the display form of the offending node, if any.
	Node string
	// Cycle holds the display forms of the nodes forming a cycle, starting
	// and ending with the same node. Only set for KindCycle.
	Cycle []string

	base *apperror.Error
}

func newGraphError(kind ErrorKind, code apperror.Code, node string, format string, args ...any) *GraphError {
	return &GraphError{
		Kind: kind,
		Node: node,
		base: apperror.New(ErrorVariant, fmt.Sprintf(format, args...), code).WithAttr("kind", kind.String()),
	}
}

func newCycleError(cycle []string) *GraphError {
	parts := make([]string, len(cycle))
	for i, name := range cycle {
		parts[i] = "(" + name + ")"
	}
	e := newGraphError(KindCycle, CodeCycle, cycle[0],
		"dependency cycle detected: %s", strings.Join(parts, " -> "))
	e.Cycle = cycle
	e.base.WithAttr("cycle", cycle)
	return e
}

func (e *GraphError) Error() string {
	return e.base.Error()
}

// Code returns the machine readable code.
func (e *GraphError) Code() apperror.Code {
	return e.base.Code()
}

// Unwrap exposes the structured error.
func (e *GraphError) Unwrap() error {
	return e.base
}
