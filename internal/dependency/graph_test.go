package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func carGraph() *Graph {
	g := New()
	g.AddNode(Node{Name: "wheels"})
	g.AddNode(Node{Name: "engine", DependsOn: []string{"wheels"}})
	g.AddNode(Node{Name: "car", DependsOn: []string{"engine", "wheels"}})
	g.AddNode(Node{Name: "radio"})
	return g
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.Nil(t, g.Get("missing"))
	assert.Nil(t, g.Dependencies("missing"))
	assert.Nil(t, g.Dependents("missing"))
}

func TestAddNode_CopiesInput(t *testing.T) {
	deps := []string{"wheels"}
	g := New()
	g.AddNode(Node{Name: "engine", DependsOn: deps})
	deps[0] = "changed"

	assert.Equal(t, []string{"wheels"}, g.Dependencies("engine"))
}

func TestAddNode_Replaces(t *testing.T) {
	g := carGraph()
	g.AddNode(Node{Name: "engine"})

	assert.Empty(t, g.Dependencies("engine"))
	assert.Equal(t, []string{"car"}, g.Dependents("wheels"))
}

func TestGraph_Dependencies(t *testing.T) {
	g := carGraph()

	deps := g.Dependencies("car")
	assert.Equal(t, []string{"engine", "wheels"}, deps)

	deps[0] = "changed"
	assert.Equal(t, []string{"engine", "wheels"}, g.Dependencies("car"))
}

func TestGraph_Dependents(t *testing.T) {
	tests := []struct {
		name string
		node string
		want []string
	}{
		{name: "shared dependency", node: "wheels", want: []string{"engine", "car"}},
		{name: "single dependent", node: "engine", want: []string{"car"}},
		{name: "leaf", node: "car", want: nil},
		{name: "isolated", node: "radio", want: nil},
	}

	g := carGraph()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Dependents(tt.node))
		})
	}
}

func TestGraph_AllDependents(t *testing.T) {
	g := New()
	g.AddNode(Node{Name: "env"})
	g.AddNode(Node{Name: "logger", DependsOn: []string{"env"}})
	g.AddNode(Node{Name: "http", DependsOn: []string{"logger"}})
	g.AddNode(Node{Name: "metrics", DependsOn: []string{"http", "env"}})

	assert.Equal(t, []string{"logger", "metrics", "http"}, g.AllDependents("env"))
	assert.Equal(t, []string{"http", "metrics"}, g.AllDependents("logger"))
	assert.Nil(t, g.AllDependents("metrics"))
}
