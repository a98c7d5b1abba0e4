// Package tools implements the mock biological computation tools served by
// the tool server: deterministic, hash-derived stand-ins for molecular
// property calculators, binding predictors, ADMET models, and database
// lookups.
package tools

import (
	"crypto/md5"
	"encoding/hex"
	"math"
	"strconv"
)

// Tool is one named computational capability. Run returns a JSON-like value;
// input problems are reported in-band as an {"error": ...} object rather
// than as a transport failure.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Run         func(args map[string]any) any
}

// Registry holds the available tools in registration order.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool, replacing any previous tool with the same name.
func (r *Registry) Register(t Tool) {
	if _, ok := r.tools[t.Name]; !ok {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = t
}

// Get returns the named tool.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns all tools in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Default returns a registry with the full bio-tools set registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(MolecularProperties())
	r.Register(BindingAffinity())
	r.Register(ToxicityPrediction())
	r.Register(PubChemLookup())
	return r
}

// hashKey derives the deterministic seed for mock values: the first eight
// hex digits of the key's MD5 digest.
func hashKey(key string) uint64 {
	sum := md5.Sum([]byte(key))
	digest := hex.EncodeToString(sum[:])
	v, _ := strconv.ParseUint(digest[:8], 16, 64)
	return v
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// stringArg extracts a string argument, returning the fallback when absent.
func stringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}
