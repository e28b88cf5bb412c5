// Package typetable implements spec.md §4.1: the registry of declared and
// external classes/interfaces/enums/objects, their field sets and method
// descriptor maps, inheritance links, and the override-propagation pass
// that rewrites an overriding method's descriptor to match its nearest
// ancestor.
package typetable

import "github.com/novalang/novalang/internal/hirtypes"

// ClassInfo is everything TypeTable tracks per declared or registered
// external class.
type ClassInfo struct {
	InternalName string
	IsObject     bool // singleton
	IsInterface  bool
	IsEnum       bool
	IsData       bool
	SuperClass   string   // "" if none (interfaces, or root classes)
	Interfaces   []string
	Fields       map[string]bool            // field-name set, for load-vs-call disambiguation
	FieldOrder   []string                   // declared field names in source order (§4.3.7 level 12 copy/componentN)
	Methods      map[string]string          // method name -> descriptor
	Annotations  map[string]map[string]any  // annotation name -> args
}

func newClassInfo(name string) *ClassInfo {
	return &ClassInfo{
		InternalName: name,
		Fields:       make(map[string]bool),
		Methods:      make(map[string]string),
		Annotations:  make(map[string]map[string]any),
	}
}

// TypeTable is the mutable registry built during Phase 1 (global
// discovery) of HirToMir.Lower and consulted read-only afterward.
type TypeTable struct {
	classes map[string]*ClassInfo

	// descriptorCache memoizes inheritance-chain descriptor lookups keyed
	// "owner#methodName". A present-but-nil entry distinguishes a cached
	// miss from "never looked up" (§4.1 "a sentinel distinguishes unknown
	// from cached miss").
	descriptorCache map[string]*string
}

// New returns an empty TypeTable.
func New() *TypeTable {
	return &TypeTable{
		classes:         make(map[string]*ClassInfo),
		descriptorCache: make(map[string]*string),
	}
}

// Declare registers a class/interface/object/enum declared in the module
// being lowered, returning its (possibly pre-existing) ClassInfo.
func (t *TypeTable) Declare(internalName string) *ClassInfo {
	if ci, ok := t.classes[internalName]; ok {
		return ci
	}
	ci := newClassInfo(internalName)
	t.classes[internalName] = ci
	return ci
}

// Lookup returns the ClassInfo for internalName, if known (declared in
// this module or registered as external).
func (t *TypeTable) Lookup(internalName string) (*ClassInfo, bool) {
	ci, ok := t.classes[internalName]
	return ci, ok
}

// RegisterExternalClasses installs cross-module class metadata (spec.md
// §5: "registered external class/interface names for recognizing
// cross-module references"). Re-registering the same name merges fields
// and methods rather than discarding prior state, so a driver may call
// this incrementally (e.g. across REPL increments).
func (t *TypeTable) RegisterExternalClasses(infos []*ClassInfo) {
	for _, info := range infos {
		existing, ok := t.classes[info.InternalName]
		if !ok {
			t.classes[info.InternalName] = info
			continue
		}
		for f := range info.Fields {
			existing.Fields[f] = true
		}
		for m, d := range info.Methods {
			existing.Methods[m] = d
		}
		if existing.SuperClass == "" {
			existing.SuperClass = info.SuperClass
		}
		existing.Interfaces = append(existing.Interfaces, info.Interfaces...)
	}
}

// IsClassName reports whether name is any known (declared or external)
// class/interface/object/enum.
func (t *TypeTable) IsClassName(name string) bool {
	_, ok := t.classes[name]
	return ok
}

// HasField reports whether class declares a field named name directly
// (no inheritance walk — field-vs-method disambiguation is always
// resolved against the receiver's own declared class, per §4.3.7 level
// 11's "uses the field-set map").
func (t *TypeTable) HasField(class, name string) bool {
	ci, ok := t.classes[class]
	if !ok {
		return false
	}
	return ci.Fields[name]
}

// Descriptor encodes a method signature using the bit-exact format of
// §4.1/§6.
func Descriptor(params []hirtypes.Type, ret hirtypes.Type) string {
	return hirtypes.Descriptor(params, ret)
}
