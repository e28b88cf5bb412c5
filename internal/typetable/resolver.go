package typetable

import (
	"fmt"

	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/hirtypes"
)

// ResolveOverrides runs the second pass of §4.1: for every method marked
// override on a class, rewrite its descriptor to equal the nearest
// ancestor's descriptor for the same method name. overrideAnnotated maps
// a class's internal name to the set of its method names declared with
// the `override` modifier.
func (t *TypeTable) ResolveOverrides(overrideAnnotated map[string][]string, sink *errors.Sink) {
	for class, methods := range overrideAnnotated {
		ci, ok := t.classes[class]
		if !ok {
			continue
		}
		for _, method := range methods {
			desc, found := t.AncestorDescriptor(class, method)
			if !found {
				if sink != nil {
					sink.Warnf(errors.DSC002, fmt.Sprintf("override %s.%s has no ancestor declaration", class, method))
				}
				continue
			}
			ci.Methods[method] = desc
		}
	}
}

// AncestorDescriptor walks the inheritance chain starting at the
// superclass of class (the "nearest ancestor" search never includes
// class's own direct declaration) looking for method, and only falls
// back to interfaces if the class chain produces no hit (§4.1 tie-break
// rule). Results are memoized in the owner#methodName cache.
func (t *TypeTable) AncestorDescriptor(class, method string) (string, bool) {
	key := class + "#" + method
	if cached, ok := t.descriptorCache[key]; ok {
		if cached == nil {
			return "", false
		}
		return *cached, true
	}

	desc, found := t.walkClassChain(class, method, make(map[string]bool))
	if !found {
		desc, found = t.walkInterfaces(class, method, make(map[string]bool))
	}

	if found {
		d := desc
		t.descriptorCache[key] = &d
		return desc, true
	}
	t.descriptorCache[key] = nil
	return "", false
}

// walkClassChain starts at class's own superclass and proceeds upward.
func (t *TypeTable) walkClassChain(class, method string, visited map[string]bool) (string, bool) {
	ci, ok := t.classes[class]
	if !ok || ci.SuperClass == "" || visited[ci.SuperClass] {
		return "", false
	}
	visited[ci.SuperClass] = true

	super, ok := t.classes[ci.SuperClass]
	if !ok {
		return "", false
	}
	if d, ok := super.Methods[method]; ok {
		return d, true
	}
	return t.walkClassChain(ci.SuperClass, method, visited)
}

// walkInterfaces searches the full interface set of class and its
// ancestors, only reached when the class chain above produced no hit.
func (t *TypeTable) walkInterfaces(class, method string, visited map[string]bool) (string, bool) {
	ci, ok := t.classes[class]
	if !ok {
		return "", false
	}
	for _, iface := range ci.Interfaces {
		if visited[iface] {
			continue
		}
		visited[iface] = true
		ifaceInfo, ok := t.classes[iface]
		if !ok {
			continue
		}
		if d, ok := ifaceInfo.Methods[method]; ok {
			return d, true
		}
		if d, ok := t.walkInterfaces(iface, method, visited); ok {
			return d, true
		}
	}
	if ci.SuperClass != "" && !visited[ci.SuperClass] {
		visited[ci.SuperClass] = true
		return t.walkInterfaces(ci.SuperClass, method, visited)
	}
	return "", false
}

// ResolveDescriptor resolves method on class for a call site with the
// given argument count, used by §4.3.7 call resolution. It searches the
// child class first, then ancestors, then interfaces (§4.1 ordering), and
// falls back to the arity-matched all-Object descriptor on total failure
// (§4.1 Failure rule / §7 "Unknown method descriptor").
func (t *TypeTable) ResolveDescriptor(class, method string, argCount int, sink *errors.Sink) string {
	if ci, ok := t.classes[class]; ok {
		if d, ok := ci.Methods[method]; ok {
			return d
		}
	}
	if d, ok := t.AncestorDescriptor(class, method); ok {
		return d
	}
	if sink != nil {
		sink.Warnf(errors.DSC001, fmt.Sprintf("no descriptor for %s.%s, falling back to all-Object arity %d", class, method, argCount))
	}
	return hirtypes.FallbackDescriptor(argCount)
}
