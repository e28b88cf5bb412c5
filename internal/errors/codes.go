// Package errors provides NovaLang's centralized structured-diagnostic
// type and error-code taxonomy for the AstToHir and HirToMir passes.
package errors

// Error code constants organized by phase. Per spec.md §7, every one of
// these is a *recoverable* condition: lowering reports it and falls back
// to a conservative default rather than aborting. AstToHir and Lower have
// no Go error result: a malformed AST is not reported through these codes
// and can abort the pass with a runtime panic.
const (
	// ============================================================================
	// AstToHir resolution errors (HIR###)
	// ============================================================================

	// HIR001 indicates an identifier could not be classified as local,
	// field, top-level, class name, or environment variable.
	HIR001 = "HIR001"

	// HIR002 indicates a type reference could not be resolved to a known
	// primitive, class, or type parameter.
	HIR002 = "HIR002"

	// HIR003 indicates an import path could not be classified as
	// native-foreign, static, wildcard, or source-level.
	HIR003 = "HIR003"

	// HIR004 indicates a property accessor referenced a field that does
	// not exist on the enclosing declaration.
	HIR004 = "HIR004"

	// ============================================================================
	// Descriptor resolution errors (DSC###)
	// ============================================================================

	// DSC001 indicates a method name was not found while walking the
	// inheritance chain; the caller falls back to the arity-matched
	// all-Object descriptor.
	DSC001 = "DSC001"

	// DSC002 indicates an override-annotated method has no ancestor
	// declaration to inherit a descriptor from.
	DSC002 = "DSC002"

	// ============================================================================
	// HirToMir lowering errors (MIR###)
	// ============================================================================

	// MIR001 indicates an unresolved symbol at a call or reference site;
	// lowering emits a CONST_NULL and continues.
	MIR001 = "MIR001"

	// MIR002 indicates a constructor-delegation chain could not be
	// inlined (cycle, ambiguous arity, or a non-atomic argument);
	// lowering keeps the delegation block intact.
	MIR002 = "MIR002"

	// MIR003 indicates a when-expression could not be optimized into a
	// Switch terminator and fell back to nested-if lowering.
	MIR003 = "MIR003"

	// MIR004 indicates a break/continue crossed a try region with a
	// finally block; per spec.md §9 this is a known gap, not inlined.
	MIR004 = "MIR004"

	// MIR005 indicates a call site fell through every priority level of
	// §4.3.7 and was emitted as a $PipeCall.
	MIR005 = "MIR005"
)

// Info describes one error code's phase and category for tooling.
type Info struct {
	Code        string
	Phase       string
	Category    string
	Description string
}

// Registry maps every code above to its Info.
var Registry = map[string]Info{
	HIR001: {HIR001, "asttohir", "scope", "Unresolved identifier"},
	HIR002: {HIR002, "asttohir", "type", "Unresolved type reference"},
	HIR003: {HIR003, "asttohir", "import", "Unclassified import"},
	HIR004: {HIR004, "asttohir", "accessor", "Accessor references unknown field"},
	DSC001: {DSC001, "descriptor", "resolution", "Method descriptor not found"},
	DSC002: {DSC002, "descriptor", "override", "Override has no ancestor"},
	MIR001: {MIR001, "lower", "scope", "Unresolved symbol"},
	MIR002: {MIR002, "lower", "constructor", "Delegation not inlined"},
	MIR003: {MIR003, "lower", "control-flow", "Switch optimization declined"},
	MIR004: {MIR004, "lower", "control-flow", "Finally not inlined across break/continue"},
	MIR005: {MIR005, "lower", "call", "Fell back to $PipeCall"},
}

// Lookup returns the Info for code, if known.
func Lookup(code string) (Info, bool) {
	info, ok := Registry[code]
	return info, ok
}
