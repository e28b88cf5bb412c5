package mir

import "fmt"

// Pretty renders a module as an indented block listing, in the spirit of
// the teacher's core.Pretty stub: a debug aid, not a serialization format.
func Pretty(m *Module) string {
	out := fmt.Sprintf("module %s\n", m.PackageName)
	for _, c := range m.Classes {
		out += fmt.Sprintf("  class %s : %s\n", c.InternalName, c.SuperClass)
		for _, fn := range c.Methods {
			out += "    " + PrettyFunction(fn) + "\n"
		}
	}
	for _, fn := range m.Functions {
		out += "  " + PrettyFunction(fn) + "\n"
	}
	return out
}

// PrettyFunction renders one function's signature and block count.
func PrettyFunction(f *Function) string {
	return fmt.Sprintf("fn %s%s (%d blocks, %d locals)", f.Name, f.Descriptor, len(f.Blocks), len(f.Locals))
}
