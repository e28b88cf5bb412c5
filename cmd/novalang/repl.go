package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/hir/fromast"
	"github.com/novalang/novalang/internal/lower"
	"github.com/novalang/novalang/internal/mir"
	"github.com/novalang/novalang/internal/typetable"
)

// replState threads the two cross-module pieces of lowering state
// (spec.md §5/§9) across successive increments the way a REPL is the
// motivating incremental driver: the anonymous-class-counter seed and the
// external-class registrations accumulated from previously lowered
// declarations.
type replState struct {
	anonSeed        int
	externalClasses []*typetable.ClassInfo
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read one declaration-shaped JSON fixture per line and lower it incrementally",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			return runREPL(cfg)
		},
	}
}

func runREPL(cfg *config) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	state := &replState{}
	prompt := color.New(color.FgCyan).Sprint("novalang> ")

	for {
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		prog, err := decodeFixture([]byte(input))
		if err != nil {
			color.New(color.FgRed).Println(err)
			continue
		}

		hirSink := &errors.Sink{}
		hirModule := fromast.AstToHir(prog, hirSink)

		opts := lower.Options{
			InterpreterMode: resolvedMode(cfg) == "interpreter",
			AnonClassSeed:   state.anonSeed,
			ExternalClasses: state.externalClasses,
		}
		mirModule, reports := lower.Lower(hirModule, opts)
		printReports(append(hirSink.Reports(), reports...))
		fmt.Print(mir.Pretty(mirModule))

		state.anonSeed = nextAnonSeed(state.anonSeed, mirModule)
		state.externalClasses = append(state.externalClasses, classInfosFrom(mirModule)...)
	}
}

// nextAnonSeed advances the counter past every class this increment
// declared, so a later increment's anonymous (lambda) classes never collide
// with names already emitted.
func nextAnonSeed(seed int, m *mir.Module) int {
	return seed + len(m.Classes)
}

// classInfosFrom projects this increment's lowered classes into ClassInfo
// registrations for the next increment's TypeTable, so a later fixture can
// reference a class declared in an earlier REPL line.
func classInfosFrom(m *mir.Module) []*typetable.ClassInfo {
	infos := make([]*typetable.ClassInfo, 0, len(m.Classes))
	for _, c := range m.Classes {
		ci := &typetable.ClassInfo{
			InternalName: c.InternalName,
			SuperClass:   c.SuperClass,
			Interfaces:   c.Interfaces,
			Fields:       map[string]bool{},
			Methods:      map[string]string{},
			Annotations:  map[string]map[string]any{},
		}
		for _, f := range c.Fields {
			ci.Fields[f.Name] = true
		}
		for _, fn := range c.Methods {
			ci.Methods[fn.Name] = fn.Descriptor
		}
		infos = append(infos, ci)
	}
	return infos
}
