// Command novalang is the thin demonstration driver for internal/hir's
// AstToHir and internal/lower's HirToMir: since no lexer or parser ships in
// this module (spec.md Non-goal), it reads a JSON fixture standing in for
// parsed source (see fixture.go) and runs it through the pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/hir/fromast"
	"github.com/novalang/novalang/internal/lower"
	"github.com/novalang/novalang/internal/mir"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)

	cfgPath string
	mode    string
)

func main() {
	root := &cobra.Command{
		Use:   "novalang",
		Short: "AST->HIR->MIR lowering pipeline driver",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to novalang.yaml")
	root.PersistentFlags().StringVar(&mode, "mode", "", "interpreter|compiled (overrides config)")

	root.AddCommand(lowerCmd(), dumpMirCmd(), replCmd())

	if err := root.Execute(); err != nil {
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolvedMode(cfg *config) string {
	if mode != "" {
		return mode
	}
	return cfg.Mode
}

func runPipeline(fixturePath string, cfg *config) (*mir.Module, []*errors.Report, error) {
	data, err := os.ReadFile(fixturePath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading fixture: %w", err)
	}
	prog, err := decodeFixture(data)
	if err != nil {
		return nil, nil, err
	}

	hirSink := &errors.Sink{}
	hirModule := fromast.AstToHir(prog, hirSink)

	opts := lower.Options{InterpreterMode: resolvedMode(cfg) == "interpreter"}
	mirModule, reports := lower.Lower(hirModule, opts)
	reports = append(hirSink.Reports(), reports...)
	return mirModule, reports, nil
}

func printReports(reports []*errors.Report) {
	for _, r := range reports {
		line := fmt.Sprintf("[%s] %s", r.Code, r.Message)
		if r.Span != nil {
			line = fmt.Sprintf("%s (%s)", line, r.Span.Start.String())
		}
		warnColor.Fprintln(os.Stderr, line)
	}
}

func lowerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lower <fixture.json>",
		Short: "Lower a fixture through AstToHir and HirToMir, printing the MIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			mirModule, reports, err := runPipeline(args[0], cfg)
			if err != nil {
				return err
			}
			printReports(reports)
			fmt.Print(mir.Pretty(mirModule))
			okColor.Println("lowered successfully")
			return nil
		},
	}
}

func dumpMirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-mir <fixture.json>",
		Short: "Lower a fixture and dump the full MirModule structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			mirModule, reports, err := runPipeline(args[0], cfg)
			if err != nil {
				return err
			}
			printReports(reports)
			spew.Dump(mirModule)
			return nil
		},
	}
}
