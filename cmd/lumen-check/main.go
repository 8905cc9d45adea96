// lumen-check runs solver scenario fixtures and reports the outcome.
//
// Usage:
//
//	lumen-check [-config lumen.yaml] scenario.yaml [more.yaml ...]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lumen-lang/lumen/internal/checker"
	"github.com/lumen-lang/lumen/internal/config"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
)

func main() {
	configPath := flag.String("config", config.ConfigFileName, "path to the options file")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: lumen-check [-config lumen.yaml] scenario.yaml ...")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lumen-check:", err)
		os.Exit(2)
	}

	useColor := false
	switch cfg.Color {
	case "always":
		useColor = true
	case "never":
	default:
		useColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	c := checker.New(cfg)
	failed := 0
	for _, path := range flag.Args() {
		sc, err := checker.LoadScenario(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "lumen-check:", err)
			failed++
			continue
		}

		report := c.CheckScenario(sc)
		printReport(path, report, useColor)
		if !report.Passed() {
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func printReport(path string, report *checker.Report, useColor bool) {
	status := "PASS"
	color := colorGreen
	if !report.Passed() {
		status = "FAIL"
		color = colorRed
	}

	if useColor {
		fmt.Printf("%s%s%s %s (%s)\n", color, status, colorReset, path, report.Unit.Name)
	} else {
		fmt.Printf("%s %s (%s)\n", status, path, report.Unit.Name)
	}

	for _, failure := range report.Failures {
		fmt.Printf("    %s\n", failure)
	}
	for _, err := range report.Errors {
		fmt.Printf("    error: %s\n", err)
	}
	for name, resolved := range report.Resolved {
		fmt.Printf("    %s = %s\n", name, resolved)
	}
}
