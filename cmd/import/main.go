package main

import (
	"flag"
	"fmt"
	"os"

	"evnav/importer"
)

func main() {
	var (
		inputFile = flag.String("i", "", "Input file path")
		format    = flag.String("f", "", "Format (json, text) - auto-detect if not specified")
		output    = flag.String("o", "", "Output file path (default: stdout)")
	)

	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required (-i)\n")
		flag.Usage()
		os.Exit(1)
	}

	// Read input file
	content, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	// Create importer registry
	registry := importer.NewImporterRegistry()

	// Import the layout
	var layout *importer.Layout
	if *format != "" {
		layout, err = registry.ImportWithFormat(content, *format)
	} else if imp, ok := registry.ForFile(*inputFile); ok {
		layout, err = imp.Import(content)
	} else {
		layout, err = registry.Import(content)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing layout: %v\n", err)
		os.Exit(1)
	}

	// Convert to the JSON layout format
	jsonData, err := importer.Marshal(layout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting to JSON: %v\n", err)
		os.Exit(1)
	}

	// Output result
	if *output != "" {
		err = os.WriteFile(*output, jsonData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully converted layout to %s\n", *output)
	} else {
		fmt.Println(string(jsonData))
	}
}
