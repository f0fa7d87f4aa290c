package main

import (
	"log"
	"os"

	"github.com/grovetools/keybind/pkg/keymap"
)

func main() {
	data, err := keymap.Schema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	// Write to the module root
	if err := os.WriteFile("keybind.schema.json", data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated bindings schema at keybind.schema.json")
}
