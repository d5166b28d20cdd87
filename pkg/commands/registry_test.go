package commands

import (
	"strings"
	"testing"
)

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry([]Definition{
		{Name: "help", Aliases: []string{"h"}, Description: "Show help"},
		{Name: "voices", Description: "Pick a voice"},
	})

	if def, ok := r.Lookup("h"); !ok || def.Name != "help" {
		t.Fatalf("Lookup(h) = %+v, %v", def, ok)
	}
	if _, ok := r.Lookup("start"); ok {
		t.Fatal("expected start to be missing")
	}
}

func TestRegistry_DefinitionsIsACopy(t *testing.T) {
	r := NewRegistry([]Definition{{Name: "help"}})

	defs := r.Definitions()
	defs[0].Name = "mutated"

	if r.Definitions()[0].Name != "help" {
		t.Fatal("Definitions must not expose internal slice")
	}
}

func TestFormatHelpLines(t *testing.T) {
	got := FormatHelpLines([]Definition{
		{Name: "start", Description: "Display the welcome message."},
		{Name: "voices", Usage: "/voices", Description: ""},
	})

	want := "/start - Display the welcome message.\n/voices - No description"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if !strings.Contains(FormatHelpLines(nil), "No commands") {
		t.Fatal("expected empty message")
	}
}
