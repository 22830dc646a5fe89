package core

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases and trims",
			in:   "  Rennvelo Carbon 56cm  ",
			want: "rennvelo carbon 56cm",
		},
		{
			name: "umlauts fold to digraphs",
			in:   "Zürich Fußball Händler",
			want: "zuerich fussball haendler",
		},
		{
			name: "accents stripped",
			in:   "Vélo café Genève",
			want: "velo cafe geneve",
		},
		{
			name: "punctuation becomes whitespace",
			in:   "Rolex, Ref. 16610 (LV)",
			want: "rolex ref 16610 lv",
		},
		{
			name: "whitespace collapses",
			in:   "a\t b\n\nc",
			want: "a b c",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Zürich Fußball Händler",
		"Vélo café Genève",
		"  MIXED case   and\tspaces ",
		"Öl & Äpfel: übrig?",
		"plain ascii already normal",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "splits and keeps digits",
			in:   "Rennvelo Carbon 56cm",
			want: []string{"rennvelo", "carbon", "56cm"},
		},
		{
			name: "drops single-rune tokens",
			in:   "a bike x",
			want: []string{"bike"},
		},
		{
			name: "empty",
			in:   "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSwapDigraphs(t *testing.T) {
	if got := SwapDigraphs("fuessball"); got != "fussball" {
		t.Errorf("SwapDigraphs(fuessball) = %q, want fussball", got)
	}
	if got := SwapDigraphs("zuerich"); got != "zurich" {
		t.Errorf("SwapDigraphs(zuerich) = %q, want zurich", got)
	}
	if got := SwapDigraphs("plain"); got != "plain" {
		t.Errorf("SwapDigraphs(plain) = %q, want plain", got)
	}
}
