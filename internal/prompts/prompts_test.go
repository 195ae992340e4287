package prompts

import (
	"strings"
	"testing"
)

func TestBuildIntentPrompt(t *testing.T) {
	prompt, err := BuildIntentPrompt(IntentCheckInput{
		Requirements: "add() must sum both arguments.",
		Diff:         "-    return a\n+    return a + b",
		Context:      ">>>>> File: calc.py",
	})
	if err != nil {
		t.Fatalf("BuildIntentPrompt() error = %v", err)
	}

	for _, want := range []string{
		"add() must sum both arguments.",
		"-    return a",
		">>>>> File: calc.py",
		"Result: PASS or FAIL",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildIntentPromptPlaceholders(t *testing.T) {
	prompt, err := BuildIntentPrompt(IntentCheckInput{
		Requirements: "  ",
		Diff:         "+x = 1",
		Context:      "",
	})
	if err != nil {
		t.Fatalf("BuildIntentPrompt() error = %v", err)
	}

	if !strings.Contains(prompt, "the linked issue body is empty") {
		t.Error("prompt missing requirements placeholder")
	}
	if !strings.Contains(prompt, "no structural context could be extracted") {
		t.Error("prompt missing context placeholder")
	}
}
