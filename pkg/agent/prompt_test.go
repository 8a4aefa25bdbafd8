package agent

import "testing"

func TestBuildPrompt_EmptyMemory(t *testing.T) {
	got := BuildPrompt("hello", "")
	want := "You are a helpful assistant.\n\nUser:\nhello"
	if got != want {
		t.Fatalf("BuildPrompt = %q, want %q", got, want)
	}
}

func TestBuildPrompt_WithMemory(t *testing.T) {
	got := BuildPrompt("bye", "User: hi\nAgent: hello")
	want := "You are a helpful assistant.\n\nRecent memory:\nUser: hi\nAgent: hello\n\nUser:\nbye"
	if got != want {
		t.Fatalf("BuildPrompt = %q, want %q", got, want)
	}
}

func TestBuildPrompt_EmptyUserTurn(t *testing.T) {
	got := BuildPrompt("", "")
	want := "You are a helpful assistant.\n\nUser:\n"
	if got != want {
		t.Fatalf("BuildPrompt = %q, want %q", got, want)
	}
}
