package adapters

import "testing"

func TestBuildMixFilterGraphWithVoice(t *testing.T) {
	graph := buildMixFilterGraph(0.4, 1.5, 1000, true)

	want := "[1:a]volume=0.4[music];[2:a]adelay=1000|1000,volume=1.5[voice];[music][voice]amix=inputs=2:duration=longest[a]"
	if graph != want {
		t.Fatalf("unexpected filter graph:\n got %q\nwant %q", graph, want)
	}
}

func TestBuildMixFilterGraphWithoutVoice(t *testing.T) {
	graph := buildMixFilterGraph(0.4, 1.5, 1000, false)

	if graph != "[1:a]volume=0.4[a]" {
		t.Fatalf("unexpected voiceless filter graph: %q", graph)
	}
}
