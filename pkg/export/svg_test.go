package export

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderTimelineSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := renderTimelineSVG(&buf, sampleLevels(), "IoT Career Roadmap"); err != nil {
		t.Fatalf("renderTimelineSVG: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") {
		t.Error("output is not an SVG document")
	}
	for _, want := range []string{
		"IoT Career Roadmap",
		"Level 1: IoT Foundation",
		"Level 2: IoT Development",
		"Beginner",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderTimelineSVGEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := renderTimelineSVG(&buf, nil, "Empty"); err != nil {
		t.Fatalf("renderTimelineSVG: %v", err)
	}
	if !strings.Contains(buf.String(), "</svg>") {
		t.Error("empty timeline should still close the document")
	}
}
