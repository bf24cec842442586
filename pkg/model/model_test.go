package model

import (
	"errors"
	"testing"
)

// buildTestServer creates the demo tree used throughout the tests:
// Protection/MMXU1.PhV with two phase voltage attributes.
func buildTestServer(t *testing.T) (*Server, *DataAttribute, *DataAttribute) {
	t.Helper()

	s := NewServer("MyIED")
	ld, err := s.AddLogicalDevice("Protection")
	if err != nil {
		t.Fatalf("AddLogicalDevice failed: %v", err)
	}
	ln, err := ld.AddLogicalNode("MMXU1")
	if err != nil {
		t.Fatalf("AddLogicalNode failed: %v", err)
	}
	do, err := ln.AddDataObject("PhV")
	if err != nil {
		t.Fatalf("AddDataObject failed: %v", err)
	}
	phsA, err := do.AddAttribute("phsA.cVal.mag.f", 220.0)
	if err != nil {
		t.Fatalf("AddAttribute phsA failed: %v", err)
	}
	phsB, err := do.AddAttribute("phsB.cVal.mag.f", 219.5)
	if err != nil {
		t.Fatalf("AddAttribute phsB failed: %v", err)
	}
	return s, phsA, phsB
}

func TestTreeBuilding(t *testing.T) {
	s, phsA, _ := buildTestServer(t)

	t.Run("Paths", func(t *testing.T) {
		ld, _ := s.LogicalDevice("Protection")
		ln, _ := ld.LogicalNode("MMXU1")
		do, _ := ln.DataObject("PhV")

		if ld.Path() != "Protection" {
			t.Errorf("LD path = %q, want Protection", ld.Path())
		}
		if ln.Path() != "Protection/MMXU1" {
			t.Errorf("LN path = %q, want Protection/MMXU1", ln.Path())
		}
		if do.Path() != "Protection/MMXU1.PhV" {
			t.Errorf("DO path = %q, want Protection/MMXU1.PhV", do.Path())
		}
		if phsA.Path() != "Protection/MMXU1.PhV.phsA.cVal.mag.f" {
			t.Errorf("DA path = %q", phsA.Path())
		}
	})

	t.Run("Lookups", func(t *testing.T) {
		if _, ok := s.LogicalDevice("Measurement"); ok {
			t.Error("unexpected logical device Measurement")
		}
		ld, ok := s.LogicalDevice("Protection")
		if !ok {
			t.Fatal("logical device Protection not found")
		}
		if _, ok := ld.LogicalNode("XCBR1"); ok {
			t.Error("unexpected logical node XCBR1")
		}
	})
}

func TestDuplicateNames(t *testing.T) {
	s, _, _ := buildTestServer(t)
	ld, _ := s.LogicalDevice("Protection")
	ln, _ := ld.LogicalNode("MMXU1")
	do, _ := ln.DataObject("PhV")

	tests := []struct {
		name string
		add  func() error
	}{
		{"LogicalDevice", func() error { _, err := s.AddLogicalDevice("Protection"); return err }},
		{"LogicalNode", func() error { _, err := ld.AddLogicalNode("MMXU1"); return err }},
		{"DataObject", func() error { _, err := ln.AddDataObject("PhV"); return err }},
		{"DataAttribute", func() error { _, err := do.AddAttribute("phsA.cVal.mag.f", 0.0); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.add(); !errors.Is(err, ErrDuplicateName) {
				t.Errorf("error = %v, want ErrDuplicateName", err)
			}
		})
	}
}

func TestResolveRoundTrip(t *testing.T) {
	s, phsA, phsB := buildTestServer(t)

	for _, attr := range []*DataAttribute{phsA, phsB} {
		resolved, err := s.Resolve(attr.Path())
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", attr.Path(), err)
		}
		if resolved != attr {
			t.Errorf("Resolve(%q) returned a different attribute", attr.Path())
		}
	}
}

func TestResolveMissingSegment(t *testing.T) {
	s, _, _ := buildTestServer(t)

	tests := []struct {
		path    string
		missing string
	}{
		{"Station/MMXU1.PhV.phsA.cVal.mag.f", "Station"},
		{"Protection/MMXU9.PhV.phsA.cVal.mag.f", "MMXU9"},
		{"Protection/MMXU1.Pos.phsA.cVal.mag.f", "Pos"},
		{"Protection/MMXU1.PhV.phsC.cVal.mag.f", "phsC.cVal.mag.f"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			attr, err := s.Resolve(tt.path)
			if attr != nil {
				t.Fatal("Resolve returned a partial attribute on failure")
			}
			if !errors.Is(err, ErrPathNotFound) {
				t.Fatalf("error = %v, want ErrPathNotFound", err)
			}
			var pathErr *PathError
			if !errors.As(err, &pathErr) {
				t.Fatalf("error %T is not a *PathError", err)
			}
			if pathErr.Segment != tt.missing {
				t.Errorf("missing segment = %q, want %q", pathErr.Segment, tt.missing)
			}
		})
	}
}

func TestResolveMalformed(t *testing.T) {
	s, _, _ := buildTestServer(t)

	paths := []string{
		"",
		"Protection",
		"Protection/MMXU1",
		"Protection/MMXU1.PhV",
		"Protection/MMXU1.PhV.",
		"Protection/MMXU1..phsA",
		"/MMXU1.PhV.phsA",
		"Protection/MMXU1/PhV.phsA.f",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			if _, err := s.Resolve(path); !errors.Is(err, ErrPathNotFound) {
				t.Errorf("Resolve(%q) error = %v, want ErrPathNotFound", path, err)
			}
		})
	}
}

func TestParsePathDottedAttribute(t *testing.T) {
	p, err := ParsePath("Protection/MMXU1.PhV.phsA.cVal.mag.f")
	if err != nil {
		t.Fatalf("ParsePath failed: %v", err)
	}
	if p.LogicalDevice != "Protection" || p.LogicalNode != "MMXU1" || p.DataObject != "PhV" {
		t.Errorf("unexpected segments: %+v", p)
	}
	if p.DataAttribute != "phsA.cVal.mag.f" {
		t.Errorf("DataAttribute = %q, want phsA.cVal.mag.f verbatim", p.DataAttribute)
	}
	if p.String() != "Protection/MMXU1.PhV.phsA.cVal.mag.f" {
		t.Errorf("String() = %q does not round-trip", p.String())
	}
}

func TestDirectory(t *testing.T) {
	s, _, _ := buildTestServer(t)

	want := []DirEntry{
		{LevelLogicalDevice, "Protection", "Protection"},
		{LevelLogicalNode, "MMXU1", "Protection/MMXU1"},
		{LevelDataObject, "PhV", "Protection/MMXU1.PhV"},
		{LevelDataAttribute, "phsA.cVal.mag.f", "Protection/MMXU1.PhV.phsA.cVal.mag.f"},
		{LevelDataAttribute, "phsB.cVal.mag.f", "Protection/MMXU1.PhV.phsB.cVal.mag.f"},
	}

	collect := func() []DirEntry {
		var got []DirEntry
		for entry := range s.Directory() {
			got = append(got, entry)
		}
		return got
	}

	t.Run("InsertionOrder", func(t *testing.T) {
		got := collect()
		if len(got) != len(want) {
			t.Fatalf("got %d entries, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("Restartable", func(t *testing.T) {
		first, second := collect(), collect()
		if len(first) != len(second) {
			t.Fatalf("second iteration yielded %d entries, want %d", len(second), len(first))
		}
	})

	t.Run("EarlyStop", func(t *testing.T) {
		count := 0
		for range s.Directory() {
			count++
			if count == 2 {
				break
			}
		}
		if count != 2 {
			t.Errorf("stopped after %d entries, want 2", count)
		}
	})
}

func TestLevelString(t *testing.T) {
	levels := map[Level]string{
		LevelLogicalDevice: "LD",
		LevelLogicalNode:   "LN",
		LevelDataObject:    "DO",
		LevelDataAttribute: "DA",
	}
	for level, want := range levels {
		if level.String() != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, level.String(), want)
		}
	}
}
