package utils

import "testing"

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if len(a) != 16 {
		t.Errorf("len = %d, want 16", len(a))
	}
	if a == b {
		t.Error("ids must differ")
	}
}

func TestStringToSeed(t *testing.T) {
	if StringToSeed("skirmish") != StringToSeed("skirmish") {
		t.Error("seed must be stable")
	}
	if StringToSeed("a") == StringToSeed("b") {
		t.Error("different strings should give different seeds")
	}
}
