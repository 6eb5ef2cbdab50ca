package event

import (
	"testing"
)

func TestHeaderSet_Get(t *testing.T) {
	hs := HeaderSet{
		{Name: "Content-Type", Value: "text/plain"},
		{Name: "X-Bug-Start-Time", Value: "1.5"},
	}

	v, ok := hs.Get("content-type")
	if !ok || v != "text/plain" {
		t.Errorf("Get(content-type) = %q, %v", v, ok)
	}
	if _, ok := hs.Get("Missing"); ok {
		t.Error("Get(Missing) should report absence")
	}
}

func TestHeaderSet_SetReplacesInPlace(t *testing.T) {
	hs := HeaderSet{
		{Name: "A", Value: "1"},
		{Name: "B", Value: "2"},
		{Name: "a", Value: "3"},
	}
	hs.Set("A", "9")

	if len(hs) != 2 {
		t.Fatalf("expected duplicate dropped, got %d fields", len(hs))
	}
	if hs[0].Name != "A" || hs[0].Value != "9" {
		t.Errorf("first field = %+v, want A=9 in original position", hs[0])
	}
	if hs[1].Name != "B" {
		t.Errorf("field order not preserved: %+v", hs)
	}
}

func TestHeaderSet_SetAppendsWhenAbsent(t *testing.T) {
	var hs HeaderSet
	hs.Set("X-New", "v")
	if len(hs) != 1 || hs[0].Name != "X-New" {
		t.Errorf("Set on empty set = %+v", hs)
	}
}

func TestHeaderSet_AddKeepsDuplicates(t *testing.T) {
	var hs HeaderSet
	hs.Add("Set-Cookie", "a=1")
	hs.Add("Set-Cookie", "b=2")
	if len(hs) != 2 {
		t.Errorf("Add should keep duplicates, got %d", len(hs))
	}
}

func TestHeaderSet_CloneIsIndependent(t *testing.T) {
	hs := HeaderSet{{Name: "A", Value: "1"}}
	cl := hs.Clone()
	cl.Set("A", "2")

	if v, _ := hs.Get("A"); v != "1" {
		t.Errorf("mutating clone changed original: %v", hs)
	}
}
