package patch

import "testing"

func TestFieldDirtyTracking(t *testing.T) {
	f := NewField(60)

	if f.Dirty() {
		t.Fatalf("fresh field unexpectedly dirty")
	}
	f.Set(300)
	if !f.Dirty() || f.Value() != 300 || f.Baseline() != 60 {
		t.Fatalf("after Set: dirty=%v value=%d baseline=%d", f.Dirty(), f.Value(), f.Baseline())
	}
	f.Set(60)
	if f.Dirty() {
		t.Fatalf("field reverted to baseline still dirty")
	}
}

func TestTextFieldDirtyTracking(t *testing.T) {
	f := NewTextField("iddqd")

	f.Set("totalgod")
	if !f.Dirty() || f.Value() != "totalgod" || f.Baseline() != "iddqd" {
		t.Fatalf("after Set: dirty=%v value=%q baseline=%q", f.Dirty(), f.Value(), f.Baseline())
	}
	f.Set("iddqd")
	if f.Dirty() {
		t.Fatalf("text field reverted to baseline still dirty")
	}
}

func TestActionFieldDirtyTracking(t *testing.T) {
	f := NewActionField("Look")

	f.Set("")
	if !f.Dirty() {
		t.Fatalf("cleared action not dirty")
	}
	f.Set("Look")
	if f.Dirty() {
		t.Fatalf("restored action still dirty")
	}

	var unbound ActionField
	if unbound.Dirty() || unbound.Value() != "" {
		t.Fatalf("zero action field wrong. dirty=%v value=%q", unbound.Dirty(), unbound.Value())
	}
}
