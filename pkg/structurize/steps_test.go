package structurize

import "testing"

func TestStepperMatchesRunOnDiamond(t *testing.T) {
	pool, nodes := newDiamond()

	stepper := NewStepper(pool, nil)
	var names []string
	for !stepper.Done() {
		name, err, _ := stepper.Next()
		if err != nil {
			t.Fatalf("step %s: %v", name, err)
		}
		names = append(names, name)
	}
	if len(names) != 8 {
		t.Fatalf("expected 8 steps, got %d: %v", len(names), names)
	}

	if nodes["entry"].Merge.String() != "selection" {
		t.Fatalf("entry.Merge = %s, want selection", nodes["entry"].Merge.String())
	}
}

func TestStepperPosCountsCompletedSteps(t *testing.T) {
	pool, _ := newDiamond()
	stepper := NewStepper(pool, nil)

	for i := 0; i < 3; i++ {
		if _, err, _ := stepper.Next(); err != nil {
			t.Fatalf("unexpected error at step %d: %v", i, err)
		}
	}
	pos := stepper.Pos()
	if pos != 3 {
		t.Fatalf("Pos() = %d, want 3", pos)
	}
}
