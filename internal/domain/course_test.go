package domain

import "testing"

func TestDiscountPercent(t *testing.T) {
	cases := []struct {
		name  string
		price int64
		old   int64
		want  int
	}{
		{"no old price", 500000, 0, 0},
		{"old equals price", 500000, 500000, 0},
		{"old below price", 500000, 400000, 0},
		{"half off", 250000, 500000, 50},
		{"rounds nearest", 670000, 1000000, 33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Course{Price: tc.price, OldPrice: tc.old}
			if got := c.DiscountPercent(); got != tc.want {
				t.Fatalf("DiscountPercent() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCourseAvailability(t *testing.T) {
	uncapped := Course{IsActive: true}
	if !uncapped.Available(1000) {
		t.Fatal("uncapped active course must stay available")
	}
	if got := uncapped.FreeSlots(1000); got != -1 {
		t.Fatalf("FreeSlots() = %d, want -1 for uncapped", got)
	}

	capped := Course{IsActive: true, MaxStudents: 10}
	if !capped.Available(9) {
		t.Fatal("course with a free slot must be available")
	}
	if capped.Available(10) {
		t.Fatal("full course must not be available")
	}
	if got := capped.FreeSlots(7); got != 3 {
		t.Fatalf("FreeSlots() = %d, want 3", got)
	}
	if got := capped.FreeSlots(15); got != 0 {
		t.Fatalf("FreeSlots() = %d, want 0 when oversubscribed", got)
	}

	inactive := Course{IsActive: false}
	if inactive.Available(0) {
		t.Fatal("inactive course must not be available")
	}
}
