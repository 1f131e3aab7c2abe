package types

import "testing"

func TestAmountValid(t *testing.T) {
	cases := []struct {
		a    Amount
		want bool
	}{
		{0, true},
		{1, true},
		{MaxMoney, true},
		{MaxMoney + 1, false},
		{-1, true}, // the backward-transfer null sentinel
		{-2, false},
	}
	for _, c := range cases {
		if got := c.a.Valid(); got != c.want {
			t.Errorf("Amount(%d).Valid() = %v, want %v", c.a, got, c.want)
		}
	}
}

func TestSumAmounts(t *testing.T) {
	sum, err := SumAmounts(10, 20, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != 60 {
		t.Errorf("sum = %d, want 60", sum)
	}

	_, err = SumAmounts(MaxMoney, 1)
	if err != ErrAmountOutOfRange {
		t.Errorf("expected ErrAmountOutOfRange on overflow, got %v", err)
	}

	_, err = SumAmounts(-5)
	if err != ErrAmountOutOfRange {
		t.Errorf("expected ErrAmountOutOfRange on negative term, got %v", err)
	}
}
