package precision

import (
	"math/big"
	"strings"
	"testing"
)

func TestContextBits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		digits uint64
		want   uint
	}{
		{0, GuardBits},
		{1, 4 + GuardBits},
		{10, 34 + GuardBits},
		{1000, 3322 + GuardBits},
	}
	for _, tt := range tests {
		if got := New(tt.digits).Bits(); got != tt.want {
			t.Errorf("New(%d).Bits() = %d, want %d", tt.digits, got, tt.want)
		}
	}
}

func TestContextIsAValue(t *testing.T) {
	t.Parallel()
	base := New(1000)
	raised := base.WithDigits(1100)
	if base.Digits() != 1000 {
		t.Errorf("WithDigits mutated the receiver: %d", base.Digits())
	}
	if raised.Digits() != 1100 {
		t.Errorf("raised.Digits() = %d, want 1100", raised.Digits())
	}
	if raised.Bits() <= base.Bits() {
		t.Errorf("raised bits %d should exceed base bits %d", raised.Bits(), base.Bits())
	}
}

func TestContextFloatsCarryPrecision(t *testing.T) {
	t.Parallel()
	ctx := New(200)
	if got := ctx.NewFloat().Prec(); got != ctx.Bits() {
		t.Errorf("NewFloat precision = %d, want %d", got, ctx.Bits())
	}
	if got := ctx.FromInt(big.NewInt(13591409)).Prec(); got != ctx.Bits() {
		t.Errorf("FromInt precision = %d, want %d", got, ctx.Bits())
	}
	q := ctx.Quo(ctx.FromInt(big.NewInt(1)), ctx.FromInt(big.NewInt(3)))
	if !strings.HasPrefix(Text(q, 50), "0.33333333333333333333333333333333333333333333333333") {
		t.Errorf("unexpected 1/3: %s", Text(q, 50))
	}
}

func TestChudnovskyConstant(t *testing.T) {
	t.Parallel()
	// 426880·√10005 = 42698670.666333395817712889..., rounded to 15 decimals.
	c := New(40).Chudnovsky()
	got := Text(c, 15)
	want := "42698670.666333395817713"
	if got != want {
		t.Errorf("Chudnovsky() = %s, want %s", got, want)
	}
}

func TestQuoPanicsOnNaN(t *testing.T) {
	t.Parallel()
	defer func() {
		r := recover()
		if _, ok := r.(big.ErrNaN); !ok {
			t.Fatalf("expected big.ErrNaN panic, got %v", r)
		}
	}()
	ctx := New(20)
	ctx.Quo(ctx.NewFloat(), ctx.NewFloat())
}

func TestTextNil(t *testing.T) {
	t.Parallel()
	if Text(nil, 10) != "" {
		t.Error("Text(nil) should be empty")
	}
}
