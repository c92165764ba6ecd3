package economy

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		value  int
		want   string
	}{
		{name: "iron ingot", amount: 10, value: 40, want: "4.00"},
		{name: "basalt stone", amount: 3, value: 5, want: "0.15"},
		{name: "spice melange", amount: 7, value: 2500, want: "175.00"},
		{name: "single unit", amount: 1, value: 1, want: "0.01"},
		{name: "large amount", amount: 123456789, value: 4500, want: "5555555505.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.amount, tt.value)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCalculateMatchesDecimalReference(t *testing.T) {
	values := []int{1, 5, 10, 40, 50, 150, 230, 350, 2500, 4500}
	for amount := int64(1); amount <= 500; amount++ {
		for _, v := range values {
			p := Calculate(amount, v)

			want := new(big.Rat).SetFrac64(amount*int64(v), ValueScale)
			got := new(big.Rat).SetFrac64(p.Hundredths(), ValueScale)
			if want.Cmp(got) != 0 {
				t.Fatalf("Calculate(%d, %d) = %s, want %s", amount, v, got.FloatString(2), want.FloatString(2))
			}

			f, _ := want.Float64()
			if p.Float64() != f {
				t.Fatalf("Calculate(%d, %d).Float64() = %v, want %v", amount, v, p.Float64(), f)
			}
		}
	}
}

func TestPointsSumIsExact(t *testing.T) {
	var total Points
	for _, amount := range []int64{10, 20, 70} {
		total += Calculate(amount, 40)
	}

	assert.Equal(t, int64(4000), total.Hundredths())
	assert.Equal(t, 40.0, total.Float64())
	assert.Equal(t, "40.00", total.String())
}

func TestUnitValue(t *testing.T) {
	assert.Equal(t, "0.40", UnitValue(40))
	assert.Equal(t, "0.05", UnitValue(5))
	assert.Equal(t, "45.00", UnitValue(4500))
	assert.Equal(t, "-1.50", formatScaled(-150))
}

func TestCalculateAtCaps(t *testing.T) {
	p := Calculate(MaxContributionAmount, MaxMaterialValue)
	assert.Equal(t, int64(10_000_000_000_000), p.Hundredths())
	assert.Equal(t, "100000000000.00", p.String())
}
