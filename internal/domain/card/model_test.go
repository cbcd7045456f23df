package card

import (
	"math"
	"testing"
)

func sample() *Card {
	c := &Card{
		ID:         "CARD-TEST01",
		Name:       "Ember Warden",
		Archetype:  ArchetypeTank,
		AttackType: AttackMelee,
		Attack:     80, Defense: 85, Speed: 60, Tempo: 55,
		AttackTypeScore: 70, SynergyScore: 65,
		Age: 0, Lifespan: 5,
	}
	c.RecomputeDerived()
	c.Cost = BaseCostFor(c.Power)
	c.BaseCost = c.Cost
	return c
}

func TestPowerScoreWeights(t *testing.T) {
	// All attributes equal must yield that same value since weights sum to 1.
	got := PowerScore(70, 70, 70, 70, 70, 70)
	if math.Abs(got-70) > 1e-9 {
		t.Fatalf("PowerScore(70,...) = %v, want 70", got)
	}
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		power float64
		want  Grade
	}{
		{95, GradeS},
		{90, GradeS},
		{89.99, GradeA},
		{80, GradeA},
		{75, GradeB},
		{60, GradeC},
		{59.99, GradeD},
		{10, GradeD},
	}
	for _, tt := range tests {
		if got := GradeFor(tt.power); got != tt.want {
			t.Fatalf("GradeFor(%v) = %s, want %s", tt.power, got, tt.want)
		}
	}
}

func TestBaseCostFloor(t *testing.T) {
	if got := BaseCostFor(40); got != CostFloor {
		t.Fatalf("BaseCostFor(40) = %v, want floor %v", got, CostFloor)
	}
	if got := BaseCostFor(98); got != Round2((98.0-50)/12) {
		t.Fatalf("BaseCostFor(98) = %v", got)
	}
}

func TestFatigueFactorBounds(t *testing.T) {
	c := sample()

	c.Fatigue = FatigueMax
	if got := c.FatigueFactor(); got != 1.0 {
		t.Fatalf("factor at full stamina = %v, want 1.0", got)
	}

	c.Fatigue = FatigueMin
	if got := c.FatigueFactor(); got != FatigueFloorFraction {
		t.Fatalf("factor at zero stamina = %v, want %v", got, FatigueFloorFraction)
	}
}

func TestApplyFatigueClamps(t *testing.T) {
	c := sample()
	c.Fatigue = 10
	c.ApplyFatigue(-50)
	if c.Fatigue != FatigueMin {
		t.Fatalf("fatigue = %v, want clamped to %v", c.Fatigue, FatigueMin)
	}
	c.ApplyFatigue(500)
	if c.Fatigue != FatigueMax {
		t.Fatalf("fatigue = %v, want clamped to %v", c.Fatigue, FatigueMax)
	}
}

func TestRecordContribution(t *testing.T) {
	c := sample()
	c.RecordContribution(10)
	c.RecordContribution(20)
	if c.GamesPlayed != 2 {
		t.Fatalf("games played = %d, want 2", c.GamesPlayed)
	}
	if math.Abs(c.AvgContribution-15) > 1e-9 {
		t.Fatalf("avg contribution = %v, want 15", c.AvgContribution)
	}
}

func TestValidate(t *testing.T) {
	c := sample()
	if err := c.Validate(); err != nil {
		t.Fatalf("valid card rejected: %v", err)
	}

	bad := *c
	bad.Attack = 101
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for attack above bounds")
	}

	bad = *c
	bad.Cost = 0.1
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for cost below floor")
	}

	bad = *c
	bad.Lifespan = 2
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for lifespan below minimum")
	}

	bad = *c
	bad.Archetype = "JUGGLER"
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for unknown archetype")
	}
}
