package spacedrep

import (
	"math"
	"testing"

	"github.com/abhisek/secjobcoach/internal/day"
)

func freshCard(today day.Date) Card {
	return Card{ID: "quiz-1", Track: "both", Ease: InitialEase, Due: today}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestReview_FailOnFreshCard(t *testing.T) {
	today := day.New(2026, 3, 10)
	got := Review(freshCard(today), GradeWrong, today)

	if got.Repetitions != 0 {
		t.Errorf("Repetitions = %d, want 0", got.Repetitions)
	}
	if got.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", got.IntervalDays)
	}
	if !approx(got.Ease, 1.96) {
		t.Errorf("Ease = %v, want 1.96", got.Ease)
	}
	if want := day.New(2026, 3, 11); got.Due != want {
		t.Errorf("Due = %v, want %v", got.Due, want)
	}
	if got.LastReviewed == nil || *got.LastReviewed != today {
		t.Errorf("LastReviewed = %v, want %v", got.LastReviewed, today)
	}
}

func TestReview_ThreePerfectPasses(t *testing.T) {
	today := day.New(2026, 3, 10)
	c := freshCard(today)

	var intervals []int
	for range 3 {
		c = Review(c, GradePerfect, today)
		intervals = append(intervals, c.IntervalDays)
	}

	// ease: 2.5 -> 2.6 -> 2.7 -> 2.8, third interval = round(6 * 2.8)
	want := []int{1, 6, 17}
	for i := range want {
		if intervals[i] != want[i] {
			t.Errorf("interval[%d] = %d, want %d", i, intervals[i], want[i])
		}
	}
	if c.Repetitions != 3 {
		t.Errorf("Repetitions = %d, want 3", c.Repetitions)
	}
	if !approx(c.Ease, 2.8) {
		t.Errorf("Ease = %v, want 2.8", c.Ease)
	}
}

func TestReview_TwoPassesSequence(t *testing.T) {
	// For every passing grade, two passes from a fresh card give [1, 6] and
	// the third interval is round(6 * ease after the third step).
	for g := GradeDifficult; g <= GradePerfect; g++ {
		today := day.New(2026, 1, 1)
		c := freshCard(today)
		c = Review(c, g, today)
		if c.IntervalDays != 1 {
			t.Errorf("grade %d: first interval = %d, want 1", g, c.IntervalDays)
		}
		c = Review(c, g, today)
		if c.IntervalDays != 6 {
			t.Errorf("grade %d: second interval = %d, want 6", g, c.IntervalDays)
		}
		c = Review(c, g, today)
		if want := int(math.Round(6 * c.Ease)); c.IntervalDays != want {
			t.Errorf("grade %d: third interval = %d, want %d", g, c.IntervalDays, want)
		}
	}
}

func TestReview_FailResetsRegardlessOfState(t *testing.T) {
	today := day.New(2026, 6, 1)
	seasoned := Card{ID: "c", Repetitions: 7, IntervalDays: 120, Ease: 2.9, Due: today}

	for g := GradeBlackout; g < GradeDifficult; g++ {
		got := Review(seasoned, g, today)
		if got.Repetitions != 0 || got.IntervalDays != 1 {
			t.Errorf("grade %d: (rep, interval) = (%d, %d), want (0, 1)", g, got.Repetitions, got.IntervalDays)
		}
	}
}

func TestReview_EaseAlwaysClamped(t *testing.T) {
	today := day.New(2026, 6, 1)
	for _, ease := range []float64{MinEase, 1.5, InitialEase, 2.95, MaxEase} {
		for g := GradeBlackout; g <= GradePerfect; g++ {
			c := Card{Ease: ease, Repetitions: 3, IntervalDays: 10, Due: today}
			for range 5 {
				c = Review(c, g, today)
				if c.Ease < MinEase || c.Ease > MaxEase {
					t.Fatalf("ease %v grade %d: Ease = %v out of bounds", ease, g, c.Ease)
				}
			}
		}
	}
}

func TestReview_IntervalClampedToMax(t *testing.T) {
	today := day.New(2026, 6, 1)
	c := Card{Repetitions: 5, IntervalDays: 300, Ease: MaxEase, Due: today}

	got := Review(c, GradePerfect, today)
	if got.IntervalDays != MaxIntervalDays {
		t.Errorf("IntervalDays = %d, want %d", got.IntervalDays, MaxIntervalDays)
	}
	if want := today.AddDays(MaxIntervalDays); got.Due != want {
		t.Errorf("Due = %v, want %v", got.Due, want)
	}
}

func TestReview_DueUsesCalendarDays(t *testing.T) {
	tests := []struct {
		name  string
		today day.Date
		card  Card
		want  day.Date
	}{
		{"month end", day.New(2026, 1, 31), Card{Ease: 2.5}, day.New(2026, 2, 1)},
		{"year end", day.New(2025, 12, 31), Card{Ease: 2.5}, day.New(2026, 1, 1)},
		{"leap day", day.New(2028, 2, 28), Card{Ease: 2.5}, day.New(2028, 2, 29)},
		{"second pass across month", day.New(2026, 4, 28), Card{Ease: 2.5, Repetitions: 1, IntervalDays: 1}, day.New(2026, 5, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Review(tt.card, GradeHesitant, tt.today)
			if got.Due != tt.want {
				t.Errorf("Due = %v, want %v", got.Due, tt.want)
			}
		})
	}
}

func TestReview_DoesNotModifyInput(t *testing.T) {
	today := day.New(2026, 3, 10)
	prev := day.New(2026, 3, 1)
	in := Card{ID: "x", Repetitions: 2, IntervalDays: 6, Ease: 2.5, Due: today, LastReviewed: &prev}

	_ = Review(in, GradePerfect, today)

	if in.Repetitions != 2 || in.IntervalDays != 6 || in.Ease != 2.5 {
		t.Errorf("input mutated: %+v", in)
	}
	if *in.LastReviewed != prev {
		t.Errorf("input LastReviewed = %v, want %v", *in.LastReviewed, prev)
	}
}

func TestReview_ClampsOutOfRangeGrade(t *testing.T) {
	today := day.New(2026, 3, 10)
	if got, want := Review(freshCard(today), 9, today), Review(freshCard(today), GradePerfect, today); got.Ease != want.Ease {
		t.Errorf("grade 9 Ease = %v, want %v", got.Ease, want.Ease)
	}
	if got, want := Review(freshCard(today), -3, today), Review(freshCard(today), GradeBlackout, today); got.Ease != want.Ease {
		t.Errorf("grade -3 Ease = %v, want %v", got.Ease, want.Ease)
	}
}

func TestParseGrade(t *testing.T) {
	tests := []struct {
		in      string
		want    Grade
		wantErr bool
	}{
		{"0", GradeBlackout, false},
		{"3", GradeDifficult, false},
		{"5", GradePerfect, false},
		{"6", 0, true},
		{"-1", 0, true},
		{"", 0, true},
		{"a", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseGrade(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGrade(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseGrade(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
