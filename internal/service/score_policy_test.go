package service

import "testing"

func TestDefaultScorePolicy(t *testing.T) {
	policy := DefaultScorePolicy{}

	cases := []struct {
		name string
		snap Snapshot
		want int
	}{
		{
			name: "empty snapshot",
			snap: Snapshot{},
			want: 0,
		},
		{
			name: "typical candidate",
			// 5*4 + 3*5(capped 15) + 10 + 1*2 + 10/7*5 + 4 = 20+15+10+2+5+4 = 56
			snap: Snapshot{
				ApplicationCount:    5,
				InterviewCount:      3,
				ResumePresent:       true,
				FlashcardDeckCount:  1,
				StreakDays:          10,
				RecentActivityCount: 4,
			},
			want: 56,
		},
		{
			name: "applications alone cap at 20",
			snap: Snapshot{ApplicationCount: 100},
			want: 20,
		},
		{
			name: "interviews alone cap at 15",
			snap: Snapshot{InterviewCount: 50},
			want: 15,
		},
		{
			name: "decks alone cap at 5",
			snap: Snapshot{FlashcardDeckCount: 40},
			want: 5,
		},
		{
			name: "streak below one week contributes nothing",
			snap: Snapshot{StreakDays: 6},
			want: 0,
		},
		{
			name: "streak alone cap at 15",
			snap: Snapshot{StreakDays: 365},
			want: 15,
		},
		{
			name: "recent activity cap at 5",
			snap: Snapshot{RecentActivityCount: 10},
			want: 5,
		},
		{
			name: "everything maxed stays below 95",
			snap: Snapshot{
				ApplicationCount:    1000,
				InterviewCount:      1000,
				ResumePresent:       true,
				FlashcardDeckCount:  1000,
				StreakDays:          1000,
				RecentActivityCount: 10,
			},
			want: 70, // 20+15+10+5+15+5
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Score(tc.snap); got != tc.want {
				t.Errorf("Score() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestScoreStaysWithinBounds(t *testing.T) {
	policy := DefaultScorePolicy{}

	snaps := []Snapshot{
		{},
		{ApplicationCount: -5, InterviewCount: -3},
		{ApplicationCount: 1 << 20, InterviewCount: 1 << 20, StreakDays: 1 << 20, RecentActivityCount: 1 << 20, FlashcardDeckCount: 1 << 20, ResumePresent: true},
	}
	for _, s := range snaps {
		got := policy.Score(s)
		if got < 0 || got > maxProbability {
			t.Errorf("Score(%+v) = %d, out of [0, %d]", s, got, maxProbability)
		}
	}
}

func TestScoreMonotonicInApplications(t *testing.T) {
	policy := DefaultScorePolicy{}

	prev := -1
	for n := 0; n <= 8; n++ {
		got := policy.Score(Snapshot{ApplicationCount: n})
		if got < prev {
			t.Fatalf("score decreased at %d applications: %d -> %d", n, prev, got)
		}
		prev = got
	}
}
