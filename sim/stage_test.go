package sim

import (
	"encoding/json"
	"testing"
)

func TestStage_OrderIsTotal(t *testing.T) {
	ordered := []Stage{PreSeed, Seed, SeriesA, SeriesB, SeriesC, IPO}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("stage order broken: %s >= %s", ordered[i-1], ordered[i])
		}
	}
}

func TestStage_NextWalksWholeSequence(t *testing.T) {
	s := PreSeed
	var visited []Stage
	for {
		visited = append(visited, s)
		next, ok := s.Next()
		if !ok {
			break
		}
		if next != s+1 {
			t.Fatalf("Next(%s) = %s, want %s", s, next, s+1)
		}
		s = next
	}
	if len(visited) != 6 || visited[len(visited)-1] != IPO {
		t.Errorf("walk visited %v, want all six stages ending at IPO", visited)
	}
}

func TestStage_NextStopsAtIPO(t *testing.T) {
	if _, ok := IPO.Next(); ok {
		t.Error("IPO.Next() reported a following stage")
	}
}

func TestParseStage_RoundTrip(t *testing.T) {
	for s := PreSeed; s <= IPO; s++ {
		parsed, err := ParseStage(s.String())
		if err != nil {
			t.Fatalf("ParseStage(%q): %v", s.String(), err)
		}
		if parsed != s {
			t.Errorf("ParseStage(%q) = %v, want %v", s.String(), parsed, s)
		}
	}
}

func TestParseStage_RejectsUnknown(t *testing.T) {
	if _, err := ParseStage("Series D"); err == nil {
		t.Error("ParseStage accepted an unknown stage name")
	}
}

func TestTransitionKey_Format(t *testing.T) {
	if got := TransitionKey(Seed, SeriesA); got != "Seed to Series A" {
		t.Errorf("TransitionKey = %q, want %q", got, "Seed to Series A")
	}
}

func TestEntryStages_ExcludesIPO(t *testing.T) {
	tests := []struct {
		initial Stage
		want    int
	}{
		{PreSeed, 5},
		{Seed, 4},
		{SeriesC, 1},
	}
	for _, tt := range tests {
		got := EntryStages(tt.initial)
		if len(got) != tt.want {
			t.Errorf("EntryStages(%s) has %d stages, want %d", tt.initial, len(got), tt.want)
		}
		for _, s := range got {
			if s == IPO {
				t.Errorf("EntryStages(%s) includes IPO", tt.initial)
			}
		}
	}
}

func TestStage_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(SeriesB)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"Series B"` {
		t.Errorf("marshal = %s, want %q", data, `"Series B"`)
	}
	var s Stage
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatal(err)
	}
	if s != SeriesB {
		t.Errorf("unmarshal = %v, want Series B", s)
	}
}
