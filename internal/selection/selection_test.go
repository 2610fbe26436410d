package selection

import (
	"strings"
	"testing"

	"github.com/zangef1/SACPWorkflow/internal/models"
)

func jobList(names ...string) []models.JobRecord {
	jobs := make([]models.JobRecord, len(names))
	for i, name := range names {
		jobs[i] = models.JobRecord{Name: name}
	}
	return jobs
}

func names(jobs []models.JobRecord) []string {
	out := make([]string, len(jobs))
	for i, job := range jobs {
		out[i] = job.Name
	}
	return out
}

func TestAll_ReturnsEverything(t *testing.T) {
	jobs := jobList("a", "b", "c")
	selected, err := All{}.Apply(jobs)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(selected) != 3 {
		t.Errorf("Expected 3 jobs, got %d", len(selected))
	}
}

func TestIndices_Apply(t *testing.T) {
	jobs := jobList("a", "b", "c", "d", "e")

	tests := []struct {
		name    string
		indices Indices
		want    string
		wantErr bool
	}{
		{name: "single", indices: Indices{3}, want: "c"},
		{name: "several out of order", indices: Indices{4, 1}, want: "d,a"},
		{name: "duplicate allowed", indices: Indices{2, 2}, want: "b,b"},
		{name: "zero is out of range", indices: Indices{0}, wantErr: true},
		{name: "past the end", indices: Indices{1, 6}, wantErr: true},
		{name: "negative", indices: Indices{-2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, err := tt.indices.Apply(jobs)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got none")
				}
				if selected != nil {
					t.Errorf("Expected no partial selection on error, got %v", names(selected))
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if got := strings.Join(names(selected), ","); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCount_Apply(t *testing.T) {
	jobs := jobList("a", "b", "c", "d", "e")

	tests := []struct {
		name    string
		count   Count
		want    string
		wantErr bool
	}{
		{name: "middle run", count: Count{Start: 2, N: 3}, want: "b,c,d"},
		{name: "clamped at the end", count: Count{Start: 4, N: 5}, want: "d,e"},
		{name: "from the beginning", count: Count{Start: 1, N: 2}, want: "a,b"},
		{name: "whole list", count: Count{Start: 1, N: 5}, want: "a,b,c,d,e"},
		{name: "start past the end", count: Count{Start: 6, N: 1}, wantErr: true},
		{name: "zero start", count: Count{Start: 0, N: 2}, wantErr: true},
		{name: "zero count", count: Count{Start: 1, N: 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, err := tt.count.Apply(jobs)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if got := strings.Join(names(selected), ","); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFromFlags_MutualExclusion(t *testing.T) {
	tests := []struct {
		name    string
		flags   Flags
		wantErr bool
	}{
		{name: "nothing chosen", flags: Flags{}, wantErr: true},
		{name: "all alone", flags: Flags{All: true}},
		{name: "indices alone", flags: Flags{Indices: "1,2"}},
		{name: "number alone", flags: Flags{Number: 3}},
		{name: "number with start", flags: Flags{Number: 3, Start: 2}},
		{name: "all and indices", flags: Flags{All: true, Indices: "1"}, wantErr: true},
		{name: "all and number", flags: Flags{All: true, Number: 2}, wantErr: true},
		{name: "indices and number", flags: Flags{Indices: "1", Number: 2}, wantErr: true},
		{name: "negative number", flags: Flags{Number: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := FromFlags(tt.flags)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got policy %v", policy)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromFlags failed: %v", err)
			}
			if policy == nil {
				t.Fatal("Expected a policy, got nil")
			}
		})
	}
}

func TestFromFlags_DefaultStart(t *testing.T) {
	policy, err := FromFlags(Flags{Number: 2})
	if err != nil {
		t.Fatalf("FromFlags failed: %v", err)
	}
	count, ok := policy.(Count)
	if !ok {
		t.Fatalf("Expected Count policy, got %T", policy)
	}
	if count.Start != 1 {
		t.Errorf("Expected start to default to 1, got %d", count.Start)
	}
}

func TestParseIndexList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "plain", input: "1,3,5", want: []int{1, 3, 5}},
		{name: "spaces around entries", input: " 2 , 4 ", want: []int{2, 4}},
		{name: "single entry", input: "7", want: []int{7}},
		{name: "trailing comma", input: "1,2,", wantErr: true},
		{name: "not a number", input: "1,two", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIndexList(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIndexList failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Entry %d: expected %d, got %d", i, tt.want[i], got[i])
				}
			}
		})
	}
}
