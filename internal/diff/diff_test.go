package diff

import (
	"context"
	"strings"
	"testing"
)

func TestParseVersionRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		v1      int
		v2      int
		wantErr bool
		errMsg  string
	}{
		{
			name:  "valid range",
			input: "1:3",
			v1:    1,
			v2:    3,
		},
		{
			name:  "same version",
			input: "2:2",
			v1:    2,
			v2:    2,
		},
		{
			name:  "large versions",
			input: "100:999",
			v1:    100,
			v2:    999,
		},
		{
			name:    "empty colon",
			input:   ":",
			wantErr: true,
			errMsg:  "both versions required",
		},
		{
			name:    "missing start",
			input:   ":5",
			wantErr: true,
			errMsg:  "both versions required",
		},
		{
			name:    "missing end",
			input:   "3:",
			wantErr: true,
			errMsg:  "both versions required",
		},
		{
			name:    "no colon",
			input:   "5",
			wantErr: true,
			errMsg:  "expected v1:v2",
		},
		{
			name:    "too many colons",
			input:   "1:2:3",
			wantErr: true,
			errMsg:  "expected v1:v2",
		},
		{
			name:    "non-numeric start",
			input:   "abc:5",
			wantErr: true,
			errMsg:  "invalid start version",
		},
		{
			name:    "non-numeric end",
			input:   "3:xyz",
			wantErr: true,
			errMsg:  "invalid end version",
		},
		{
			name:    "zero start",
			input:   "0:3",
			wantErr: true,
			errMsg:  "start version must be >= 1",
		},
		{
			name:    "negative start",
			input:   "-1:3",
			wantErr: true,
			errMsg:  "start version must be >= 1",
		},
		{
			name:    "zero end",
			input:   "1:0",
			wantErr: true,
			errMsg:  "end version must be >= 1",
		},
		{
			name:    "negative end",
			input:   "1:-5",
			wantErr: true,
			errMsg:  "end version must be >= 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v1, v2, err := ParseVersionRange(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseVersionRange(%q) = (%d, %d, nil), want error containing %q",
						tt.input, v1, v2, tt.errMsg)
					return
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ParseVersionRange(%q) error = %q, want containing %q",
						tt.input, err.Error(), tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseVersionRange(%q) = error %v, want (%d, %d)",
					tt.input, err, tt.v1, tt.v2)
				return
			}

			if v1 != tt.v1 || v2 != tt.v2 {
				t.Errorf("ParseVersionRange(%q) = (%d, %d), want (%d, %d)",
					tt.input, v1, v2, tt.v1, tt.v2)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	old := "name: summariser\nauthor: alice\n"
	new_ := "name: summariser\nauthor: bob\n"

	r := Compute(old, new_, "agent v1", "agent v2")

	if r.Old != "agent v1" || r.New != "agent v2" {
		t.Errorf("labels = (%q, %q), want (agent v1, agent v2)", r.Old, r.New)
	}
	if !strings.Contains(r.Diff, "- ") || !strings.Contains(r.Diff, "+ ") {
		t.Errorf("diff missing change markers:\n%s", r.Diff)
	}
	if !strings.Contains(r.Diff, "alice") {
		t.Errorf("diff missing removed text:\n%s", r.Diff)
	}
	if !strings.Contains(r.Diff, "bob") {
		t.Errorf("diff missing added text:\n%s", r.Diff)
	}
}

func TestCompute_CollapsesLongEqualSections(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "unchanged line")
	}
	old := "first\n" + strings.Join(lines, "\n") + "\nlast"
	new_ := "FIRST\n" + strings.Join(lines, "\n") + "\nlast"

	r := Compute(old, new_, "a", "b")

	if !strings.Contains(r.Diff, "  ...\n") {
		t.Errorf("long equal section not collapsed:\n%s", r.Diff)
	}
}

func TestFormat(t *testing.T) {
	r := Result{Old: "x v1", New: "x v2", Diff: "- a\n+ b\n"}

	plain := r.Format(false)
	if !strings.HasPrefix(plain, "--- x v1\n+++ x v2\n") {
		t.Errorf("missing header:\n%s", plain)
	}
	if strings.Contains(plain, "\033[") {
		t.Errorf("plain output contains ANSI codes:\n%q", plain)
	}

	coloured := r.Format(true)
	if !strings.Contains(coloured, "\033[31m- a\033[0m") {
		t.Errorf("deletion not coloured red:\n%q", coloured)
	}
	if !strings.Contains(coloured, "\033[32m+ b\033[0m") {
		t.Errorf("insertion not coloured green:\n%q", coloured)
	}
}

type stubDiffer struct {
	result Result
	gotID  string
	gotV1  int
	gotV2  int
}

func (s *stubDiffer) DiffRevisions(_ context.Context, id string, v1, v2 int) (Result, error) {
	s.gotID, s.gotV1, s.gotV2 = id, v1, v2
	return s.result, nil
}

func TestRun(t *testing.T) {
	stub := &stubDiffer{result: Result{Old: "id v1", New: "id v3", Diff: "- old\n+ new\n"}}
	var out strings.Builder

	r, err := Run(context.Background(), &out, stub, "some-id", 1, 3, false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stub.gotID != "some-id" || stub.gotV1 != 1 || stub.gotV2 != 3 {
		t.Errorf("Run passed (%q, %d, %d), want (some-id, 1, 3)", stub.gotID, stub.gotV1, stub.gotV2)
	}
	if r.Diff != stub.result.Diff {
		t.Errorf("Run result = %q, want %q", r.Diff, stub.result.Diff)
	}
	want := "--- id v1\n+++ id v3\n- old\n+ new\n"
	if out.String() != want {
		t.Errorf("Run wrote %q, want %q", out.String(), want)
	}
}
