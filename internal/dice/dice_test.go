package dice

import (
	"strings"
	"testing"
)

func TestParseFaceSet(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    []int
		wantErr string
	}{
		{
			name:  "valid die",
			token: "2,2,4,4,9,9",
			want:  []int{2, 2, 4, 4, 9, 9},
		},
		{
			name:  "negative and repeated faces",
			token: "-1,0,0,3,3,-1",
			want:  []int{-1, 0, 0, 3, 3, -1},
		},
		{
			name:  "spaces around faces",
			token: " 1, 2,3 ,4,5,6",
			want:  []int{1, 2, 3, 4, 5, 6},
		},
		{
			name:    "five faces",
			token:   "1,2,3,4,5",
			wantErr: "exactly 6",
		},
		{
			name:    "seven faces",
			token:   "1,2,3,4,5,6,7",
			wantErr: "exactly 6",
		},
		{
			name:    "non-integer face",
			token:   "1,2,three,4,5,6",
			wantErr: "not an integer",
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: "exactly 6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, err := ParseFaceSet(tt.token)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not mention %q", err, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.token) && tt.token != "" {
					t.Errorf("error %q does not name the offending token %q", err, tt.token)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := fs.Faces()
			for i, v := range tt.want {
				if got[i] != v {
					t.Errorf("face %d = %d, want %d", i, got[i], v)
				}
			}
		})
	}
}

func TestParseSet(t *testing.T) {
	t.Run("three valid dice", func(t *testing.T) {
		set, err := ParseSet([]string{"2,2,4,4,9,9", "6,8,1,1,8,6", "7,5,3,7,5,3"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(set) != 3 {
			t.Fatalf("expected 3 dice, got %d", len(set))
		}
		if set[1].String() != "6,8,1,1,8,6" {
			t.Errorf("die 1 round-trips to %q", set[1].String())
		}
	})

	t.Run("too few dice", func(t *testing.T) {
		_, err := ParseSet([]string{"1,2,3,4,5,6", "1,2,3,4,5,6"})
		if err == nil {
			t.Fatal("expected error for 2 dice")
		}
		if !strings.Contains(err.Error(), "at least 3") {
			t.Errorf("error %q does not cite the minimum of 3", err)
		}
	})

	t.Run("all bad tokens reported", func(t *testing.T) {
		_, err := ParseSet([]string{"1,2,3,4,5", "a,b,c,d,e,f", "1,2,3,4,5,6"})
		if err == nil {
			t.Fatal("expected error")
		}
		msg := err.Error()
		if !strings.Contains(msg, "1,2,3,4,5") || !strings.Contains(msg, "a,b,c,d,e,f") {
			t.Errorf("aggregated error %q should name both bad tokens", msg)
		}
	})
}

func TestRollMembership(t *testing.T) {
	fs, err := ParseFaceSet("7,5,3,7,5,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	allowed := map[int]bool{7: true, 5: true, 3: true}
	for i := 0; i < 1000; i++ {
		face := fs.Roll()
		if !allowed[face] {
			t.Fatalf("roll %d produced %d, not a configured face", i, face)
		}
	}
}

func TestRollCoversAllFaces(t *testing.T) {
	fs, err := ParseFaceSet("1,2,3,4,5,6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[int]int)
	const trials = 6000
	for i := 0; i < trials; i++ {
		seen[fs.Roll()]++
	}

	for face := 1; face <= 6; face++ {
		count := seen[face]
		if count == 0 {
			t.Errorf("face %d never rolled in %d trials", face, trials)
		}
		// ~1000 expected per face; a wide band keeps the test deterministic
		// in practice while still catching a broken distribution.
		if count < 700 || count > 1300 {
			t.Errorf("face %d rolled %d times in %d trials, outside [700,1300]", face, count, trials)
		}
	}
}
