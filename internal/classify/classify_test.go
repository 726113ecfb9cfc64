package classify

import "testing"

func TestSplit(t *testing.T) {
	tests := []struct {
		line    string
		tag     Tag
		paramID int
		rest    string
		ok      bool
	}{
		{"0,10,f,bb0,i1,0,0", TagHeader, 0, "10,f,bb0,i1,0,0", true},
		{"r,64,0x1000,1,r1,", TagResult, 0, "64,0x1000,1,r1,", true},
		{"f,64,0x1000,1,r1,", TagForward, 0, "64,0x1000,1,r1,", true},
		{"2,64,0x1000,1,r1,", TagParam, 2, "64,0x1000,1,r1,", true},
		{"no-comma-here", TagUnknown, 0, "", false},
	}

	for _, tt := range tests {
		tag, id, rest, ok := Split(tt.line)
		if tag != tt.tag || id != tt.paramID || rest != tt.rest || ok != tt.ok {
			t.Fatalf("Split(%q) = (%v,%v,%q,%v), want (%v,%v,%q,%v)",
				tt.line, tag, id, rest, ok, tt.tag, tt.paramID, tt.rest, tt.ok)
		}
	}
}

func TestLabelMapSentinels(t *testing.T) {
	if !IsLabelMapStart("%%%% LABEL MAP START %%%%") {
		t.Fatal("expected start sentinel to match")
	}
	if !IsLabelMapEnd("%%%% LABEL MAP END %%%%") {
		t.Fatal("expected end sentinel to match")
	}
	if IsLabelMapStart("0,10,f,bb0,i1,0,0") {
		t.Fatal("ordinary record must not match the sentinel")
	}
}
