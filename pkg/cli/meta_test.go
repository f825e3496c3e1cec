package cli

import (
	"strings"
	"testing"

	"github.com/Fepozopo/histeq/pkg/stdimg"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		cmd     string
		args    []string
		want    []string
		wantErr bool
	}{
		{"grayscale", nil, []string{}, false},
		{"grayscale", []string{"x"}, nil, true},
		{"equalizeHSI", nil, []string{"", ""}, false},
		{"equalizeHSI", []string{"LEGACY"}, []string{"legacy", ""}, false},
		{"equalizeHSI", []string{"mean", "Scale"}, []string{"mean", "scale"}, false},
		{"equalizeHSI", []string{"median"}, nil, true},
		{"histogram", []string{" 64 "}, []string{"64"}, false},
		{"histogram", []string{"lots"}, nil, true},
		{"sharpen", nil, nil, true},
	}
	for _, tc := range tests {
		got, err := NormalizeArgs(tc.cmd, tc.args)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s %v: expected error, got %v", tc.cmd, tc.args, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s %v: %v", tc.cmd, tc.args, err)
		}
		if strings.Join(got, "|") != strings.Join(tc.want, "|") || len(got) != len(tc.want) {
			t.Fatalf("%s %v = %q; want %q", tc.cmd, tc.args, got, tc.want)
		}
	}
}

func TestNormalizedArgsAreAccepted(t *testing.T) {
	src := stdimg.ToNRGBA(solidImage(4, 4, 120, 60, 30))
	for _, c := range stdimg.Commands {
		args, err := NormalizeArgs(c.Name, nil)
		if err != nil {
			t.Fatalf("%s: %v", c.Name, err)
		}
		if _, err := stdimg.ApplyCommand(src, c.Name, args); err != nil {
			t.Fatalf("%s with normalized defaults: %v", c.Name, err)
		}
	}
}

func TestCommandHelp(t *testing.T) {
	store := NewMetaStoreFromStdimg(stdimg.Commands)
	tip, rules, err := store.GetCommandHelp("equalizeHSI")
	if err != nil {
		t.Fatalf("GetCommandHelp: %v", err)
	}
	if !strings.Contains(tip, "legacy") || !strings.Contains(tip, "normalize") {
		t.Fatalf("tooltip misses enum options: %q", tip)
	}
	if r := rules["intensity"]; r.Type != ParamTypeEnum || len(r.EnumOptions) != 2 {
		t.Fatalf("intensity rule = %+v", r)
	}
	if _, _, err := store.GetCommandHelp("nope"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if _, err := NormalizeArgsFromStd(nil, "grayscale", nil); err == nil {
		t.Fatalf("expected error for nil store")
	}
}
