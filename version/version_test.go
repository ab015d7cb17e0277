package version

import (
	"strings"
	"testing"
)

func TestInfo_Short(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"version only", Info{Version: "1.0.0"}, "1.0.0"},
		{"with commit", Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{"dirty", Info{Version: "1.0.0", GitCommit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Short(); got != tt.want {
				t.Errorf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInfo_String(t *testing.T) {
	i := Info{Version: "1.0.0", BuildTime: "2026-01-15T10:30:00Z"}
	if got := i.String(); got != "1.0.0 (built 2026-01-15T10:30:00Z)" {
		t.Errorf("unexpected String() %q", got)
	}
}

func TestInfo_IsRelease(t *testing.T) {
	tests := []struct {
		info Info
		want bool
	}{
		{Info{Version: "dev"}, false},
		{Info{Version: "1.0.0"}, true},
		{Info{Version: "1.0.0", Dirty: true}, false},
		{Info{Version: "1.0.0-dirty"}, false},
	}
	for _, tt := range tests {
		if got := tt.info.IsRelease(); got != tt.want {
			t.Errorf("%+v: IsRelease() = %v, want %v", tt.info, got, tt.want)
		}
	}
}

func TestGet_LdflagsWin(t *testing.T) {
	orig := [3]string{Version, GitCommit, BuildTime}
	defer func() { Version, GitCommit, BuildTime = orig[0], orig[1], orig[2] }()

	Version, GitCommit, BuildTime = "2.0.0", "deadbeefcafe", "2026-02-01T00:00:00Z"
	info := Get()
	if info.Version != "2.0.0" || info.GitCommit != "deadbee" || info.BuildTime != "2026-02-01T00:00:00Z" {
		t.Errorf("unexpected info %+v", info)
	}
	if !strings.HasPrefix(UserAgent(), "livechat-go/2.0.0-deadbee") {
		t.Errorf("unexpected user agent %q", UserAgent())
	}
}
