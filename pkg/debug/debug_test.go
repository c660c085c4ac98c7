package debug

import (
	"bytes"
	"log/slog"
	"os"
	"testing"
)

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]bool
	}{
		{"empty", "", map[string]bool{}},
		{"single", "providers", map[string]bool{"providers": true}},
		{"multiple", "providers,interceptor", map[string]bool{"providers": true, "interceptor": true}},
		{"all", "all", map[string]bool{"all": true}},
		{"with spaces", " providers , interceptor ", map[string]bool{"providers": true, "interceptor": true}},
		{"uppercase normalized", "PROVIDERS,Interceptor", map[string]bool{"providers": true, "interceptor": true}},
		{"empty segments", "providers,,interceptor", map[string]bool{"providers": true, "interceptor": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCategories(tt.input)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("got[%q] = %v, want %v", k, got[k], v)
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("len(got) = %d, want %d", len(got), len(tt.want))
			}
		})
	}
}

// withCategories installs the given categories for the duration of the test.
func withCategories(t *testing.T, s string) {
	t.Helper()
	orig := categories.Load()
	t.Cleanup(func() { categories.Store(orig) })
	setCategories(parseCategories(s))
}

func TestEnabled(t *testing.T) {
	withCategories(t, "providers,streaming")

	if !Enabled("providers") {
		t.Error("providers should be enabled")
	}
	if !Enabled("streaming") {
		t.Error("streaming should be enabled")
	}
	if Enabled("interceptor") {
		t.Error("interceptor should not be enabled")
	}
	if Enabled("all") {
		t.Error("all should not be enabled (not in categories)")
	}
}

func TestEnabled_All(t *testing.T) {
	withCategories(t, "all")

	if !Enabled("providers") {
		t.Error("providers should be enabled via 'all'")
	}
	if !Enabled("config") {
		t.Error("config should be enabled via 'all'")
	}
	if !Enabled("anything") {
		t.Error("anything should be enabled via 'all'")
	}
}

func TestEnabled_Empty(t *testing.T) {
	withCategories(t, "")

	if Enabled("providers") {
		t.Error("nothing should be enabled when no categories set")
	}
}

func TestCategories_Sorted(t *testing.T) {
	withCategories(t, "transport,config,providers")

	got := Categories()
	want := []string{"config", "providers", "transport"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInit_EnvOverridesConfig(t *testing.T) {
	withCategories(t, "")
	origLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(origLogger) })

	t.Setenv(EnvDebug, "interceptor")
	t.Setenv(EnvLogLevel, "TRACE")

	Init("providers", "ERROR", "json")

	if !Enabled("interceptor") {
		t.Error("interceptor should be enabled from environment")
	}
	if Enabled("providers") {
		t.Error("config categories should be ignored when environment is set")
	}
	if !TraceIsEnabled("interceptor") {
		t.Error("TRACE should be enabled from environment")
	}
}

func TestInit_ConfigValues(t *testing.T) {
	withCategories(t, "")
	origLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(origLogger) })

	t.Setenv(EnvDebug, "")
	t.Setenv(EnvLogLevel, "")

	Init("config", "WARN", "text")

	if !Enabled("config") {
		t.Error("config should be enabled from config values")
	}
	if slog.Default().Enabled(t.Context(), slog.LevelInfo) {
		t.Error("INFO should be disabled at WARN level")
	}
}

func TestRaw_OnlyAtTrace(t *testing.T) {
	withCategories(t, "providers")
	origLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(origLogger) })
	origOut := output
	t.Cleanup(func() { output = origOut })

	var buf bytes.Buffer
	output = &buf

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Raw("providers", "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no raw output at DEBUG, got %q", buf.String())
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LevelTrace})))
	Raw("providers", `{"model":"tgi"}`)
	Raw("streaming", "other category")
	if buf.String() != "{\"model\":\"tgi\"}\n" {
		t.Errorf("raw output = %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"TRACE", LevelTrace},
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate short = %q, want %q", got, "short")
	}
	if got := Truncate("this is a long string", 10); got != "this is a ..." {
		t.Errorf("Truncate long = %q, want %q", got, "this is a ...")
	}
}

func TestLog_DisabledCategory(t *testing.T) {
	withCategories(t, "")

	// Should not panic or produce output.
	Log("providers", "test message", "key", "value")
	Trace("providers", "trace message", "key", "value")
}
