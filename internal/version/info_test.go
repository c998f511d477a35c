package version

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInfoAppDetails(t *testing.T) {
	info := Info()

	if info.Name != "autoplan" {
		t.Errorf("name = %q, want autoplan", info.Name)
	}
	if !strings.Contains(info.String(), "autoplan") {
		t.Errorf("String() should mention the app name: %s", info.String())
	}
}

func TestVersionCmdJSON(t *testing.T) {
	cmd := NewCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
}
