package server

import (
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/user/opendota-mcp/opendota"
)

func newTestAuditLog(t *testing.T) *AuditLog {
	t.Helper()
	audit, err := OpenAuditLog(filepath.Join(t.TempDir(), "audit.db"), nil)
	if err != nil {
		t.Fatalf("OpenAuditLog: %v", err)
	}
	t.Cleanup(func() { audit.Close() })
	return audit
}

func TestAuditRecordsCalls(t *testing.T) {
	audit := newTestAuditLog(t)

	audit.Record("get_match", MatchArgs{MatchID: 5}, true, nil, 120*time.Millisecond)
	audit.Record("get_player", PlayerArgs{}, false, opendota.Validation("account_id is required"), time.Millisecond)

	n, err := audit.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 entries, got %d", n)
	}

	entries, err := audit.RecentCalls(10)
	if err != nil {
		t.Fatalf("RecentCalls: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	byTool := make(map[string]AuditEntry)
	for _, e := range entries {
		byTool[e.Tool] = e
	}

	match := byTool["get_match"]
	if !match.Success {
		t.Error("expected get_match marked successful")
	}
	if match.DurationMS != 120 {
		t.Errorf("expected 120ms, got %d", match.DurationMS)
	}
	if match.ID == "" {
		t.Error("expected a generated invocation id")
	}

	player := byTool["get_player"]
	if player.Success {
		t.Error("expected get_player marked failed")
	}
	if player.Error == "" {
		t.Error("expected error text recorded")
	}
}

func TestAuditRecentCallsLimit(t *testing.T) {
	audit := newTestAuditLog(t)

	for i := 0; i < 5; i++ {
		audit.Record("get_heroes", EmptyArgs{}, true, nil, time.Millisecond)
	}

	entries, err := audit.RecentCalls(3)
	if err != nil {
		t.Fatalf("RecentCalls: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected limit of 3, got %d", len(entries))
	}
}
