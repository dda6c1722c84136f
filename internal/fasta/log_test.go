package fasta

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// Load failures are reported by the caller; the store only logs them
// at debug level so they are not printed twice.
func TestLoad_FailuresLogBelowWarn(t *testing.T) {
	hook := logtest.NewGlobal()
	prev := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logrus.SetLevel(prev)
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	})

	s := NewStore(WithMaxBytes(10))
	_ = s.Load(filepath.Join(t.TempDir(), "missing.fa"))
	_ = s.Load(writeTemp(t, "big.fa", []byte(strings.Repeat("A", 50))))

	if len(hook.AllEntries()) == 0 {
		t.Fatal("failures should still be logged at debug")
	}
	for _, e := range hook.AllEntries() {
		if e.Level <= logrus.WarnLevel {
			t.Fatalf("logged at %s: %s", e.Level, e.Message)
		}
	}
}
