package x86_64

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestRunEmitFile_WritesHexDump(t *testing.T) {
	tmpDir := t.TempDir()
	mirFile := filepath.Join(tmpDir, "prologue.mir")
	if err := os.WriteFile(mirFile, []byte("push rbp\nmov rbp, rsp\nret\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	if err := runEmitFile(cmd, []string{mirFile}); err != nil {
		t.Fatalf("runEmitFile failed: %v", err)
	}

	if out.Len() == 0 {
		t.Fatal("expected a non-empty hex dump report")
	}
}

func TestRunEmitFile_MissingFile(t *testing.T) {
	cmd := &cobra.Command{}
	err := runEmitFile(cmd, []string{"does-not-exist.mir"})
	if err == nil {
		t.Fatal("expected an error for a nonexistent MIR file")
	}
}

func TestRunEmitFile_PropagatesParseFailure(t *testing.T) {
	tmpDir := t.TempDir()
	mirFile := filepath.Join(tmpDir, "bad.mir")
	if err := os.WriteFile(mirFile, []byte("frobnicate rax\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cmd := &cobra.Command{}
	err := runEmitFile(cmd, []string{mirFile})
	if err == nil {
		t.Fatal("expected an error for an unparsable MIR fixture")
	}
}

func TestResolveMIRFilePath_EmptyArgs(t *testing.T) {
	if _, err := resolveMIRFilePath(nil); err == nil {
		t.Fatal("expected an error when no file is provided")
	}
}
