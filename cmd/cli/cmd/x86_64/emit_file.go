package x86_64

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keurnel/x64emit/debugcontext"
	"github.com/keurnel/x64emit/emit"
	"github.com/keurnel/x64emit/mirtext"
)

var EmitFileCmd = &cobra.Command{
	Use:     "emit <mir-file>",
	GroupID: "file-operations",
	Short:   "Emit x86_64 machine code from a MIR text fixture.",
	Long:    `Emit x86_64 machine code from a MIR text fixture.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEmitFile(cmd, args)
	},
}

// runEmitFile orchestrates the full pipeline: resolve the file, load its
// MIR text, run the emitter, and report the result.
func runEmitFile(cmd *cobra.Command, args []string) error {
	fullPath, err := resolveMIRFilePath(args)
	if err != nil {
		return err
	}

	source, err := readMIRFile(fullPath)
	if err != nil {
		return err
	}

	program, err := mirtext.Read(source)
	if err != nil {
		return fmt.Errorf("failed to parse MIR fixture: %w", err)
	}

	declName := filepath.Base(fullPath)
	debug := debugcontext.NewDebugContext(declName)
	emitter := emit.NewEmitter(declName, debug)
	result, err := emitter.Emit(program)
	if err != nil {
		return fmt.Errorf("failed to emit %q: %w", declName, err)
	}

	fmt.Fprint(cmd.OutOrStdout(), emit.Dump(result))
	for _, e := range debug.Entries() {
		fmt.Fprintln(cmd.OutOrStdout(), e.String())
	}
	return nil
}

// resolveMIRFilePath validates the CLI arguments and returns the
// absolute path to the MIR fixture file.
func resolveMIRFilePath(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("no MIR file provided")
	}
	if args[0] == "" {
		return "", fmt.Errorf("MIR file path is empty")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("unable to get current working directory: %w", err)
	}

	fullPath := args[0]
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(cwd, fullPath)
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return "", fmt.Errorf("MIR file does not exist at path: %s", fullPath)
	}

	return fullPath, nil
}

// readMIRFile reads the MIR fixture file and returns its content.
func readMIRFile(path string) (string, error) {
	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read MIR file: %w", err)
	}
	return string(sourceBytes), nil
}
