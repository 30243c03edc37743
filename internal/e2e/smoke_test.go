package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeConfigFixture(home))

	stdout, stderr, err := runRoundctl(t, binaryPath, home, "predict", "41", "--current", "202501011000301903")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Next period: 202501011000301042")

	stdout, stderr, err = runRoundctl(t, binaryPath, home,
		"replay", "--from", "2025-01-01T10:00:30Z", "--until", "2025-01-01T10:01:00Z")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Active period: 202501011001001903")

	stdout, stderr, err = runRoundctl(t, binaryPath, home, "watch", "--plain", "--count", "1")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "closes in ")

	stdout, stderr, err = runRoundctl(t, binaryPath, home, "archive", "verify")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "0 mismatches")
	assert.FileExists(t, filepath.Join(home, ".roundctl", "rounds.db"))
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "roundctl-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/roundctl")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build roundctl binary: %s", string(output))
	return binaryPath
}

func runRoundctl(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeConfigFixture(home string) error {
	configDir := filepath.Join(home, ".roundctl")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	config := `[round]
duration = "30s"
timezone = "UTC"

[archive]
driver = "sqlite"

[log]
level = "warn"
`

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}
