package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	std := logrus.StandardLogger()
	out, level, formatter := std.Out, std.GetLevel(), std.Formatter
	t.Cleanup(func() {
		logrus.SetOutput(out)
		logrus.SetLevel(level)
		logrus.SetFormatter(formatter)
	})
}

func TestSetupStdout(t *testing.T) {
	restore(t)
	out := Setup(Options{File: "-", Level: "warn"})
	assert.Equal(t, os.Stdout, out)
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}

func TestSetupFile(t *testing.T) {
	restore(t)
	path := filepath.Join(t.TempDir(), "app.log")
	out := Setup(Options{File: path, Level: "nonsense", MaxSizeMB: 1})
	lj, ok := out.(*lumberjack.Logger)
	require.True(t, ok)
	t.Cleanup(func() { lj.Close() })
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel(), "bad level falls back to info")

	logrus.Info("stop created")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stop created")
}

func TestGormLoggerLevel(t *testing.T) {
	restore(t)
	Setup(Options{File: "-", Level: "debug"})
	assert.NotNil(t, GormLogger())

	Setup(Options{File: "-", Level: "error"})
	assert.NotNil(t, GormLogger())
}
