package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyline93/linhash/internal/input"
	"github.com/skyline93/linhash/internal/linhash"
)

func testGlobalOptions() GlobalOptions {
	return GlobalOptions{LogFormat: "text", Table: linhash.NewConfig()}
}

func writeValues(t *testing.T, lines ...string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "values.txt")
	require.NoError(t, os.WriteFile(name, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return name
}

func TestRunInsert(t *testing.T) {
	name := writeValues(t, "3", "1", "3", "-7", "1", "2")

	logrus.SetLevel(logrus.InfoLevel)
	hook := logtest.NewGlobal()
	defer hook.Reset()

	var buf bytes.Buffer
	err := runInsert(context.Background(), InsertOptions{Digest: true, Stats: true}, testGlobalOptions(), name, &buf)
	require.NoError(t, err)
	assert.Equal(t, "3\n1\n-7\n2\n", buf.String())

	sum := sha256.Sum256(buf.Bytes())
	var digest, stats *logrus.Entry
	for _, e := range hook.AllEntries() {
		switch {
		case strings.HasPrefix(e.Message, "digest "):
			digest = e
		case e.Message == "table stats":
			stats = e
		}
	}

	require.NotNil(t, digest)
	assert.Equal(t, "digest "+hex.EncodeToString(sum[:]), digest.Message)
	assert.Equal(t, 4, digest.Data["values"])

	require.NotNil(t, stats)
	assert.Equal(t, 4, stats.Data["uniques"])
	assert.Equal(t, 2, stats.Data["buckets"])
	assert.Equal(t, 0, stats.Data["splits"])
	assert.Equal(t, int64(2), stats.Data["curr_mod"])
	assert.Equal(t, linhash.DefaultCapacityBytes, stats.Data["capacity"])
	assert.Equal(t, linhash.DefaultValueSize, stats.Data["value_size"])
	assert.Equal(t, linhash.DefaultThreshold, stats.Data["threshold"])
}

func TestRunInsertWithoutReports(t *testing.T) {
	name := writeValues(t, "5", "5")

	logrus.SetLevel(logrus.InfoLevel)
	hook := logtest.NewGlobal()
	defer hook.Reset()

	var buf bytes.Buffer
	err := runInsert(context.Background(), InsertOptions{}, testGlobalOptions(), name, &buf)
	require.NoError(t, err)
	assert.Equal(t, "5\n", buf.String())
	assert.Empty(t, hook.AllEntries())
}

func TestRunInsertManyValues(t *testing.T) {
	var lines, want []string
	for i := 0; i < 3000; i++ {
		lines = append(lines, fmt.Sprint(i%2000))
		if i < 2000 {
			want = append(want, fmt.Sprint(i))
		}
	}
	name := writeValues(t, lines...)

	var buf bytes.Buffer
	err := runInsert(context.Background(), InsertOptions{}, testGlobalOptions(), name, &buf)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(want, "\n")+"\n", buf.String())
}

func TestRunInsertMalformedLine(t *testing.T) {
	name := writeValues(t, "1", "2", "two", "3")

	var buf bytes.Buffer
	err := runInsert(context.Background(), InsertOptions{}, testGlobalOptions(), name, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, "1\n2\n", buf.String())
}

func TestRunInsertMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := runInsert(context.Background(), InsertOptions{}, testGlobalOptions(), filepath.Join(t.TempDir(), "missing"), &buf)
	require.Error(t, err)
	assert.True(t, input.IsNotExist(err))
	assert.Contains(t, err.Error(), "file not found")
	assert.Empty(t, buf.String())
}

func TestRunInsertInvalidConfig(t *testing.T) {
	name := writeValues(t, "1")
	gopts := testGlobalOptions()
	gopts.Table.Threshold = 2

	var buf bytes.Buffer
	err := runInsert(context.Background(), InsertOptions{}, gopts, name, &buf)
	assert.Error(t, err)
}

func TestRunStats(t *testing.T) {
	var lines []string
	for i := 0; i < 385; i++ {
		lines = append(lines, fmt.Sprint(i))
	}
	name := writeValues(t, lines...)

	var buf bytes.Buffer
	err := runStats(context.Background(), StatsOptions{}, testGlobalOptions(), name, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "BUCKET")
	assert.Contains(t, out, "split_pointer")
	assert.Contains(t, out, "bucket_count")
	assert.Regexp(t, `unique_count\s+\|\s+385`, out)
	assert.Regexp(t, `bucket_count\s+\|\s+3`, out)

	buf.Reset()
	err = runStats(context.Background(), StatsOptions{SummaryOnly: true}, testGlobalOptions(), name, &buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "BUCKET")
}

func TestSetupLogging(t *testing.T) {
	opts := testGlobalOptions()
	assert.NoError(t, setupLogging(opts))

	opts.LogFormat = "xml"
	assert.Error(t, setupLogging(opts))
}
