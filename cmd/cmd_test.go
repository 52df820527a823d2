package cmd

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/storybook/internal/config"
	"github.com/abhisek/storybook/internal/content"
	"github.com/abhisek/storybook/internal/slides"
)

func TestCheckDefaultPack(t *testing.T) {
	loader := content.NewFSLoader(content.Default(), slides.Count)
	problems := checkPages(context.Background(), loader)
	require.Len(t, problems, slides.Count)
	for i, err := range problems {
		assert.NoError(t, err, "page %s", slides.Number(i))
	}
}

func TestCheckReportsMissingPages(t *testing.T) {
	fsys := fstest.MapFS{}
	for i := range slides.Count {
		if i == 3 {
			continue
		}
		data, err := fsReadDefault(content.PagePath(i))
		require.NoError(t, err)
		fsys[content.PagePath(i)] = &fstest.MapFile{Data: data}
	}

	problems := checkPages(context.Background(), content.NewFSLoader(fsys, slides.Count))
	assert.Equal(t, 1, countErrs(problems))
	assert.Error(t, problems[3])
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("STORYBOOK_DB", "/env/story.db")
	t.Setenv("STORYBOOK_CONTENT_DIR", "/env/pages")
	t.Setenv("STORYBOOK_MUTE", "true")

	c := &cobra.Command{}
	c.Flags().String("db", "", "")
	c.Flags().String("content", "", "")
	c.Flags().Bool("mute", false, "")
	require.NoError(t, c.Flags().Parse([]string{"--db", "/flag/story.db", "--mute=false"}))

	cfg, err := loadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, "/flag/story.db", cfg.DBPath)
	assert.Equal(t, "/env/pages", cfg.ContentDir)
	assert.False(t, cfg.Mute)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"reset", "stats", "check", "preview", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func fsReadDefault(name string) ([]byte, error) {
	return fs.ReadFile(content.Default(), name)
}

func TestUnusableDBFallsBackToMemory(t *testing.T) {
	// A regular file where the database directory should be.
	blocker := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg := config.Config{DBPath: filepath.Join(blocker, "story.db")}

	_, err := openStore(cfg)
	require.Error(t, err)

	st, err := openReadingStore(cfg, zap.NewNop())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	kv := st.KVRepo()
	require.NoError(t, kv.Set(ctx, "prediction", "Pip will come back."))
	got, ok, err := kv.Get(ctx, "prediction")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Pip will come back.", got)
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf, "v1.2.3")
	assert.Equal(t, "storybook v1.2.3\nstory pack format "+content.SupportedFormat+"\n", buf.String())
}

func TestBuildVersionPrefersLdflags(t *testing.T) {
	old := version
	t.Cleanup(func() { version = old })
	version = "v9.9.9"
	assert.Equal(t, "v9.9.9", buildVersion())
}
