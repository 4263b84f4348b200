package cli

import (
	"path/filepath"
	"testing"

	"github.com/mmatt-net/site/database"
	"github.com/mmatt-net/site/models"
	"github.com/mmatt-net/site/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"serve", "migrate", "copy-data"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRootCommandNeedsSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DATABASE_URL", "sqlite://"+filepath.Join(t.TempDir(), "site.db"))

	root := NewRootCommand()
	root.SetArgs([]string{"migrate"})
	assert.Error(t, root.Execute())
}

func TestMigrateCommand(t *testing.T) {
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "site.db")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DATABASE_URL", dsn)

	root := NewRootCommand()
	root.SetArgs([]string{"migrate"})
	require.NoError(t, root.Execute())

	db, err := database.Open(dsn, logger.Silent)
	require.NoError(t, err)
	defer database.Close(db)
	assert.True(t, db.Migrator().HasTable(&models.Comment{}))
}

func TestCopyDataCommand(t *testing.T) {
	dir := t.TempDir()
	sourceURL := "sqlite://" + filepath.Join(dir, "source.db")
	targetURL := "sqlite://" + filepath.Join(dir, "target.db")

	source, err := database.Open(sourceURL, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(source))
	testutil.CreateProject(t, source, "hello-world")
	require.NoError(t, database.Close(source))

	t.Setenv("SESSION_SECRET", "")
	root := NewRootCommand()
	root.SetArgs([]string{"copy-data", "--source", sourceURL, "--target", targetURL})
	require.NoError(t, root.Execute())

	target, err := database.Open(targetURL, logger.Silent)
	require.NoError(t, err)
	defer database.Close(target)

	var count int64
	require.NoError(t, target.Model(&models.Project{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
