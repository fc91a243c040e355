package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

func newStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore_Success(t *testing.T) {
	store, dir := newStore(t)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".wsamples", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Set(domain.KeySubject, "admin@example.com"))

	val, ok := store.Get(domain.KeySubject)
	assert.True(t, ok)
	assert.Equal(t, "admin@example.com", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Set("s", "hello"))
	require.NoError(t, store.Set("i", 42))
	require.NoError(t, store.Set("b", true))
	require.NoError(t, store.Set("l", []string{"a", "b"}))

	assert.Equal(t, "hello", store.GetString("s"))
	assert.Equal(t, 42, store.GetInt("i"))
	assert.True(t, store.GetBool("b"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("l"))

	// wrong type or missing
	assert.Equal(t, "", store.GetString("i"))
	assert.Equal(t, 0, store.GetInt("s"))
	assert.False(t, store.GetBool("s"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_Persistence(t *testing.T) {
	store, dir := newStore(t)

	require.NoError(t, store.Set(domain.KeyPortStart, 9000))
	require.NoError(t, store.Set(domain.KeyOpenBrowser, false))
	require.NoError(t, store.Set(domain.KeyOutputFormat, "json"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 9000, reloaded.GetInt(domain.KeyPortStart))
	assert.False(t, reloaded.GetBool(domain.KeyOpenBrowser))
	assert.Equal(t, "json", reloaded.GetString(domain.KeyOutputFormat))
}

func TestConfigStore_SavesNestedTables(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Set(domain.KeyPortStart, 9000))
	require.NoError(t, store.Set(domain.KeyOutputFormat, "yaml"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[auth]")
	assert.Contains(t, string(data), "[output]")
}

func TestConfigStore_Unset(t *testing.T) {
	store, dir := newStore(t)
	require.NoError(t, store.Set(domain.KeySubject, "x@example.com"))

	require.NoError(t, store.Unset(domain.KeySubject))

	_, ok := store.Get(domain.KeySubject)
	assert.False(t, ok)

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok = reloaded.Get(domain.KeySubject)
	assert.False(t, ok)
}

func TestConfigStore_Keys(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("output.format", "json"))
	require.NoError(t, store.Set("auth.port_end", 9100))

	assert.Equal(t, []string{"auth.port_end", "output.format"}, store.Keys())
}

func TestConfigStore_EnvironmentOverride(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(domain.KeyPortStart, 9000))

	t.Setenv("WSAMPLES_AUTH_PORT_START", "9500")
	t.Setenv("WSAMPLES_AUTH_OPEN_BROWSER", "false")
	t.Setenv("WSAMPLES_AUTH_SUBJECT", "admin@example.com")

	store, err = NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 9500, store.GetInt(domain.KeyPortStart))
	assert.False(t, store.GetBool(domain.KeyOpenBrowser))
	assert.Equal(t, "admin@example.com", store.GetString(domain.KeySubject))
	assert.True(t, store.Overridden(domain.KeyPortStart))
	assert.False(t, store.Overridden(domain.KeyPortEnd))
	assert.Contains(t, store.Keys(), domain.KeySubject)

	// overrides are never persisted
	require.NoError(t, store.Set(domain.KeyPortEnd, 9600))
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "9500")
	assert.NotContains(t, string(data), "admin@example.com")
}

func TestConfigStore_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "WSAMPLES_OUTPUT_FORMAT=yaml\nWSAMPLES_HISTORY_ENABLED=false\nUNRELATED=1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "yaml", store.GetString(domain.KeyOutputFormat))
	assert.False(t, store.GetBool(domain.KeyHistoryEnabled))
	_, ok := store.Get("unrelated")
	assert.False(t, ok)
}

func TestConfigStore_ProcessEnvBeatsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WSAMPLES_OUTPUT_FORMAT=yaml\n"), 0600))
	t.Setenv("WSAMPLES_OUTPUT_FORMAT", "json")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "json", store.GetString(domain.KeyOutputFormat))
}

func TestConfigStore_StringSliceFromEnvironment(t *testing.T) {
	store, _ := newStore(t)
	store.overrides["x"] = " a, b ,,c "

	assert.Equal(t, []string{"a", "b", "c"}, store.GetStringSlice("x"))
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "WSAMPLES_AUTH_TIMEOUT_SECONDS", EnvVar(domain.KeyAuthTimeout))
	assert.Equal(t, "WSAMPLES_HISTORY_DIR", EnvVar(domain.KeyHistoryDir))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("# Just a comment\n\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(dir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("test", "value"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, _ := newStore(t)

	assert.Error(t, store.Set("channel", make(chan int)))
}
