package lazyload_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/AntoineGS/shellkit/internal/lazyload"
	"github.com/AntoineGS/shellkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nvmInit = `printf '. "%s/nvm.sh"\n' "$HOME/.nvm"`

func TestResolve_MissThenHit(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("sh -c "+nvmInit, ". /home/me/.nvm/nvm.sh\n", nil)

	c := lazyload.New(t.TempDir(), time.Hour, fake)
	ctx := context.Background()

	out, err := c.Resolve(ctx, "nvm", nvmInit)
	require.NoError(t, err)
	assert.Equal(t, ". /home/me/.nvm/nvm.sh\n", string(out))

	again, err := c.Resolve(ctx, "nvm", nvmInit)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
	assert.Equal(t, 1, fake.CallCount("sh -c"), "second resolve should be served from the file")

	info, err := os.Stat(c.Path("nvm"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestResolve_ChangedCommandReruns(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.DefaultResponse = &testutil.Response{Output: []byte("export X=1\n")}

	c := lazyload.New(t.TempDir(), time.Hour, fake)
	ctx := context.Background()

	_, err := c.Resolve(ctx, "gcloud", "echo one")
	require.NoError(t, err)
	_, err = c.Resolve(ctx, "gcloud", "echo two")
	require.NoError(t, err)

	assert.Equal(t, 2, fake.CallCount("sh -c"))
}

func TestResolve_Expired(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.DefaultResponse = &testutil.Response{Output: []byte("init\n")}

	c := lazyload.New(t.TempDir(), time.Minute, fake)
	ctx := context.Background()

	_, err := c.Resolve(ctx, "nvm", nvmInit)
	require.NoError(t, err)

	old := time.Now().Add(-2 * time.Minute)
	require.NoError(t, os.Chtimes(c.Path("nvm"), old, old))

	_, err = c.Resolve(ctx, "nvm", nvmInit)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.CallCount("sh -c"))
}

func TestResolve_FailureWritesNothing(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("sh -c", "", errors.New("exit status 1"))

	c := lazyload.New(t.TempDir(), time.Hour, fake)

	_, err := c.Resolve(context.Background(), "nvm", nvmInit)
	require.Error(t, err)
	assert.ErrorIs(t, err, lazyload.ErrInitFailed)
	assert.NoFileExists(t, c.Path("nvm"))
}

func TestInvalidate(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.DefaultResponse = &testutil.Response{Output: []byte("init\n")}

	c := lazyload.New(t.TempDir(), time.Hour, fake)
	ctx := context.Background()

	_, err := c.Resolve(ctx, "nvm", nvmInit)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate("nvm"))
	assert.NoFileExists(t, c.Path("nvm"))
	require.NoError(t, c.Invalidate("nvm"), "invalidating twice is not an error")

	_, err = c.Resolve(ctx, "nvm", nvmInit)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.CallCount("sh -c"))
}

func TestPath_SanitizesName(t *testing.T) {
	c := lazyload.New("/tmp/cache", 0, testutil.NewFakeCommander())

	assert.Equal(t, "/tmp/cache/my_tool.sh", c.Path("my/tool"))
	assert.Equal(t, lazyload.DefaultTTL, c.TTL)
}
