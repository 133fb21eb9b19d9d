package minio

import (
	"context"
	"io"
	"strings"
	"testing"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AtomSense/pkg/errors"
)

type fakeObjectAPI struct {
	objects map[string]string // key -> content
	listErr error
	put     map[string][]byte
}

func newFakeObjectAPI(objects map[string]string) *fakeObjectAPI {
	return &fakeObjectAPI{objects: objects, put: map[string][]byte{}}
}

func (f *fakeObjectAPI) BucketExists(context.Context, string) (bool, error) { return true, nil }

func (f *fakeObjectAPI) MakeBucket(context.Context, string, miniogo.MakeBucketOptions) error {
	return nil
}

func (f *fakeObjectAPI) ListObjects(_ context.Context, _ string, opts miniogo.ListObjectsOptions) <-chan miniogo.ObjectInfo {
	ch := make(chan miniogo.ObjectInfo)
	go func() {
		defer close(ch)
		if f.listErr != nil {
			ch <- miniogo.ObjectInfo{Err: f.listErr}
			return
		}
		for key, content := range f.objects {
			if !strings.HasPrefix(key, opts.Prefix) {
				continue
			}
			ch <- miniogo.ObjectInfo{Key: key, Size: int64(len(content))}
		}
	}()
	return ch
}

func (f *fakeObjectAPI) GetObject(_ context.Context, _ string, key string) (io.ReadCloser, error) {
	content, ok := f.objects[key]
	if !ok {
		return nil, errors.NotFound(key)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (f *fakeObjectAPI) PutObject(_ context.Context, _ string, key string, r io.Reader, _ int64, _ miniogo.PutObjectOptions) (miniogo.UploadInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return miniogo.UploadInfo{}, err
	}
	f.put[key] = data
	return miniogo.UploadInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeObjectAPI) StatObject(_ context.Context, _ string, key string, _ miniogo.StatObjectOptions) (miniogo.ObjectInfo, error) {
	content, ok := f.objects[key]
	if !ok {
		return miniogo.ObjectInfo{}, miniogo.ErrorResponse{Code: "NoSuchKey"}
	}
	return miniogo.ObjectInfo{Key: key, Size: int64(len(content))}, nil
}

func newTestStore(objects map[string]string) (*DatasetStore, *fakeObjectAPI) {
	api := newFakeObjectAPI(objects)
	return NewDatasetStore(newClient(api, "datasets", nil)), api
}

func TestDatasetStore_ListFiltersNonDatasetKeys(t *testing.T) {
	store, _ := newTestStore(map[string]string{
		"batch1/mols.sdf": "content",
		"batch1/one.mol":  "content",
		"batch1/notes.txt": "content",
	})

	out, err := store.List(context.Background(), "batch1/")
	require.NoError(t, err)
	keys := make([]string, len(out))
	for i, o := range out {
		keys[i] = o.Key
	}
	assert.ElementsMatch(t, []string{"batch1/mols.sdf", "batch1/one.mol"}, keys)
}

func TestDatasetStore_ListPropagatesErrors(t *testing.T) {
	store, api := newTestStore(nil)
	api.listErr = assert.AnError

	_, err := store.List(context.Background(), "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeObjectStore))
}

func TestDatasetStore_Fetch(t *testing.T) {
	store, _ := newTestStore(map[string]string{"mols.sdf": "hello"})

	rc, err := store.Fetch(context.Background(), "mols.sdf")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestDatasetStore_FetchMissingKey(t *testing.T) {
	store, _ := newTestStore(nil)

	_, err := store.Fetch(context.Background(), "absent.sdf")
	assert.True(t, errors.IsNotFound(err))
}

func TestDatasetStore_StoreAnnotated(t *testing.T) {
	store, api := newTestStore(nil)

	key, err := store.StoreAnnotated(context.Background(), "batch1/mols.sdf", []byte("typed"))
	require.NoError(t, err)
	assert.Equal(t, "annotated/batch1/mols.sdf", key)
	assert.Equal(t, []byte("typed"), api.put[key])

	_, err = store.StoreAnnotated(context.Background(), "", []byte("x"))
	assert.Error(t, err)
	_, err = store.StoreAnnotated(context.Background(), "k.sdf", nil)
	assert.Error(t, err)
}
