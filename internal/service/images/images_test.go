package images

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"fsanano/catalog-api/internal/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiskIntake(t *testing.T) (*Intake, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)
	return NewIntake(store, "http://localhost:4000/"), dir
}

func TestReceive_NamesFileAndBuildsURL(t *testing.T) {
	intake, dir := newDiskIntake(t)
	intake.now = func() time.Time { return time.UnixMilli(1700000000123) }

	up, err := intake.Receive(context.Background(), FieldName, "photo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "product_1700000000123.png", up.Filename)
	assert.Equal(t, "http://localhost:4000/images/product_1700000000123.png", up.URL)

	data, err := os.ReadFile(filepath.Join(dir, up.Filename))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestReceive_StampsNeverGoBackwards(t *testing.T) {
	intake, _ := newDiskIntake(t)
	frozen := time.UnixMilli(1700000000000)
	intake.now = func() time.Time { return frozen }

	re := regexp.MustCompile(`product_(\d+)\.png$`)
	var prev int64
	for i := 0; i < 5; i++ {
		up, err := intake.Receive(context.Background(), FieldName, "photo.png", strings.NewReader("x"))
		require.NoError(t, err)

		m := re.FindStringSubmatch(up.URL)
		require.Len(t, m, 2, up.URL)
		n, err := strconv.ParseInt(m[1], 10, 64)
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n
	}
}

func TestReceive_NoExtension(t *testing.T) {
	intake, _ := newDiskIntake(t)
	intake.now = func() time.Time { return time.UnixMilli(5) }

	up, err := intake.Receive(context.Background(), FieldName, "README", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "product_5", up.Filename)
}

func TestDiskStore_OpenMissingAndInvalid(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Open(ctx, "nope.png")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = store.Open(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, store.Save(ctx, "../x.png", strings.NewReader("x")), common.ErrValidation)
}

func TestDiskStore_RoundTrip(t *testing.T) {
	store, err := NewDiskStore(filepath.Join(t.TempDir(), "upload", "images"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a.png", strings.NewReader("hello")))
	rc, err := store.Open(ctx, "a.png")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

type fakeS3 struct {
	objects map[string][]byte
	putErr  error
	lastPut *s3.PutObjectInput
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = data
	f.lastPut = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(data)))}, nil
}

func TestS3Store_SaveAndOpen(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	store := &S3Store{client: fake, bucket: "images"}
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "product_1.png", strings.NewReader("img")))
	assert.Equal(t, "images", *fake.lastPut.Bucket)
	assert.Equal(t, int64(3), *fake.lastPut.ContentLength)
	assert.Equal(t, "image/png", *fake.lastPut.ContentType)

	rc, err := store.Open(ctx, "product_1.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))

	_, err = store.Open(ctx, "missing.png")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestS3Store_PutError(t *testing.T) {
	store := &S3Store{client: &fakeS3{objects: map[string][]byte{}, putErr: errors.New("denied")}, bucket: "b"}

	err := store.Save(context.Background(), "a.png", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}

func TestNewS3Store_Config(t *testing.T) {
	orig := loadDefaultAWSConfig
	defer func() { loadDefaultAWSConfig = orig }()

	var gotOpts int
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		gotOpts = len(optFns)
		return aws.Config{Region: "eu-west-1"}, nil
	}

	store, err := NewS3Store(context.Background(), S3Config{
		Bucket: "images", Region: "eu-west-1", Endpoint: "http://localhost:9000",
		AccessKey: "key", SecretKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "images", store.bucket)
	assert.Equal(t, 2, gotOpts, "region and static credentials")

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	_, err = NewS3Store(context.Background(), S3Config{Bucket: "images"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config")
}
